// Package main provides the pharmcat command-line tool: named allele
// matching against a pharmacogenomic catalog, in the Cobra-driven shape
// the teacher's cmd/vibe-vep lays out its subcommands.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/msilver727/pharmcat/internal/config"
	"github.com/msilver727/pharmcat/internal/errs"
)

// Exit codes. Any command's failure is mapped through exitCodeFor, so a
// matcher error kind yields its specific code whichever command raised it.
const (
	ExitSuccess               = 0
	ExitError                 = 1
	ExitBadCatalog            = 2
	ExitBadSample             = 3
	ExitExcessivePermutations = 4
)

var (
	cfgFile string
	verbose bool

	cfg *config.Config
	log *zap.Logger
)

func main() {
	os.Exit(run())
}

func run() int {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		return exitCodeFor(err)
	}
	return ExitSuccess
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pharmcat",
		Short: "Named allele matcher for pharmacogenomic genotype calls",
		Long: `pharmcat matches sample genotype calls against a pharmacogenomic
allele definition catalog, enumerating and scoring diplotype candidates.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if verbose {
				loaded.Verbose = true
			}
			cfg = loaded

			var zerr error
			if cfg.Verbose {
				log, zerr = zap.NewDevelopment()
			} else {
				log, zerr = zap.NewProduction()
			}
			return zerr
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.pharmcat.yaml)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newMatchCmd())
	root.AddCommand(newCatalogCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newServeCmd())

	return root
}

// exitCodeFor maps a matcher error kind to the exit codes the run
// documents, falling back to the generic error code for anything it
// doesn't recognize.
func exitCodeFor(err error) int {
	var e *errs.Error
	if !errors.As(err, &e) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	switch e.Kind() {
	case errs.KindMalformedCatalog, errs.KindCatalogConflict:
		return ExitBadCatalog
	case errs.KindMalformedVariant, errs.KindAmbiguousLocus, errs.KindOutsideCallCollision:
		return ExitBadSample
	case errs.KindExcessivePermutations:
		return ExitExcessivePermutations
	default:
		return ExitError
	}
}
