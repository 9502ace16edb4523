package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and validate the allele definition catalog",
	}
	cmd.AddCommand(newCatalogValidateCmd())
	return cmd
}

func newCatalogValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <catalog-dir-or-duckdb-path>",
		Short: "Load every gene definition and report invariant violations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogValidate(cmd, args[0])
		},
	}
	return cmd
}

func runCatalogValidate(cmd *cobra.Command, path string) error {
	genes, err := loadCatalog(cmd.Context(), path)
	if err != nil {
		return err
	}

	for _, g := range genes {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d loci, %d named alleles\n", g.Gene, len(g.Loci), len(g.Alleles))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "validated %d gene definitions\n", len(genes))
	return nil
}
