package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/msilver727/pharmcat/internal/result"
	"github.com/msilver727/pharmcat/internal/server"
)

func newServeCmd() *cobra.Command {
	var (
		catalogPath string
		addr        string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the named allele matcher over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, catalogPath, addr)
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog source: a directory of per-gene JSON files, or a DuckDB database path (overrides config)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}

func runServe(cmd *cobra.Command, catalogPath, addr string) error {
	if addr == "" {
		addr = cfg.Server.Addr
	}

	genes, err := loadCatalog(cmd.Context(), catalogPath)
	if err != nil {
		return err
	}

	opts := result.Options{
		PermutationCap:  cfg.Match.PermutationCap,
		AllMatches:      cfg.Match.AllMatches,
		UseCombinations: cfg.Match.UseCombinations,
	}

	srv, err := server.New(genes, opts, cfg.Server.CacheSize, log)
	if err != nil {
		return fmt.Errorf("starting server: %w", err)
	}

	log.Info("listening", zap.String("addr", addr), zap.Int("genes", len(genes)))
	return http.ListenAndServe(addr, srv)
}
