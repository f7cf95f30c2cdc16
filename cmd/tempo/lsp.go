package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"tempo/internal/config"
	"tempo/internal/engine"
	"tempo/internal/lsp"
	"tempo/internal/vocab"
)

var lspCmd = &cobra.Command{
	Use:          "lsp",
	Short:        "Run the Tempo language server over stdio",
	SilenceUsage: true,
	RunE:         runLSP,
}

func runLSP(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	registry := vocab.New()
	cachePath := cfg.CachePath
	if cachePath == "" {
		cachePath, err = vocab.DefaultCachePath("tempo")
		if err != nil {
			cachePath = ""
		}
	}
	if cachePath != "" {
		if snap, err := vocab.LoadSnapshot(cachePath); err == nil && snap != nil {
			registry.ApplySnapshot(snap)
		}
		registry.OnUpdate(func() {
			if err := vocab.SaveSnapshot(cachePath, registry.SnapshotDynamic()); err != nil {
				fmt.Fprintf(os.Stderr, "tempo: save vocab cache: %v\n", err)
			}
		})
	}

	client := engine.NewSyncClient(engine.Options{
		Registry: registry,
		Discovery: &engine.FileDiscovery{
			Path:     cfg.Engine.DiscoveryPath,
			Interval: cfg.Engine.PollInterval(),
		},
		SettleDelay: cfg.Engine.SettleDelay(),
		Logf: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "tempo: engine: "+format+"\n", args...)
		},
	})

	server := lsp.NewServer(os.Stdin, os.Stdout, lsp.ServerOptions{
		Registry:       registry,
		MaxDiagnostics: cfg.MaxDiagnostics,
	})

	var g errgroup.Group
	g.Go(func() error {
		client.Start()
		return nil
	})
	g.Go(func() error {
		defer client.Stop()
		return server.Run()
	})
	err = g.Wait()
	if errors.Is(err, lsp.ErrExit) {
		return nil
	}
	if errors.Is(err, lsp.ErrExitWithoutShutdown) {
		return fmt.Errorf("lsp exit without shutdown")
	}
	return err
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	dir, _ := cmd.Flags().GetString("config")
	if dir == "" {
		dir, _ = os.Getwd()
	} else if filepath.Ext(dir) == ".toml" {
		dir = filepath.Dir(dir)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return cfg, err
	}
	if n, _ := cmd.Flags().GetInt("max-diagnostics"); n > 0 {
		cfg.MaxDiagnostics = n
	}
	return cfg, nil
}
