package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crhntr/httplog"
	"github.com/spf13/cobra"

	"github.com/happy-scan/happy-scan/internal/assets"
	"github.com/happy-scan/happy-scan/internal/config"
	"github.com/happy-scan/happy-scan/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "happy-scan",
		Short:        "Serve a random image and a QR code that links to it",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, os.LookupEnv)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringP("config", "c", "", "path to a YAML config file")
	cmd.Flags().IntP("port", "p", 0, "listening port (default 3000, env PORT)")
	cmd.Flags().StringP("dir", "d", "", "directory to pick images from (default images, env ASSET_DIR)")
	cmd.Flags().StringSlice("ext", nil, "accepted image extensions (default png,jpg,jpeg,gif,webp)")
	cmd.Flags().Bool("trust-proxy", false, "use X-Forwarded-Proto and X-Forwarded-Host for the QR link")
	return cmd
}

// loadConfig layers defaults, the config file, the environment, and finally
// flags the user set explicitly.
func loadConfig(cmd *cobra.Command, lookup func(string) (string, bool)) (*config.Config, error) {
	flags := cmd.Flags()
	path, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}
	if flags.Changed("port") {
		if cfg.Port, err = flags.GetInt("port"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("dir") {
		if cfg.AssetDirectory, err = flags.GetString("dir"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("ext") {
		if cfg.AcceptedExtensions, err = flags.GetStringSlice("ext"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("trust-proxy") {
		if cfg.TrustProxy, err = flags.GetBool("trust-proxy"); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(
		assets.NewDirectory(cfg.AssetDirectory, cfg.AcceptedExtensions),
		cfg.Encoder(),
		server.Options{
			Title:      cfg.Title,
			TrustProxy: cfg.TrustProxy,
		},
	)
	httpServer := &http.Server{
		Addr:              cfg.Address(),
		Handler:           httplog.Wrap(srv.Handler()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.Printf("server running on port %d, serving images from %s", cfg.Port, cfg.AssetDirectory)
		errs <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
