package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	textvec "github.com/kailas-cloud/textvec/pkg/sdk"
)

type globalFlags struct {
	url     string
	apiKey  string
	timeout time.Duration
	verbose bool
}

func rootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "textvec-cli",
		Short:         "Command-line client for the textvec NLP service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.url, "url", envOr("TEXTVEC_URL", "http://localhost:8000"), "server base URL")
	cmd.PersistentFlags().StringVar(&flags.apiKey, "api-key", os.Getenv("TEXTVEC_API_KEY"), "API key sent as Bearer token")
	cmd.PersistentFlags().DurationVar(&flags.timeout, "timeout", 30*time.Second, "per-request timeout")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log every request")

	cmd.AddCommand(
		checkCmd(flags),
		vectorizeCmd(flags),
		annotateCmd(flags),
	)
	return cmd
}

func (f *globalFlags) client(cmd *cobra.Command) (*textvec.Client, error) {
	opts := []textvec.Option{
		textvec.WithAPIKey(f.apiKey),
		textvec.WithTimeout(f.timeout),
		textvec.WithUserAgent("textvec-cli"),
	}
	if f.verbose {
		opts = append(opts, textvec.WithLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(),
			&slog.HandlerOptions{Level: slog.LevelDebug}))))
	}
	return textvec.New(f.url, opts...)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
