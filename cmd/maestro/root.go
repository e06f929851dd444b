package main

import (
	"github.com/maestro-marketing/go-maestro"
	"github.com/maestro-marketing/go-maestro/store"
	"github.com/spf13/cobra"
)

var (
	apiURL     string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "maestro",
	Short: "CLI for the Maestro marketing platform",
	Long: `maestro is a command-line client for a Maestro marketing backend.

It authenticates against the platform, manages campaigns, and queries the
analytics services.

Environment Variables:
  MAESTRO_API_URL  Backend API URL (default: http://localhost:8000/api/v1)`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides MAESTRO_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// buildClient wires config, the sealed credentials file, and the API client.
// The credentials file is sealed with a machine-bound key so a copied file is
// useless on another host.
func buildClient() (*maestro.Client, error) {
	cfg := maestro.ConfigFromEnv()
	if apiURL != "" {
		cfg.BaseURL = apiURL
	}

	path, err := store.DefaultPath()
	if err != nil {
		return nil, err
	}

	creds := store.NewFileStore(path, []byte(maestro.InstallID()))

	return maestro.NewClient(cfg, creds), nil
}

func buildSession() (*maestro.SessionStore, *maestro.Client, error) {
	api, err := buildClient()
	if err != nil {
		return nil, nil, err
	}
	return maestro.NewSessionStore(api), api, nil
}
