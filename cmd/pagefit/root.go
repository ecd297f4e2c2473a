package main

import (
	"github.com/spf13/cobra"

	"github.com/pagefit/pagefit/internal/config"
	"github.com/pagefit/pagefit/internal/output"
	"github.com/pagefit/pagefit/version"
)

var (
	cfgFile      string
	templatesDir string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "pagefit",
	Short: "Slot resolution engine for rendered document pages",
	Long: `Pagefit resolves extracted page elements against declarative slot
templates: for every declared slot it decides which element (if any) best
fills it, with what confidence, and which remediation tier applies when
confidence is insufficient.

The pipeline includes:
  - Bbox normalization and noise filtering
  - Zone classification over named vertical bands
  - Tiered candidate search with zone relaxation
  - Multi-factor scoring (IoU, distance, style, anchors, hints)
  - Reuse-penalized greedy slot assignment
  - Status classification with auditable reason codes`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.pagefit/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&templatesDir, "templates", "", "slot template directory (default: ./templates)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		output.SetFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads configuration, applying the --templates override.
func loadConfig() (*config.Config, error) {
	cm, err := config.NewManager(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg := cm.Get()
	if templatesDir != "" {
		cfg.Engine.TemplateDir = templatesDir
	}
	return cfg, nil
}
