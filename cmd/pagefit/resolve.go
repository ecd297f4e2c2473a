package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pagefit/pagefit/internal/ingest"
	"github.com/pagefit/pagefit/internal/jobs"
	"github.com/pagefit/pagefit/internal/match"
	"github.com/pagefit/pagefit/internal/output"
	"github.com/pagefit/pagefit/internal/template"
	"github.com/pagefit/pagefit/internal/types"
)

var (
	resolveTemplate string
	resolvePage     int
	resolveOut      string
)

// resolveResult is the CLI envelope around the per-page reports.
type resolveResult struct {
	RunID    string          `json:"run_id" yaml:"run_id"`
	DocID    string          `json:"doc_id" yaml:"doc_id"`
	Source   string          `json:"source,omitempty" yaml:"source,omitempty"`
	Template string          `json:"template" yaml:"template"`
	Reports  []*types.Report `json:"reports" yaml:"reports"`
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <extraction.json>",
	Short: "Resolve an extraction payload against a slot template",
	Long: `Resolve loads an extraction payload, validates it, and resolves every
page against the named slot template. Pages are resolved in parallel; each
page's report is deterministic and independent of the others.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if resolveTemplate == "" {
			return fmt.Errorf("--template is required")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := slog.Default()

		store, err := template.NewStore(cfg.Engine.TemplateDir, logger)
		if err != nil {
			return err
		}
		tmpl, err := store.Get(resolveTemplate)
		if err != nil {
			return err
		}

		doc, err := ingest.Load(args[0], logger)
		if err != nil {
			return err
		}

		pages := doc.Pages
		if resolvePage >= 0 {
			page, ok := doc.Page(resolvePage)
			if !ok {
				return fmt.Errorf("page %d not present in payload", resolvePage)
			}
			pages = []types.Page{page}
		}

		engine := match.NewEngine(match.EngineConfig{
			Scoring:     cfg.Scoring,
			DefaultZone: cfg.Engine.DefaultZone,
			Logger:      logger,
		})
		pool := jobs.NewPool(jobs.PoolConfig{Workers: cfg.Engine.MaxWorkers, Logger: logger})

		reports, err := pool.ResolvePages(cmd.Context(), pages, func(p types.Page) *types.Report {
			return engine.ResolvePage(p, *tmpl)
		})
		if err != nil {
			return err
		}

		result := resolveResult{
			RunID:    doc.RunID,
			DocID:    doc.DocID,
			Source:   doc.Source,
			Template: tmpl.Name,
			Reports:  reports,
		}

		if resolveOut != "" {
			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal result: %w", err)
			}
			if err := os.WriteFile(resolveOut, append(data, '\n'), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", resolveOut, err)
			}
			logger.Info("report written", "path", resolveOut, "pages", len(reports))
			return nil
		}
		return output.Print(result)
	},
}

func init() {
	resolveCmd.Flags().StringVarP(&resolveTemplate, "template", "t", "", "slot template name (required)")
	resolveCmd.Flags().IntVarP(&resolvePage, "page", "p", -1, "resolve a single page index (default: all pages)")
	resolveCmd.Flags().StringVar(&resolveOut, "out", "", "write the report to a JSON file instead of stdout")
}
