package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pagefit/pagefit/internal/output"
	"github.com/pagefit/pagefit/internal/template"
)

// templateInfo summarizes one loaded template for listing.
type templateInfo struct {
	Name  string `json:"name" yaml:"name"`
	Slots int    `json:"slots" yaml:"slots"`
	Zones int    `json:"zones" yaml:"zones"`
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the slot templates in the template directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := template.NewStore(cfg.Engine.TemplateDir, slog.Default())
		if err != nil {
			return err
		}

		infos := make([]templateInfo, 0)
		for _, name := range store.Names() {
			tmpl, err := store.Get(name)
			if err != nil {
				continue
			}
			infos = append(infos, templateInfo{
				Name:  tmpl.Name,
				Slots: len(tmpl.Slots),
				Zones: len(tmpl.Zones),
			})
		}
		return output.Print(infos)
	},
}
