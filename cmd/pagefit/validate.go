package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pagefit/pagefit/internal/schema"
	"github.com/pagefit/pagefit/internal/template"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate payloads and templates against their schemas",
}

var validatePayloadCmd = &cobra.Command{
	Use:   "payload <extraction.json>",
	Short: "Validate an extraction payload",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read payload: %w", err)
		}
		if err := schema.ValidateExtraction(data); err != nil {
			return err
		}
		fmt.Printf("%s: valid extraction payload\n", filepath.Base(args[0]))
		return nil
	},
}

var validateTemplateCmd = &cobra.Command{
	Use:   "template <template.yaml>",
	Short: "Validate a slot template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read template: %w", err)
		}
		isJSON := strings.EqualFold(filepath.Ext(args[0]), ".json")
		tmpl, err := template.Parse(data, isJSON)
		if err != nil {
			return err
		}
		fmt.Printf("%s: valid template %q (%d slots, %d zones)\n",
			filepath.Base(args[0]), tmpl.Name, len(tmpl.Slots), len(tmpl.Zones))
		return nil
	},
}

func init() {
	validateCmd.AddCommand(validatePayloadCmd)
	validateCmd.AddCommand(validateTemplateCmd)
}
