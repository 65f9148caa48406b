package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/wayfinder/internal/config"
	"github.com/aretw0/wayfinder/pkg/schema"
	"github.com/spf13/cobra"
)

var errInvalidFlow = errors.New("flow is invalid")

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the flow against the flow schema",
	Long: `Validates the flow in three phases (structural, semantic, domain) and
prints every finding. Warnings such as duplicate step IDs or unknown
nextStepId targets do not fail the command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var findings []*schema.ValidationError

		info, statErr := os.Stat(settings.Flow.Path)
		if settings.Flow.Source != config.SourceRedis && statErr == nil && !info.IsDir() {
			_, findings = schema.ValidateFile(settings.Flow.Path)
		} else {
			src, err := openSource(cmd.Context())
			if err != nil {
				return err
			}
			data, err := flowDocument(cmd.Context(), src)
			if err != nil {
				return err
			}
			_, findings = schema.Validate(data)
		}

		out := cmd.OutOrStdout()
		for _, f := range findings {
			fmt.Fprintf(out, "%s: %s\n", f.Severity, f.Error())
		}
		if err := schema.Err(findings); err != nil {
			return errInvalidFlow
		}
		fmt.Fprintln(out, "Flow is valid! ✅")
		return nil
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of flow documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := schema.Generate()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(schemaCmd)
}
