package main

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	formgate "github.com/goliatone/go-formgate"
	"github.com/goliatone/go-formgate/internal/config"
	"github.com/goliatone/go-formgate/pkg/model"
	pkgopenapi "github.com/goliatone/go-formgate/pkg/openapi"
)

type lintResult struct {
	File string `json:"file"`
	model.Violation
}

func lintCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "lint <document>...",
		Short: "Check the x-formgate extensions of OpenAPI documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			loaderOpts := []pkgopenapi.LoaderOption{pkgopenapi.WithMaxBytes(cfg.MaxBytes)}
			if cfg.AllowHTTP {
				loaderOpts = append(loaderOpts, pkgopenapi.WithHTTPFallback(30*time.Second))
			}
			loader := formgate.NewLoader(loaderOpts...)
			parser := formgate.NewParser(pkgopenapi.WithPartialDocuments(true))
			registry := model.DefaultRegistry()

			var results []lintResult
			for _, location := range args {
				source, err := pkgopenapi.ParseSource(location)
				if err != nil {
					return err
				}
				doc, err := loader.Load(cmd.Context(), source)
				if err != nil {
					return fmt.Errorf("lint %s: %w", location, err)
				}
				ops, err := parser.Operations(cmd.Context(), doc)
				if err != nil {
					return fmt.Errorf("lint %s: %w", location, err)
				}
				for _, violation := range model.Lint(ops, registry) {
					results = append(results, lintResult{File: location, Violation: violation})
				}
			}

			out := cmd.OutOrStdout()
			if cfg.JSON {
				if results == nil {
					results = []lintResult{}
				}
				if err := printJSON(out, results); err != nil {
					return err
				}
			} else if len(results) > 0 {
				t := table.NewWriter()
				t.SetOutputMirror(out)
				t.AppendHeader(table.Row{"File", "Operation", "Location", "Problem"})
				for _, r := range results {
					t.AppendRow(table.Row{r.File, r.Operation, r.Location, r.Message})
				}
				t.Render()
			}
			if len(results) > 0 {
				return fmt.Errorf("%d extension problem(s) found", len(results))
			}
			return nil
		},
	}
}
