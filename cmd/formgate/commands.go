package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	formgate "github.com/goliatone/go-formgate"
	"github.com/goliatone/go-formgate/internal/config"
	"github.com/goliatone/go-formgate/internal/server"
	"github.com/goliatone/go-formgate/pkg/form"
	"github.com/goliatone/go-formgate/pkg/model"
	pkgopenapi "github.com/goliatone/go-formgate/pkg/openapi"
	"github.com/goliatone/go-formgate/pkg/orchestrator"
	"github.com/goliatone/go-formgate/pkg/password"
	"github.com/goliatone/go-formgate/pkg/report"
	"github.com/goliatone/go-formgate/pkg/submit"
	"github.com/goliatone/go-formgate/pkg/tui"
)

const shutdownTimeout = 5 * time.Second

func checkCmd(v *viper.Viper) *cobra.Command {
	var (
		valuesPath   string
		touchAll     bool
		validateAll  bool
		loading      bool
		renderReport bool
		templatePath string
	)
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Apply values to a form and report whether it can be submitted",
		Long: `check compiles the selected form, applies the values file in field order,
touches the fields that received a value and prints every field with the
derived submit button. The command exits with status 2 when the button is
disabled.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			def, err := resolveForm(cfg)
			if err != nil {
				return err
			}
			values := map[string]string{}
			if valuesPath != "" {
				if values, err = readValues(valuesPath); err != nil {
					return err
				}
			}

			f, err := model.Compile(def)
			if err != nil {
				return err
			}
			if err := applyValues(def, f, values, touchAll); err != nil {
				return err
			}
			if validateAll {
				f.ValidateForm()
			}

			base := model.SubmitConfig(def)
			base.IsLoading = loading
			rep := report.Build(def, f, base)

			out := cmd.OutOrStdout()
			switch {
			case cfg.JSON:
				err = printJSON(out, rep)
			case renderReport || templatePath != "":
				err = renderTo(out, rep, templatePath)
			default:
				printReport(out, rep, newPalette(cfg, out))
			}
			if err != nil {
				return err
			}
			if !rep.Submit.CanSubmit {
				return fmt.Errorf("%w: %s", errNotSubmittable, reasonText(rep.Submit))
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&valuesPath, "values", "", "YAML or JSON file mapping field names to values")
	flags.BoolVar(&touchAll, "touch-all", false, "touch every field, not only the ones with a value")
	flags.BoolVar(&validateAll, "validate-all", false, "validate every field before deriving the button")
	flags.BoolVar(&loading, "loading", false, "derive the button as if a submission is in flight")
	flags.BoolVar(&renderReport, "report", false, "render the text report template")
	flags.StringVar(&templatePath, "template", "", "pongo2 template file used instead of the built-in report")
	return cmd
}

func strengthCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "strength <password>",
		Short: "Score a password against the strength meter requirements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			result := password.Score(args[0])
			out := cmd.OutOrStdout()
			if cfg.JSON {
				return printJSON(out, struct {
					password.Result
					Percent int    `json:"percent"`
					Summary string `json:"summary"`
				}{result, result.Percent(), result.Summary()})
			}

			p := newPalette(cfg, out)
			t := table.NewWriter()
			t.SetOutputMirror(out)
			t.AppendHeader(table.Row{"Requirement", "Status"})
			for _, rule := range result.Rules {
				status := p.bad.Render("missing")
				if rule.Passed {
					status = p.ok.Render("met")
				}
				t.AppendRow(table.Row{rule.Label, status})
			}
			t.Render()
			fmt.Fprintf(out, "Strength: %s (%d%%), %s\n", p.strength(result.Label), result.Percent(), result.Summary())
			return nil
		},
	}
}

func fillCmd(v *viper.Viper) *cobra.Command {
	var maxAttempts int
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill the selected form interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			def, err := resolveForm(cfg)
			if err != nil {
				return err
			}
			session, err := tui.New(def, tui.WithMaxAttempts(maxAttempts))
			if err != nil {
				return err
			}
			result, err := session.Run(cmd.Context())
			if errors.Is(err, tui.ErrAborted) {
				return errors.New("aborted")
			}
			if err != nil {
				return err
			}
			if cfg.JSON {
				return printJSON(cmd.OutOrStdout(), result)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", tui.DefaultMaxAttempts, "times an invalid answer is asked again")
	return cmd
}

func openapiCmd(v *viper.Viper) *cobra.Command {
	var (
		format string
		list   bool
	)
	cmd := &cobra.Command{
		Use:   "openapi <document> [operationId]",
		Short: "Build a form definition from an OpenAPI operation",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			source, err := pkgopenapi.ParseSource(args[0])
			if err != nil {
				return err
			}

			loaderOpts := []pkgopenapi.LoaderOption{pkgopenapi.WithMaxBytes(cfg.MaxBytes)}
			if cfg.AllowHTTP {
				loaderOpts = append(loaderOpts, pkgopenapi.WithHTTPFallback(30*time.Second))
			}
			orch := formgate.NewOrchestrator(orchestrator.WithLoader(formgate.NewLoader(loaderOpts...)))
			out := cmd.OutOrStdout()

			if list || len(args) == 1 {
				ids, err := orch.Operations(cmd.Context(), orchestrator.Request{Source: source})
				if err != nil {
					return err
				}
				if cfg.JSON {
					return printJSON(out, ids)
				}
				for _, id := range ids {
					fmt.Fprintln(out, id)
				}
				return nil
			}

			def, err := orch.Build(cmd.Context(), orchestrator.Request{Source: source, OperationID: args[1]})
			if err != nil {
				return err
			}
			if cfg.JSON {
				format = "json"
			}
			data, err := model.Marshal(def, format)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml or json")
	cmd.Flags().BoolVar(&list, "list", false, "list operations with a request body")
	return cmd
}

func serveCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the form evaluation HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			catalog, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			handler, err := server.New(server.Config{Catalog: catalog, BasePath: cfg.BasePath})
			if err != nil {
				return err
			}

			srv := &http.Server{Addr: cfg.Addr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}
			ctx := cmd.Context()
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			log.Printf("formgate listening on http://%s%s (%d forms)", cfg.Addr, cfg.BasePath, len(catalog.Names()))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.String(config.KeyAddr, config.DefaultAddr, "listen address")
	flags.String(config.KeyBasePath, config.DefaultBasePath, "API base path")
	_ = v.BindPFlag(config.KeyAddr, flags.Lookup(config.KeyAddr))
	_ = v.BindPFlag(config.KeyBasePath, flags.Lookup(config.KeyBasePath))
	return cmd
}

func formsCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "forms",
		Short: "List the available form definitions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			catalog, err := loadCatalog(cfg)
			if err != nil {
				return err
			}

			type row struct {
				ID       string `json:"id"`
				Title    string `json:"title"`
				Fields   int    `json:"fields"`
				Required int    `json:"required"`
			}
			rows := make([]row, 0, len(catalog.Names()))
			for _, id := range catalog.Names() {
				def, _ := catalog.Get(id)
				required := 0
				for _, field := range def.Fields {
					if field.IsRequired() {
						required++
					}
				}
				rows = append(rows, row{ID: id, Title: def.Title, Fields: len(def.Fields), Required: required})
			}

			out := cmd.OutOrStdout()
			if cfg.JSON {
				return printJSON(out, rows)
			}
			t := table.NewWriter()
			t.SetOutputMirror(out)
			t.AppendHeader(table.Row{"ID", "Title", "Fields", "Required"})
			for _, r := range rows {
				t.AppendRow(table.Row{r.ID, r.Title, r.Fields, r.Required})
			}
			t.Render()
			return nil
		},
	}
}

// loadCatalog returns the built-in presets merged with the definitions in
// the configured forms directory.
func loadCatalog(cfg config.Config) (*model.Catalog, error) {
	catalog, err := model.DefaultCatalog()
	if err != nil {
		return nil, err
	}
	if cfg.FormsDir != "" {
		if err := catalog.LoadDir(cfg.FormsDir); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

// resolveForm looks the form up by ID first and falls back to reading it as
// a definition file.
func resolveForm(cfg config.Config) (model.FormModel, error) {
	catalog, err := loadCatalog(cfg)
	if err != nil {
		return model.FormModel{}, err
	}
	if def, ok := catalog.Get(cfg.Form); ok {
		return def, nil
	}
	if _, err := os.Stat(cfg.Form); err != nil {
		return model.FormModel{}, fmt.Errorf("unknown form %q (available: %s)", cfg.Form, strings.Join(catalog.Names(), ", "))
	}
	return model.LoadFile(cfg.Form)
}

// readValues decodes a flat mapping of field names to scalars. Scalars are
// kept as written, so `pin: 0012` stays "0012" and `agreeToTerms: true`
// becomes "true". Nulls read as the empty string.
func readValues(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("values %s: %w", path, err)
	}
	values := make(map[string]string, len(raw))
	for name, node := range raw {
		if node.Kind == yaml.AliasNode && node.Alias != nil {
			node = *node.Alias
		}
		if node.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("values %s: field %q must be a scalar", path, name)
		}
		if node.Tag == "!!null" {
			values[name] = ""
			continue
		}
		values[name] = node.Value
	}
	return values, nil
}

// applyValues updates fields in definition order so matches rules see the
// sibling value, then touches them.
func applyValues(def model.FormModel, f *form.Form, values map[string]string, touchAll bool) error {
	for name := range values {
		if !f.Has(name) {
			return fmt.Errorf("%w %q", form.ErrUnknownField, name)
		}
	}
	for _, field := range def.Fields {
		if value, ok := values[field.Name]; ok {
			if err := f.UpdateField(field.Name, value); err != nil {
				return err
			}
		}
	}
	for _, field := range def.Fields {
		if _, ok := values[field.Name]; ok || touchAll {
			if err := f.TouchField(field.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

func renderTo(out io.Writer, rep report.Report, templatePath string) error {
	var opts []report.Option
	if templatePath != "" {
		src, err := os.ReadFile(templatePath)
		if err != nil {
			return err
		}
		opts = append(opts, report.WithTemplateString(string(src)))
	}
	renderer, err := report.New(opts...)
	if err != nil {
		return err
	}
	return renderer.RenderTo(out, rep)
}

func printReport(out io.Writer, rep report.Report, p palette) {
	if rep.Title != "" {
		fmt.Fprintln(out, p.title.Render(rep.Title))
	}
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"Field", "Value", "Required", "Touched", "Status"})
	for _, field := range rep.Fields {
		status := p.ok.Render("ok")
		switch {
		case field.Valid:
		case field.Error != "":
			status = p.bad.Render(field.Error)
		default:
			status = p.muted.Render("pending")
		}
		required := ""
		if field.Required {
			required = "yes"
		}
		touched := ""
		if field.Touched {
			touched = "yes"
		}
		t.AppendRow(table.Row{field.Label, field.Display, required, touched, status})
	}
	t.Render()

	fmt.Fprintf(out, "Completion: %d/%d required fields (%d%%)\n",
		rep.Summary.CompletedFieldsCount, rep.Summary.TotalRequiredFieldsCount, rep.Summary.CompletionPercentage)
	if rep.Strength != nil {
		fmt.Fprintf(out, "Password strength: %s (%d%%), %s\n", p.strength(rep.Strength.Label), rep.Strength.Percent, rep.Strength.Summary)
	}
	fmt.Fprintln(out, p.button(rep.Submit))
}

func reasonText(state submit.State) string {
	if state.DisabledReason != "" {
		return state.DisabledReason
	}
	return string(state.Reason)
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// palette holds the lipgloss styles used for terminal output. All styles are
// no-ops when colour is disabled.
type palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	bad   lipgloss.Style
	warn  lipgloss.Style
	muted lipgloss.Style
}

func newPalette(cfg config.Config, out io.Writer) palette {
	plain := lipgloss.NewStyle()
	p := palette{title: plain, ok: plain, bad: plain, warn: plain, muted: plain}
	file, ok := out.(*os.File)
	if cfg.NoColor || !ok || !isatty.IsTerminal(file.Fd()) {
		return p
	}
	p.title = lipgloss.NewStyle().Bold(true)
	p.ok = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	p.bad = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	p.warn = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	p.muted = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	return p
}

func (p palette) strength(label password.Strength) string {
	switch label {
	case password.StrengthStrong, password.StrengthGood:
		return p.ok.Render(string(label))
	case password.StrengthFair:
		return p.warn.Render(string(label))
	default:
		return p.bad.Render(string(label))
	}
}

func (p palette) button(state submit.State) string {
	line := fmt.Sprintf("Submit: [%s] %s", state.ButtonStyle, state.ButtonText)
	switch state.ButtonStyle {
	case submit.StyleReady:
		return p.ok.Render(line)
	case submit.StyleLoading:
		return p.muted.Render(line)
	default:
		return p.bad.Render(line + " (" + reasonText(state) + ")")
	}
}
