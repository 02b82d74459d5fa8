package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-formgate/internal/config"
)

// errNotSubmittable makes `check` exit non-zero when the button is disabled.
var errNotSubmittable = errors.New("form is not ready to submit")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(config.New())
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if errors.Is(err, errNotSubmittable) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	root := &cobra.Command{
		Use:   "formgate",
		Short: "Validate forms and gate their submit button",
		Long: `formgate evaluates form definitions the way a sign-up screen does:
- Fields carry rules (required, length limits, patterns, presets, custom checks).
- Password fields are scored against the strength meter requirements.
- The submit button is enabled only when the form is valid and the
  configured completion, touched and threshold requirements are met.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String(config.KeyConfig, "", "config file (yaml, json or toml)")
	flags.StringP(config.KeyForm, "f", config.DefaultForm, "form preset name or definition file")
	flags.String(config.KeyFormsDir, "", "directory of additional form definitions")
	flags.Bool(config.KeyJSON, false, "output JSON")
	flags.Bool(config.KeyNoColor, false, "disable colour output")
	flags.Int64(config.KeyMaxBytes, config.DefaultMaxBytes, "largest OpenAPI document accepted, in bytes")
	flags.Bool(config.KeyAllowHTTP, false, "allow loading OpenAPI documents over http(s)")
	for _, key := range []string{
		config.KeyConfig, config.KeyForm, config.KeyFormsDir, config.KeyJSON,
		config.KeyNoColor, config.KeyMaxBytes, config.KeyAllowHTTP,
	} {
		_ = v.BindPFlag(key, flags.Lookup(key))
	}

	root.AddCommand(
		checkCmd(v),
		strengthCmd(v),
		fillCmd(v),
		openapiCmd(v),
		serveCmd(v),
		formsCmd(v),
		lintCmd(v),
	)
	return root
}
