package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	oerrors "github.com/fullstack-gen/fsgen/internal/errors"
	"github.com/fullstack-gen/fsgen/internal/options"
	"github.com/fullstack-gen/fsgen/internal/output"
)

// OptionFlags holds one flag per generator option. Only flags the user set
// end up in the bag; everything else is inherited from the baseline.
type OptionFlags struct {
	Transpiler  string
	Flow        bool
	Markup      string
	Stylesheet  string
	Router      string
	Testing     string
	Chai        string
	Bootstrap   bool
	UIBootstrap bool
	ODMs        []string
	Auth        bool
	OAuth       []string
	WS          bool
	DevPort     string
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

// AddTo registers the option flags on cmd.
func (f *OptionFlags) AddTo(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.Transpiler, options.FieldTranspiler, "", "Client script transpiler: "+joinValues(options.Transpilers))
	fs.BoolVar(&f.Flow, options.FieldFlow, false, "Enable flow type checking (babel only)")
	fs.StringVar(&f.Markup, options.FieldMarkup, "", "Template markup: "+joinValues(options.Markups))
	fs.StringVar(&f.Stylesheet, options.FieldStylesheet, "", "Stylesheet preprocessor: "+joinValues(options.Stylesheets))
	fs.StringVar(&f.Router, options.FieldRouter, "", "Client router: "+joinValues(options.Routers))
	fs.StringVar(&f.Testing, options.FieldTesting, "", "Test framework: "+joinValues(options.TestFrameworks))
	fs.StringVar(&f.Chai, options.FieldChai, "", "Chai assertion style (mocha only): "+joinValues(options.ChaiStyles))
	fs.BoolVar(&f.Bootstrap, options.FieldBootstrap, false, "Include bootstrap")
	fs.BoolVar(&f.UIBootstrap, options.FieldUIBootstrap, false, "Include the bootstrap UI extension")
	fs.StringSliceVar(&f.ODMs, options.FieldODMs, nil, "Data backends, empty for none: "+joinValues(options.ODMs))
	fs.BoolVar(&f.Auth, options.FieldAuth, false, "Include authentication (needs a data backend)")
	fs.StringSliceVar(&f.OAuth, options.FieldOAuth, nil, "OAuth providers: "+joinValues(options.OAuthProviders))
	fs.BoolVar(&f.WS, options.FieldWS, false, "Include websocket support")
	fs.StringVar(&f.DevPort, options.FieldDevPort, "", "Development server port")
}

// Bag returns the explicitly set flags as an option bag.
func (f *OptionFlags) Bag(cmd *cobra.Command) options.Bag {
	changed := cmd.Flags().Changed
	var b options.Bag
	if changed(options.FieldTranspiler) {
		b.Transpiler = options.String(f.Transpiler)
	}
	if changed(options.FieldFlow) {
		b.Flow = options.Bool(f.Flow)
	}
	if changed(options.FieldMarkup) {
		b.Markup = options.String(f.Markup)
	}
	if changed(options.FieldStylesheet) {
		b.Stylesheet = options.String(f.Stylesheet)
	}
	if changed(options.FieldRouter) {
		b.Router = options.String(f.Router)
	}
	if changed(options.FieldTesting) {
		b.Testing = options.String(f.Testing)
	}
	if changed(options.FieldChai) {
		b.Chai = options.String(f.Chai)
	}
	if changed(options.FieldBootstrap) {
		b.Bootstrap = options.Bool(f.Bootstrap)
	}
	if changed(options.FieldUIBootstrap) {
		b.UIBootstrap = options.Bool(f.UIBootstrap)
	}
	if changed(options.FieldODMs) {
		b.ODMs = options.List(nonEmpty(f.ODMs)...)
	}
	if changed(options.FieldAuth) {
		b.Auth = options.Bool(f.Auth)
	}
	if changed(options.FieldOAuth) {
		b.OAuth = options.List(nonEmpty(f.OAuth)...)
	}
	if changed(options.FieldWS) {
		b.WS = options.Bool(f.WS)
	}
	if changed(options.FieldDevPort) {
		b.DevPort = options.String(f.DevPort)
	}
	return b
}

// nonEmpty drops blank items so that --odms= yields an empty list.
func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// OutputFlags selects how a command prints structured data.
type OutputFlags struct {
	Format string
}

// AddTo registers -o/--output on cmd with def as the default format.
func (f *OutputFlags) AddTo(cmd *cobra.Command, def string) {
	cmd.Flags().StringVarP(&f.Format, "output", "o", def,
		"Output format: "+strings.Join(output.ValidFormats(), ", "))
}

// Parse validates the selected format.
func (f *OutputFlags) Parse() (output.OutputFormat, error) {
	format := output.ParseOutputFormat(f.Format)
	if !format.IsValid() {
		return "", oerrors.NewValidationError(
			fmt.Sprintf("unknown output format %q", f.Format), "", "output",
			"Valid formats: "+strings.Join(output.ValidFormats(), ", ")+".")
	}
	return format, nil
}
