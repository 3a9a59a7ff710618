// Package prompt asks for the option fields a user did not pass as flags.
package prompt

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/fullstack-gen/fsgen/internal/options"
)

// Interactive reports whether prompts may be shown: stdin is a terminal and
// the user did not opt out.
func Interactive(yes bool) bool {
	return !yes && term.IsTerminal(int(os.Stdin.Fd()))
}

// answers holds the form's bound values, seeded from known over baseline.
type answers struct {
	transpiler  string
	flow        bool
	markup      string
	stylesheet  string
	router      string
	testing     string
	chai        string
	bootstrap   bool
	uibootstrap bool
	odms        []string
	auth        bool
	oauth       []string
	ws          bool
}

func seed(known options.Bag, baseline options.OptionSet) *answers {
	b := options.Merge(known, baseline.Bag())
	a := &answers{
		transpiler:  *b.Transpiler,
		flow:        *b.Flow,
		markup:      *b.Markup,
		stylesheet:  *b.Stylesheet,
		router:      *b.Router,
		testing:     *b.Testing,
		chai:        *b.Chai,
		bootstrap:   *b.Bootstrap,
		uibootstrap: *b.UIBootstrap,
		odms:        append([]string{}, *b.ODMs...),
		auth:        *b.Auth,
		oauth:       append([]string{}, *b.OAuth...),
		ws:          *b.WS,
	}
	return a
}

// question is one prompted field. hidden reports that the field does not
// apply given earlier answers; a hidden field stays absent from the result.
type question struct {
	field  string
	input  func(a *answers) huh.Field
	hidden func(a *answers) bool
	store  func(a *answers, b *options.Bag)
}

func never(*answers) bool { return false }

var questions = []question{
	{
		field: options.FieldTranspiler,
		input: func(a *answers) huh.Field {
			return huh.NewSelect[string]().Title("Client script transpiler").
				Options(huh.NewOption("Babel", string(options.Babel)), huh.NewOption("TypeScript", string(options.TypeScript))).
				Value(&a.transpiler)
		},
		hidden: never,
		store:  func(a *answers, b *options.Bag) { b.Transpiler = options.String(a.transpiler) },
	},
	{
		field: options.FieldFlow,
		input: func(a *answers) huh.Field {
			return huh.NewConfirm().Title("Use Flow type checking?").Value(&a.flow)
		},
		hidden: func(a *answers) bool { return a.transpiler != string(options.Babel) },
		store:  func(a *answers, b *options.Bag) { b.Flow = options.Bool(a.flow) },
	},
	{
		field: options.FieldMarkup,
		input: func(a *answers) huh.Field {
			return huh.NewSelect[string]().Title("Markup").
				Options(huh.NewOption("HTML", string(options.HTML)), huh.NewOption("Pug", string(options.Pug))).
				Value(&a.markup)
		},
		hidden: never,
		store:  func(a *answers, b *options.Bag) { b.Markup = options.String(a.markup) },
	},
	{
		field: options.FieldStylesheet,
		input: func(a *answers) huh.Field {
			return huh.NewSelect[string]().Title("Stylesheet").
				Options(huh.NewOption("CSS", string(options.CSS)), huh.NewOption("Sass", string(options.Sass)),
					huh.NewOption("Less", string(options.Less)), huh.NewOption("Stylus", string(options.Stylus))).
				Value(&a.stylesheet)
		},
		hidden: never,
		store:  func(a *answers, b *options.Bag) { b.Stylesheet = options.String(a.stylesheet) },
	},
	{
		field: options.FieldRouter,
		input: func(a *answers) huh.Field {
			return huh.NewSelect[string]().Title("Client router").
				Options(huh.NewOption("ngRoute", string(options.NgRoute)), huh.NewOption("ui-router", string(options.UIRouter))).
				Value(&a.router)
		},
		hidden: never,
		store:  func(a *answers, b *options.Bag) { b.Router = options.String(a.router) },
	},
	{
		field: options.FieldTesting,
		input: func(a *answers) huh.Field {
			return huh.NewSelect[string]().Title("Test framework").
				Options(huh.NewOption("Mocha + Chai + Sinon", string(options.Mocha)), huh.NewOption("Jasmine", string(options.Jasmine))).
				Value(&a.testing)
		},
		hidden: never,
		store:  func(a *answers, b *options.Bag) { b.Testing = options.String(a.testing) },
	},
	{
		field: options.FieldChai,
		input: func(a *answers) huh.Field {
			return huh.NewSelect[string]().Title("Chai assertion style").
				Options(huh.NewOptions(string(options.Expect), string(options.Should), string(options.Assert))...).
				Value(&a.chai)
		},
		hidden: func(a *answers) bool { return a.testing != string(options.Mocha) },
		store:  func(a *answers, b *options.Bag) { b.Chai = options.String(a.chai) },
	},
	{
		field: options.FieldBootstrap,
		input: func(a *answers) huh.Field {
			return huh.NewConfirm().Title("Include Bootstrap?").Value(&a.bootstrap)
		},
		hidden: never,
		store:  func(a *answers, b *options.Bag) { b.Bootstrap = options.Bool(a.bootstrap) },
	},
	{
		field: options.FieldUIBootstrap,
		input: func(a *answers) huh.Field {
			return huh.NewConfirm().Title("Include UI Bootstrap?").Value(&a.uibootstrap)
		},
		hidden: func(a *answers) bool { return !a.bootstrap },
		store:  func(a *answers, b *options.Bag) { b.UIBootstrap = options.Bool(a.uibootstrap) },
	},
	{
		field: options.FieldODMs,
		input: func(a *answers) huh.Field {
			return huh.NewMultiSelect[string]().Title("Data backends").
				Options(huh.NewOption("Mongoose (MongoDB)", string(options.Mongoose)), huh.NewOption("Sequelize (SQL)", string(options.Sequelize))).
				Value(&a.odms)
		},
		hidden: never,
		store:  func(a *answers, b *options.Bag) { b.ODMs = options.List(a.odms...) },
	},
	{
		field: options.FieldAuth,
		input: func(a *answers) huh.Field {
			return huh.NewConfirm().Title("Scaffold user authentication?").Value(&a.auth)
		},
		hidden: func(a *answers) bool { return len(a.odms) == 0 },
		store:  func(a *answers, b *options.Bag) { b.Auth = options.Bool(a.auth) },
	},
	{
		field: options.FieldOAuth,
		input: func(a *answers) huh.Field {
			return huh.NewMultiSelect[string]().Title("OAuth strategies").
				Options(huh.NewOption("Google", string(options.GoogleAuth)), huh.NewOption("Facebook", string(options.FacebookAuth)),
					huh.NewOption("Twitter", string(options.TwitterAuth))).
				Value(&a.oauth)
		},
		hidden: func(a *answers) bool { return len(a.odms) == 0 || !a.auth },
		store:  func(a *answers, b *options.Bag) { b.OAuth = options.List(a.oauth...) },
	},
	{
		field: options.FieldWS,
		input: func(a *answers) huh.Field {
			return huh.NewConfirm().Title("Include websockets (socket.io)?").Value(&a.ws)
		},
		hidden: never,
		store:  func(a *answers, b *options.Bag) { b.WS = options.Bool(a.ws) },
	},
}

// pending returns the questions for fields absent from known.
func pending(known options.Bag) []question {
	var out []question
	for _, q := range questions {
		if !known.Has(q.field) {
			out = append(out, q)
		}
	}
	return out
}

// Fields returns the names of the fields Ask would prompt for.
func Fields(known options.Bag) []string {
	qs := pending(known)
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.field
	}
	return out
}

type runFunc func(ctx context.Context, form *huh.Form, a *answers) error

// Ask prompts for every field absent from known, preselecting baseline
// values, and returns a bag holding only the answered fields. Fields that
// do not apply given earlier answers stay absent. The dev port is never
// prompted for.
func Ask(ctx context.Context, known options.Bag, baseline options.OptionSet) (options.Bag, error) {
	return ask(ctx, known, baseline, func(ctx context.Context, form *huh.Form, _ *answers) error {
		return form.RunWithContext(ctx)
	})
}

func ask(ctx context.Context, known options.Bag, baseline options.OptionSet, run runFunc) (options.Bag, error) {
	qs := pending(known)
	if len(qs) == 0 {
		return options.Bag{}, nil
	}

	a := seed(known, baseline)
	groups := make([]*huh.Group, 0, len(qs))
	for _, q := range qs {
		hidden := q.hidden
		groups = append(groups, huh.NewGroup(q.input(a)).WithHideFunc(func() bool { return hidden(a) }))
	}

	if err := run(ctx, huh.NewForm(groups...), a); err != nil {
		return options.Bag{}, fmt.Errorf("prompting for options: %w", err)
	}

	var out options.Bag
	for _, q := range qs {
		if q.hidden(a) {
			continue
		}
		q.store(a, &out)
	}
	return out, nil
}
