// Package options holds the scaffolding feature choices: the fully resolved
// OptionSet, the partial Bag it is resolved from, and the validator that
// enforces the compatibility table between them.
package options

import (
	"slices"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"
)

// Transpiler is the client code-compilation mode.
type Transpiler string

const (
	Babel      Transpiler = "babel"
	TypeScript Transpiler = "ts"
)

// Markup is the template markup language.
type Markup string

const (
	HTML Markup = "html"
	Pug  Markup = "pug"
)

// Stylesheet is the stylesheet preprocessor.
type Stylesheet string

const (
	CSS    Stylesheet = "css"
	Sass   Stylesheet = "sass"
	Less   Stylesheet = "less"
	Stylus Stylesheet = "stylus"
)

// Router is the client routing style.
type Router string

const (
	NgRoute  Router = "ngroute"
	UIRouter Router = "uirouter"
)

// Testing is the test framework.
type Testing string

const (
	Mocha   Testing = "mocha"
	Jasmine Testing = "jasmine"
)

// Chai is the assertion style.
type Chai string

const (
	Expect Chai = "expect"
	Should Chai = "should"
	Assert Chai = "assert"
)

// ODM is a data-access backend.
type ODM string

const (
	Mongoose  ODM = "mongoose"
	Sequelize ODM = "sequelize"
)

// OAuthProvider is an OAuth strategy.
type OAuthProvider string

const (
	GoogleAuth   OAuthProvider = "googleAuth"
	FacebookAuth OAuthProvider = "facebookAuth"
	TwitterAuth  OAuthProvider = "twitterAuth"
)

// Short is the provider name without the Auth suffix ("google"). It names
// the provider's server/auth directory.
func (p OAuthProvider) Short() string {
	return strings.TrimSuffix(string(p), "Auth")
}

// Field names, as used in persisted records, flags and conflict reports.
const (
	FieldTranspiler  = "transpiler"
	FieldFlow        = "flow"
	FieldMarkup      = "markup"
	FieldStylesheet  = "stylesheet"
	FieldRouter      = "router"
	FieldTesting     = "testing"
	FieldChai        = "chai"
	FieldBootstrap   = "bootstrap"
	FieldUIBootstrap = "uibootstrap"
	FieldODMs        = "odms"
	FieldAuth        = "auth"
	FieldOAuth       = "oauth"
	FieldWS          = "ws"
	FieldDevPort     = "devPort"
)

// Known values per enum field, in presentation order.
var (
	Transpilers    = []Transpiler{Babel, TypeScript}
	Markups        = []Markup{HTML, Pug}
	Stylesheets    = []Stylesheet{CSS, Sass, Less, Stylus}
	Routers        = []Router{NgRoute, UIRouter}
	TestFrameworks = []Testing{Mocha, Jasmine}
	ChaiStyles     = []Chai{Expect, Should, Assert}
	ODMs           = []ODM{Mongoose, Sequelize}
	OAuthProviders = []OAuthProvider{GoogleAuth, FacebookAuth, TwitterAuth}
)

// OptionSet is a fully resolved, immutable record of every feature choice.
// Set-valued fields are deduplicated and sorted canonically. Values are
// passed by copy; nothing in this module mutates an OptionSet after Resolve
// returns it.
type OptionSet struct {
	Transpiler  Transpiler      `json:"transpiler"`
	Flow        bool            `json:"flow"`
	Markup      Markup          `json:"markup"`
	Stylesheet  Stylesheet      `json:"stylesheet"`
	Router      Router          `json:"router"`
	Testing     Testing         `json:"testing"`
	Chai        Chai            `json:"chai"`
	Bootstrap   bool            `json:"bootstrap"`
	UIBootstrap bool            `json:"uibootstrap"`
	ODMs        []ODM           `json:"odms"`
	Auth        bool            `json:"auth"`
	OAuth       []OAuthProvider `json:"oauth"`
	WS          bool            `json:"ws"`
	DevPort     string          `json:"devPort,omitempty"`
}

// Defaults returns the built-in baseline option set.
func Defaults() OptionSet {
	return OptionSet{
		Transpiler:  Babel,
		Flow:        true,
		Markup:      HTML,
		Stylesheet:  Sass,
		Router:      NgRoute,
		Testing:     Mocha,
		Chai:        Expect,
		Bootstrap:   true,
		UIBootstrap: true,
		ODMs:        []ODM{Mongoose},
		Auth:        true,
		OAuth:       []OAuthProvider{},
		WS:          true,
	}
}

// Clone returns a deep copy.
func (o OptionSet) Clone() OptionSet {
	c := o
	c.ODMs = slices.Clone(o.ODMs)
	if c.ODMs == nil {
		c.ODMs = []ODM{}
	}
	c.OAuth = slices.Clone(o.OAuth)
	if c.OAuth == nil {
		c.OAuth = []OAuthProvider{}
	}
	return c
}

// Sorted returns a deep copy with the set-valued fields in canonical order.
func (o OptionSet) Sorted() OptionSet {
	c := o.Clone()
	slices.Sort(c.ODMs)
	slices.Sort(c.OAuth)
	return c
}

// Equal reports whether two option sets hold the same choices. Set-valued
// fields compare as sets; nil and empty are the same.
func (o OptionSet) Equal(other OptionSet) bool {
	return o.Transpiler == other.Transpiler &&
		o.Flow == other.Flow &&
		o.Markup == other.Markup &&
		o.Stylesheet == other.Stylesheet &&
		o.Router == other.Router &&
		o.Testing == other.Testing &&
		o.Chai == other.Chai &&
		o.Bootstrap == other.Bootstrap &&
		o.UIBootstrap == other.UIBootstrap &&
		sameSet(o.ODMs, other.ODMs) &&
		o.Auth == other.Auth &&
		sameSet(o.OAuth, other.OAuth) &&
		o.WS == other.WS &&
		o.DevPort == other.DevPort
}

func sameSet[T ~string](a, b []T) bool {
	return sets.New(a...).Equal(sets.New(b...))
}

// HasModels reports whether any data-access backend is configured.
func (o OptionSet) HasModels() bool { return len(o.ODMs) > 0 }

// HasODM reports whether the given backend is configured.
func (o OptionSet) HasODM(odm ODM) bool { return slices.Contains(o.ODMs, odm) }

// ScriptExt is the client script file extension.
func (o OptionSet) ScriptExt() string {
	if o.Transpiler == TypeScript {
		return "ts"
	}
	return "js"
}

// MarkupExt is the template file extension.
func (o OptionSet) MarkupExt() string { return string(o.Markup) }

// StyleExt is the stylesheet file extension.
func (o OptionSet) StyleExt() string {
	switch o.Stylesheet {
	case Sass:
		return "scss"
	case Stylus:
		return "styl"
	default:
		return string(o.Stylesheet)
	}
}

// Bag returns the option set as a bag with every field explicit.
func (o OptionSet) Bag() Bag {
	odms := make([]string, len(o.ODMs))
	for i, v := range o.ODMs {
		odms[i] = string(v)
	}
	oauth := make([]string, len(o.OAuth))
	for i, v := range o.OAuth {
		oauth[i] = string(v)
	}
	b := Bag{
		Transpiler:  String(string(o.Transpiler)),
		Flow:        Bool(o.Flow),
		Markup:      String(string(o.Markup)),
		Stylesheet:  String(string(o.Stylesheet)),
		Router:      String(string(o.Router)),
		Testing:     String(string(o.Testing)),
		Chai:        String(string(o.Chai)),
		Bootstrap:   Bool(o.Bootstrap),
		UIBootstrap: Bool(o.UIBootstrap),
		ODMs:        &odms,
		Auth:        Bool(o.Auth),
		OAuth:       &oauth,
		WS:          Bool(o.WS),
	}
	if o.DevPort != "" {
		b.DevPort = String(o.DevPort)
	}
	return b
}
