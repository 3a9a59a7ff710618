package options

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/apimachinery/pkg/util/validation"

	oerrors "github.com/fullstack-gen/fsgen/internal/errors"
)

// Conflict is one violated rule of the compatibility table.
type Conflict struct {
	Fields  []string
	Message string
}

// CombinationError lists every conflict found while resolving a bag.
type CombinationError struct {
	Conflicts []Conflict
}

// Error implements the error interface.
func (e *CombinationError) Error() string {
	parts := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		parts = append(parts, fmt.Sprintf("%s: %s", strings.Join(c.Fields, ", "), c.Message))
	}
	return "invalid option combination: " + strings.Join(parts, "; ")
}

// Unwrap ties the error to its kind.
func (e *CombinationError) Unwrap() error {
	return oerrors.ErrInvalidOptionCombination
}

// Fields returns the sorted, distinct names of all conflicting fields.
func (e *CombinationError) Fields() []string {
	s := sets.New[string]()
	for _, c := range e.Conflicts {
		s.Insert(c.Fields...)
	}
	return sets.List(s)
}

type resolver struct {
	conflicts []Conflict
}

func (r *resolver) conflict(msg string, fields ...string) {
	r.conflicts = append(r.conflicts, Conflict{Fields: fields, Message: msg})
}

// Resolve fills every field absent from bag with the baseline value and
// enforces the compatibility table. An incompatibility caused by an explicit
// field is an error; one caused by an inherited baseline value is coerced to
// the compatible value. All conflicts are reported together.
func Resolve(bag Bag, baseline OptionSet) (OptionSet, error) {
	r := &resolver{}
	set := baseline.Clone()

	if bag.Transpiler != nil {
		set.Transpiler = Transpiler(*bag.Transpiler)
	}
	if bag.Flow != nil {
		set.Flow = *bag.Flow
	}
	if bag.Markup != nil {
		set.Markup = Markup(*bag.Markup)
	}
	if bag.Stylesheet != nil {
		set.Stylesheet = Stylesheet(*bag.Stylesheet)
	}
	if bag.Router != nil {
		set.Router = Router(*bag.Router)
	}
	if bag.Testing != nil {
		set.Testing = Testing(*bag.Testing)
	}
	if bag.Chai != nil {
		set.Chai = Chai(*bag.Chai)
	}
	if bag.Bootstrap != nil {
		set.Bootstrap = *bag.Bootstrap
	}
	if bag.UIBootstrap != nil {
		set.UIBootstrap = *bag.UIBootstrap
	}
	if bag.Auth != nil {
		set.Auth = *bag.Auth
	}
	if bag.WS != nil {
		set.WS = *bag.WS
	}
	if bag.DevPort != nil {
		set.DevPort = strings.TrimSpace(*bag.DevPort)
	}

	odms := toStrings(set.ODMs)
	if bag.ODMs != nil {
		odms = *bag.ODMs
	}
	oauth := toStrings(set.OAuth)
	if bag.OAuth != nil {
		oauth = *bag.OAuth
	}

	checkEnum(r, FieldTranspiler, set.Transpiler, Transpilers)
	checkEnum(r, FieldMarkup, set.Markup, Markups)
	checkEnum(r, FieldStylesheet, set.Stylesheet, Stylesheets)
	checkEnum(r, FieldRouter, set.Router, Routers)
	checkEnum(r, FieldTesting, set.Testing, TestFrameworks)
	checkEnum(r, FieldChai, set.Chai, ChaiStyles)
	set.ODMs = canonical(r, FieldODMs, odms, ODMs)
	set.OAuth = canonical(r, FieldOAuth, oauth, OAuthProviders)

	if set.Flow && set.Transpiler != Babel {
		if bag.Flow != nil {
			r.conflict("flow type checking requires the babel transpiler", FieldFlow, FieldTranspiler)
		} else {
			set.Flow = false
		}
	}

	if set.Testing == Jasmine && set.Chai != Expect {
		if bag.Chai != nil {
			r.conflict(fmt.Sprintf("chai %q is only available with mocha; jasmine supports %q", set.Chai, Expect), FieldChai, FieldTesting)
		} else {
			set.Chai = Expect
		}
	}

	if set.UIBootstrap && !set.Bootstrap {
		if bag.UIBootstrap != nil {
			r.conflict("the UI extension requires bootstrap", FieldUIBootstrap, FieldBootstrap)
		} else {
			set.UIBootstrap = false
		}
	}

	if set.Auth && len(set.ODMs) == 0 {
		if bag.Auth != nil {
			r.conflict("authentication requires at least one data backend", FieldAuth, FieldODMs)
		} else {
			set.Auth = false
		}
	}

	if len(set.OAuth) > 0 && !set.Auth {
		if bag.OAuth != nil {
			r.conflict("oauth providers require authentication", FieldOAuth, FieldAuth)
		} else {
			set.OAuth = []OAuthProvider{}
		}
	}

	if set.DevPort != "" {
		port, err := strconv.Atoi(set.DevPort)
		if err != nil {
			r.conflict(fmt.Sprintf("%q is not a port number", set.DevPort), FieldDevPort)
		} else if msgs := validation.IsValidPortNum(port); len(msgs) > 0 {
			r.conflict(strings.Join(msgs, "; "), FieldDevPort)
		}
	}

	if len(r.conflicts) > 0 {
		return OptionSet{}, &CombinationError{Conflicts: r.conflicts}
	}
	return set, nil
}

// Canonical validates set with every field treated as explicit and returns
// it with deduplicated, sorted set-valued fields. A nil list is an empty one.
func Canonical(set OptionSet) (OptionSet, error) {
	return Resolve(set.Bag(), Defaults())
}

// Validate checks that an option set is already coherent, with every field
// treated as explicit.
func Validate(set OptionSet) error {
	_, err := Canonical(set)
	return err
}

func checkEnum[T ~string](r *resolver, field string, value T, known []T) {
	if !slices.Contains(known, value) {
		r.conflict(fmt.Sprintf("unknown value %q (valid: %s)", value, strings.Join(toStrings(known), ", ")), field)
	}
}

// canonical deduplicates, validates and sorts a set-valued field.
func canonical[T ~string](r *resolver, field string, values []string, known []T) []T {
	valid := sets.New(toStrings(known)...)
	seen := sets.New[string]()
	for _, v := range values {
		v = strings.TrimSpace(v)
		if !valid.Has(v) {
			r.conflict(fmt.Sprintf("unknown value %q (valid: %s)", v, strings.Join(toStrings(known), ", ")), field)
			continue
		}
		seen.Insert(v)
	}
	out := make([]T, 0, seen.Len())
	for _, v := range sets.List(seen) {
		out = append(out, T(v))
	}
	return out
}

func toStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
