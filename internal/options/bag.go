package options

// Bag is a partial set of options. A nil field is absent and inherits from
// the baseline during Resolve; a non-nil field is explicit. Set-valued fields
// are pointers so that an explicit empty list is distinguishable from an
// absent one.
type Bag struct {
	Transpiler  *string   `json:"transpiler,omitempty" yaml:"transpiler,omitempty" mapstructure:"transpiler"`
	Flow        *bool     `json:"flow,omitempty" yaml:"flow,omitempty" mapstructure:"flow"`
	Markup      *string   `json:"markup,omitempty" yaml:"markup,omitempty" mapstructure:"markup"`
	Stylesheet  *string   `json:"stylesheet,omitempty" yaml:"stylesheet,omitempty" mapstructure:"stylesheet"`
	Router      *string   `json:"router,omitempty" yaml:"router,omitempty" mapstructure:"router"`
	Testing     *string   `json:"testing,omitempty" yaml:"testing,omitempty" mapstructure:"testing"`
	Chai        *string   `json:"chai,omitempty" yaml:"chai,omitempty" mapstructure:"chai"`
	Bootstrap   *bool     `json:"bootstrap,omitempty" yaml:"bootstrap,omitempty" mapstructure:"bootstrap"`
	UIBootstrap *bool     `json:"uibootstrap,omitempty" yaml:"uibootstrap,omitempty" mapstructure:"uibootstrap"`
	ODMs        *[]string `json:"odms,omitempty" yaml:"odms,omitempty" mapstructure:"odms"`
	Auth        *bool     `json:"auth,omitempty" yaml:"auth,omitempty" mapstructure:"auth"`
	OAuth       *[]string `json:"oauth,omitempty" yaml:"oauth,omitempty" mapstructure:"oauth"`
	WS          *bool     `json:"ws,omitempty" yaml:"ws,omitempty" mapstructure:"ws"`
	DevPort     *string   `json:"devPort,omitempty" yaml:"devPort,omitempty" mapstructure:"devPort"`
}

// String returns a pointer to s.
func String(s string) *string { return &s }

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// List returns a pointer to a list holding items. List() is an explicit
// empty list.
func List(items ...string) *[]string {
	l := append([]string{}, items...)
	return &l
}

// Merge layers over on top of under: every explicit field of over wins.
func Merge(over, under Bag) Bag {
	m := under
	if over.Transpiler != nil {
		m.Transpiler = over.Transpiler
	}
	if over.Flow != nil {
		m.Flow = over.Flow
	}
	if over.Markup != nil {
		m.Markup = over.Markup
	}
	if over.Stylesheet != nil {
		m.Stylesheet = over.Stylesheet
	}
	if over.Router != nil {
		m.Router = over.Router
	}
	if over.Testing != nil {
		m.Testing = over.Testing
	}
	if over.Chai != nil {
		m.Chai = over.Chai
	}
	if over.Bootstrap != nil {
		m.Bootstrap = over.Bootstrap
	}
	if over.UIBootstrap != nil {
		m.UIBootstrap = over.UIBootstrap
	}
	if over.ODMs != nil {
		m.ODMs = over.ODMs
	}
	if over.Auth != nil {
		m.Auth = over.Auth
	}
	if over.OAuth != nil {
		m.OAuth = over.OAuth
	}
	if over.WS != nil {
		m.WS = over.WS
	}
	if over.DevPort != nil {
		m.DevPort = over.DevPort
	}
	return m
}

// Explicit returns the names of the fields present in the bag.
func (b Bag) Explicit() []string {
	var fields []string
	add := func(present bool, name string) {
		if present {
			fields = append(fields, name)
		}
	}
	add(b.Transpiler != nil, FieldTranspiler)
	add(b.Flow != nil, FieldFlow)
	add(b.Markup != nil, FieldMarkup)
	add(b.Stylesheet != nil, FieldStylesheet)
	add(b.Router != nil, FieldRouter)
	add(b.Testing != nil, FieldTesting)
	add(b.Chai != nil, FieldChai)
	add(b.Bootstrap != nil, FieldBootstrap)
	add(b.UIBootstrap != nil, FieldUIBootstrap)
	add(b.ODMs != nil, FieldODMs)
	add(b.Auth != nil, FieldAuth)
	add(b.OAuth != nil, FieldOAuth)
	add(b.WS != nil, FieldWS)
	add(b.DevPort != nil, FieldDevPort)
	return fields
}

// Has reports whether the named field is present.
func (b Bag) Has(field string) bool {
	for _, f := range b.Explicit() {
		if f == field {
			return true
		}
	}
	return false
}

// IsEmpty reports whether no field is present.
func (b Bag) IsEmpty() bool { return len(b.Explicit()) == 0 }
