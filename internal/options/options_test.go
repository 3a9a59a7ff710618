package options

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/fullstack-gen/fsgen/internal/errors"
)

func TestResolve_EmptyBagYieldsBaseline(t *testing.T) {
	set, err := Resolve(Bag{}, Defaults())
	require.NoError(t, err)
	assert.True(t, set.Equal(Defaults()))
}

func TestResolve_ExplicitFieldsOverrideBaseline(t *testing.T) {
	bag := Bag{
		Transpiler:  String("ts"),
		Markup:      String("pug"),
		Stylesheet:  String("stylus"),
		Testing:     String("mocha"),
		Chai:        String("should"),
		ODMs:        List(),
		Auth:        Bool(false),
		OAuth:       List(),
		WS:          Bool(false),
		Bootstrap:   Bool(false),
		UIBootstrap: Bool(false),
		DevPort:     String("9005"),
	}

	set, err := Resolve(bag, Defaults())
	require.NoError(t, err)

	assert.Equal(t, TypeScript, set.Transpiler)
	assert.False(t, set.Flow, "inherited flow is coerced off for ts")
	assert.Equal(t, Pug, set.Markup)
	assert.Equal(t, Stylus, set.Stylesheet)
	assert.Equal(t, Should, set.Chai)
	assert.Empty(t, set.ODMs)
	assert.NotNil(t, set.ODMs)
	assert.False(t, set.Auth)
	assert.False(t, set.WS)
	assert.Equal(t, "9005", set.DevPort)
	assert.Equal(t, "ts", set.ScriptExt())
	assert.Equal(t, "styl", set.StyleExt())
	assert.Equal(t, "pug", set.MarkupExt())
}

func TestResolve_CompatibilityTable(t *testing.T) {
	tests := []struct {
		name       string
		bag        Bag
		wantFields []string
		check      func(t *testing.T, set OptionSet)
	}{
		{
			name:       "explicit flow with ts",
			bag:        Bag{Transpiler: String("ts"), Flow: Bool(true)},
			wantFields: []string{FieldFlow, FieldTranspiler},
		},
		{
			name: "jasmine inherits chai expect",
			bag:  Bag{Testing: String("jasmine")},
			check: func(t *testing.T, set OptionSet) {
				assert.Equal(t, Expect, set.Chai)
			},
		},
		{
			name:       "explicit should with jasmine",
			bag:        Bag{Testing: String("jasmine"), Chai: String("should")},
			wantFields: []string{FieldChai, FieldTesting},
		},
		{
			name:       "explicit uibootstrap without bootstrap",
			bag:        Bag{Bootstrap: Bool(false), UIBootstrap: Bool(true)},
			wantFields: []string{FieldBootstrap, FieldUIBootstrap},
		},
		{
			name: "inherited uibootstrap is dropped without bootstrap",
			bag:  Bag{Bootstrap: Bool(false)},
			check: func(t *testing.T, set OptionSet) {
				assert.False(t, set.UIBootstrap)
			},
		},
		{
			name:       "oauth without auth",
			bag:        Bag{Auth: Bool(false), OAuth: List("googleAuth")},
			wantFields: []string{FieldAuth, FieldOAuth},
		},
		{
			name:       "unknown oauth provider",
			bag:        Bag{OAuth: List("githubAuth")},
			wantFields: []string{FieldOAuth},
		},
		{
			name:       "explicit auth without backends",
			bag:        Bag{Auth: Bool(true), ODMs: List()},
			wantFields: []string{FieldAuth, FieldODMs},
		},
		{
			name: "inherited auth is dropped without backends",
			bag:  Bag{ODMs: List()},
			check: func(t *testing.T, set OptionSet) {
				assert.False(t, set.Auth)
				assert.Empty(t, set.OAuth)
			},
		},
		{
			name:       "unknown enum value",
			bag:        Bag{Stylesheet: String("scss")},
			wantFields: []string{FieldStylesheet},
		},
		{
			name:       "non numeric port",
			bag:        Bag{DevPort: String("http")},
			wantFields: []string{FieldDevPort},
		},
		{
			name:       "port out of range",
			bag:        Bag{DevPort: String("70000")},
			wantFields: []string{FieldDevPort},
		},
		{
			name:       "several conflicts reported together",
			bag:        Bag{Markup: String("jade"), Router: String("uirouter2"), OAuth: List("x")},
			wantFields: []string{FieldMarkup, FieldOAuth, FieldRouter},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Resolve(tt.bag, Defaults())
			if tt.wantFields != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, oerrors.ErrInvalidOptionCombination))
				assert.True(t, errors.Is(err, oerrors.ErrValidation))

				var combo *CombinationError
				require.True(t, errors.As(err, &combo))
				assert.Equal(t, tt.wantFields, combo.Fields())
				return
			}
			require.NoError(t, err)
			tt.check(t, set)
		})
	}
}

func TestResolve_SetsAreCanonical(t *testing.T) {
	bag := Bag{
		ODMs:  List("sequelize", "mongoose", "sequelize"),
		OAuth: List("twitterAuth", "facebookAuth", "googleAuth", "twitterAuth"),
	}

	set, err := Resolve(bag, Defaults())
	require.NoError(t, err)
	assert.Equal(t, []ODM{Mongoose, Sequelize}, set.ODMs)
	assert.Equal(t, []OAuthProvider{FacebookAuth, GoogleAuth, TwitterAuth}, set.OAuth)
}

func TestResolve_DoesNotShareBaselineSlices(t *testing.T) {
	baseline := Defaults()
	set, err := Resolve(Bag{}, baseline)
	require.NoError(t, err)

	set.ODMs[0] = Sequelize
	assert.Equal(t, Mongoose, baseline.ODMs[0])
}

func TestMerge(t *testing.T) {
	prompts := Bag{Markup: String("pug"), Stylesheet: String("less")}
	flags := Bag{Stylesheet: String("css"), WS: Bool(false)}

	merged := Merge(flags, prompts)
	assert.Equal(t, "pug", *merged.Markup)
	assert.Equal(t, "css", *merged.Stylesheet)
	assert.False(t, *merged.WS)
	assert.Nil(t, merged.Transpiler)
	assert.Equal(t, []string{FieldMarkup, FieldStylesheet, FieldWS}, merged.Explicit())
	assert.True(t, merged.Has(FieldWS))
	assert.False(t, Bag{}.Has(FieldWS))
	assert.True(t, Bag{}.IsEmpty())
}

func TestBagJSONDistinguishesEmptyFromAbsent(t *testing.T) {
	var bag Bag
	require.NoError(t, json.Unmarshal([]byte(`{"odms": [], "auth": false, "future": 1}`), &bag))

	require.NotNil(t, bag.ODMs)
	assert.Empty(t, *bag.ODMs)
	assert.Nil(t, bag.OAuth)
	assert.False(t, *bag.Auth)
}

func TestOptionSetBagRoundTrip(t *testing.T) {
	set := Defaults()
	set.OAuth = []OAuthProvider{GoogleAuth}
	set.DevPort = "9000"

	got, err := Resolve(set.Bag(), OptionSet{})
	require.NoError(t, err)
	assert.True(t, got.Equal(set))
	assert.NoError(t, Validate(set))
}

func TestEnumerate(t *testing.T) {
	count := 0
	Enumerate(func(set OptionSet) bool {
		count++
		if count%997 == 0 {
			require.NoError(t, Validate(set))
		}
		return true
	})
	// 3 transpiler/flow x 2 markup x 4 style x 2 router x 4 test/chai x 3 bootstrap
	// x 28 backend/auth/oauth combinations x 2 ws
	assert.Equal(t, 3*2*4*2*4*3*28*2, count)

	stopped := 0
	Enumerate(func(OptionSet) bool {
		stopped++
		return stopped < 5
	})
	assert.Equal(t, 5, stopped)
}

func TestCanonical(t *testing.T) {
	set := Defaults()
	set.ODMs = []ODM{Sequelize, Mongoose, Sequelize}
	set.OAuth = []OAuthProvider{TwitterAuth, GoogleAuth}

	got, err := Canonical(set)
	require.NoError(t, err)
	assert.Equal(t, []ODM{Mongoose, Sequelize}, got.ODMs)
	assert.Equal(t, []OAuthProvider{GoogleAuth, TwitterAuth}, got.OAuth)
	assert.Equal(t, []ODM{Sequelize, Mongoose, Sequelize}, set.ODMs, "input is not modified")

	bare := Defaults()
	bare.ODMs = nil
	bare.Auth = false
	bare.OAuth = nil
	got, err = Canonical(bare)
	require.NoError(t, err)
	assert.NotNil(t, got.ODMs)
	assert.Empty(t, got.ODMs)
	assert.NotNil(t, got.OAuth)

	bad := Defaults()
	bad.Transpiler = TypeScript
	_, err = Canonical(bad)
	assert.True(t, errors.Is(err, oerrors.ErrInvalidOptionCombination))
}

func TestEqual_SetFieldsIgnoreOrder(t *testing.T) {
	a := Defaults()
	a.ODMs = []ODM{Sequelize, Mongoose}
	b := Defaults()
	b.ODMs = []ODM{Mongoose, Sequelize}
	assert.True(t, a.Equal(b))
	assert.True(t, a.Sorted().Equal(b))
	assert.Equal(t, b.ODMs, a.Sorted().ODMs)

	a.ODMs = nil
	b.ODMs = []ODM{}
	assert.True(t, a.Equal(b))

	b.ODMs = []ODM{Mongoose}
	assert.False(t, a.Equal(b))
}
