package fileset

import "github.com/fullstack-gen/fsgen/internal/options"

// Path placeholders expanded per option set.
const (
	phScript   = "{s}"
	phMarkup   = "{m}"
	phStyle    = "{c}"
	phProvider = "{p}"
)

// variant selects an alternative template for the same output path.
type variant int

const (
	variantNone variant = iota
	// variantTesting picks the mocha or jasmine flavor of a spec file.
	variantTesting
	// variantModel picks the model definition of the primary backend.
	variantModel
)

type file struct {
	pattern string
	variant variant
}

// contribution is one feature's share of the output tree.
type contribution struct {
	tag         string
	enabled     func(options.OptionSet) bool
	perProvider bool
	files       []file
}

func always(options.OptionSet) bool { return true }

func f(pattern string) file { return file{pattern: pattern} }

func spec(pattern string) file { return file{pattern: pattern, variant: variantTesting} }

func model(pattern string) file { return file{pattern: pattern, variant: variantModel} }

// Contributions in priority order. Resolve walks them top to bottom.
var contributions = []contribution{
	{
		tag:     "base",
		enabled: always,
		files: []file{
			f("client/.htaccess"),
			f("client/favicon.ico"),
			f("client/robots.txt"),
			f("client/_index.html"),
			f("client/polyfills.{s}"),
			f("client/app/app.{s}"),
			f("client/app/app.config.{s}"),
			f("client/app/app.constants.{s}"),
			f("client/app/app.{c}"),
			f("client/app/main/main.component.{s}"),
			spec("client/app/main/main.component.spec.{s}"),
			f("client/app/main/main.routes.{s}"),
			f("client/app/main/main.{m}"),
			f("client/app/main/main.{c}"),
			f("client/assets/images/yeoman.png"),
			f("client/components/footer/footer.component.{s}"),
			f("client/components/footer/footer.{m}"),
			f("client/components/footer/footer.{c}"),
			f("client/components/navbar/navbar.component.{s}"),
			f("client/components/navbar/navbar.{m}"),
			f("client/components/util/util.module.{s}"),
			f("client/components/util/util.service.{s}"),
			f("server/.eslintrc"),
			f("server/app.js"),
			f("server/index.js"),
			f("server/routes.js"),
			f("server/api/thing/index.js"),
			spec("server/api/thing/index.spec.js"),
			f("server/api/thing/thing.controller.js"),
			spec("server/api/thing/thing.integration.js"),
			f("server/components/errors/index.js"),
			f("server/config/express.js"),
			f("server/config/local.env.js"),
			f("server/config/local.env.sample.js"),
			f("server/config/environment/index.js"),
			f("server/config/environment/development.js"),
			f("server/config/environment/production.js"),
			f("server/config/environment/test.js"),
			f("server/config/environment/shared.js"),
			f("server/views/404.{m}"),
			f("e2e/main/main.po.js"),
			spec("e2e/main/main.spec.js"),
			f("e2e/components/navbar/navbar.po.js"),
			f(".babelrc"),
			f(".buildignore"),
			f(".editorconfig"),
			f(".gitattributes"),
			f(".gitignore"),
			f(".travis.yml"),
			f("gulpfile.babel.js"),
			f("package.json"),
			f("karma.conf.js"),
			f("mocha.conf.js"),
			f("mocha.global.js"),
			f("protractor.conf.js"),
			f("README.md"),
			f("spec.js"),
			f("webpack.build.js"),
			f("webpack.dev.js"),
			f("webpack.test.js"),
			f("webpack.make.js"),
		},
	},
	{
		tag:     "ts",
		enabled: func(o options.OptionSet) bool { return o.Transpiler == options.TypeScript },
		files: []file{
			f("tsconfig.client.test.json"),
			f("tsconfig.client.json"),
			f("tsconfig.json"),
			f("tslint.json"),
			f("typings.json"),
		},
	},
	{
		tag:     "babel",
		enabled: func(o options.OptionSet) bool { return o.Transpiler == options.Babel },
		files:   []file{f("client/.eslintrc")},
	},
	{
		tag:     "flow",
		enabled: func(o options.OptionSet) bool { return o.Flow },
		files:   []file{f(".flowconfig")},
	},
	{
		tag:     "uirouter",
		enabled: func(o options.OptionSet) bool { return o.Router == options.UIRouter },
		files:   []file{f("client/components/ui-router/ui-router.mock.{s}")},
	},
	{
		tag:     "uibootstrap",
		enabled: func(o options.OptionSet) bool { return o.UIBootstrap },
		files: []file{
			f("client/components/modal/modal.{m}"),
			f("client/components/modal/modal.{c}"),
			f("client/components/modal/modal.service.{s}"),
		},
	},
	{
		tag:     "models",
		enabled: options.OptionSet.HasModels,
		files: []file{
			model("server/api/thing/thing.model.js"),
			f("server/api/thing/thing.events.js"),
			f("server/config/seed.js"),
		},
	},
	{
		tag:     "sequelize",
		enabled: func(o options.OptionSet) bool { return o.HasODM(options.Sequelize) },
		files:   []file{f("server/sqldb/index.js")},
	},
	{
		tag:     "auth",
		enabled: func(o options.OptionSet) bool { return o.Auth },
		files: []file{
			f("client/app/account/index.{s}"),
			f("client/app/account/account.routes.{s}"),
			f("client/app/account/login/login.{m}"),
			f("client/app/account/login/login.controller.{s}"),
			f("client/app/account/settings/settings.{m}"),
			f("client/app/account/settings/settings.controller.{s}"),
			f("client/app/account/signup/signup.{m}"),
			f("client/app/account/signup/signup.controller.{s}"),
			f("client/app/admin/index.{s}"),
			f("client/app/admin/admin.{m}"),
			f("client/app/admin/admin.{c}"),
			f("client/app/admin/admin.controller.{s}"),
			f("client/app/admin/admin.module.{s}"),
			f("client/app/admin/admin.routes.{s}"),
			f("client/components/auth/auth.module.{s}"),
			f("client/components/auth/auth.service.{s}"),
			f("client/components/auth/interceptor.service.{s}"),
			f("client/components/auth/router.decorator.{s}"),
			f("client/components/auth/user.service.{s}"),
			f("client/components/mongoose-error/mongoose-error.directive.{s}"),
			f("server/api/user/index.js"),
			spec("server/api/user/index.spec.js"),
			f("server/api/user/user.controller.js"),
			f("server/api/user/user.events.js"),
			spec("server/api/user/user.integration.js"),
			model("server/api/user/user.model.js"),
			spec("server/api/user/user.model.spec.js"),
			f("server/auth/index.js"),
			f("server/auth/auth.service.js"),
			f("server/auth/local/index.js"),
			f("server/auth/local/passport.js"),
			f("e2e/account/login/login.po.js"),
			spec("e2e/account/login/login.spec.js"),
			spec("e2e/account/logout/logout.spec.js"),
			f("e2e/account/signup/signup.po.js"),
			spec("e2e/account/signup/signup.spec.js"),
		},
	},
	{
		tag:         "oauth",
		enabled:     func(o options.OptionSet) bool { return len(o.OAuth) > 0 },
		perProvider: true,
		files: []file{
			f("server/auth/{p}/index.js"),
			f("server/auth/{p}/passport.js"),
		},
	},
	{
		tag:     "oauth",
		enabled: func(o options.OptionSet) bool { return len(o.OAuth) > 0 },
		files: []file{
			f("client/components/oauth-buttons/index.{s}"),
			f("client/components/oauth-buttons/oauth-buttons.controller.{s}"),
			spec("client/components/oauth-buttons/oauth-buttons.controller.spec.{s}"),
			f("client/components/oauth-buttons/oauth-buttons.directive.{s}"),
			spec("client/components/oauth-buttons/oauth-buttons.directive.spec.{s}"),
			f("client/components/oauth-buttons/oauth-buttons.{m}"),
			f("client/components/oauth-buttons/oauth-buttons.{c}"),
			f("e2e/components/oauth-buttons/oauth-buttons.po.js"),
		},
	},
	{
		tag:     "ws",
		enabled: func(o options.OptionSet) bool { return o.WS },
		files: []file{
			f("client/components/socket/socket.service.{s}"),
			f("client/components/socket/socket.mock.{s}"),
			f("server/api/thing/thing.socket.js"),
			f("server/config/socketio.js"),
		},
	},
}
