package internal

// Option configures an application before one of the Run entry points
// starts it.
type Option func(*application)

type application struct {
	config *Config
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// newApplication applies the options and falls back to the default
// configuration when none was supplied.
func newApplication(opts ...Option) *application {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		app.config = NewDefaultConfig()
	}
	return app
}
