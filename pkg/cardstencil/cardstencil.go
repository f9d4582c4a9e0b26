package cardstencil

import (
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/benjaminschreck/go-cardstencil/pkg/cardstencil/cloze"
	"github.com/benjaminschreck/go-cardstencil/pkg/cardstencil/sanitize"
)

// Version is the engine version checked by configuration `requires` constraints.
const Version = "0.1.0"

// InvalidTemplateOutput replaces the entire output of a render in which a
// modifier reported a syntax error.
const InvalidTemplateOutput = "{{invalid template}}"

// Engine provides the main API for rendering card templates.
// Use New() to create a new engine instance.
type Engine struct {
	config    *Config
	sanitizer sanitize.Sanitizer
	logger    *logrus.Logger
}

// New creates a new engine with the global configuration and the HTML sanitizer.
func New() *Engine {
	return &Engine{
		config:    GetGlobalConfig(),
		sanitizer: sanitize.HTML{},
	}
}

// NewWithConfig creates a new engine with custom configuration. Unset fields
// take their defaults.
func NewWithConfig(config *Config) *Engine {
	e := New()
	e.config = NewConfigWithDefaults(config)
	return e
}

// Option represents a configuration option for the engine.
type Option func(*Engine)

// WithConfig returns an option that sets the engine configuration.
func WithConfig(config *Config) Option {
	return func(e *Engine) {
		e.config = NewConfigWithDefaults(config)
	}
}

// WithSanitizer returns an option that replaces the markup stripper used by
// {{text:Field}} tags.
func WithSanitizer(s sanitize.Sanitizer) Option {
	return func(e *Engine) {
		if s != nil {
			e.sanitizer = s
		}
	}
}

// WithLogger returns an option that sets the engine logger. Without it the
// engine uses the package logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStrictMode returns an option that toggles strict mode.
func WithStrictMode(strict bool) Option {
	return func(e *Engine) {
		config := *e.config
		config.StrictMode = strict
		e.config = &config
	}
}

// NewWithOptions creates a new engine with the specified options.
func NewWithOptions(opts ...Option) *Engine {
	engine := New()
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// Config returns the engine's configuration.
func (e *Engine) Config() *Config {
	return e.config
}

func (e *Engine) getLogger() *logrus.Logger {
	if e.logger != nil {
		return e.logger
	}
	return GetLogger()
}

// NewTemplate binds a template string to its data. data is resolved with
// ValueOf; nil means an empty FieldMap.
func (e *Engine) NewTemplate(template string, data interface{}) *Template {
	ctx := ValueOf(data)
	if data == nil {
		ctx = Mapping(FieldMap{})
	}
	return &Template{
		source:  template,
		context: ctx,
		engine:  e,
	}
}

// Render renders template against data in a fresh session.
func (e *Engine) Render(template string, data interface{}) (string, error) {
	return e.NewTemplate(template, data).Render()
}

// RenderCloze renders the cloze deletions of ordinal in a field's text with
// the engine's cloze styling.
func (e *Engine) RenderCloze(text string, ordinal int, mode cloze.Mode) string {
	return cloze.RenderWithOptions(text, strconv.Itoa(ordinal), mode, cloze.Options{
		Class:     e.config.ClozeClass,
		Separator: e.config.answerSeparator(),
	})
}

// DefaultEngine is the global default engine instance.
var DefaultEngine = New()

// Render renders template against data using the default engine.
func Render(template string, data interface{}) (string, error) {
	return DefaultEngine.Render(template, data)
}

// RenderCloze renders cloze deletions using the default engine.
func RenderCloze(text string, ordinal int, mode cloze.Mode) string {
	return DefaultEngine.RenderCloze(text, ordinal, mode)
}
