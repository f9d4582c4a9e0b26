package cardstencil

import (
	"github.com/sirupsen/logrus"

	"github.com/benjaminschreck/go-cardstencil/pkg/cardstencil/cloze"
	"github.com/benjaminschreck/go-cardstencil/pkg/cardstencil/sanitize"
)

// session is the mutable state of one top-level render. It is passed
// explicitly to every pass and every nested section render, so a delimiter
// change made anywhere stays in effect for the rest of the render.
type session struct {
	delims    Delimiters
	grammar   *Grammar
	config    *Config
	sanitizer sanitize.Sanitizer
	logger    *logrus.Logger
	depth     int
}

func newSession(config *Config, sanitizer sanitize.Sanitizer, logger *logrus.Logger) *session {
	return &session{
		delims:    DefaultDelimiters,
		grammar:   defaultGrammar,
		config:    config,
		sanitizer: sanitizer,
		logger:    logger,
	}
}

var defaultGrammar = MustCompileGrammar(DefaultDelimiters)

// setDelimiters switches the session to a new delimiter pair and recompiles
// both matchers.
func (s *session) setDelimiters(d Delimiters) error {
	g, err := CompileGrammar(d)
	if err != nil {
		return err
	}
	if IsDebugMode(s.logger) {
		s.logger.WithFields(Fields{
			"from": s.delims.String(),
			"to":   d.String(),
		}).Debug("Switching tag delimiters")
	}
	s.delims = d
	s.grammar = g
	return nil
}

func (s *session) clozeOptions() cloze.Options {
	return cloze.Options{
		Class:     s.config.ClozeClass,
		Separator: s.config.answerSeparator(),
	}
}

// render expands sections and then tags of text against ctx.
func render(s *session, text string, ctx Value) (string, error) {
	expanded, err := expandSections(s, text, ctx)
	if err != nil {
		return "", err
	}
	return renderTags(s, expanded, ctx)
}

// Template is a template string bound to its data. Each call to Render runs a
// fresh session that starts from DefaultDelimiters.
type Template struct {
	source  string
	context Value
	engine  *Engine
	last    Delimiters
}

// Render renders the template.
//
// A modifier that finds a syntax error discards all output: the result is
// InvalidTemplateOutput. In strict mode the *SyntaxError is returned with it.
// Other failures (unsupported sigils, render limits) return an error and an
// empty string.
func (t *Template) Render() (out string, err error) {
	logger := t.engine.getLogger()
	s := newSession(t.engine.config, t.engine.sanitizer, logger)

	defer func() {
		if r := recover(); r != nil {
			out, err = "", RecoverError(r)
		}
		t.last = s.delims
	}()

	if IsDebugMode(logger) {
		logger.WithFields(Fields{
			"template_length": len(t.source),
			"context_kind":    t.context.Kind().String(),
		}).Debug("Rendering template")
	}

	out, err = render(s, t.source, t.context)
	if err == nil {
		return out, nil
	}

	if IsSyntaxError(err) {
		logger.WithError(err).Warn("Template rendered as invalid")
		if t.engine.config.StrictMode {
			return InvalidTemplateOutput, err
		}
		return InvalidTemplateOutput, nil
	}

	return "", WithContext(err, "render", map[string]interface{}{
		"template_length": len(t.source),
	})
}

// Delimiters returns the delimiters in effect at the end of the last Render,
// or DefaultDelimiters if the template has not been rendered.
func (t *Template) Delimiters() Delimiters {
	if t.last.Open == "" {
		return DefaultDelimiters
	}
	return t.last
}

// Source returns the unrendered template text.
func (t *Template) Source() string { return t.source }
