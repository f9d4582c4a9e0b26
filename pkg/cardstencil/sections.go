package cardstencil

import (
	"regexp"
	"strings"

	"github.com/benjaminschreck/go-cardstencil/pkg/cardstencil/cloze"
)

// {{#cq:1:Text}} and {{#ca:1:Text}} test whether cloze 1 exists in Text.
var clozeSectionRegex = regexp.MustCompile(`^c[qa]:(\d+):(.+)$`)

// expandSections replaces section blocks until none is left. Each iteration
// searches the whole text again from the start and replaces every copy of
// the matched block, so text that a replacement happens to produce can be
// matched by a later iteration.
func expandSections(s *session, text string, ctx Value) (string, error) {
	for passes := 0; ; passes++ {
		if passes >= s.config.MaxPasses {
			return "", NewLimitError("section passes", s.config.MaxPasses)
		}

		m, ok := s.grammar.FindSection(text)
		if !ok {
			return text, nil
		}
		if m.End <= m.Start {
			return "", ErrEmptyMatch
		}

		section := text[m.Start:m.End]
		name := strings.TrimSpace(m.Name)
		it := resolveSection(name, ctx)

		replacement, err := expandSection(s, m, it)
		if err != nil {
			return "", WithContext(err, "expand section", map[string]interface{}{"section": name})
		}

		if IsDebugMode(s.logger) {
			s.logger.WithFields(Fields{
				"section":  name,
				"inverted": m.Inverted,
				"kind":     it.Kind().String(),
				"truthy":   it.Truthy(),
			}).Debug("Expanded section")
		}

		text = strings.ReplaceAll(text, section, replacement)
	}
}

// resolveSection looks up the value that decides a section. Cloze-addressed
// names resolve to the first answer of that ordinal in the named field, or
// Absent when the field or the ordinal is missing.
func resolveSection(name string, ctx Value) Value {
	m := clozeSectionRegex.FindStringSubmatch(name)
	if m == nil {
		return ctx.Lookup(name)
	}

	field := ctx.Lookup(m[2])
	if field.IsAbsent() {
		return Absent()
	}
	answer, ok := cloze.FirstAnswer(field.String(), m[1])
	if !ok {
		return Absent()
	}
	return Scalar(answer)
}

// expandSection computes the replacement for one section block.
func expandSection(s *session, m SectionMatch, it Value) (string, error) {
	if !it.Truthy() {
		if m.Inverted {
			return m.Body, nil
		}
		return "", nil
	}
	if m.Inverted {
		return "", nil
	}

	switch it.Kind() {
	case KindMapping:
		return renderNested(s, m.Body, it)
	case KindSequence:
		var b strings.Builder
		for _, item := range it.Items() {
			out, err := renderNested(s, m.Body, item)
			if err != nil {
				return "", err
			}
			b.WriteString(out)
		}
		return b.String(), nil
	default:
		// scalar bodies are left for the enclosing tag pass
		return m.Body, nil
	}
}

// renderNested runs the full pipeline on a section body with ctx as the
// context. The session, and so any delimiter change, is shared.
func renderNested(s *session, body string, ctx Value) (string, error) {
	s.depth++
	defer func() { s.depth-- }()

	if s.depth > s.config.MaxRenderDepth {
		return "", NewLimitError("render depth", s.config.MaxRenderDepth)
	}
	return render(s, body, ctx)
}
