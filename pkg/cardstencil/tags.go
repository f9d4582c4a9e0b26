package cardstencil

import (
	"strings"
)

// renderTags replaces tags until none is left, rescanning from the start
// after each replacement. The grammar is read again on every iteration
// because a delimiter tag swaps it mid-pass.
//
// A syntax error from a modifier ends the pass immediately; the caller turns
// it into InvalidTemplateOutput for the whole render.
func renderTags(s *session, text string, ctx Value) (string, error) {
	for passes := 0; ; passes++ {
		if passes >= s.config.MaxPasses {
			return "", NewLimitError("tag passes", s.config.MaxPasses)
		}

		m, ok := s.grammar.FindTag(text)
		if !ok {
			return text, nil
		}
		if m.End <= m.Start {
			return "", ErrEmptyMatch
		}

		tag := text[m.Start:m.End]
		name := strings.TrimSpace(m.Body)

		modifier, ok := lookupModifier(m.Sigil)
		if !ok {
			return "", NewUnsupportedSigilError(m.Sigil, tag)
		}

		replacement, err := modifier(s, name, ctx)
		if err != nil {
			return "", err
		}

		if IsDebugMode(s.logger) {
			s.logger.WithFields(Fields{
				"tag":   tag,
				"sigil": m.Sigil.String(),
			}).Debug("Rendered tag")
		}

		text = strings.ReplaceAll(text, tag, replacement)
	}
}
