package cardstencil

import (
	"regexp"
	"sort"
	"strings"

	"github.com/benjaminschreck/go-cardstencil/pkg/cardstencil/cloze"
)

// Modifier renders one tag. name is the trimmed tag body.
type Modifier func(s *session, name string, ctx Value) (string, error)

// modifiers binds sigils to their renderers. The set is closed; a sigil the
// grammar recognizes but which is missing here is an UnsupportedSigilError.
var modifiers = map[Sigil]Modifier{
	SigilNone:      renderField,
	SigilRaw:       renderRaw,
	SigilComment:   renderComment,
	SigilDelimiter: renderDelimiter,
}

func lookupModifier(sigil Sigil) (Modifier, bool) {
	m, ok := modifiers[sigil]
	return m, ok
}

// SupportedSigils lists the sigils that have a modifier, in ascending order.
// SigilNone is included.
func SupportedSigils() []Sigil {
	sigils := make([]Sigil, 0, len(modifiers))
	for s := range modifiers {
		sigils = append(sigils, s)
	}
	sort.Slice(sigils, func(i, j int) bool { return sigils[i] < sigils[j] })
	return sigils
}

var (
	// {{cq:1:Text}}, {{ca:1:Text}}, {{cactx:1:Text}}
	clozeTagRegex = regexp.MustCompile(`^c(q|a|actx):(\d+):(.+)$`)
	// unwraps a value whose text starts with a styling span
	outerSpanRegex = regexp.MustCompile(`^<span.+?>(.*)</span>`)
)

const textPrefix = "text:"

// renderField handles plain tags: field values, {{text:Field}} and the
// cloze forms.
func renderField(s *session, name string, ctx Value) (string, error) {
	if strings.HasPrefix(name, textPrefix) {
		v := ctx.Lookup(name[len(textPrefix):])
		if !v.Truthy() {
			return "", nil
		}
		return s.sanitizer.Sanitize(v.String()), nil
	}

	if m := clozeTagRegex.FindStringSubmatch(name); m != nil {
		mode, err := cloze.ParseMode(m[1])
		if err != nil {
			return "", NewSyntaxError(name, err.Error())
		}
		v := ctx.Lookup(m[3])
		if !v.Truthy() {
			return "", nil
		}
		return cloze.RenderWithOptions(v.String(), m[2], mode, s.clozeOptions()), nil
	}

	v := ctx.Lookup(name)
	if v.IsAbsent() {
		return "{unknown field " + name + "}", nil
	}
	if !v.Truthy() {
		return "", nil
	}
	return v.String(), nil
}

// renderRaw handles {{{Field}}}: the value without its outer styling span.
func renderRaw(s *session, name string, ctx Value) (string, error) {
	v := ctx.Lookup(name)
	if !v.Truthy() && !v.isIntegerZero() {
		return "", nil
	}
	return outerSpanRegex.ReplaceAllString(v.String(), "${1}"), nil
}

func renderComment(s *session, name string, ctx Value) (string, error) {
	return "", nil
}

// renderDelimiter handles {{=OPEN CLOSE=}}.
func renderDelimiter(s *session, name string, ctx Value) (string, error) {
	parts := strings.Fields(name)
	if len(parts) != 2 {
		return "", NewSyntaxError(name, "delimiter change needs exactly two delimiters")
	}
	if err := s.setDelimiters(Delimiters{Open: parts[0], Close: parts[1]}); err != nil {
		return "", NewSyntaxError(name, err.Error())
	}
	return "", nil
}
