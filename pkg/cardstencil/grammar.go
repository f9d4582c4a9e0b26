package cardstencil

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Sigil is the character that follows the open delimiter of a tag and selects
// its modifier. SigilNone marks a plain tag.
type Sigil rune

const (
	SigilNone      Sigil = 0
	SigilSection   Sigil = '#'
	SigilDelimiter Sigil = '='
	SigilAmpersand Sigil = '&'
	SigilComment   Sigil = '!'
	SigilPartial   Sigil = '>'
	SigilRaw       Sigil = '{'
)

// recognizedSigils is the closed set of sigils the tag grammar matches, in
// the order the alternatives are tried. Not all of them have a modifier.
var recognizedSigils = []Sigil{
	SigilSection,
	SigilDelimiter,
	SigilAmpersand,
	SigilComment,
	SigilPartial,
	SigilRaw,
}

func (s Sigil) String() string {
	if s == SigilNone {
		return "none"
	}
	return string(rune(s))
}

// Delimiters is an open/close tag delimiter pair.
type Delimiters struct {
	Open  string
	Close string
}

// DefaultDelimiters are the delimiters every render session starts with.
var DefaultDelimiters = Delimiters{Open: "{{", Close: "}}"}

func (d Delimiters) String() string {
	return d.Open + " " + d.Close
}

// SectionMatch is the leftmost, smallest section block found by a Grammar.
// Start and End index the whole block (opening tag, body, closing tag) in the
// searched text.
type SectionMatch struct {
	Start    int
	End      int
	Inverted bool
	// Name is the raw name between the sigil and the close delimiter,
	// untrimmed. The closing tag repeats it byte for byte.
	Name string
	Body string
}

// TagMatch is the leftmost tag found by a Grammar.
type TagMatch struct {
	Start int
	End   int
	Sigil Sigil
	// Body is the untrimmed text between the sigil and the close delimiter.
	Body string
}

// Grammar holds the two matchers compiled for one delimiter pair.
type Grammar struct {
	delims Delimiters
	opener *regexp.Regexp
	tag    *regexp.Regexp
}

// CompileGrammar builds the section and tag matchers for d. It is a pure
// function of the two delimiter strings.
func CompileGrammar(d Delimiters) (*Grammar, error) {
	if d.Open == "" || d.Close == "" {
		return nil, errors.New("delimiters must not be empty")
	}

	openQ := regexp.QuoteMeta(d.Open)
	closeQ := regexp.QuoteMeta(d.Close)

	opener, err := regexp.Compile(openQ + `[#^]`)
	if err != nil {
		return nil, fmt.Errorf("compile section opener: %w", err)
	}

	// One alternative per sigil stands in for a back-reference: the sigil may
	// be echoed right before the close delimiter, as in {{=<% %>=}} or
	// {{{field}}}. The close delimiter may be followed by extra copies of its
	// last character so {{{field}}} consumes all three braces.
	var b strings.Builder
	b.WriteString(openQ)
	b.WriteString("(?:")
	for _, s := range recognizedSigils {
		q := regexp.QuoteMeta(string(rune(s)))
		fmt.Fprintf(&b, "(%s)(.+?)(?:%s)?|", q, q)
	}
	b.WriteString("()(.+?))")
	b.WriteString(closeQ)
	last, _ := utf8.DecodeLastRuneInString(d.Close)
	b.WriteString(regexp.QuoteMeta(string(last)))
	b.WriteString("*")

	tag, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("compile tag matcher: %w", err)
	}

	return &Grammar{delims: d, opener: opener, tag: tag}, nil
}

// MustCompileGrammar is like CompileGrammar but panics on error.
func MustCompileGrammar(d Delimiters) *Grammar {
	g, err := CompileGrammar(d)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Grammar) Delimiters() Delimiters { return g.delims }

// FindSection returns the leftmost section block in text. Among blocks
// starting at the same position the longest name that is followed by the
// close delimiter wins, and for that name the nearest matching closing tag.
// Names never contain '}'.
func (g *Grammar) FindSection(text string) (SectionMatch, bool) {
	openDelim, closeDelim := g.delims.Open, g.delims.Close

	for pos := 0; pos < len(text); {
		loc := g.opener.FindStringIndex(text[pos:])
		if loc == nil {
			return SectionMatch{}, false
		}
		start := pos + loc[0]
		nameStart := pos + loc[1]
		inverted := text[nameStart-1] == '^'

		nameLimit := len(text)
		if i := strings.IndexByte(text[nameStart:], '}'); i >= 0 {
			nameLimit = nameStart + i
		}

		for nameEnd := nameLimit; nameEnd >= nameStart; nameEnd-- {
			if !strings.HasPrefix(text[nameEnd:], closeDelim) {
				continue
			}
			name := text[nameStart:nameEnd]
			bodyStart := nameEnd + len(closeDelim)
			closer := openDelim + "/" + name + closeDelim
			if i := strings.Index(text[bodyStart:], closer); i >= 0 {
				bodyEnd := bodyStart + i
				return SectionMatch{
					Start:    start,
					End:      bodyEnd + len(closer),
					Inverted: inverted,
					Name:     name,
					Body:     text[bodyStart:bodyEnd],
				}, true
			}
		}

		pos = start + 1
	}
	return SectionMatch{}, false
}

// FindTag returns the leftmost tag in text.
func (g *Grammar) FindTag(text string) (TagMatch, bool) {
	m := g.tag.FindStringSubmatchIndex(text)
	if m == nil {
		return TagMatch{}, false
	}

	for i, s := range recognizedSigils {
		body := 4*i + 4
		if m[body] >= 0 {
			return TagMatch{Start: m[0], End: m[1], Sigil: s, Body: text[m[body]:m[body+1]]}, true
		}
	}
	body := 4*len(recognizedSigils) + 4
	return TagMatch{Start: m[0], End: m[1], Sigil: SigilNone, Body: text[m[body]:m[body+1]]}, true
}
