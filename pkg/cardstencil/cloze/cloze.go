package cloze

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Mode selects how the deletions of the target ordinal are shown.
type Mode int

const (
	// Question masks the target deletions.
	Question Mode = iota
	// Answer shows only the target answers.
	Answer
	// Context reveals the target answers inline.
	Context
)

// String returns the mode's tag form: q, a or actx.
func (m Mode) String() string {
	switch m {
	case Question:
		return "q"
	case Answer:
		return "a"
	case Context:
		return "actx"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses the tag form of a mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "q":
		return Question, nil
	case "a":
		return Answer, nil
	case "actx":
		return Context, nil
	}
	return 0, fmt.Errorf("unknown cloze mode %q", s)
}

// Options controls styling of rendered deletions.
type Options struct {
	// Class is the CSS class of the styling span.
	Class string
	// Separator joins multiple answers in Answer mode.
	Separator string
}

// DefaultOptions returns the standard cloze styling.
func DefaultOptions() Options {
	return Options{Class: "cloze", Separator: ", "}
}

var (
	// any deletion, whatever its ordinal; group 1 is the answer
	anySpanRegex = regexp.MustCompile(`\{\{c.*?::(.*?)(::(.*?))?\}\}`)
	// numeric ordinals only, for listing
	ordinalRegex = regexp.MustCompile(`\{\{c(\d+)::`)
	// a field whose text opens with a styling span
	wrapperRegex = regexp.MustCompile(`^(<span.+?>)(.*)</span>`)

	spanRegexes sync.Map // ordinal -> *regexp.Regexp
)

// spanRegex returns the deletion matcher for one ordinal. Group 1 is the
// answer, group 2 the optional "::hint" suffix and group 3 the hint.
func spanRegex(ordinal string) *regexp.Regexp {
	if re, ok := spanRegexes.Load(ordinal); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`\{\{c` + regexp.QuoteMeta(ordinal) + `::(.*?)(::(.*?))?\}\}`)
	spanRegexes.Store(ordinal, re)
	return re
}

// Render renders text for an integer ordinal with the default options.
func Render(text string, ordinal int, mode Mode) string {
	return RenderWithOptions(text, strconv.Itoa(ordinal), mode, DefaultOptions())
}

// RenderWithOptions renders the deletions of ordinal in text. The ordinal is
// compared as text against the digits in each deletion, so "01" does not
// address {{c1::...}}.
//
// If text has no deletion for ordinal the result is empty. Otherwise every
// deletion of another ordinal is reduced to its plain answer.
func RenderWithOptions(text, ordinal string, mode Mode, opts Options) string {
	re := spanRegex(ordinal)
	if !re.MatchString(text) {
		return ""
	}

	open := "<span class=" + opts.Class + ">"
	const closeTag = "</span>"

	switch mode {
	case Question:
		text = replaceSpans(re, text, func(answer, hint string, hasHint bool) string {
			if hasHint {
				return open + "[...(" + hint + ")]" + closeTag
			}
			return open + "[...]" + closeTag
		})
	case Context:
		text = replaceSpans(re, text, func(answer, hint string, hasHint bool) string {
			return open + answer + closeTag
		})
	default:
		var answers []string
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			answers = append(answers, open+m[1]+closeTag)
		}
		joined := strings.Join(answers, opts.Separator)

		loc := wrapperRegex.FindStringSubmatchIndex(text)
		if loc == nil {
			text = joined
		} else {
			text = text[:loc[0]] + text[loc[2]:loc[3]] + joined + closeTag + text[loc[1]:]
		}
	}

	return plain(text)
}

// FirstAnswer returns the answer of the first deletion of ordinal in text.
func FirstAnswer(text, ordinal string) (string, bool) {
	m := spanRegex(ordinal).FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Ordinals returns the distinct numeric ordinals used in text, ascending.
func Ordinals(text string) []int {
	seen := make(map[int]bool)
	var ords []int
	for _, m := range ordinalRegex.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || seen[n] {
			continue
		}
		seen[n] = true
		ords = append(ords, n)
	}
	sort.Ints(ords)
	return ords
}

// plain reduces every remaining deletion to its answer.
func plain(text string) string {
	return replaceSpans(anySpanRegex, text, func(answer, hint string, hasHint bool) string {
		return answer
	})
}

// replaceSpans replaces each match of re with the result of fn. Answers and
// hints are inserted literally, so a '$' in field text is kept.
func replaceSpans(re *regexp.Regexp, text string, fn func(answer, hint string, hasHint bool) string) string {
	locs := re.FindAllStringSubmatchIndex(text, -1)
	if locs == nil {
		return text
	}

	var b strings.Builder
	last := 0
	for _, loc := range locs {
		b.WriteString(text[last:loc[0]])
		answer := text[loc[2]:loc[3]]
		hasHint := loc[4] >= 0
		hint := ""
		if loc[6] >= 0 {
			hint = text[loc[6]:loc[7]]
		}
		b.WriteString(fn(answer, hint, hasHint))
		last = loc[1]
	}
	b.WriteString(text[last:])
	return b.String()
}
