package cardstencil

import (
	"regexp"
	"strings"
)

// IssueSeverity grades a validation issue.
type IssueSeverity string

const (
	SeverityError   IssueSeverity = "error"
	SeverityWarning IssueSeverity = "warning"
)

// IssueCode identifies the kind of a validation issue.
type IssueCode string

const (
	IssueUnclosedSection    IssueCode = "UNCLOSED_SECTION"
	IssueStraySectionClose  IssueCode = "STRAY_SECTION_CLOSE"
	IssueUnsupportedSigil   IssueCode = "UNSUPPORTED_SIGIL"
	IssueMalformedDelimiter IssueCode = "MALFORMED_DELIMITER"
)

// ValidationResult is the outcome of Validate.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// Err returns a *ValidationError holding the error-severity issues, or nil.
func (r *ValidationResult) Err() error {
	var errs []ValidationIssue
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			errs = append(errs, issue)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Issues: errs}
}

// scannedTag is one tag seen by scanTags.
type scannedTag struct {
	text  string
	sigil Sigil
	body  string
}

// scanTags walks every tag of template left to right without rendering,
// following delimiter changes. A malformed delimiter tag is reported to
// visit and leaves the delimiters unchanged.
func scanTags(template string, visit func(tag scannedTag, grammarErr error)) {
	g := defaultGrammar
	for pos := 0; pos < len(template); {
		m, ok := g.FindTag(template[pos:])
		if !ok {
			return
		}
		tag := scannedTag{
			text:  template[pos+m.Start : pos+m.End],
			sigil: m.Sigil,
			body:  m.Body,
		}
		pos += m.End

		var grammarErr error
		if m.Sigil == SigilDelimiter {
			parts := strings.Fields(m.Body)
			if len(parts) != 2 {
				grammarErr = NewSyntaxError(strings.TrimSpace(m.Body), "delimiter change needs exactly two delimiters")
			} else if next, err := CompileGrammar(Delimiters{Open: parts[0], Close: parts[1]}); err != nil {
				grammarErr = err
			} else {
				g = next
			}
		}
		visit(tag, grammarErr)
	}
}

// Validate checks template for problems that would make a render fail or
// behave unexpectedly: unbalanced sections, sigils without a modifier and
// malformed delimiter changes. It does not need any data.
func Validate(template string) *ValidationResult {
	result := &ValidationResult{Valid: true}
	add := func(severity IssueSeverity, code IssueCode, tag, msg string) {
		result.Issues = append(result.Issues, ValidationIssue{
			Severity: severity,
			Code:     code,
			Tag:      tag,
			Message:  msg,
		})
		if severity == SeverityError {
			result.Valid = false
		}
	}

	type openSection struct {
		tag  string
		name string
	}
	var stack []openSection

	scanTags(template, func(tag scannedTag, grammarErr error) {
		switch {
		case tag.sigil == SigilSection:
			stack = append(stack, openSection{tag: tag.text, name: tag.body})
		case tag.sigil == SigilNone && strings.HasPrefix(tag.body, "^"):
			stack = append(stack, openSection{tag: tag.text, name: tag.body[1:]})
		case tag.sigil == SigilNone && strings.HasPrefix(tag.body, "/"):
			name := tag.body[1:]
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i].name == name {
					for _, o := range stack[i+1:] {
						add(SeverityError, IssueUnclosedSection, o.tag, "section is not closed before "+tag.text)
					}
					stack = stack[:i]
					return
				}
			}
			add(SeverityWarning, IssueStraySectionClose, tag.text, "closing tag without a matching section; it renders as a field")
		case tag.sigil == SigilDelimiter:
			if grammarErr != nil {
				add(SeverityError, IssueMalformedDelimiter, tag.text, grammarErr.Error())
			}
		default:
			if _, ok := lookupModifier(tag.sigil); !ok {
				add(SeverityError, IssueUnsupportedSigil, tag.text, "no modifier for sigil '"+tag.sigil.String()+"'")
			}
		}
	})

	for _, o := range stack {
		add(SeverityError, IssueUnclosedSection, o.tag, "section is never closed")
	}

	return result
}

// ExtractReferences returns the field names template reads, in order of first
// appearance. Cloze and text: forms report the underlying field.
func ExtractReferences(template string) []string {
	seen := make(map[string]bool)
	var refs []string
	ref := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		refs = append(refs, name)
	}

	scanTags(template, func(tag scannedTag, _ error) {
		body := strings.TrimSpace(tag.body)
		switch tag.sigil {
		case SigilSection:
			ref(fieldOf(body, clozeSectionRegex))
		case SigilRaw:
			ref(body)
		case SigilNone:
			switch {
			case strings.HasPrefix(body, "/"):
			case strings.HasPrefix(body, "^"):
				ref(fieldOf(strings.TrimSpace(body[1:]), clozeSectionRegex))
			case strings.HasPrefix(body, textPrefix):
				ref(body[len(textPrefix):])
			default:
				ref(fieldOf(body, clozeTagRegex))
			}
		}
	})
	return refs
}

// fieldOf returns the field a cloze-addressed name reads, or name itself.
func fieldOf(name string, re *regexp.Regexp) string {
	if m := re.FindStringSubmatch(name); m != nil {
		return m[len(m)-1]
	}
	return name
}
