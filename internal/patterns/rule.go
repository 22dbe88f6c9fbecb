// Package patterns holds the named extraction rules the engine matches
// against OCR text. The live rule set is an immutable snapshot published
// atomically, so refinement can merge new rules while extractions are in
// flight without locks.
package patterns

import (
	"regexp"
	"strconv"
	"strings"
)

// Scope says which text buffer a rule matches against.
type Scope string

const (
	// ScopeDocument matches against the space-joined full text.
	ScopeDocument Scope = "document"
	// ScopeSection matches against individual fragments.
	ScopeSection Scope = "section"
)

// Validation is the post-match acceptance predicate for a rule. A zero
// Validation accepts everything.
type Validation struct {
	// Accept iff MinLen < len(match) < MaxLen (runes), when MaxLen > 0.
	MinLen int `json:"min_len,omitempty"`
	MaxLen int `json:"max_len,omitempty"`
	// Accept iff MinNum <= atoi(match) <= MaxNum, when MaxNum > 0.
	MinNum int `json:"min_num,omitempty"`
	MaxNum int `json:"max_num,omitempty"`
	// Strip punctuation from the match before the length check.
	StripPunct bool `json:"strip_punct,omitempty"`
}

var rePunct = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// Apply trims and validates a raw match. It returns the cleaned value and
// whether the rule accepts it; a rejected match leaves the field at its
// default.
func (v Validation) Apply(match string) (string, bool) {
	s := strings.TrimSpace(match)
	if v.StripPunct {
		s = strings.TrimSpace(rePunct.ReplaceAllString(s, ""))
	}
	if v.MaxLen > 0 {
		n := len([]rune(s))
		if n <= v.MinLen || n >= v.MaxLen {
			return "", false
		}
	}
	if v.MaxNum > 0 {
		n, err := strconv.Atoi(s)
		if err != nil || n < v.MinNum || n > v.MaxNum {
			return "", false
		}
	}
	return s, true
}

// Rule is one named extraction rule: a compiled pattern plus its scope and
// acceptance predicate. Names are stable identifiers; refinement overrides
// rules by name.
type Rule struct {
	Name  string
	Expr  string
	Scope Scope
	Check Validation

	re *regexp.Regexp
}

// Compile builds a Rule, returning an error for an invalid expression.
func Compile(name, expr string, scope Scope, check Validation) (Rule, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Rule{}, err
	}
	return Rule{Name: name, Expr: expr, Scope: scope, Check: check, re: re}, nil
}

func mustCompile(name, expr string, scope Scope, check Validation) Rule {
	r, err := Compile(name, expr, scope, check)
	if err != nil {
		panic("patterns: bad baseline rule " + name + ": " + err.Error())
	}
	return r
}

// Find returns the first validated capture of the rule in text. When the
// pattern has no capture group, the whole match is used.
func (r Rule) Find(text string) (string, bool) {
	m := r.re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return r.Check.Apply(capture(m))
}

// FindAll returns every validated capture of the rule in text, in order of
// appearance.
func (r Rule) FindAll(text string) []string {
	var out []string
	for _, m := range r.re.FindAllStringSubmatch(text, -1) {
		if v, ok := r.Check.Apply(capture(m)); ok {
			out = append(out, v)
		}
	}
	return out
}

// FindSubmatch returns all capture groups of the first match, unvalidated.
// Used by rules whose groups are combined by the engine (e.g. date + time).
func (r Rule) FindSubmatch(text string) ([]string, bool) {
	m := r.re.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	return m, true
}

// Matches reports whether the rule matches text at all, validation aside.
func (r Rule) Matches(text string) bool {
	return r.re.MatchString(text)
}

func capture(m []string) string {
	if len(m) > 1 {
		return m[1]
	}
	return m[0]
}
