package moderation

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
)

// Verdict is the accept/reject decision for one piece of text. Reason is
// empty when the text is safe.
type Verdict struct {
	IsSafe bool   `json:"is_safe"`
	Reason string `json:"reason,omitempty"`
}

// Validator decides whether a piece of text may be published. The keyword
// filter is the shipped strategy; a stricter backend can be substituted
// without touching calling code.
type Validator interface {
	Validate(text string) Verdict
}

const fallbackReason = "Inappropriate content detected."

type rule struct {
	re     *regexp.Regexp
	reason string
}

// KeywordValidator scans text against categorized deny lists. Whole-word
// matching for ordinary keywords ("assessment" must not trip on "ass");
// plain substring matching for link fragments, which are not word-like
// tokens.
type KeywordValidator struct {
	rules []rule
}

// NewKeywordValidator compiles the given categories. Keyword patterns are
// built from quoted literals only, so compilation cannot fail on
// user-supplied lists.
func NewKeywordValidator(categories []Category) *KeywordValidator {
	v := &KeywordValidator{}
	for _, cat := range categories {
		reason := cat.Reason
		if reason == "" {
			reason = fallbackReason
		}
		for _, kw := range cat.Keywords {
			if kw == "" {
				continue
			}
			pattern := `(?i)`
			if cat.Literal {
				pattern += regexp.QuoteMeta(kw)
			} else {
				pattern += `\b` + regexp.QuoteMeta(kw) + `\b`
			}
			v.rules = append(v.rules, rule{
				re:     regexp.MustCompile(pattern),
				reason: reason,
			})
		}
	}
	return v
}

// Validate returns the verdict for a single text. Empty text is safe:
// required-field validation is the caller's concern, not moderation's.
// Scanning stops at the first match; violations are not aggregated.
func (v *KeywordValidator) Validate(text string) Verdict {
	if text == "" {
		return Verdict{IsSafe: true}
	}
	for _, r := range v.rules {
		if r.re.MatchString(text) {
			return Verdict{IsSafe: false, Reason: r.reason}
		}
	}
	return Verdict{IsSafe: true}
}

// LoadCategoriesFile reads a JSON category list, for deployments that
// override the built-in tables.
func LoadCategoriesFile(path string) ([]Category, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keyword file: %w", err)
	}
	var categories []Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("parse keyword file: %w", err)
	}
	return categories, nil
}

// Field pairs a human-readable label with text to scan.
type Field struct {
	Label string
	Text  string
}

// CheckFields validates each field separately and fails fast: the first
// unsafe field aborts the whole submission with that field's message,
// shaped "Inappropriate <Label>: <reason>".
func CheckFields(v Validator, fields ...Field) error {
	for _, f := range fields {
		if verdict := v.Validate(f.Text); !verdict.IsSafe {
			return fmt.Errorf("Inappropriate %s: %s", f.Label, verdict.Reason)
		}
	}
	return nil
}
