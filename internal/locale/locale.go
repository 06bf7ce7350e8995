// Package locale defines the due-date label vocabulary used to recognize
// and strip deadline phrasings on assignment listing pages.
//
// LMS themes decorate due times with locale-specific labels ("繳交期限:",
// "Due date:", "截止時間："). The vocabulary is a set of (pattern, role)
// pairs so additional languages or phrasings can be added through a YAML
// file without touching the parsing logic.
package locale

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// RoleDue marks a label that announces a due/deadline time.
const RoleDue = "due"

// Label pairs a regular-expression fragment with a semantic role.
// Patterns are compiled case-insensitively.
type Label struct {
	Pattern string `yaml:"pattern"`
	Role    string `yaml:"role"`
}

// DefaultLabels covers the phrasings observed on Moodle and ee-class
// listings. Longer phrases come first so stripping removes "繳交期限"
// before the bare "期限" alternative gets a chance.
func DefaultLabels() []Label {
	return []Label{
		{Pattern: "繳交期限", Role: RoleDue},
		{Pattern: "繳交截止", Role: RoleDue},
		{Pattern: "截止時間", Role: RoleDue},
		{Pattern: "截止日期", Role: RoleDue},
		{Pattern: "截止", Role: RoleDue},
		{Pattern: "到期日", Role: RoleDue},
		{Pattern: "到期", Role: RoleDue},
		{Pattern: "期限", Role: RoleDue},
		{Pattern: "submission deadline", Role: RoleDue},
		{Pattern: "deadline time", Role: RoleDue},
		{Pattern: "due date", Role: RoleDue},
		{Pattern: "deadline", Role: RoleDue},
		{Pattern: "expires", Role: RoleDue},
		{Pattern: "due", Role: RoleDue},
	}
}

// Set is a compiled label vocabulary.
type Set struct {
	labels []Label
	match  *regexp.Regexp // unanchored, cell detection
	strip  *regexp.Regexp // anchored, label + optional colon + whitespace
}

// NewSet compiles a vocabulary. Labels with an empty role default to
// RoleDue; at least one due-role label is required.
func NewSet(labels []Label) (*Set, error) {
	due := make([]string, 0, len(labels))
	kept := make([]Label, 0, len(labels))
	for i, l := range labels {
		if strings.TrimSpace(l.Pattern) == "" {
			return nil, fmt.Errorf("label %d: empty pattern", i)
		}
		if l.Role == "" {
			l.Role = RoleDue
		}
		if _, err := regexp.Compile(l.Pattern); err != nil {
			return nil, fmt.Errorf("label %q: %w", l.Pattern, err)
		}
		if l.Role == RoleDue {
			due = append(due, "(?:"+l.Pattern+")")
		}
		kept = append(kept, l)
	}
	if len(due) == 0 {
		return nil, fmt.Errorf("label set contains no %q labels", RoleDue)
	}

	alts := strings.Join(due, "|")
	match, err := regexp.Compile(`(?i)(?:` + alts + `)`)
	if err != nil {
		return nil, fmt.Errorf("compiling match pattern: %w", err)
	}
	strip, err := regexp.Compile(`(?i)^\s*(?:` + alts + `)\s*[:：]?\s*`)
	if err != nil {
		return nil, fmt.Errorf("compiling strip pattern: %w", err)
	}

	return &Set{labels: kept, match: match, strip: strip}, nil
}

// DefaultSet returns the built-in vocabulary.
func DefaultSet() *Set {
	s, err := NewSet(DefaultLabels())
	if err != nil {
		// The built-in table is static; a compile failure is a programming error.
		panic(err)
	}
	return s
}

// Load reads a vocabulary from a YAML file of the form:
//
//	labels:
//	  - pattern: 提出期限
//	    role: due
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading label file: %w", err)
	}

	var doc struct {
		Labels []Label `yaml:"labels"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing label file: %w", err)
	}
	if len(doc.Labels) == 0 {
		return nil, fmt.Errorf("label file %s defines no labels", path)
	}

	return NewSet(doc.Labels)
}

// MatchesDue reports whether text contains a due-role label anywhere.
func (s *Set) MatchesDue(text string) bool {
	return s.match.MatchString(text)
}

// Strip removes leading due-role label phrases, each with an optional
// half- or full-width colon and surrounding whitespace. Stripping repeats
// so stacked labels ("Due date 截止: ...") are fully consumed.
func (s *Set) Strip(text string) string {
	out := strings.TrimSpace(text)
	for {
		loc := s.strip.FindStringIndex(out)
		if loc == nil || loc[1] == 0 {
			break
		}
		out = strings.TrimSpace(out[loc[1]:])
	}
	return out
}

// Labels returns the vocabulary entries (after role defaulting).
func (s *Set) Labels() []Label {
	out := make([]Label, len(s.labels))
	copy(out, s.labels)
	return out
}
