package locale

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSet_MatchesDue(t *testing.T) {
	s := DefaultSet()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"Chinese submission deadline", "繳交期限: 2025-01-15 23:59", true},
		{"Chinese cutoff", "截止 2025/01/15", true},
		{"Chinese expiry", "到期 2025-01-15", true},
		{"English due date", "Due date Friday, 20 September 2025, 23:59", true},
		{"Bare due lowercase", "due 2025-01-15", true},
		{"Mixed case Due", "Due: tomorrow", true},
		{"Deadline time", "截止時間：2025-01-15 23:59", true},
		{"No label", "2025-01-15 23:59", false},
		{"Unrelated cell", "已繳交", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.MatchesDue(tt.text); got != tt.want {
				t.Errorf("MatchesDue(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestSet_Strip(t *testing.T) {
	s := DefaultSet()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"Half-width colon", "繳交期限: 2025-01-15 23:59", "2025-01-15 23:59"},
		{"Full-width colon", "截止時間：2025-01-15 23:59", "2025-01-15 23:59"},
		{"No colon", "到期 2025-01-15", "2025-01-15"},
		{"English label", "Due date Friday, 20 September 2025, 23:59", "Friday, 20 September 2025, 23:59"},
		{"Case-insensitive", "DUE DATE: 2025-01-15", "2025-01-15"},
		{"Stacked labels", "Due date 截止: 2025-01-15", "2025-01-15"},
		{"Leading whitespace", "  繳交期限:  2025-01-15", "2025-01-15"},
		{"No label untouched", "2025-01-15 23:59", "2025-01-15 23:59"},
		{"Label only", "繳交期限:", ""},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Strip(tt.text); got != tt.want {
				t.Errorf("Strip(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestSet_StripPrefersLongerPhrase(t *testing.T) {
	s := DefaultSet()

	// "繳交期限" must be consumed as one label, not as "繳交" + leftover.
	got := s.Strip("繳交期限 2025-03-01 09:00")
	if got != "2025-03-01 09:00" {
		t.Errorf("Strip() = %q, want %q", got, "2025-03-01 09:00")
	}
}

func TestNewSet_Validation(t *testing.T) {
	tests := []struct {
		name    string
		labels  []Label
		wantErr bool
	}{
		{
			name:    "valid single label",
			labels:  []Label{{Pattern: "提出期限", Role: RoleDue}},
			wantErr: false,
		},
		{
			name:    "empty role defaults to due",
			labels:  []Label{{Pattern: "提出期限"}},
			wantErr: false,
		},
		{
			name:    "empty pattern rejected",
			labels:  []Label{{Pattern: "  ", Role: RoleDue}},
			wantErr: true,
		},
		{
			name:    "bad regexp rejected",
			labels:  []Label{{Pattern: "([", Role: RoleDue}},
			wantErr: true,
		},
		{
			name:    "no due labels rejected",
			labels:  []Label{{Pattern: "opens", Role: "open"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSet(tt.labels)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewSet() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labels.yaml")
	content := `labels:
  - pattern: 提出期限
    role: due
  - pattern: abgabetermin
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !s.MatchesDue("提出期限: 2025-01-15") {
		t.Error("loaded set should match 提出期限")
	}
	if !s.MatchesDue("Abgabetermin: 2025-01-15") {
		t.Error("loaded set should match abgabetermin case-insensitively")
	}
	if got := s.Strip("提出期限: 2025-01-15"); got != "2025-01-15" {
		t.Errorf("Strip() = %q, want %q", got, "2025-01-15")
	}

	if len(s.Labels()) != 2 {
		t.Errorf("Labels() returned %d entries, want 2", len(s.Labels()))
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() should fail for a missing file")
	}

	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, []byte("labels: []\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(empty); err == nil {
		t.Error("Load() should fail for a file with no labels")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte(":\n  - not yaml"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load() should fail for malformed YAML")
	}
}
