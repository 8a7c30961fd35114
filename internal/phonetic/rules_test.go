package phonetic

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFile(t *testing.T) {
	tmpDir := t.TempDir()
	rulePath := filepath.Join(tmpDir, "rules.yaml")

	content := `version: "test-1"
rules:
  - pattern: manje
    replacement: man-zhay
  - pattern: ap
    replacement: ahp
    whole_word: true
`
	if err := os.WriteFile(rulePath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write rule file: %v", err)
	}

	rs, err := LoadFile(rulePath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if rs.Version != "test-1" {
		t.Errorf("Expected version 'test-1', got '%s'", rs.Version)
	}

	if len(rs.Rules) != 2 {
		t.Fatalf("Expected 2 rules, got %d", len(rs.Rules))
	}

	if rs.Rules[0].WholeWord {
		t.Error("First rule should not be word-bounded")
	}

	if !rs.Rules[1].WholeWord {
		t.Error("Second rule should be word-bounded")
	}

	// A loaded table behaves like a hand-built one
	if got := Rewrite("m'ap manje", rs); got != "m'ahp man-zhay" {
		t.Errorf("Expected \"m'ahp man-zhay\", got %q", got)
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile("/nonexistent/rules.yaml")
	if err == nil {
		t.Error("Expected error for missing rule file")
	}
}

func TestLoadFile_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	rulePath := filepath.Join(tmpDir, "rules.yaml")

	if err := os.WriteFile(rulePath, []byte("rules: [pattern: {"), 0644); err != nil {
		t.Fatalf("Failed to write rule file: %v", err)
	}

	if _, err := LoadFile(rulePath); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestLoadFile_EmptyPattern(t *testing.T) {
	tmpDir := t.TempDir()
	rulePath := filepath.Join(tmpDir, "rules.yaml")

	content := `rules:
  - pattern: ""
    replacement: oops
`
	if err := os.WriteFile(rulePath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write rule file: %v", err)
	}

	if _, err := LoadFile(rulePath); err == nil {
		t.Error("Expected error for empty pattern")
	}
}

func TestDefaultRules(t *testing.T) {
	rs := DefaultRules()

	if rs.Version == "" {
		t.Error("Default rule table must carry a version")
	}

	if len(rs.Rules) == 0 {
		t.Fatal("Default rule table is empty")
	}

	for i, rule := range rs.Rules {
		if rule.Pattern == "" {
			t.Errorf("Rule %d has an empty pattern", i)
		}
		if rule.Replacement == "" {
			t.Errorf("Rule %d (%s) has an empty replacement", i, rule.Pattern)
		}
		if rule.WholeWord && rule.re == nil {
			t.Errorf("Rule %d (%s) not precompiled", i, rule.Pattern)
		}
	}
}
