package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadGuardrailExtensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guardrails.yaml")
	content := `guardrails:
  financial_advice_keywords:
    - "which stocks"
  off_topic_keywords:
    - "horoscope"
    - "sports scores"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	t.Setenv("GUARDRAILS_CONFIG_PATH", path)

	ext, err := LoadGuardrailExtensions()
	if err != nil {
		t.Fatalf("LoadGuardrailExtensions failed: %v", err)
	}

	if len(ext.FinancialAdviceKeywords) != 1 || ext.FinancialAdviceKeywords[0] != "which stocks" {
		t.Errorf("Unexpected financial keywords: %v", ext.FinancialAdviceKeywords)
	}
	if len(ext.OffTopicKeywords) != 2 {
		t.Errorf("Unexpected off-topic keywords: %v", ext.OffTopicKeywords)
	}
	if len(ext.LegalAdviceKeywords) != 0 || len(ext.FraudKeywords) != 0 {
		t.Errorf("Unset sections must stay empty: %+v", ext)
	}
}

func TestLoadGuardrailExtensions_MissingFile(t *testing.T) {
	t.Setenv("GUARDRAILS_CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))

	ext, err := LoadGuardrailExtensions()
	if err != nil {
		t.Fatalf("A missing config file must not be an error, got: %v", err)
	}
	if len(ext.FinancialAdviceKeywords) != 0 || len(ext.OffTopicKeywords) != 0 {
		t.Errorf("Expected empty extensions, got %+v", ext)
	}
}

func TestLoadGuardrailExtensions_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guardrails.yaml")
	if err := os.WriteFile(path, []byte("guardrails: [not: a: mapping"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	t.Setenv("GUARDRAILS_CONFIG_PATH", path)

	if _, err := LoadGuardrailExtensions(); err == nil {
		t.Error("Expected a parse error on malformed YAML")
	}
}
