package llm

import (
	"testing"
)

func TestGeminiModelAliases(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := canonicalModel(tt.input, geminiAliases)
		if got != tt.expected {
			t.Errorf("canonicalModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestGeminiSchemaTranslation(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"message":  map[string]any{"type": "string"},
			"tier":     map[string]any{"type": "integer"},
			"severity": map[string]any{"type": "string", "enum": []any{"Critical", "High", "Medium"}},
			"weak_tags": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"message", "tier"},
	}

	schema := geminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["message"].Type != "STRING" {
		t.Fatalf("expected STRING for message, got %s", schema.Properties["message"].Type)
	}
	if schema.Properties["tier"].Type != "INTEGER" {
		t.Fatalf("expected INTEGER for tier, got %s", schema.Properties["tier"].Type)
	}
	if len(schema.Properties["severity"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(schema.Properties["severity"].Enum))
	}
	if schema.Properties["weak_tags"].Type != "ARRAY" {
		t.Fatalf("expected ARRAY for weak_tags, got %s", schema.Properties["weak_tags"].Type)
	}
	if schema.Properties["weak_tags"].Items.Type != "STRING" {
		t.Fatalf("expected STRING for weak_tags items, got %s", schema.Properties["weak_tags"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}
