package model

import (
	"reflect"
	"testing"
)

func TestEntryGetMissingColumn(t *testing.T) {
	var e Entry
	if got := e.Get(FieldKeywords); got != "" {
		t.Errorf("expected empty value for nil fields, got %q", got)
	}
	e = NewEntry(0, map[string]string{FieldTerm: "Bias"})
	if got := e.Get(FieldCode); got != "" {
		t.Errorf("expected empty value for absent column, got %q", got)
	}
	if e.Has(FieldCode) {
		t.Error("absent column should not have content")
	}
}

func TestNewEntryCopiesFields(t *testing.T) {
	src := map[string]string{FieldTerm: "Bias"}
	e := NewEntry(3, src)
	src[FieldTerm] = "changed"
	if e.Term() != "Bias" {
		t.Errorf("entry shares the caller's map: term is %q", e.Term())
	}
	if e.Row != 3 {
		t.Errorf("expected row 3, got %d", e.Row)
	}
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace", "   ", nil},
		{"single", "Ethics", []string{"ethics"}},
		{"mixed case and spaces", "Ethics; Bias", []string{"ethics", "bias"}},
		{"padded", "bias ; Fairness", []string{"bias", "fairness"}},
		{"empty tokens dropped", "a;;b; ", []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEntry(0, map[string]string{FieldKeywords: tt.raw})
			if got := e.Keywords(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Keywords() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTagsKeepCase(t *testing.T) {
	e := NewEntry(0, map[string]string{FieldKeywords: " Machine Learning ;Ethics"})
	want := []string{"Machine Learning", "Ethics"}
	if got := e.Tags(); !reflect.DeepEqual(got, want) {
		t.Errorf("Tags() = %v, want %v", got, want)
	}
}

func TestClassifyCategory(t *testing.T) {
	tests := []struct {
		raw  string
		want Class
	}{
		{"", ClassDefault},
		{"Art", ClassDefault},
		{"Brain", ClassBrain},
		{"Search Engines", ClassSearch},
		{"LLM", ClassLLM},
		{"llm", ClassLLM},
		{"brain search", ClassBrain},
		{"search llm", ClassSearch},
		{"Brain; LLM", ClassMulti},
		{"Brain LLM", ClassMulti},
		{"Search; Art", ClassMulti},
	}
	for _, tt := range tests {
		if got := ClassifyCategory(tt.raw); got != tt.want {
			t.Errorf("ClassifyCategory(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestClassHexDistinct(t *testing.T) {
	seen := make(map[string]Class)
	for _, c := range []Class{ClassDefault, ClassBrain, ClassSearch, ClassLLM, ClassMulti} {
		if prev, ok := seen[c.Hex()]; ok {
			t.Errorf("%v and %v share color %s", prev, c, c.Hex())
		}
		seen[c.Hex()] = c
	}
}

func TestClassifyBadgeNeverMulti(t *testing.T) {
	if got := ClassifyBadge("Brain; LLM"); got != ClassBrain {
		t.Errorf("expected badge class brain, got %v", got)
	}
}
