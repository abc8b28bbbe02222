// Package model defines the glossary entry that every other package passes around.
package model

import "strings"

// Column names of the glossary dataset.
const (
	FieldTerm        = "Glossary Term"
	FieldKeywords    = "Keywords"
	FieldCategory    = "Category"
	FieldMembers     = "Group members"
	FieldDefinition  = "Term Definition"
	FieldGAI         = "Description of how the definition was developed and how GAI was engaged in the process"
	FieldRelated     = "Related code/art/media projects"
	FieldMedia       = "Project Media"
	FieldCode        = "Code Component"
	keywordSeparator = ";"
)

// Entry is one dataset row: column name -> raw cell value.
// An Entry is never mutated after loading.
type Entry struct {
	// Row is the zero-based position of the row in the dataset, header excluded.
	Row    int
	Fields map[string]string
}

// NewEntry copies fields so later changes by the caller cannot leak in.
func NewEntry(row int, fields map[string]string) Entry {
	cp := make(map[string]string, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	return Entry{Row: row, Fields: cp}
}

// Get returns the value of a column, or "" when the column is absent.
func (e Entry) Get(field string) string {
	if e.Fields == nil {
		return ""
	}
	return e.Fields[field]
}

// Has reports whether a column carries non-whitespace content.
func (e Entry) Has(field string) bool {
	return HasContent(e.Get(field))
}

// Term is the glossary term name.
func (e Entry) Term() string { return e.Get(FieldTerm) }

// Keywords returns the Keywords column split on ";", trimmed and lower-cased.
// Empty tokens are kept out so "a;;b" yields two tokens.
func (e Entry) Keywords() []string {
	return SplitTokens(e.Get(FieldKeywords), true)
}

// Tags returns the display form of the keywords: trimmed, original case.
func (e Entry) Tags() []string {
	return SplitTokens(e.Get(FieldKeywords), false)
}

// Categories returns the trimmed, non-empty category names.
func (e Entry) Categories() []string {
	return SplitTokens(e.Get(FieldCategory), false)
}

// HasContent reports whether s has anything besides whitespace.
func HasContent(s string) bool {
	return strings.TrimSpace(s) != ""
}

// SplitTokens splits a ";"-delimited cell into trimmed, non-empty tokens.
func SplitTokens(raw string, lower bool) []string {
	if !HasContent(raw) {
		return nil
	}
	parts := strings.Split(raw, keywordSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if lower {
			p = strings.ToLower(p)
		}
		out = append(out, p)
	}
	return out
}
