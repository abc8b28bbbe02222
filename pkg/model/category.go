package model

import "strings"

// Class is the color classification derived from an entry's Category.
type Class int

const (
	ClassDefault Class = iota
	ClassBrain
	ClassSearch
	ClassLLM
	// ClassMulti marks entries filed under several categories, or under both
	// brain and llm at once.
	ClassMulti
)

func (c Class) String() string {
	switch c {
	case ClassBrain:
		return "brain"
	case ClassSearch:
		return "search"
	case ClassLLM:
		return "llm"
	case ClassMulti:
		return "multi"
	default:
		return "default"
	}
}

// Hex is the fill color used for the class on every canvas.
func (c Class) Hex() string {
	switch c {
	case ClassBrain:
		return "#008060"
	case ClassSearch:
		return "#0055cc"
	case ClassLLM:
		return "#cc3300"
	case ClassMulti:
		return "#323232"
	default:
		return "#646464"
	}
}

// ClassifyCategory maps a raw Category cell to its class. First match wins
// among brain, search and llm; the multi-category override is checked last
// and beats the primary result.
func ClassifyCategory(raw string) Class {
	cat := strings.ToLower(raw)
	class := primaryClass(cat)
	if strings.Contains(cat, keywordSeparator) ||
		(strings.Contains(cat, "brain") && strings.Contains(cat, "llm")) {
		class = ClassMulti
	}
	return class
}

// ClassifyBadge classifies a single category name for panel badges. Unlike
// ClassifyCategory it never yields ClassMulti.
func ClassifyBadge(name string) Class {
	return primaryClass(strings.ToLower(name))
}

func primaryClass(lower string) Class {
	switch {
	case strings.Contains(lower, "brain"):
		return ClassBrain
	case strings.Contains(lower, "search"):
		return ClassSearch
	case strings.Contains(lower, "llm"):
		return ClassLLM
	default:
		return ClassDefault
	}
}

// Class is the classification of the entry's Category column.
func (e Entry) Class() Class {
	return ClassifyCategory(e.Get(FieldCategory))
}
