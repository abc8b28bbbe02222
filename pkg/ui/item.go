package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"github.com/vanderheijden86/glossnet/pkg/model"
	"github.com/vanderheijden86/glossnet/pkg/network"
)

// TermItem wraps a glossary entry to implement list.Item
type TermItem struct {
	Entry  model.Entry
	Degree int // number of keyword connections
}

func (i TermItem) Title() string {
	return i.Entry.Term()
}

func (i TermItem) Description() string {
	return strings.Join(i.Entry.Tags(), " · ")
}

// FilterValue matches on the term, its keywords and its categories.
func (i TermItem) FilterValue() string {
	var sb strings.Builder
	sb.WriteString(i.Entry.Term())
	for _, tag := range i.Entry.Tags() {
		sb.WriteString(" ")
		sb.WriteString(tag)
	}
	for _, cat := range i.Entry.Categories() {
		sb.WriteString(" ")
		sb.WriteString(cat)
	}
	return sb.String()
}

// itemsFromNodes lists the session's nodes in creation order.
func itemsFromNodes(nodes []*network.Node) []list.Item {
	items := make([]list.Item, len(nodes))
	for i, n := range nodes {
		items[i] = TermItem{Entry: n.Entry, Degree: len(n.Connections())}
	}
	return items
}
