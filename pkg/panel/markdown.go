package panel

import (
	"fmt"
	"strings"
)

// Markdown renders the panel for glamour.
func (p Panel) Markdown() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", p.Term)
	if len(p.Tags) > 0 {
		tags := make([]string, len(p.Tags))
		for i, t := range p.Tags {
			tags[i] = "`" + t + "`"
		}
		sb.WriteString(strings.Join(tags, " "))
		sb.WriteString("\n\n")
	}

	sb.WriteString("## CODE\n\n")
	writeCode(&sb, p.Code)

	for _, c := range p.Cards {
		fmt.Fprintf(&sb, "## %s\n\n", c.Title)
		if c.People != "" {
			fmt.Fprintf(&sb, "**%s**\n\n", c.People)
		}
		if len(c.Badges) > 0 {
			badges := make([]string, len(c.Badges))
			for i, b := range c.Badges {
				badges[i] = fmt.Sprintf("`%s` _(%s)_", b.Name, b.Class)
			}
			sb.WriteString(strings.Join(badges, " "))
			sb.WriteString("\n\n")
		}
		for _, para := range c.Paragraphs {
			sb.WriteString(para)
			sb.WriteString("\n\n")
		}
		for _, a := range c.Assets {
			writeAsset(&sb, a)
		}
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func writeCode(sb *strings.Builder, c CodeBlock) {
	switch c.Kind {
	case KindEmpty:
		fmt.Fprintf(sb, "_%s_\n\n", c.Text)
	case KindEmbed:
		if c.Media == MediaImage {
			fmt.Fprintf(sb, "![code component](%s)\n\n", c.URL)
		} else {
			fmt.Fprintf(sb, "Embedded %s: [%s](%s)\n\n", c.Media, c.URL, c.URL)
		}
		if c.Text != "" {
			fmt.Fprintf(sb, "%s\n\n", c.Text)
		}
	case KindLink:
		fmt.Fprintf(sb, "%s\n\n[Open component ↗](%s)\n\n", c.Text, c.URL)
	case KindText:
		for _, para := range Paragraphs(c.Text) {
			fmt.Fprintf(sb, "%s\n\n", para)
		}
	case KindError:
		fmt.Fprintf(sb, "> %s\n\n", c.Text)
	}
}

func writeAsset(sb *strings.Builder, a Asset) {
	if a.Missing() {
		fmt.Fprintf(sb, "> %s\n\n", a.Error)
		return
	}
	switch a.Kind {
	case MediaImage:
		fmt.Fprintf(sb, "![%s](%s)\n\n", a.Src, a.Src)
	case MediaPDF:
		fmt.Fprintf(sb, "Definition embedded as PDF: [Download PDF ↗](%s)\n\n", a.Src)
	default:
		fmt.Fprintf(sb, "%s: [%s](%s)\n\n", a.Kind, a.Src, a.Src)
	}
}
