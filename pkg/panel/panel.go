// Package panel turns a selected glossary entry into detail-panel content.
//
// Build is a pure decision table over the entry's columns. The only outside
// input is a Resolver that says whether a local media file exists; the UI
// renders the result through Panel.Markdown and glamour.
package panel

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/vanderheijden86/glossnet/pkg/model"
)

// MediaPrefix is prepended to local media names.
const MediaPrefix = "media/"

// Kind is how the code block is presented.
type Kind int

const (
	KindEmpty Kind = iota // no code component at all
	KindEmbed             // embeddable URL or image
	KindLink              // URL that can only be opened externally
	KindText              // free text without a URL
	KindError             // a local image that is not on disk
)

func (k Kind) String() string {
	switch k {
	case KindEmbed:
		return "embed"
	case KindLink:
		return "link"
	case KindText:
		return "text"
	case KindError:
		return "error"
	default:
		return "empty"
	}
}

// MediaKind classifies an embedded asset.
type MediaKind int

const (
	MediaImage MediaKind = iota
	MediaVideo
	MediaFrame
	MediaPDF
)

func (m MediaKind) String() string {
	switch m {
	case MediaVideo:
		return "video"
	case MediaFrame:
		return "frame"
	case MediaPDF:
		return "pdf"
	default:
		return "image"
	}
}

// Placeholder texts shown in the panel.
const (
	NoCodeSignal   = "NO CODE SIGNAL"
	ExternalLinked = "Interactive component available via external link."
)

// CodeBlock is the top block of the panel.
type CodeBlock struct {
	Kind  Kind
	Media MediaKind // for KindEmbed
	URL   string
	Text  string
}

// Asset is one embedded file. A missing asset carries its error text.
type Asset struct {
	Kind  MediaKind
	Src   string
	Error string
}

// Missing reports whether the asset failed to resolve.
func (a Asset) Missing() bool { return a.Error != "" }

// Badge is a category chip on the contributors card.
type Badge struct {
	Name  string
	Class model.Class
}

// Card is one titled section below the code block.
type Card struct {
	Title      string
	People     string
	Badges     []Badge
	Paragraphs []string // markdown, URLs already linkified
	Assets     []Asset
}

// Panel is everything shown for a selected entry.
type Panel struct {
	Term  string
	Tags  []string
	Code  CodeBlock
	Cards []Card
}

// Resolver reports whether a local media file exists.
type Resolver interface {
	Exists(name string) bool
}

// DirResolver resolves media names against a directory on disk.
type DirResolver string

func (d DirResolver) Exists(name string) bool {
	if d == "" {
		return true
	}
	_, err := os.Stat(filepath.Join(string(d), filepath.FromSlash(name)))
	return err == nil
}

// Card titles, in display order.
const (
	TitleContributors = "CONTRIBUTORS"
	TitleDefinition   = "DEFINITION"
	TitleGAI          = "GAI ENGAGEMENT"
	TitleRelated      = "RELATED PROJECTS"
	TitleMedia        = "PROJECT MEDIA"
)

var (
	codeURLRe   = regexp.MustCompile(`https?://[^\s]+`)
	linkRe      = regexp.MustCompile(`(?i)\b(?:https?|ftp|file)://[-A-Z0-9+&@#/%?=~_|!:,.;]*[-A-Z0-9+&@#/%=~_|]`)
	imageExtRe  = regexp.MustCompile(`(?i)\.(jpeg|jpg|gif|png)$`)
	videoExtRe  = regexp.MustCompile(`(?i)\.(mp4|webm|mov)$`)
	embedHosts  = []string{"editor.p5js.org", "youtube.com", "vimeo.com"}
	noResolving = DirResolver("")
)

// Build assembles the panel for an entry. Absent columns read as empty, so
// Build never fails.
func Build(e model.Entry, r Resolver) Panel {
	if r == nil {
		r = noResolving
	}
	p := Panel{
		Term: e.Term(),
		Tags: e.Tags(),
		Code: buildCode(e.Get(model.FieldCode), r),
	}

	if e.Has(model.FieldMembers) {
		c := Card{Title: TitleContributors, People: strings.TrimSpace(e.Get(model.FieldMembers))}
		for _, name := range e.Categories() {
			c.Badges = append(c.Badges, Badge{Name: name, Class: model.ClassifyBadge(name)})
		}
		p.Cards = append(p.Cards, c)
	}
	if e.Has(model.FieldDefinition) {
		p.Cards = append(p.Cards, definitionCard(e.Get(model.FieldDefinition), r))
	}
	if e.Has(model.FieldGAI) {
		p.Cards = append(p.Cards, Card{Title: TitleGAI, Paragraphs: Paragraphs(e.Get(model.FieldGAI))})
	}
	if e.Has(model.FieldRelated) {
		p.Cards = append(p.Cards, Card{Title: TitleRelated, Paragraphs: linkifyAll(Paragraphs(e.Get(model.FieldRelated)))})
	}
	if e.Has(model.FieldMedia) {
		c := Card{Title: TitleMedia}
		for _, name := range model.SplitTokens(e.Get(model.FieldMedia), false) {
			c.Assets = append(c.Assets, mediaAsset(name, r))
		}
		p.Cards = append(p.Cards, c)
	}
	return p
}

func buildCode(raw string, r Resolver) CodeBlock {
	if !model.HasContent(raw) {
		return CodeBlock{Kind: KindEmpty, Text: NoCodeSignal}
	}
	url := codeURLRe.FindString(raw)
	desc := strings.TrimSpace(codeURLRe.ReplaceAllString(raw, ""))

	switch {
	case url != "" && Embeddable(url):
		media := MediaFrame
		if imageExtRe.MatchString(url) {
			media = MediaImage
		}
		return CodeBlock{Kind: KindEmbed, Media: media, URL: url, Text: desc}
	case url != "":
		if desc == "" {
			desc = ExternalLinked
		}
		return CodeBlock{Kind: KindLink, URL: url, Text: desc}
	}

	// A bare image file name refers to the media folder.
	name := strings.TrimSpace(raw)
	if !strings.ContainsAny(name, " \t\n") && imageExtRe.MatchString(name) {
		src := MediaPrefix + name
		if !r.Exists(name) {
			return CodeBlock{Kind: KindError, Media: MediaImage, URL: src,
				Text: "ERROR: Code Image not found at " + src + ". Check media folder case/path."}
		}
		return CodeBlock{Kind: KindEmbed, Media: MediaImage, URL: src}
	}
	return CodeBlock{Kind: KindText, Text: raw}
}

// Embeddable reports whether a URL can be shown inline.
func Embeddable(url string) bool {
	for _, h := range embedHosts {
		if strings.Contains(url, h) {
			return true
		}
	}
	return imageExtRe.MatchString(url)
}

func definitionCard(def string, r Resolver) Card {
	lower := strings.ToLower(strings.TrimSpace(def))
	if strings.HasSuffix(lower, ".pdf") && !strings.HasPrefix(lower, "http") {
		name := strings.TrimSpace(def)
		a := Asset{Kind: MediaPDF, Src: MediaPrefix + name}
		if !r.Exists(name) {
			a.Error = "ERROR: Local PDF not found at " + a.Src + ". Check media folder case/path."
		}
		return Card{Title: TitleDefinition, Assets: []Asset{a}}
	}
	return Card{Title: TitleDefinition, Paragraphs: linkifyAll(Paragraphs(def))}
}

func mediaAsset(name string, r Resolver) Asset {
	a := Asset{Kind: MediaImage, Src: name}
	if videoExtRe.MatchString(name) {
		a.Kind = MediaVideo
	}
	if strings.HasPrefix(name, "http") {
		return a
	}
	a.Src = MediaPrefix + name
	if !r.Exists(name) {
		a.Error = "ERROR: Media file not found at " + a.Src + ". Check media folder case/path."
	}
	return a
}

// Paragraphs splits text on newlines and drops blank lines.
func Paragraphs(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// Linkify turns bare URLs into markdown links.
func Linkify(text string) string {
	return linkRe.ReplaceAllStringFunc(text, func(u string) string {
		return "[" + u + "](" + u + ")"
	})
}

func linkifyAll(ps []string) []string {
	for i, p := range ps {
		ps[i] = Linkify(p)
	}
	return ps
}

// Links returns every URL the panel points at, code block first.
func (p Panel) Links() []string {
	var out []string
	if p.Code.URL != "" && strings.HasPrefix(p.Code.URL, "http") {
		out = append(out, p.Code.URL)
	}
	for _, c := range p.Cards {
		for _, para := range c.Paragraphs {
			for _, u := range linkRe.FindAllString(para, -1) {
				if !contains(out, u) {
					out = append(out, u)
				}
			}
		}
		for _, a := range c.Assets {
			if strings.HasPrefix(a.Src, "http") && !contains(out, a.Src) {
				out = append(out, a.Src)
			}
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
