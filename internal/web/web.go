package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates/*.html
var templateFS embed.FS

// Link is an external profile link shown in the sidebar.
type Link struct {
	Label string
	URL   string
}

type Sidebar struct {
	About string
	Links []Link
}

type PageData struct {
	Resume         string
	JobDescription string
	Warning        string
	Feedback       template.HTML
	HasFeedback    bool
	Visitors       string
	Sidebar        Sidebar
}

type Renderer struct {
	page     *template.Template
	markdown goldmark.Markdown
}

func NewRenderer() (*Renderer, error) {
	page, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	return &Renderer{
		page:     page,
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}, nil
}

// RenderPage executes the page template into a byte slice so a failed render
// never leaves a half written response.
func (r *Renderer) RenderPage(data PageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.page.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}
	return buf.Bytes(), nil
}

// Markdown converts model output to HTML. Raw HTML in the source is dropped
// by goldmark's default renderer.
func (r *Renderer) Markdown(source string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// NewSidebar keeps only the links that have a URL.
func NewSidebar(about string, links ...Link) Sidebar {
	sidebar := Sidebar{About: about}
	for _, link := range links {
		if link.URL != "" {
			sidebar.Links = append(sidebar.Links, link)
		}
	}
	return sidebar
}
