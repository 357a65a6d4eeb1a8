package ui

import (
	"fmt"
	"html/template"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// renderAbout converts the embedded about notes to HTML once at
// startup; the result is reused on every index render.
func renderAbout() (template.HTML, error) {
	source, err := embeddedFiles.ReadFile("about.md")
	if err != nil {
		return "", fmt.Errorf("failed to read about notes: %w", err)
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})

	return template.HTML(markdown.ToHTML(source, p, renderer)), nil
}
