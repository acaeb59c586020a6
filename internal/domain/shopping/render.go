package shopping

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"
)

//go:embed shopping_list.tmpl
var defaultTemplate string

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer(text string) (*Renderer, error) {
	if strings.TrimSpace(text) == "" {
		text = defaultTemplate
	}
	tmpl, err := template.New("shopping_list").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse shopping list template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// NewRendererFromFile loads the template at path, or the built-in one when
// path is empty.
func NewRendererFromFile(path string) (*Renderer, error) {
	if path == "" {
		return NewRenderer("")
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read shopping list template: %w", err)
	}
	return NewRenderer(string(contents))
}

// Render executes the template and normalizes the output: blank lines are
// dropped and trailing whitespace is trimmed from every line.
func (r *Renderer) Render(items []Item) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, struct{ Items []Item }{Items: items}); err != nil {
		return nil, fmt.Errorf("render shopping list: %w", err)
	}

	lines := strings.Split(buf.String(), "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			continue
		}
		kept = append(kept, line)
	}
	return []byte(strings.Join(kept, "\n")), nil
}
