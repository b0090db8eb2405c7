// Package notes reads markdown session-note sidecars that sit next to
// recording files. A notes file carries YAML frontmatter with
// free-form annotations plus markdown sections; the annotations can be
// stamped onto every object imported from the same directory.
package notes

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/meredith/spikekit/internal/neuro"
)

// DefaultFileName is the sidecar file looked up next to recordings.
const DefaultFileName = "notes.md"

// Notes is the parsed content of one session-note file.
type Notes struct {
	// Annotations holds the frontmatter keys plus any key: value list
	// items under an "Annotations" heading.
	Annotations map[string]any
	// Sections maps second-level heading titles to their raw text.
	Sections map[string]string
}

type Parser struct {
	markdown goldmark.Markdown
}

func NewParser() *Parser {
	return &Parser{markdown: goldmark.New()}
}

// Parse reads a notes document from raw markdown bytes.
func (p *Parser) Parse(content []byte) (*Notes, error) {
	notes := &Notes{
		Annotations: map[string]any{},
		Sections:    map[string]string{},
	}

	body, frontmatter := extractFrontmatter(content)
	if frontmatter != nil {
		if err := yaml.Unmarshal(frontmatter, &notes.Annotations); err != nil {
			return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
		}
	}

	doc := p.markdown.Parser().Parse(text.NewReader(body))

	var section string
	var buf strings.Builder
	flush := func() {
		if section != "" {
			notes.Sections[section] = strings.TrimSpace(buf.String())
		}
		buf.Reset()
	}

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if heading, ok := n.(*ast.Heading); ok && heading.Level == 2 {
			flush()
			section = string(nodeText(heading, body))
			return ast.WalkSkipChildren, nil
		}
		if section == "" {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *ast.Paragraph, *ast.TextBlock:
			buf.WriteString(string(nodeText(n, body)))
			buf.WriteString("\n")
			return ast.WalkSkipChildren, nil
		case *ast.ListItem:
			line := string(nodeText(n, body))
			buf.WriteString(line)
			buf.WriteString("\n")
			if strings.EqualFold(section, "annotations") {
				if key, value, ok := splitAnnotation(line); ok {
					notes.Annotations[key] = value
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk notes document: %w", err)
	}
	flush()

	return notes, nil
}

// Load parses a notes file from disk.
func Load(path string) (*Notes, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read notes file: %w", err)
	}
	return NewParser().Parse(content)
}

// Find returns the parsed sidecar for a recording directory, or nil if
// the directory has none.
func Find(dir string) (*Notes, error) {
	path := filepath.Join(dir, DefaultFileName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return Load(path)
}

// Apply stamps every annotation onto every object reachable from
// container. Keys absent from an object are created as annotations.
func (n *Notes) Apply(container any) error {
	for key, value := range n.Annotations {
		if err := neuro.SetAllAttrs(container, key, value, true); err != nil {
			return err
		}
	}
	return nil
}

// extractFrontmatter splits leading YAML frontmatter (between ---
// lines) from the markdown body. Without a complete frontmatter block
// the content is returned unchanged.
func extractFrontmatter(content []byte) ([]byte, []byte) {
	lines := bytes.Split(content, []byte("\n"))
	if len(lines) < 3 || !bytes.Equal(bytes.TrimSpace(lines[0]), []byte("---")) {
		return content, nil
	}
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			frontmatter := bytes.Join(lines[1:i], []byte("\n"))
			body := bytes.Join(lines[i+1:], []byte("\n"))
			return body, frontmatter
		}
	}
	return content, nil
}

func nodeText(n ast.Node, source []byte) []byte {
	var buf bytes.Buffer
	collectText(n, source, &buf)
	return bytes.TrimSpace(buf.Bytes())
}

func collectText(n ast.Node, source []byte, buf *bytes.Buffer) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
			continue
		}
		collectText(child, source, buf)
	}
}

// splitAnnotation parses a "key: value" list item.
func splitAnnotation(line string) (string, string, bool) {
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if key == "" || strings.Contains(key, " ") {
		return "", "", false
	}
	return key, value, true
}
