package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	mdparser "github.com/gomarkdown/markdown/parser"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/bibloom-cli/internal/utils"
)

// Output formats accepted by --format.
const (
	formatMarkdown = "markdown"
	formatJSON     = "json"
	formatYAML     = "yaml"
	formatHTML     = "html"
)

func resolveFormat(flag string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(flag))
	if f == "" && cfg != nil {
		f = strings.ToLower(cfg.OutputFormat)
	}
	switch f {
	case "", "md", formatMarkdown:
		return formatMarkdown, nil
	case formatJSON, formatYAML, formatHTML:
		return f, nil
	case "yml":
		return formatYAML, nil
	}
	return "", fmt.Errorf("unsupported --format: %s (use markdown|json|yaml|html)", flag)
}

// render encodes v in format; md supplies the Markdown form.
func render(format string, v any, md func() string) ([]byte, error) {
	switch format {
	case formatJSON:
		b, err := utils.PrettyJSON(v)
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case formatYAML:
		b, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal yaml: %w", err)
		}
		return b, nil
	case formatHTML:
		return markdownToHTML(md()), nil
	}
	return []byte(md()), nil
}

// markdownToHTML renders report Markdown as a standalone HTML body. Bracketed
// section headers are promoted to headings.
func markdownToHTML(md string) []byte {
	var b strings.Builder
	for _, line := range strings.Split(md, "\n") {
		t := strings.TrimSpace(line)
		if strings.HasPrefix(t, "[") && strings.HasSuffix(t, "]") && len(t) > 2 {
			b.WriteString("\n## ")
			b.WriteString(t[1 : len(t)-1])
			b.WriteString("\n\n")
			continue
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	p := mdparser.NewWithExtensions(mdparser.CommonExtensions)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(b.String()), p, r)
}

// emit writes data to path when set, otherwise to w.
func emit(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	if err := utils.SafeWriteFile(path, data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(w, "✓ Wrote %s\n", path)
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
