package contact

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Renderer loads HTML mail templates from a directory and substitutes
// {{KEY}} placeholders. Templates are read from disk per render, so edits
// take effect without a restart.
type Renderer struct {
	dir string
}

func NewRenderer(dir string) *Renderer {
	return &Renderer{dir: dir}
}

func (r *Renderer) Render(name string, data map[string]string) (string, error) {
	raw, err := os.ReadFile(filepath.Join(r.dir, name+".html"))
	if err != nil {
		return "", fmt.Errorf("contact: failed to read template %s: %w", name, err)
	}

	return substitute(string(raw), data), nil
}

// substitute replaces every {{KEY}} token present in data in a single pass.
// Unmatched placeholders are left verbatim.
func substitute(tpl string, data map[string]string) string {
	var b strings.Builder
	b.Grow(len(tpl))

	for {
		open := strings.Index(tpl, "{{")
		if open < 0 {
			b.WriteString(tpl)
			return b.String()
		}

		end := strings.Index(tpl[open+2:], "}}")
		if end < 0 {
			b.WriteString(tpl)
			return b.String()
		}
		end += open + 2

		key := tpl[open+2 : end]
		b.WriteString(tpl[:open])

		if value, ok := data[key]; ok {
			b.WriteString(value)
		} else {
			b.WriteString(tpl[open : end+2])
		}

		tpl = tpl[end+2:]
	}
}
