package namegen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"snapflow/internal/catalog"
)

// Layout selects the field order of derived filenames. Both layouts are
// external contracts: the capture software and the operator rely on pasting
// the exact string.
type Layout string

const (
	// LayoutDash produces <article>-<position>-<color>-<description>.<ext>.
	LayoutDash Layout = "dash"
	// LayoutUnderscore produces <article>_<color>_<description>_<position>.<ext>.
	LayoutUnderscore Layout = "underscore"
)

// Generator derives collision-free filenames for capture targets.
type Generator struct {
	Ext    string
	Layout Layout
}

// New returns a Generator for the given extension and layout, falling back to
// jpg and the dash layout for empty values.
func New(ext string, layout Layout) Generator {
	if ext = strings.TrimPrefix(strings.TrimSpace(ext), "."); ext == "" {
		ext = "jpg"
	}
	if layout == "" {
		layout = LayoutDash
	}
	return Generator{Ext: ext, Layout: layout}
}

// Generate derives the filename for v that does not yet exist in dir. With
// identical directory contents the same inputs always yield the same result.
// This is not a reservation: the single-operator workflow serializes calls,
// two concurrent generators against one directory could race to the same
// name.
func (g Generator) Generate(v catalog.Variation, dir string) string {
	stem := g.stem(v)
	name := stem + "." + g.Ext
	for i := 1; exists(filepath.Join(dir, name)); i++ {
		name = fmt.Sprintf("%s%s%d.%s", stem, g.delimiter(), i, g.Ext)
	}
	return name
}

func (g Generator) stem(v catalog.Variation) string {
	desc := sanitizeDescription(v.Description)
	var stem string
	switch g.Layout {
	case LayoutUnderscore:
		stem = strings.Join([]string{v.ArticleNo, v.Color, desc, string(v.Position)}, "_")
	default:
		stem = strings.Join([]string{v.ArticleNo, string(v.Position), v.Color, desc}, "-")
	}
	// NFC so the clipboard string and the filesystem event name compare
	// equal even when the OS reports decomposed names.
	return norm.NFC.String(stem)
}

func (g Generator) delimiter() string {
	if g.Layout == LayoutUnderscore {
		return "_"
	}
	return "-"
}

// sanitizeDescription makes the free-text description filename-safe: periods
// are dropped, spaces become underscores. Structured fields (article number,
// color code) are assumed already safe.
func sanitizeDescription(desc string) string {
	desc = strings.ReplaceAll(desc, ".", "")
	return strings.ReplaceAll(desc, " ", "_")
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
