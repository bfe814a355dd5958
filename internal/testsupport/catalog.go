package testsupport

import (
	"path/filepath"
	"strings"
	"testing"

	"snapflow/internal/catalog"
)

// CatalogRow is one data row of the article-keyed catalog schema.
type CatalogRow struct {
	Collection  string
	ArticleNo   string
	Description string
	Color       string
	ColorName   string
	Category    string
	HasBack     bool
}

// BuildCatalog writes a CSV fixture for the given rows into a temp directory
// and loads it, returning the built catalog.
func BuildCatalog(t testing.TB, rows ...CatalogRow) *catalog.Catalog {
	t.Helper()

	var b strings.Builder
	b.WriteString("Kollektion,ArtikelNr,Bezeichnung,Farbe,Farbname,Artikelart,Vorne,Hinten\n")
	for _, row := range rows {
		back := ""
		if row.HasBack {
			back = "x"
		}
		b.WriteString(strings.Join([]string{
			row.Collection, row.ArticleNo, row.Description, row.Color,
			row.ColorName, row.Category, "x", back,
		}, ","))
		b.WriteByte('\n')
	}

	path := filepath.Join(t.TempDir(), "articles.csv")
	WriteFile(t, path, []byte(b.String()))

	c, err := catalog.Load(path)
	if err != nil {
		t.Fatalf("load catalog fixture: %v", err)
	}
	return c
}
