package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"snapflow/internal/services"
)

var articleHeader = []string{"Kollektion", "ArtikelNr", "Bezeichnung", "Farbe", "Farbname", "Artikelart", "Vorne", "Hinten"}

func TestBuildSkipsRowsBeforeHeader(t *testing.T) {
	rows := [][]string{
		{"Some export title"},
		{"", "", ""},
		articleHeader,
		{"C1", "A1", "Desc", "01", "Red", "Cat", "x", ""},
	}
	c, err := build(rows)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	vars, ok := c.Lookup("A1")
	if !ok || len(vars) != 1 {
		t.Fatalf("Lookup(A1) = %v, %v", vars, ok)
	}
	if vars[0].Position != PositionFront {
		t.Errorf("position = %q, want front", vars[0].Position)
	}
	if vars[0].Collection != "C1" || vars[0].Color != "01" || vars[0].ColorName != "Red" || vars[0].Category != "Cat" {
		t.Errorf("unexpected article fields: %+v", vars[0].Article)
	}
}

func TestBuildWithoutHeaderYieldsEmptyCatalog(t *testing.T) {
	rows := [][]string{
		{"C1", "A1", "Desc", "01", "Red", "Cat", "x", ""},
	}
	c, err := build(rows)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if stats := c.Stats(); stats.Articles != 0 || stats.Variations != 0 {
		t.Fatalf("expected empty catalog, got %+v", stats)
	}
}

func TestBuildExpandsBackPosition(t *testing.T) {
	rows := [][]string{
		articleHeader,
		{"C1", "A1", "Jacket", "02", "Blue", "Cat", "x", "x"},
	}
	c, err := build(rows)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	vars, _ := c.Lookup("A1")
	if len(vars) != 2 {
		t.Fatalf("expected 2 variations, got %d", len(vars))
	}
	if vars[0].Position != PositionFront || vars[1].Position != PositionBack {
		t.Errorf("positions = %q, %q; want front, back", vars[0].Position, vars[1].Position)
	}
}

func TestBuildAccumulatesSharedArticleKey(t *testing.T) {
	rows := [][]string{
		articleHeader,
		{"C1", "A1", "Shirt", "01", "Red", "Cat", "x", ""},
		{"C1", "A1", "Shirt", "02", "Blue", "Cat", "x", ""},
	}
	c, err := build(rows)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	vars, _ := c.Lookup("A1")
	if len(vars) != 2 {
		t.Fatalf("expected accumulated variations, got %d", len(vars))
	}
	if vars[0].Color != "01" || vars[1].Color != "02" {
		t.Errorf("row order lost: %q, %q", vars[0].Color, vars[1].Color)
	}
	if stats := c.Stats(); stats.Articles != 1 || stats.Variations != 2 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestBuildIdentitySchemaRejectsDuplicates(t *testing.T) {
	rows := [][]string{
		{"Blatt", "IdentNr", "ArtikelNr", "FarbNr", "Bezeichnung"},
		{"1", "1001", "A1", "05", "Shirt"},
		{"1", "1001", "A2", "06", "Jacket"},
	}
	_, err := build(rows)
	if err == nil {
		t.Fatal("expected duplicate key error")
	}
	if !errors.Is(err, services.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestBuildIdentitySchemaLookup(t *testing.T) {
	rows := [][]string{
		{"Blatt", "IdentNr", "ArtikelNr", "FarbNr", "Bezeichnung"},
		{"1", "1001", "A1", "05", "Shirt"},
	}
	c, err := build(rows)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	vars, ok := c.Lookup("1001")
	if !ok || len(vars) != 1 {
		t.Fatalf("Lookup(1001) = %v, %v", vars, ok)
	}
	v := vars[0]
	if v.ArticleNo != "A1" || v.Color != "05" || v.Description != "Shirt" || v.Position != PositionFront {
		t.Errorf("unexpected variation: %+v", v)
	}
}

func TestLookupTrimsKey(t *testing.T) {
	rows := [][]string{
		articleHeader,
		{"C1", "A1", "Shirt", "01", "Red", "Cat", "x", ""},
	}
	c, err := build(rows)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, ok := c.Lookup("  A1  "); !ok {
		t.Error("expected trimmed lookup to succeed")
	}
	if _, ok := c.Lookup("A2"); ok {
		t.Error("expected miss for unknown key")
	}
}

func TestVariationsDeterministicOrder(t *testing.T) {
	rows := [][]string{
		articleHeader,
		{"C1", "B2", "Shirt", "10", "Red", "Cat", "x", ""},
		{"C1", "A1", "Shirt", "2", "Blue", "Cat", "x", ""},
		{"C1", "A1", "Shirt", "10", "Green", "Cat", "x", ""},
	}
	c, err := build(rows)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	all := c.Variations()
	if len(all) != 3 {
		t.Fatalf("expected 3 variations, got %d", len(all))
	}
	if all[0].ArticleNo != "A1" || all[1].ArticleNo != "A1" || all[2].ArticleNo != "B2" {
		t.Fatalf("article order wrong: %v", all)
	}
	// Numeric color ordering: 2 before 10.
	if all[0].Color != "2" || all[1].Color != "10" {
		t.Errorf("color order wrong: %q, %q", all[0].Color, all[1].Color)
	}
}

func TestLoadCSVRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "articles.csv")
	body := "Export,,,,,,,\n" +
		"Kollektion,ArtikelNr,Bezeichnung,Farbe,Farbname,Artikelart,Vorne,Hinten\n" +
		"C1,A1,Red Shirt.,05,Red,Cat,x,\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	vars, ok := c.Lookup("A1")
	if !ok || len(vars) != 1 {
		t.Fatalf("Lookup(A1) = %v, %v", vars, ok)
	}
	if vars[0].Description != "Red Shirt." || vars[0].Color != "05" {
		t.Errorf("unexpected variation: %+v", vars[0])
	}
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "articles.ods")); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
