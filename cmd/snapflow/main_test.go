package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"snapflow/internal/services"
	"snapflow/internal/testsupport"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeCatalogFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "articles.csv")
	body := "Kollektion,ArtikelNr,Bezeichnung,Farbe,Farbname,Artikelart,Vorne,Hinten\n" +
		"C1,A1,Red Shirt.,05,Red,Shirts,x,\n" +
		"C1,A2,Jacket,02,Blue,Jackets,x,x\n"
	testsupport.WriteFile(t, path, []byte(body))
	return path
}

func TestCatalogStatsCommand(t *testing.T) {
	out, err := execute(t, "catalog", "stats", "--catalog", writeCatalogFixture(t))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "Articles") || !strings.Contains(out, "2") {
		t.Errorf("unexpected stats output:\n%s", out)
	}
	if !strings.Contains(out, "3") {
		t.Errorf("expected 3 variations in output:\n%s", out)
	}
}

func TestCatalogShowCommand(t *testing.T) {
	out, err := execute(t, "catalog", "show", "A2", "--catalog", writeCatalogFixture(t))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "front") || !strings.Contains(out, "back") {
		t.Errorf("expected both positions in output:\n%s", out)
	}
}

func TestCatalogShowUnknownKey(t *testing.T) {
	_, err := execute(t, "catalog", "show", "ZZ", "--catalog", writeCatalogFixture(t))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestResolveCatalogPathMissingFile(t *testing.T) {
	flag := ""
	ctx := newCommandContext(&flag)
	_, err := ctx.resolveCatalogPath(filepath.Join(t.TempDir(), "absent.csv"))
	if err == nil || !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestResolveCatalogPathRejectsDirectory(t *testing.T) {
	flag := ""
	ctx := newCommandContext(&flag)
	_, err := ctx.resolveCatalogPath(t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "directory") {
		t.Fatalf("expected directory rejection, got %v", err)
	}
}

func TestConfigInitCommand(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	out, err := execute(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, target) {
		t.Errorf("unexpected output: %s", out)
	}
	body, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(body), "watch_dir") {
		t.Errorf("sample config incomplete:\n%s", body)
	}

	// A second init without --overwrite must refuse.
	if _, err := execute(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error for existing config")
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable([]string{"A", "B"}, [][]string{{"only"}})
	if !strings.Contains(out, "only") {
		t.Fatalf("row content missing:\n%s", out)
	}
}
