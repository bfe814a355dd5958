package tagger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"snapflow/internal/catalog"
	"snapflow/internal/services"
)

var commandContext = exec.CommandContext

// TagSet is the fixed IPTC attribute mapping stamped onto every captured
// photo.
type TagSet struct {
	// ObjectName carries the article number.
	ObjectName string
	// Category carries the position code (v or h).
	Category string
	// Caption carries the article description, unsanitized.
	Caption string
	// Headline carries the color code.
	Headline string
}

// FromVariation builds the TagSet for a catalog variation.
func FromVariation(v catalog.Variation) TagSet {
	return TagSet{
		ObjectName: v.ArticleNo,
		Category:   string(v.Position),
		Caption:    v.Description,
		Headline:   v.Color,
	}
}

// Writer stamps metadata tags onto a captured file.
type Writer interface {
	Write(ctx context.Context, path string, tags TagSet) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default exiftool binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// CLI wraps the exiftool command-line metadata editor.
type CLI struct {
	binary string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "exiftool"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Write applies the tag set to path via exiftool. Failures are tagged
// recoverable (services.ErrExternalTool) and include exiftool's own output so
// the operator sees the underlying detail.
func (c *CLI) Write(ctx context.Context, path string, tags TagSet) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("target path required")
	}

	args := []string{
		"-overwrite_original",
		"-IPTC:ObjectName=" + tags.ObjectName,
		"-IPTC:Category=" + tags.Category,
		"-IPTC:Caption-Abstract=" + tags.Caption,
		"-IPTC:Headline=" + tags.Headline,
		path,
	}
	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(output.String())
		if detail == "" {
			detail = err.Error()
		}
		return services.Wrap(services.ErrExternalTool, "tagger", "write", detail, err)
	}
	return nil
}

// String renders the mapping for operator-facing error reports.
func (t TagSet) String() string {
	return fmt.Sprintf("ObjectName=%s Category=%s Caption=%s Headline=%s",
		t.ObjectName, t.Category, t.Caption, t.Headline)
}
