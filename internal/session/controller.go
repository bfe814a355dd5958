package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"snapflow/internal/catalog"
	"snapflow/internal/clipboard"
	"snapflow/internal/logging"
	"snapflow/internal/namegen"
	"snapflow/internal/services"
	"snapflow/internal/tagger"
)

var (
	infoColor    = color.New(color.FgGreen)
	noticeColor  = color.New(color.FgYellow)
	problemColor = color.New(color.FgRed)
)

// Controller drives the interactive capture loop: select an article, derive a
// filename, hand it to the clipboard, wait for the photo, stamp its metadata,
// repeat.
type Controller struct {
	Catalog   *catalog.Catalog
	Generator namegen.Generator
	Watch     Watch
	Board     clipboard.Board
	Tagger    tagger.Writer
	Prompter  Prompter
	Logger    *slog.Logger
	WatchDir  string
	Out       io.Writer
}

// Run executes the session until the operator enters an empty article number
// or the context is cancelled. Both are clean exits; only wiring failures
// return an error.
func (c *Controller) Run(ctx context.Context) error {
	logger := logging.NewComponentLogger(c.Logger, "session")
	logger = logging.WithContext(ctx, logger)

	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprintln(c.Out)
		fmt.Fprintln(c.Out, strings.Repeat("=", 80))

		key, err := c.Prompter.Ask(ctx, "ArtikelNr")
		if err != nil {
			return promptErr(err)
		}
		if key == "" {
			logger.Info("session ended by operator")
			return nil
		}

		vars, ok := c.Catalog.Lookup(key)
		if !ok {
			problemColor.Fprintf(c.Out, "Article %q not found.\n", key)
			logger.Debug("lookup miss", logging.Args(logging.String(logging.FieldArticleNo, key))...)
			continue
		}

		chosen, err := c.selectVariations(ctx, vars)
		if err != nil {
			return promptErr(err)
		}
		if chosen == nil {
			continue
		}

		articleCtx := services.WithArticle(ctx, vars[0].ArticleNo)
		if err := c.processVariations(articleCtx, chosen); err != nil {
			return promptErr(err)
		}
	}
}

// selectVariations presents the lookup result and returns the variations to
// process: all of them on an empty or "a" answer, a single one on a valid
// index. A nil, nil return sends the session back to article selection.
func (c *Controller) selectVariations(ctx context.Context, vars []catalog.Variation) ([]catalog.Variation, error) {
	fmt.Fprintln(c.Out, variationTable(vars))
	for {
		answer, err := c.Prompter.Ask(ctx, fmt.Sprintf("Variation [Enter=all, 1-%d, q=back]", len(vars)))
		if err != nil {
			return nil, err
		}
		switch strings.ToLower(answer) {
		case "", "a", "all":
			return vars, nil
		case "q":
			return nil, nil
		}
		index, err := strconv.Atoi(answer)
		if err != nil || index < 1 || index > len(vars) {
			problemColor.Fprintf(c.Out, "Invalid selection %q.\n", answer)
			continue
		}
		return vars[index-1 : index], nil
	}
}

// processVariations runs the capture/tag cycle for each chosen variation,
// honoring the operator's repeat/advance/abort choices.
func (c *Controller) processVariations(ctx context.Context, vars []catalog.Variation) error {
	for i := 0; i < len(vars); {
		v := vars[i]
		noticeColor.Fprintf(c.Out, "\n[%d/%d] %s %s (%s, color %s)\n",
			i+1, len(vars), v.ArticleNo, v.Description, v.Position.Label(), v.Color)

		captureErr := c.capture(ctx, v)
		if ctx.Err() != nil {
			return nil
		}

		var label string
		if captureErr != nil {
			problemColor.Fprintf(c.Out, "Capture failed: %v\n", captureErr)
			logging.WithContext(ctx, logging.NewComponentLogger(c.Logger, "session")).
				Warn("capture step failed", logging.Args(logging.Error(captureErr))...)
			label = "Retry [r=retry, Enter=next, q=back to article]"
		} else {
			label = "Done [Enter=next, r=repeat, q=back to article]"
		}

		answer, err := c.Prompter.Ask(ctx, label)
		if err != nil {
			return err
		}
		switch strings.ToLower(answer) {
		case "r":
			// Re-run the same variation; name generation picks a fresh
			// disambiguated filename on its own.
		case "q":
			return nil
		default:
			i++
		}
	}
	return nil
}

// capture performs one AwaitCapture/TagMetadata cycle. The ordering is a
// correctness requirement: the clipboard holds the final name before the
// watch is armed, and the watch is armed before the operator is told to
// paste.
func (c *Controller) capture(ctx context.Context, v catalog.Variation) error {
	logger := logging.WithContext(ctx, logging.NewComponentLogger(c.Logger, "session"))

	name := c.Generator.Generate(v, c.WatchDir)

	if err := c.Board.Set(name); err != nil {
		return err
	}

	pending, err := c.Watch.Arm(c.WatchDir, name)
	if err != nil {
		return err
	}
	defer pending.Disarm()

	infoColor.Fprintf(c.Out, "Filename %q copied to clipboard. Paste it in the capture software and take the photo.\n", name)
	logger.Info("awaiting capture",
		logging.Args(
			logging.String(logging.FieldFilename, name),
			logging.String(logging.FieldPosition, string(v.Position)),
		)...)

	if err := pending.Wait(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("wait for %s: %w", name, err)
	}

	path := filepath.Join(c.WatchDir, name)
	if err := c.Tagger.Write(ctx, path, tagger.FromVariation(v)); err != nil {
		return err
	}

	infoColor.Fprintf(c.Out, "Photo %q tagged.\n", name)
	logger.Info("capture tagged", logging.Args(logging.String(logging.FieldFilename, name))...)
	return nil
}

// promptErr converts clean prompt terminations (EOF, interrupt) into a nil
// session result.
func promptErr(err error) error {
	if err == nil || errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
