package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
)

var promptColor = color.New(color.Bold)

// TerminalPrompter reads operator answers line by line from a terminal. A
// single background goroutine owns the reader so cancelled prompts never
// leave competing readers behind.
type TerminalPrompter struct {
	out   io.Writer
	lines chan string
	errs  chan error

	mu     sync.Mutex
	failed error
}

// NewTerminalPrompter starts reading from in. Answers are written to out as
// part of the prompt dialogue.
func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	p := &TerminalPrompter{
		out:   out,
		lines: make(chan string),
		errs:  make(chan error, 1),
	}
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			p.lines <- scanner.Text()
		}
		if err := scanner.Err(); err != nil {
			p.errs <- err
			return
		}
		p.errs <- io.EOF
	}()
	return p
}

// Ask prints the label and blocks for one line of input, trimmed. It returns
// ctx.Err() when the context is cancelled and io.EOF when input is closed.
func (p *TerminalPrompter) Ask(ctx context.Context, label string) (string, error) {
	p.mu.Lock()
	failed := p.failed
	p.mu.Unlock()
	if failed != nil {
		return "", failed
	}

	fmt.Fprint(p.out, promptColor.Sprint(label+": "))
	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return "", ctx.Err()
	case line := <-p.lines:
		return strings.TrimSpace(line), nil
	case err := <-p.errs:
		p.mu.Lock()
		p.failed = err
		p.mu.Unlock()
		fmt.Fprintln(p.out)
		return "", err
	}
}
