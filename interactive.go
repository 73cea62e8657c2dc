package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"jpvocab/ingest"
)

// errQuit ends the prompt loop when input runs out or the context is done.
var errQuit = errors.New("quit")

type line struct {
	text string
	err  error
}

// prompter answers questions from lines read off the input in a separate
// goroutine, so a pending question gives way to cancellation.
type prompter struct {
	lines <-chan line
	out   io.Writer
}

func newPrompter(ctx context.Context, in io.Reader, out io.Writer) *prompter {
	lines := make(chan line)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- line{text: sc.Text()}:
			case <-ctx.Done():
				return
			}
		}
		if err := sc.Err(); err != nil {
			select {
			case lines <- line{err: err}:
			case <-ctx.Done():
			}
		}
	}()
	return &prompter{lines: lines, out: out}
}

func (pr *prompter) ask(ctx context.Context, message string) (string, error) {
	fmt.Fprint(pr.out, message)
	select {
	case <-ctx.Done():
		fmt.Fprintln(pr.out)
		return "", errQuit
	case l, ok := <-pr.lines:
		if !ok {
			fmt.Fprintln(pr.out)
			return "", errQuit
		}
		if l.err != nil {
			fmt.Fprintln(pr.out)
			return "", l.err
		}
		return strings.TrimSpace(l.text), nil
	}
}

func (pr *prompter) askNonEmpty(ctx context.Context, message string) (string, error) {
	for {
		v, err := pr.ask(ctx, message)
		if err != nil || v != "" {
			return v, err
		}
		fmt.Fprintln(pr.out, "Invalid input, please try again.")
	}
}

// interactive prompts for a source, an output directory and a CSV name,
// runs the pipeline and repeats until the user quits or input ends. A failed
// file is reported and the loop continues.
func interactive(ctx context.Context, in io.Reader, p *pipeline) error {
	pr := newPrompter(ctx, in, p.out)
	fmt.Fprintln(p.out, "jpvocab: Japanese vocabulary extractor")
	fmt.Fprintln(p.out, "Press Ctrl+C or type 'q' at the file prompt to exit.")
	fmt.Fprintln(p.out)

	for {
		if err := ctx.Err(); err != nil {
			fmt.Fprintln(p.out, "Exiting.")
			return nil
		}
		err := step(ctx, pr, p)
		if errors.Is(err, errQuit) {
			fmt.Fprintln(p.out, "Exiting.")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func step(ctx context.Context, pr *prompter, p *pipeline) error {
	src, err := pr.ask(ctx, "PDF or TXT path (or 'q' to quit): ")
	if err != nil {
		return err
	}
	switch strings.ToLower(src) {
	case "q", "quit", "exit":
		return errQuit
	}
	path, err := ingest.Resolve(src)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(pr.out, "File not found: %s\n", path)
		return nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".txt":
	default:
		fmt.Fprintln(pr.out, "Please choose a PDF or a UTF-8 text (.txt) file.")
		return nil
	}

	dir, err := pr.askNonEmpty(ctx, "Output directory: ")
	if err != nil {
		return err
	}
	if dir, err = ingest.Resolve(dir); err != nil {
		return err
	}
	name, err := pr.askNonEmpty(ctx, "CSV filename (without path): ")
	if err != nil {
		return err
	}

	if _, _, err := p.run(ctx, path, dir, name); err != nil {
		fmt.Fprintf(pr.out, "Processing failed: %v\n", err)
		return nil
	}
	fmt.Fprintln(pr.out, "Done.")
	fmt.Fprintln(pr.out)
	return nil
}
