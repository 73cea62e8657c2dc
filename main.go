package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"jpvocab/config"
	"jpvocab/export"
	"jpvocab/ingest"
	"jpvocab/logger"
	"jpvocab/model"
	"jpvocab/vocab"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"
)

// CLI is the command line. Flags left empty keep the configuration file's value.
type CLI struct {
	Config      string `help:"Configuration file." default:"jpvocab.toml" type:"path"`
	Dict        string `help:"System dictionary (ipa, uni)."`
	Mode        string `help:"Split mode (normal, search, extended)."`
	NoOCR       bool   `name:"no-ocr" help:"Never OCR pages without a text layer."`
	WithReading bool   `help:"Write the hiragana reading as a first CSV column."`
	LogLevel    string `help:"Log level (debug, info, warn, error)."`
	LogFormat   string `help:"Log format (text, json)."`
	DumpDir     string `help:"Write JSON dumps of each stage to this directory." type:"path"`

	Extract     ExtractCmd     `cmd:"" help:"Extract vocabulary from one PDF or UTF-8 text file."`
	Interactive InteractiveCmd `cmd:"" default:"1" help:"Prompt for files and write a CSV for each until quit."`
}

// apply overlays the flags that were set on cfg.
func (c *CLI) apply(cfg *config.Config) {
	if c.Dict != "" {
		cfg.Analyzer.Dictionary = c.Dict
	}
	if c.Mode != "" {
		cfg.Analyzer.Mode = c.Mode
	}
	if c.NoOCR {
		cfg.OCR.Enabled = false
	}
	if c.WithReading {
		cfg.Output.WithReading = true
	}
	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
	}
	if c.LogFormat != "" {
		cfg.Log.Format = c.LogFormat
	}
	if c.DumpDir != "" {
		cfg.Log.DumpDir = c.DumpDir
	}
}

type ExtractCmd struct {
	Input  string `arg:"" help:"PDF or UTF-8 text file." type:"existingfile"`
	OutDir string `short:"o" help:"Output directory." default:"." type:"path"`
	Name   string `short:"n" help:"CSV file name; .csv is appended when missing. Defaults to the input's base name."`
}

func (c *ExtractCmd) Run(p *pipeline) error {
	name := c.Name
	if name == "" {
		base := filepath.Base(c.Input)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	_, _, err := p.run(context.Background(), c.Input, c.OutDir, name)
	return err
}

type InteractiveCmd struct{}

func (c *InteractiveCmd) Run(p *pipeline) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return interactive(ctx, os.Stdin, p)
}

// pipeline wires ingestion, deduplication and CSV output.
type pipeline struct {
	read        func(ctx context.Context, path string, opts ingest.Options) (*ingest.Document, error)
	dedupe      func(units []string) ([]model.Entry, error)
	opts        ingest.Options
	withReading bool
	dumpDir     string
	out         io.Writer
}

func newPipeline(cfg *config.Config, out io.Writer) *pipeline {
	p := &pipeline{
		read: ingest.Read,
		// The analyzer is built on first use, not at startup.
		dedupe: func(units []string) ([]model.Entry, error) {
			a, err := cfg.NewAnalyzer()
			if err != nil {
				return nil, err
			}
			return vocab.New(a).Deduplicate(units)
		},
		opts:        cfg.IngestOptions(),
		withReading: cfg.Output.WithReading,
		dumpDir:     cfg.Log.DumpDir,
		out:         out,
	}
	p.opts.Progress = func(current, total int) {
		fmt.Fprintf(p.out, "Processing page %d/%d...\n", current, total)
	}
	return p
}

// run extracts src into dir/name and returns the CSV path and row count.
func (p *pipeline) run(ctx context.Context, src, dir, name string) (string, int, error) {
	doc, err := p.read(ctx, src, p.opts)
	if err != nil {
		return "", 0, err
	}
	slog.Info("ingested", "document", doc.ID, "source", doc.Source, "pages", len(doc.Pages))

	entries, err := p.dedupe(doc.Pages)
	if err != nil {
		return "", 0, fmt.Errorf("tokenize %s: %w", doc.Source, err)
	}
	p.dump(doc.ID.String()+"_pages", doc)
	p.dump(doc.ID.String()+"_entries", entries)

	path, n, err := export.WriteFile(dir, name, entries, p.withReading)
	if err != nil {
		return "", 0, fmt.Errorf("failed to write CSV: %w", err)
	}
	fmt.Fprintf(p.out, "Wrote %s entries to %s\n", humanize.Comma(int64(n)), path)
	return path, n, nil
}

func (p *pipeline) dump(name string, v any) {
	if p.dumpDir == "" {
		return
	}
	if err := logger.LogJSON(p.dumpDir, name, v); err != nil {
		slog.Warn("failed to write dump", "name", name, "err", err)
	}
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("jpvocab"),
		kong.Description("Extract Japanese vocabulary from PDF and text files into CSV."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	cfg, err := config.Load(cli.Config)
	kctx.FatalIfErrorf(err)
	cli.apply(cfg)
	kctx.FatalIfErrorf(cfg.Validate())
	kctx.FatalIfErrorf(logger.Init(cfg.Log.Level, cfg.Log.Format))
	if cfg.Log.DumpDir != "" {
		kctx.FatalIfErrorf(logger.InitLogs(cfg.Log.DumpDir))
	}

	err = kctx.Run(newPipeline(cfg, os.Stdout))
	kctx.FatalIfErrorf(err)
}
