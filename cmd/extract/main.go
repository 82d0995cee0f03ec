// Command extract runs a one-shot extraction on a local document and writes
// the scenarios as CSV to stdout or a file. It needs no database.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"flowcase/internal/config"
	"flowcase/internal/csvexport"
	"flowcase/internal/docloader"
	"flowcase/internal/domain"
	"flowcase/internal/extractor"
	_ "flowcase/internal/extractor/openai"
	"flowcase/internal/port"
)

func main() {
	out := flag.String("o", "", "output file (default stdout)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: extract [-o out.csv] <document.txt|document.md>")
		os.Exit(1)
	}

	if err := run(flag.Arg(0), *out); err != nil {
		log.Fatal(err)
	}
}

func run(path, out string) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if _, ok := domain.AllowedExtensions[ext]; !ok {
		return domain.ErrUnsupportedFileType
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Extractor.APIKey == "" {
		return domain.ErrMissingAPIKey
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}

	scenarioExtractor, err := extractor.New(&cfg.Extractor)
	if err != nil {
		return fmt.Errorf("failed to initialize extractor: %w", err)
	}

	result, err := scenarioExtractor.Extract(context.Background(), port.ExtractInput{
		DocumentText: docloader.Decode(data),
	})
	if err != nil {
		return fmt.Errorf("extracting scenarios: %w", err)
	}

	scenarios := extractor.Normalize(result.Scenarios)
	if len(scenarios) == 0 {
		fmt.Fprintln(os.Stderr, "warning: no integration flows found (2+ modules)")
	}

	var dst io.Writer = os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		if _, err := f.Write(csvexport.BOM); err != nil {
			return err
		}
		dst = f
	}

	w := csvexport.NewWriter(dst)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteScenarios(scenarios); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
