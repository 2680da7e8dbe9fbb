package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/regberg-labs/micapress/pkg/config"
)

// runGenerateCmd implements `micapress generate`.
//
// Builds the fact list from a record and writes the self-contained
// inline-tagged XHTML document.
//
// Exit codes:
//
//	0 = document generated
//	2 = runtime error
func runGenerateCmd(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("generate", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var (
		record     string
		outPath    string
		jsonOutput bool
	)

	cmd.StringVar(&record, "record", "", "Path to the record JSON, or - for stdin (REQUIRED)")
	cmd.StringVar(&outPath, "out", "", "Write the document to this file instead of stdout")
	cmd.BoolVar(&jsonOutput, "json", false, "Output the full generation result as JSON to stdout")

	if err := cmd.Parse(args); err != nil {
		return 2
	}
	if record == "" {
		_, _ = fmt.Fprintln(stderr, "Error: --record is required")
		cmd.Usage()
		return 2
	}

	cfg := config.Load()
	setupLogging(cfg, stderr)

	rec, err := readRecord(record)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	ctx := context.Background()
	eng, cleanup, err := buildEngine(ctx, cfg)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	defer cleanup()

	res := eng.Generate(ctx, rec)

	switch {
	case jsonOutput:
		data, _ := json.MarshalIndent(res, "", "  ")
		_, _ = fmt.Fprintln(stdout, string(data))
	case outPath != "":
		if err := os.WriteFile(outPath, []byte(res.Document), 0644); err != nil {
			_, _ = fmt.Fprintf(stderr, "Error: cannot write document: %v\n", err)
			return 2
		}
		_, _ = fmt.Fprintf(stdout, "Document written to %s (%d facts, sha256 %s)\n",
			outPath, res.FactCount, res.DocumentHash)
	default:
		_, _ = fmt.Fprint(stdout, res.Document)
	}
	return 0
}
