package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/regberg-labs/micapress/pkg/config"
	"github.com/regberg-labs/micapress/pkg/engine"
)

// runValidateCmd implements `micapress validate`.
//
// Runs the existence, value, identifier and duplicate passes over a
// record and prints the merged report.
//
// Exit codes:
//
//	0 = record is valid
//	1 = validation found errors
//	2 = runtime error
func runValidateCmd(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("validate", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var (
		record      string
		field       string
		quick       bool
		useRegistry bool
		jsonOutput  bool
	)

	cmd.StringVar(&record, "record", "", "Path to the record JSON, or - for stdin (REQUIRED)")
	cmd.StringVar(&field, "field", "", "Restrict findings to one field path (e.g. offeror.legalName)")
	cmd.BoolVar(&quick, "quick", false, "Run only the existence and identifier passes")
	cmd.BoolVar(&useRegistry, "registry", false, "Cross-check identifiers against the GLEIF registry")
	cmd.BoolVar(&jsonOutput, "json", false, "Output the report as JSON to stdout")

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

	var rep *engine.Report
	switch {
	case field != "":
		rep, err = eng.ValidateField(ctx, rec, field)
	case quick:
		rep, err = eng.QuickValidate(ctx, rec)
	case useRegistry:
		rep, err = eng.ValidateWithRegistry(ctx, rec)
	default:
		rep, err = eng.Validate(ctx, rec)
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: validation failed: %v\n", err)
		return 2
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(rep, "", "  ")
		_, _ = fmt.Fprintln(stdout, string(data))
	} else {
		printReport(stdout, rep)
	}

	if !rep.Valid {
		return 1
	}
	return 0
}

func printReport(w io.Writer, rep *engine.Report) {
	if rep.Valid {
		_, _ = fmt.Fprintln(w, "✅ White paper record is VALID")
	} else {
		_, _ = fmt.Fprintln(w, "❌ White paper record is INVALID")
	}
	_, _ = fmt.Fprintf(w, "Token type: %s\n", rep.TokenType)
	_, _ = fmt.Fprintf(w, "Assertions: %d (existence %d, value %d, identifier %d, duplicate %d)\n",
		rep.Assertions.Total, rep.Assertions.Existence, rep.Assertions.Value,
		rep.Assertions.Identifier, rep.Assertions.Duplicate)
	_, _ = fmt.Fprintf(w, "Findings: %d error(s), %d warning(s)\n", len(rep.Errors), len(rep.Warnings))

	if len(rep.Errors) > 0 {
		_, _ = fmt.Fprintln(w, "Errors:")
		for _, iss := range rep.Errors {
			_, _ = fmt.Fprintf(w, "  - [%s] %s: %s\n", iss.RuleID, iss.Field, iss.Message)
		}
	}
	if len(rep.Warnings) > 0 {
		_, _ = fmt.Fprintln(w, "Warnings:")
		for _, iss := range rep.Warnings {
			_, _ = fmt.Fprintf(w, "  - [%s] %s: %s\n", iss.RuleID, iss.Field, iss.Message)
		}
	}
	_, _ = fmt.Fprintf(w, "Report %s (content hash %s)\n", rep.ReportID, rep.ContentHash)
}
