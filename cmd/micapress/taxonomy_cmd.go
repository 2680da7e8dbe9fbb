package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/regberg-labs/micapress/pkg/config"
	"github.com/regberg-labs/micapress/pkg/taxonomy"
	"github.com/regberg-labs/micapress/pkg/whitepaper"
)

// runTaxonomyCmd implements `micapress taxonomy`.
//
// Lists the reportable catalog elements for a token type, searches
// labels, or summarizes per-section element counts.
//
// Exit codes:
//
//	0 = success
//	2 = runtime error
func runTaxonomyCmd(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("taxonomy", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var (
		tokenType  string
		section    string
		search     string
		counts     bool
		jsonOutput bool
	)

	cmd.StringVar(&tokenType, "type", "OTHR", "Token type: OTHR, ART or EMT")
	cmd.StringVar(&section, "section", "", "Restrict to one section (document, summary, offeror, ...)")
	cmd.StringVar(&search, "search", "", "Case-insensitive label search")
	cmd.BoolVar(&counts, "counts", false, "Print per-section element counts instead of the element list")
	cmd.BoolVar(&jsonOutput, "json", false, "Output as JSON")

	if err := cmd.Parse(args); err != nil {
		return 2
	}

	tt := whitepaper.TokenType(strings.ToUpper(tokenType))
	if !tt.Valid() {
		_, _ = fmt.Fprintf(stderr, "Error: unknown token type %q (valid: OTHR, ART, EMT)\n", tokenType)
		return 2
	}

	ix, err := loadIndex(config.Load())
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if counts {
		return printSectionCounts(stdout, ix, tt, jsonOutput)
	}

	var elements []*taxonomy.Element
	switch {
	case search != "":
		elements = ix.SearchByLabel(search)
	case section != "":
		elements = ix.ByTokenTypeAndSection(tt, whitepaper.Section(section))
	default:
		elements = ix.ReportableFor(tt)
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(elements, "", "  ")
		_, _ = fmt.Fprintln(stdout, string(data))
		return 0
	}

	listed := 0
	for _, el := range elements {
		if el.Abstract {
			continue
		}
		marker := " "
		if el.RequiredForType(tt) {
			marker = "*"
		}
		_, _ = fmt.Fprintf(stdout, "%s %-44s %-10s %-14s %s\n", marker, el.Name, el.Kind, el.Section, el.Label)
		listed++
	}
	_, _ = fmt.Fprintf(stdout, "%d element(s); * = required for %s\n", listed, tt)
	return 0
}

func printSectionCounts(stdout io.Writer, ix *taxonomy.Index, tt whitepaper.TokenType, jsonOutput bool) int {
	all := ix.SectionCounts(tt)

	if jsonOutput {
		data, _ := json.MarshalIndent(all, "", "  ")
		_, _ = fmt.Fprintln(stdout, string(data))
		return 0
	}

	for _, s := range whitepaper.SectionOrder() {
		c, ok := all[s]
		if !ok {
			continue
		}
		_, _ = fmt.Fprintf(stdout, "%-16s total %3d  required %3d  recommended %3d\n",
			s, c.Total, c.Required, c.Recommended)
	}
	return 0
}
