package main

import (
	"fmt"
	"io"
	"os"

	"github.com/regberg-labs/micapress/pkg/taxonomy"
)

const version = "1.0.0"

// Dispatcher
func main() {
	os.Exit(Run(os.Args, os.Stdout, os.Stderr))
}

// Run is the entrypoint for testing
func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 2 {
		printUsage(stderr)
		return 2
	}

	switch args[1] {
	case "validate":
		return runValidateCmd(args[2:], stdout, stderr)
	case "generate":
		return runGenerateCmd(args[2:], stdout, stderr)
	case "taxonomy":
		return runTaxonomyCmd(args[2:], stdout, stderr)
	case "version", "--version":
		return runVersionCmd(stdout)
	case "help", "--help", "-h":
		printUsage(stdout)
		return 0
	default:
		_, _ = fmt.Fprintf(stderr, "Unknown command: %s\n", args[1])
		printUsage(stderr)
		return 2
	}
}

// ANSI Colors
const (
	ColorReset = "\033[0m"
	ColorBold  = "\033[1m"
	ColorBlue  = "\033[34m"
	ColorCyan  = "\033[36m"
	ColorGreen = "\033[32m"
	ColorGray  = "\033[37m"
)

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "%smicapress %s%s\n", ColorBold+ColorBlue, "v"+version, ColorReset)
	fmt.Fprintf(w, "%sCrypto-asset white paper validation and inline-XBRL generation.%s\n", ColorGray, ColorReset)
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "%sUSAGE:%s\n", ColorBold, ColorReset)
	fmt.Fprintln(w, "  micapress <command> [flags]")
	fmt.Fprintln(w, "")

	printSection(w, "VALIDATION")
	printCommand(w, "validate", "Validate a record (--record, --quick, --field, --registry, --json)")

	printSection(w, "GENERATION")
	printCommand(w, "generate", "Generate the inline-tagged document (--record, --out, --json)")

	printSection(w, "UTILITIES")
	printCommand(w, "taxonomy", "List catalog elements (--type, --section, --search, --counts)")
	printCommand(w, "version", "Show version information")
	printCommand(w, "help", "Show this help")
	fmt.Fprintln(w, "")
}

func printSection(w io.Writer, title string) {
	fmt.Fprintf(w, "%s%s:%s\n", ColorBold+ColorCyan, title, ColorReset)
}

func printCommand(w io.Writer, name, desc string) {
	fmt.Fprintf(w, "  %s%-12s%s %s\n", ColorGreen, name, ColorReset, desc)
}

func runVersionCmd(stdout io.Writer) int {
	_, _ = fmt.Fprintf(stdout, "micapress v%s\n", version)
	if ix, err := taxonomy.DefaultIndex(); err == nil {
		_, _ = fmt.Fprintf(stdout, "catalog %s\n", ix.Version())
		_, _ = fmt.Fprintf(stdout, "entry point %s\n", ix.EntryPoint())
	}
	return 0
}
