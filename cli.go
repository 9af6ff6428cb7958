package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/strager/minic/compiler"
)

func showUsage() {
	fmt.Fprintf(os.Stderr, `minic - A compiler from a tiny C subset to three-address IR

Usage:
    minic <command> [arguments]

Commands:
    lex <file>      Print the tokens of a file
    ast <file>      Print the typed syntax tree of a .mini file
    check <file>    Parse and type-check a .mini file
    build <file>    Compile a .mini file to IR
    eval <code>     Compile inline code and print the IR
    help            Show this help message

Examples:
    minic build -o sum.ir examples/sum.mini
    minic build -uf 4 -o - loop.mini
    minic eval 'void f(int &x) { x = x + 1; }'
    minic check myfile.mini

Use "minic <command> -h" for more information about a command.
`)
}

// unrollFlag registers -uf on fs.
func unrollFlag(fs *flag.FlagSet) *int {
	return fs.Int("uf", 1, "Copies of each for loop body per back edge (>= 1)")
}

func checkUnroll(fs *flag.FlagSet, uf int) {
	if uf < 1 {
		fmt.Fprintf(os.Stderr, "Error: -uf must be at least 1, got %d\n", uf)
		fs.Usage()
		os.Exit(1)
	}
}

// parseSingleArg parses args and returns the one positional argument.
func parseSingleArg(fs *flag.FlagSet, args []string, what string) string {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one %s argument\n", what)
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func readSource(filename string) string {
	sourceBytes, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file %s: %v\n", filename, err)
		os.Exit(1)
	}
	return string(sourceBytes)
}

func lexCommand(args []string) {
	fs := flag.NewFlagSet("lex", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: minic lex <file>\n")
		fmt.Fprintf(os.Stderr, "Print the tokens of a file, one per line\n")
	}

	filename := parseSingleArg(fs, args, "file")
	tokens, err := compiler.Tokenize(readSource(filename))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s:%v\n", filename, err)
		os.Exit(1)
	}
	for _, tok := range tokens {
		fmt.Printf("%d\t%s\t%q\n", tok.Line, tok.Kind, tok.Lexeme)
	}
}

func astCommand(args []string) {
	fs := flag.NewFlagSet("ast", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: minic ast <file>\n")
		fmt.Fprintf(os.Stderr, "Print the typed syntax tree of a .mini file as an s-expression\n")
	}

	filename := parseSingleArg(fs, args, "file")
	fn, err := compiler.Parse(readSource(filename))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s:%v\n", filename, err)
		os.Exit(1)
	}
	fmt.Println(compiler.ToSExpr(fn))
}

func checkCommand(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Show verbose checking details")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: minic check [-v] <file>\n")
		fmt.Fprintf(os.Stderr, "Parse and type-check a .mini file\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	filename := parseSingleArg(fs, args, "file")

	if *verbose {
		fmt.Printf("Checking %s...\n", filename)
	}

	fn, err := compiler.Parse(readSource(filename))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s:%v\n", filename, err)
		os.Exit(1)
	}

	fmt.Printf("%s: no errors found\n", filename)

	if *verbose {
		fmt.Printf("AST: %s\n", compiler.ToSExpr(fn))
	}
}

func buildCommand(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	output := fs.String("o", "", "Output file path, or - for stdout (default: <filename>.ir)")
	uf := unrollFlag(fs)
	verbose := fs.Bool("v", false, "Show verbose compilation details")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: minic build [-o output] [-uf N] [-v] <file>\n")
		fmt.Fprintf(os.Stderr, "Compile a .mini file to IR\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	filename := parseSingleArg(fs, args, "file")
	checkUnroll(fs, *uf)

	outputFile := *output
	if outputFile == "" {
		outputFile = strings.TrimSuffix(filename, ".mini") + ".ir"
	}

	if *verbose {
		fmt.Fprintf(os.Stderr, "Compiling %s to %s...\n", filename, outputFile)
	}

	program, err := compileProgram(readSource(filename), *uf, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s:%v\n", filename, err)
		os.Exit(1)
	}

	if outputFile == "-" {
		fmt.Print(program.String())
		return
	}

	err = os.WriteFile(outputFile, []byte(program.String()), 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing IR file %s: %v\n", outputFile, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s (%d instructions, %d registers)\n",
		outputFile, len(program.Instructions), len(program.Registers))
}

func evalCommand(args []string) {
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	uf := unrollFlag(fs)
	verbose := fs.Bool("v", false, "Show verbose compilation details")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: minic eval [-uf N] [-v] <code>\n")
		fmt.Fprintf(os.Stderr, "Compile inline code and print the IR\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	code := parseSingleArg(fs, args, "code")
	checkUnroll(fs, *uf)

	if *verbose {
		fmt.Fprintf(os.Stderr, "Evaluating: %s\n", code)
	}

	program, err := compileProgram(code, *uf, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compilation failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(program.String())
}

// compileProgram runs the whole pipeline. Verbose progress goes to stderr so
// that IR on stdout stays clean.
func compileProgram(src string, unroll int, verbose bool) (*compiler.Program, error) {
	c := compiler.New(compiler.Options{UnrollFactor: unroll})

	fn, err := c.Parse(src)
	if err != nil {
		return nil, err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "AST: %s\n", compiler.ToSExpr(fn))
		fmt.Fprintf(os.Stderr, "Locals: %d, parameters: %d\n", len(fn.Locals), len(fn.Params))
	}

	program, err := c.Generate(fn)
	if err != nil {
		return nil, fmt.Errorf("code generation: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Generated %d instructions over %d registers\n",
			len(program.Instructions), len(program.Registers))
	}
	return program, nil
}

func main() {
	if len(os.Args) < 2 {
		showUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "lex":
		lexCommand(args)
	case "ast":
		astCommand(args)
	case "check":
		checkCommand(args)
	case "build":
		buildCommand(args)
	case "eval":
		evalCommand(args)
	case "help", "-h", "--help":
		showUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		showUsage()
		os.Exit(1)
	}
}
