package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hassan/minilang/internal/diag"
	"github.com/hassan/minilang/internal/lexer"
	"github.com/hassan/minilang/internal/parser"
	"github.com/hassan/minilang/internal/parser/ast"
)

var (
	showSymbols bool
	showAST     bool
)

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Parse and type-check minilang source files",
	Long: `Parses each file, resolving names and checking types in a
single pass, and reports every diagnostic with its source position.
With --symbols the nested symbol tables are dumped after checking;
with --ast the typed syntax tree is printed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&showSymbols, "symbols", false, "dump symbol tables after checking")
	checkCmd.Flags().BoolVar(&showAST, "ast", false, "print the typed AST after checking")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	renderer := diag.NewRenderer(cfg.Color)
	failed := 0

	for _, path := range args {
		if err := checkFile(path, renderer); err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}

func checkFile(path string, renderer *diag.Renderer) error {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: cannot read %s: %v\n", path, err)
		return err
	}

	bag := diag.NewBag()
	p := parser.New(lexer.New(string(source), path), bag)
	program := p.ParseProgram()

	printDiagnostics(bag, renderer)

	if showSymbols || cfg.ShowSymbols {
		fmt.Println(p.Table().Dump())
	}
	if showAST || cfg.ShowAST {
		fmt.Print(ast.Print(program))
	}

	if bag.HasErrors() {
		return fmt.Errorf("%s has errors", path)
	}
	return nil
}

// printDiagnostics writes diagnostics to stderr, honoring the
// configured error limit.
func printDiagnostics(bag *diag.Bag, renderer *diag.Renderer) {
	reported := 0
	for _, d := range bag.All() {
		if cfg.MaxErrors > 0 && d.Severity == diag.SeverityError && reported >= cfg.MaxErrors {
			fmt.Fprintf(os.Stderr, "too many errors, stopping after %d\n", reported)
			return
		}
		fmt.Fprintln(os.Stderr, renderer.Render(d))
		if d.Severity == diag.SeverityError {
			reported++
		}
	}
}
