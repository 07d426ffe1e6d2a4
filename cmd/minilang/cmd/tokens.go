package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hassan/minilang/internal/lexer"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Dump the token stream of a source file",
	Long: `Runs only the lexer and prints one token per line with its
position. Lexical errors are reported inline and scanning continues.`,
	Args: cobra.ExactArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", args[0], err)
	}

	l := lexer.New(string(source), args[0])
	hadErrors := false
	for {
		tok, err := l.NextToken()
		if err != nil {
			hadErrors = true
			fmt.Fprintf(os.Stderr, "%s: error: %s\n", tok.Position, err)
			continue
		}
		fmt.Printf("%-16s %s\n", tok.Position, tok)
		if tok.Type == lexer.TokenEOF {
			break
		}
	}

	if hadErrors {
		return fmt.Errorf("%s has lexical errors", args[0])
	}
	return nil
}
