package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"phpfix/internal/diagfmt"
	"phpfix/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.php",
	Short: "Print the tokens of a PHP file",
	Long:  `Tokenize splits a PHP file into the tokens the rules work on`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) (err error) {
	filePath := args[0]

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer func() { cleanup(err) }()

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	out, err := readOutputOptions(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(filePath, out.maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if err := printDiagnostics(result.Bag, result.FileSet, out, "pretty", false); err != nil {
		return err
	}
	if result.Tokens == nil {
		return &exitError{code: 1}
	}

	// Выводим токены в выбранном формате
	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, result.File)
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, result.Tokens, result.File)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
