package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pylens/internal/config"
	"pylens/internal/diagfmt"
	"pylens/internal/driver"
	"pylens/internal/source"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.py",
	Short: "Tokenize a Python source file",
	Long:  `Tokenize breaks a Python source file into its tokens, including the indentation structure the parser sees`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	cfg, err := config.Resolve(filepath.Dir(filePath))
	if err != nil {
		return err
	}
	if override, ferr := cmd.Root().PersistentFlags().GetInt("max-diagnostics"); ferr == nil && override > 0 {
		cfg.Rules.MaxDiagnostics = override
	}

	fileSet := source.NewFileSetWithBase(filepath.Dir(filePath))
	id, err := fileSet.Load(filePath)
	if err != nil {
		return fmt.Errorf("cannot read %q: %w", filePath, err)
	}
	result := driver.TokenizeFile(fileSet, id, cfg)

	// Lexical recovery diagnostics go to stderr so stdout stays parseable.
	if result.Bag.Len() > 0 {
		result.Bag.Sort()
		diagfmt.Pretty(os.Stderr, result.Bag, fileSet, diagfmt.PrettyOpts{
			Color:      useColor(cmd, os.Stderr),
			ShowSource: true,
		})
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, fileSet)
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
