package cmd

import (
	"fmt"

	"github.com/heathj/hbsyntax/parser/html"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [file]",
	Short: "Print the HTML tokens of a document",
	Long: `Runs the HTML tokenizer alone over a document and prints one token per
line. Mustaches are not recognized here and show up as text.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokenize,
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
}

func runTokenize(cmd *cobra.Command, args []string) error {
	_, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	source, file, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	recorder, tokenizer := html.NewRecorder()
	tokenizer.SetLogger(log)
	if err := tokenizer.Tokenize(source); err != nil {
		return errors.Wrapf(err, "tokenizing %s", displayName(file))
	}
	for _, tok := range recorder.Tokens {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), tok.String()); err != nil {
			return err
		}
	}
	return nil
}
