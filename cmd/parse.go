package cmd

import (
	"fmt"

	"github.com/heathj/hbsyntax/parser"
	"github.com/heathj/hbsyntax/parser/ast"
	"github.com/heathj/hbsyntax/parser/handlebars"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	rawTree           bool
	disableComponents bool
	ignoreStandalone  bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Print the syntax tree of a template",
	Long: `Parses a template and prints its unified syntax tree. With --raw the
mustache tree is printed instead, after whitespace control and before any
HTML is looked at.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&rawTree, "raw", false, "print the mustache tree only")
	parseCmd.Flags().BoolVar(&disableComponents, "disable-components", false, "keep hyphenated tags as elements")
	parseCmd.Flags().BoolVar(&ignoreStandalone, "ignore-standalone", false, "do not trim standalone lines")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("disable-components") {
		cfg.DisableComponentGeneration = disableComponents
	}
	if cmd.Flags().Changed("ignore-standalone") {
		cfg.IgnoreStandalone = ignoreStandalone
	}

	source, file, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	if cfg.SrcName == "" {
		cfg.SrcName = file
	}
	log.WithFields(logrus.Fields{"file": file, "raw": rawTree}).Debug("[PARSE]")

	var tree ast.Node
	if rawTree {
		tree, err = handlebars.Parse(source, handlebars.Options{
			SrcName:          cfg.SrcName,
			IgnoreStandalone: cfg.IgnoreStandalone,
		})
	} else {
		tree, err = parser.Preprocess(source, cfg.ParserOptions(log))
	}
	if err != nil {
		return errors.Wrapf(err, "parsing %s", displayName(file))
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), ast.Print(tree))
	return err
}

func displayName(file string) string {
	if file == "" {
		return "<stdin>"
	}
	return file
}
