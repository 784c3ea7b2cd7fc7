package cmd

import (
	"io"
	"os"

	"github.com/heathj/hbsyntax/internal/config"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string
	srcName  string
)

var rootCmd = &cobra.Command{
	Use:   "hbsyntax",
	Short: "Parse HTML templates with mustache syntax",
	Long: `hbsyntax parses templates that mix HTML with mustache expressions
into a single syntax tree.

Settings are read from --config, or from hbsyntax.yaml / hbsyntax.toml in
the working directory. Flags override the file.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./hbsyntax.yaml or ./hbsyntax.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warning, error)")
	rootCmd.PersistentFlags().StringVar(&srcName, "src-name", "", "source name stored in node locations")
}

// loadConfig resolves the config file and applies the persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Config, *logrus.Logger, error) {
	var cfg *config.Config
	var err error
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.Find(".")
	}
	if err != nil {
		return nil, nil, err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if cmd.Flags().Changed("src-name") {
		cfg.SrcName = srcName
	}

	level, err := cfg.Level()
	if err != nil {
		return nil, nil, err
	}
	log := logrus.New()
	log.SetOutput(cmd.ErrOrStderr())
	log.SetLevel(level)
	return cfg, log, nil
}

// readInput reads the named file, or stdin when no file is given.
func readInput(cmd *cobra.Command, args []string) (string, string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", errors.Wrap(err, "reading stdin")
		}
		return string(data), "", nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", errors.Wrapf(err, "reading %s", args[0])
	}
	return string(data), args[0], nil
}
