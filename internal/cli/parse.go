package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Egor213/LogiStat/internal/domain"
	"github.com/Egor213/LogiStat/internal/parser"
	"github.com/Egor213/LogiStat/internal/render"
	errorsUtils "github.com/Egor213/LogiStat/pkg/errors"
	"github.com/Egor213/LogiStat/pkg/logger"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	OutputJSON = "json"
	OutputYAML = "yaml"
	OutputText = "text"
)

type parseOptions struct {
	output  string
	top     int
	verbose bool
}

func newParseCommand() *cobra.Command {
	opts := parseOptions{}

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a log file and print its statistics",
		Long: `Parse a log file and print its statistics record.

Reads stdin when no file is given or the file is "-".

Examples:
  logstat parse app.log
  logstat parse -o yaml app.log
  cat app.log | logstat parse -o text`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", OutputJSON, "output format (json, yaml, text)")
	cmd.Flags().IntVar(&opts.top, "top", render.DefaultTop, "users and errors shown by the text output")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging to stderr")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts parseOptions) error {
	logger.SetupCLILogger(cmd.ErrOrStderr(), opts.verbose)

	switch opts.output {
	case OutputJSON, OutputYAML, OutputText:
	default:
		return fmt.Errorf("unsupported output format %q", opts.output)
	}

	raw, name, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{"input": name, "bytes": len(raw)}).Debug("Parsing input")

	stats := parser.Parse(string(raw))

	return writeStats(cmd.OutOrStdout(), stats, opts)
}

func readInput(stdin io.Reader, args []string) ([]byte, string, error) {
	if len(args) == 0 || args[0] == "-" {
		raw, err := io.ReadAll(stdin)
		return raw, "stdin", errorsUtils.WrapPathErr(err)
	}
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return nil, args[0], errorsUtils.WrapPathErr(err)
	}
	return raw, args[0], nil
}

func writeStats(w io.Writer, stats *domain.Stats, opts parseOptions) error {
	switch opts.output {
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(stats); err != nil {
			return errorsUtils.WrapPathErr(err)
		}
		return enc.Close()
	case OutputText:
		return render.Summary(w, stats, opts.top)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}
}
