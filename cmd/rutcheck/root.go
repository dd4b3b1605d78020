package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"rutcheck/internal/form/service"
	"rutcheck/internal/platform/logger"
)

// OutputFormat selects how results are printed.
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

type rootOptions struct {
	output   string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "rutcheck",
		Short: "Validate and format Chilean RUTs and mobile numbers",
		Long: `rutcheck runs the same validation and formatting used by the form service
from the command line: RUT check digits, live field formatting and phone
normalization.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch OutputFormat(opts.output) {
			case FormatJSON, FormatHuman:
				return nil
			default:
				return fmt.Errorf("unsupported format: %s", opts.output)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", string(FormatHuman), "Output format: human or json")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level for diagnostics on stderr")

	cmd.AddCommand(
		newValidateCmd(opts),
		newFormatCmd(opts),
		newPhoneCmd(opts),
		newSelfTestCmd(opts),
	)
	return cmd
}

// newService builds a form service that logs to the command's stderr.
func (o *rootOptions) newService(cmd *cobra.Command) *service.Service {
	return service.New(service.WithLogger(logger.NewWithWriter(cmd.ErrOrStderr(), o.logLevel, "text")))
}

// print writes v as indented JSON, or calls human for the human format.
func (o *rootOptions) print(w io.Writer, v any, human func(io.Writer)) error {
	if OutputFormat(o.output) == FormatJSON {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	human(w)
	return nil
}
