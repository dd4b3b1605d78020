package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"rutcheck/internal/rut"
)

type validateOutput struct {
	Input     string `json:"input"`
	Valid     bool   `json:"valid"`
	Reason    string `json:"reason"`
	Message   string `json:"message"`
	Formatted string `json:"formatted,omitempty"`
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <rut>...",
		Short: "Validate one or more RUTs",
		Example: `  rutcheck validate 12.345.678-5
  rutcheck validate -o json 123456785 8765432K`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := opts.newService(cmd)
			results := make([]validateOutput, 0, len(args))
			invalid := 0
			for _, raw := range args {
				res := svc.ValidateRUT(cmd.Context(), raw)
				out := validateOutput{
					Input:   raw,
					Valid:   res.Valid,
					Reason:  string(res.Reason),
					Message: res.Message,
				}
				if res.Valid {
					out.Formatted = rut.MustParse(raw).String()
				} else {
					invalid++
				}
				results = append(results, out)
			}

			err := opts.print(cmd.OutOrStdout(), results, func(w io.Writer) {
				for _, r := range results {
					mark := "ok  "
					if !r.Valid {
						mark = "FAIL"
					}
					fmt.Fprintf(w, "%s %-16s %s\n", mark, r.Input, r.Message)
				}
			})
			if err != nil {
				return err
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d RUTs invalid", invalid, len(args))
			}
			return nil
		},
	}
}
