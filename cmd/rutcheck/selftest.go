package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"rutcheck/internal/rut"
)

type selfTestRow struct {
	Input      string `json:"input"`
	WantValid  bool   `json:"want_valid"`
	WantReason string `json:"want_reason"`
	GotValid   bool   `json:"got_valid"`
	GotReason  string `json:"got_reason"`
	Passed     bool   `json:"passed"`
}

func newSelfTestCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "selftest",
		Short: "Run the diagnostic RUT table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var rows []selfTestRow
			failed := 0
			for _, o := range rut.RunSelfTest() {
				row := selfTestRow{
					Input:      o.Case.Input,
					WantValid:  o.Case.Valid,
					WantReason: string(o.Case.Reason),
					GotValid:   o.Got.Valid,
					GotReason:  string(o.Got.Reason),
					Passed:     o.Passed(),
				}
				if !row.Passed {
					failed++
				}
				rows = append(rows, row)
			}

			err := opts.print(cmd.OutOrStdout(), rows, func(w io.Writer) {
				for _, r := range rows {
					mark := "PASS"
					if !r.Passed {
						mark = "FAIL"
					}
					fmt.Fprintf(w, "%s %-10s want=%-16s got=%s\n", mark, r.Input, r.WantReason, r.GotReason)
				}
			})
			if err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d self-test cases failed", failed)
			}
			return nil
		},
	}
}
