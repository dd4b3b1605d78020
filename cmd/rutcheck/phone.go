package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type phoneOutput struct {
	Display string `json:"display"`
	E164    string `json:"e164"`
}

func newPhoneCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "phone <number>",
		Short:   "Normalize a Chilean mobile number",
		Example: `  rutcheck phone 912345678`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := opts.newService(cmd).NormalizePhone(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := phoneOutput{Display: res.Display, E164: res.E164}
			return opts.print(cmd.OutOrStdout(), out, func(w io.Writer) {
				fmt.Fprintf(w, "%s\n%s\n", out.Display, out.E164)
			})
		},
	}
}
