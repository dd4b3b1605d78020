package main

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"rutcheck/internal/input"
)

type formatOutput struct {
	Text    string `json:"text"`
	Cursor  int    `json:"cursor"`
	Changed bool   `json:"changed"`
	State   string `json:"state"`
	Message string `json:"message,omitempty"`
}

func newFormatCmd(opts *rootOptions) *cobra.Command {
	var (
		cursor int
		paste  bool
	)
	cmd := &cobra.Command{
		Use:   "format <rut|telefono> <text>",
		Short: "Run the live field formatter over text",
		Example: `  rutcheck format rut 123456785
  rutcheck format telefono --paste "+56 9 1234 5678"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := input.ParseField(args[0])
			if err != nil {
				return err
			}
			text := args[1]

			svc := opts.newService(cmd)
			var edit input.FieldEdit
			if paste {
				edit = svc.Paste(cmd.Context(), field, text)
			} else {
				runes := utf8.RuneCountInString(text)
				if cursor < 0 {
					cursor = runes
				}
				if cursor > runes {
					return fmt.Errorf("cursor %d is not a position in %q", cursor, text)
				}
				edit = svc.Format(cmd.Context(), field, text, cursor)
			}

			out := formatOutput{
				Text:    edit.Text,
				Cursor:  edit.Cursor,
				Changed: edit.Changed,
				State:   string(edit.Annotation.State),
				Message: edit.Annotation.Message,
			}
			return opts.print(cmd.OutOrStdout(), out, func(w io.Writer) {
				fmt.Fprintf(w, "%s\n", out.Text)
				if out.Message != "" {
					fmt.Fprintf(w, "%s: %s\n", out.State, out.Message)
				}
			})
		},
	}
	cmd.Flags().IntVar(&cursor, "cursor", -1, "Cursor position in characters (default: end of text)")
	cmd.Flags().BoolVar(&paste, "paste", false, "Treat text as pasted: sanitize then format")
	return cmd
}
