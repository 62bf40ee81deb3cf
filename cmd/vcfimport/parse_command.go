package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vcfimport/internal/importer"
)

func newParseCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var asTable bool

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse a contact export and print the contacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, closeLog, err := ctx.importOptions(cmd)
			if err != nil {
				return err
			}
			defer closeLog()
			result, err := importer.ImportFile(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}

			if asJSON {
				contacts := result.Contacts
				if contacts == nil {
					contacts = []importer.Contact{}
				}
				return writeJSON(cmd, contacts)
			}

			rows := make([][]string, 0, len(result.Contacts))
			for _, c := range result.Contacts {
				rows = append(rows, contactRow(c))
			}
			out := cmd.OutOrStdout()
			if asTable || isTerminal(out) {
				if len(rows) == 0 {
					fmt.Fprintln(out, "No contacts found")
					return nil
				}
				fmt.Fprintln(out, renderTable(contactHeaders, rows, contactAligns))
				if result.Skipped > 0 {
					fmt.Fprintf(out, "%d contact(s) skipped; see warnings above\n", result.Skipped)
				}
				return nil
			}
			return renderPlain(out, rows)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print contacts as JSON")
	cmd.Flags().BoolVar(&asTable, "table", false, "Force table output even when stdout is not a terminal")
	cmd.MarkFlagsMutuallyExclusive("json", "table")
	return cmd
}
