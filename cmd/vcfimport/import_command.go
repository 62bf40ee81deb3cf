package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vcfimport/internal/contactstore"
	"vcfimport/internal/importer"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Parse a contact export and save it to the contact store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *contactstore.Store) error {
				opts, closeLog, err := ctx.importOptions(cmd, store)
				if err != nil {
					return err
				}
				defer closeLog()
				result, err := importer.ImportFile(cmd.Context(), args[0], opts)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, result.BatchID)
				fmt.Fprintf(cmd.ErrOrStderr(), "Imported %d contact(s) from %s", len(result.Contacts), result.Source)
				if result.Skipped > 0 {
					fmt.Fprintf(cmd.ErrOrStderr(), " (%d skipped)", result.Skipped)
				}
				fmt.Fprintln(cmd.ErrOrStderr())
				return nil
			})
		},
	}
}
