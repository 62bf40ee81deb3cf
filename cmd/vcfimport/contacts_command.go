package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"vcfimport/internal/contactstore"
)

func newContactsCommand(ctx *commandContext) *cobra.Command {
	contactsCmd := &cobra.Command{
		Use:   "contacts",
		Short: "Inspect the contact store",
	}
	contactsCmd.AddCommand(newContactsListCommand(ctx))
	contactsCmd.AddCommand(newContactsImportsCommand(ctx))
	return contactsCmd
}

func newContactsListCommand(ctx *commandContext) *cobra.Command {
	var importID string
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored contacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}
			return ctx.withStore(func(store *contactstore.Store) error {
				contacts, err := store.List(cmd.Context(), contactstore.ListOptions{ImportID: importID, Limit: limit})
				if err != nil {
					return err
				}
				if asJSON {
					if contacts == nil {
						contacts = []contactstore.StoredContact{}
					}
					return writeJSON(cmd, contacts)
				}
				out := cmd.OutOrStdout()
				if len(contacts) == 0 {
					fmt.Fprintln(out, "No contacts stored")
					return nil
				}
				rows := make([][]string, 0, len(contacts))
				for _, c := range contacts {
					rows = append(rows, contactRow(c.Contact))
				}
				fmt.Fprintln(out, renderTable(contactHeaders, rows, contactAligns))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&importID, "import", "", "Only show contacts from this import")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of contacts to show (0 = all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print contacts as JSON")
	return cmd
}

func newContactsImportsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "imports",
		Short: "List stored imports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *contactstore.Store) error {
				imports, err := store.Imports(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					if imports == nil {
						imports = []contactstore.Import{}
					}
					return writeJSON(cmd, imports)
				}
				out := cmd.OutOrStdout()
				if len(imports) == 0 {
					fmt.Fprintln(out, "No imports stored")
					return nil
				}
				rows := make([][]string, 0, len(imports))
				for _, imp := range imports {
					rows = append(rows, []string{
						imp.ID,
						imp.ImportedAt.Local().Format(time.DateTime),
						strconv.Itoa(imp.Count),
						imp.Source,
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Imported", "Contacts", "Source"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print imports as JSON")
	return cmd
}
