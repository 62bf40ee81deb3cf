package main

import (
	"strconv"

	"vcfimport/internal/importer"
)

var contactHeaders = []string{"Line", "Name", "Phone", "Email", "Note"}

var contactAligns = []columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignLeft}

func contactRow(c importer.Contact) []string {
	row := []string{strconv.Itoa(c.Line), c.DisplayName, "", "", ""}
	if c.Phone != nil {
		row[2] = strconv.FormatInt(*c.Phone, 10)
	}
	if c.Email != nil {
		row[3] = *c.Email
	}
	if c.Note != nil {
		row[4] = *c.Note
	}
	return row
}
