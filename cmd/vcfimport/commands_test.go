package main

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vcfimport/internal/testsupport"
	"vcfimport/internal/vcard"
)

func TestParsePlainOutput(t *testing.T) {
	env := setupCLITestEnv(t)
	input := testsupport.WriteVCF(t, env.baseDir, "contacts.vcf", sampleContacts...)

	out, _, err := runCLI(t, []string{"parse", input}, env.configPath)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := "1\tJuan Pérez\t600111222\tjuan@x.com\t\n8\tAtención al Cliente\t1004\t\t\n"
	if out != want {
		t.Fatalf("unexpected output %q, want %q", out, want)
	}
}

func TestParseTableOutput(t *testing.T) {
	env := setupCLITestEnv(t)
	input := testsupport.WriteVCF(t, env.baseDir, "contacts.vcf", sampleContacts...)

	out, _, err := runCLI(t, []string{"parse", "--table", input}, env.configPath)
	if err != nil {
		t.Fatalf("parse --table: %v", err)
	}
	requireContains(t, out, "Name")
	requireContains(t, out, "Atención al Cliente")
	requireContains(t, out, "╭")
}

func TestParseJSONOutput(t *testing.T) {
	env := setupCLITestEnv(t)
	input := testsupport.WriteVCF(t, env.baseDir, "contacts.vcf", sampleContacts...)

	out, _, err := runCLI(t, []string{"parse", "--json", input}, env.configPath)
	if err != nil {
		t.Fatalf("parse --json: %v", err)
	}
	var contacts []map[string]any
	if err := json.Unmarshal([]byte(out), &contacts); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(contacts) != 2 {
		t.Fatalf("expected 2 contacts, got %d", len(contacts))
	}
	if contacts[0]["display_name"] != "Juan Pérez" || contacts[0]["phone"] != float64(600111222) {
		t.Fatalf("unexpected first contact: %v", contacts[0])
	}
	if _, ok := contacts[1]["email"]; ok {
		t.Fatalf("expected email omitted for second contact: %v", contacts[1])
	}
}

func TestParseMalformedInputFails(t *testing.T) {
	env := setupCLITestEnv(t)
	input := testsupport.WriteVCF(t, env.baseDir, "bad.vcf", "BEGIN:VCARD", "PHOTO;JPEG:abc", "END:VCARD")

	out, _, err := runCLI(t, []string{"parse", input}, env.configPath)
	if !vcard.HasCode(err, vcard.CodeMalformedLine) {
		t.Fatalf("expected malformed line error, got %v", err)
	}
	requireContains(t, err.Error(), "line 2")
	if out != "" {
		t.Fatalf("expected no output on failure, got %q", out)
	}
}

func TestParseMissingFile(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"parse", filepath.Join(env.baseDir, "nope.vcf")}, env.configPath)
	if !vcard.HasCode(err, vcard.CodeNotFound) {
		t.Fatalf("expected not_found error, got %v", err)
	}
}

var ambiguousContacts = []string{
	"BEGIN:VCARD", "N:Pedro;;;", "FN:Lucía", "END:VCARD",
	"BEGIN:VCARD", "N:Ana;;;", "FN:Ana García", "END:VCARD",
}

func TestParseAmbiguousNamePolicies(t *testing.T) {
	abort := setupCLITestEnv(t)
	input := testsupport.WriteVCF(t, abort.baseDir, "amb.vcf", ambiguousContacts...)
	if _, _, err := runCLI(t, []string{"parse", input}, abort.configPath); !vcard.HasCode(err, vcard.CodeAmbiguousName) {
		t.Fatalf("expected ambiguous name error under abort policy, got %v", err)
	}

	skip := setupCLITestEnv(t, testsupport.WithPolicy("skip"))
	input = testsupport.WriteVCF(t, skip.baseDir, "amb.vcf", ambiguousContacts...)
	out, stderr, err := runCLI(t, []string{"parse", input}, skip.configPath)
	if err != nil {
		t.Fatalf("parse with skip policy: %v", err)
	}
	if out != "5\tAna García\t\t\t\n" {
		t.Fatalf("unexpected output %q", out)
	}
	requireContains(t, stderr, "contact skipped")
}

func TestExportWritesCSV(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithExportFields("display_name", "phone"))
	input := testsupport.WriteVCF(t, env.baseDir, "contacts.vcf", sampleContacts...)
	target := filepath.Join(env.baseDir, "out.csv")

	out, _, err := runCLI(t, []string{"export", input, "-o", target}, env.configPath)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if out != "" {
		t.Fatalf("expected nothing on stdout, got %q", out)
	}

	f, err := os.Open(target)
	if err != nil {
		t.Fatalf("open csv: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	want := [][]string{
		{"display_name", "phone"},
		{"Juan Pérez", "600111222"},
		{"Atención al Cliente", "1004"},
	}
	if len(records) != len(want) {
		t.Fatalf("unexpected csv rows: %v", records)
	}
	for i := range want {
		if strings.Join(records[i], "|") != strings.Join(want[i], "|") {
			t.Fatalf("row %d: got %v want %v", i, records[i], want[i])
		}
	}
}

func TestExportToStdout(t *testing.T) {
	env := setupCLITestEnv(t)
	input := testsupport.WriteVCF(t, env.baseDir, "contacts.vcf", sampleContacts...)

	out, _, err := runCLI(t, []string{"export", input}, env.configPath)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	requireContains(t, out, "display_name,phone,email,note\n")
	requireContains(t, out, "Juan Pérez,600111222,juan@x.com,\n")
}

func TestExportFailureKeepsExistingOutput(t *testing.T) {
	env := setupCLITestEnv(t)
	outDir := filepath.Join(env.baseDir, "exports")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	target := filepath.Join(outDir, "out.csv")
	if err := os.WriteFile(target, []byte("previous,export\n"), 0o644); err != nil {
		t.Fatalf("seed output: %v", err)
	}
	input := testsupport.WriteVCF(t, env.baseDir, "bad.vcf", "BEGIN:VCARD", "PHOTO;JPEG:abc", "END:VCARD")

	_, _, err := runCLI(t, []string{"export", input, "-o", target}, env.configPath)
	if !vcard.HasCode(err, vcard.CodeMalformedLine) {
		t.Fatalf("expected malformed line error, got %v", err)
	}

	content, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(content) != "previous,export\n" {
		t.Fatalf("failed export changed existing output: %q", content)
	}
	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only out.csv in output dir, got %d entries", len(entries))
	}
}

func TestExportReplacesExistingOutput(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithExportFields("display_name"))
	target := filepath.Join(env.baseDir, "out.csv")
	if err := os.WriteFile(target, []byte("stale\n"), 0o644); err != nil {
		t.Fatalf("seed output: %v", err)
	}
	input := testsupport.WriteVCF(t, env.baseDir, "contacts.vcf", sampleContacts...)

	if _, _, err := runCLI(t, []string{"export", input, "-o", target}, env.configPath); err != nil {
		t.Fatalf("export: %v", err)
	}
	content, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(content) != "display_name\nJuan Pérez\nAtención al Cliente\n" {
		t.Fatalf("unexpected output %q", content)
	}
	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Fatalf("unexpected output mode %v", info.Mode().Perm())
	}
}

func TestImportAndListContacts(t *testing.T) {
	env := setupCLITestEnv(t)
	input := testsupport.WriteVCF(t, env.baseDir, "contacts.vcf", sampleContacts...)

	out, stderr, err := runCLI(t, []string{"import", input}, env.configPath)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	importID := strings.TrimSpace(out)
	if importID == "" {
		t.Fatal("expected import id on stdout")
	}
	requireContains(t, stderr, "Imported 2 contact(s)")

	out, _, err = runCLI(t, []string{"contacts", "list", "--json", "--import", importID}, env.configPath)
	if err != nil {
		t.Fatalf("contacts list: %v", err)
	}
	var stored []map[string]any
	if err := json.Unmarshal([]byte(out), &stored); err != nil {
		t.Fatalf("decode contacts: %v\n%s", err, out)
	}
	if len(stored) != 2 || stored[1]["display_name"] != "Atención al Cliente" || stored[1]["import_id"] != importID {
		t.Fatalf("unexpected stored contacts: %v", stored)
	}

	out, _, err = runCLI(t, []string{"contacts", "list", "--limit", "1"}, env.configPath)
	if err != nil {
		t.Fatalf("contacts list table: %v", err)
	}
	requireContains(t, out, "Juan Pérez")
	if strings.Contains(out, "Atención") {
		t.Fatalf("limit not applied: %s", out)
	}

	out, _, err = runCLI(t, []string{"contacts", "imports"}, env.configPath)
	if err != nil {
		t.Fatalf("contacts imports: %v", err)
	}
	requireContains(t, out, importID)
	requireContains(t, out, input)
}

func TestImportRequiresStore(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStoreDisabled())
	input := testsupport.WriteVCF(t, env.baseDir, "contacts.vcf", sampleContacts...)

	_, _, err := runCLI(t, []string{"import", input}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "disabled") {
		t.Fatalf("expected disabled store error, got %v", err)
	}
}

func TestImportFailureLeavesStoreEmpty(t *testing.T) {
	env := setupCLITestEnv(t)
	lines := append(append([]string{}, sampleContacts...), "BEGIN:VCARD", "N:Ana;;;")
	input := testsupport.WriteVCF(t, env.baseDir, "cut.vcf", lines...)

	if _, _, err := runCLI(t, []string{"import", input}, env.configPath); !vcard.HasCode(err, vcard.CodeUnterminatedBlock) {
		t.Fatalf("expected unterminated block error, got %v", err)
	}
	out, _, err := runCLI(t, []string{"contacts", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("contacts list: %v", err)
	}
	requireContains(t, out, "No contacts stored")
}

func TestLogLevelFlag(t *testing.T) {
	env := setupCLITestEnv(t)
	input := testsupport.WriteVCF(t, env.baseDir, "contacts.vcf", sampleContacts...)

	_, stderr, err := runCLI(t, []string{"--log-level", "debug", "parse", input}, env.configPath)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	requireContains(t, stderr, "vcard: contact started")

	if _, _, err := runCLI(t, []string{"--log-level", "loud", "parse", input}, env.configPath); err == nil {
		t.Fatal("expected invalid log level to fail")
	}
}

func TestFileLogging(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithFileLogging())
	input := testsupport.WriteVCF(t, env.baseDir, "contacts.vcf", sampleContacts...)

	if _, _, err := runCLI(t, []string{"parse", input}, env.configPath); err != nil {
		t.Fatalf("parse: %v", err)
	}
	content, err := os.ReadFile(filepath.Join(env.cfg.Paths.LogDir, "vcfimport.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	requireContains(t, string(content), `"msg":"import finished"`)
}
