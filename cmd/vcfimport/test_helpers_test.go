package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vcfimport/internal/config"
	"vcfimport/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, opts...)
	base := testsupport.BaseDir(cfg)
	t.Setenv("HOME", filepath.Join(base, "home"))

	configPath := filepath.Join(base, "vcfimport.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	quoted := make([]string, len(cfg.Export.Fields))
	for i, f := range cfg.Export.Fields {
		quoted[i] = fmt.Sprintf("%q", f)
	}
	content := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q

[parse]
on_ambiguous_name = %q

[export]
fields = [%s]

[store]
enabled = %t
path = %q
`,
		cfg.Paths.DataDir,
		cfg.Paths.LogDir,
		cfg.Parse.OnAmbiguousName,
		strings.Join(quoted, ", "),
		cfg.Store.Enabled,
		cfg.Store.Path,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

var sampleContacts = []string{
	"BEGIN:VCARD",
	"VERSION:2.1",
	"N:;Juan;;;",
	"FN:Juan Pérez",
	"TEL;HOME:+34600111222",
	"EMAIL;HOME:juan@x.com",
	"END:VCARD",
	"BEGIN:VCARD",
	"VERSION:2.1",
	"N;CHARSET=UTF-8;ENCODING=QUOTED-PRINTABLE:;=41=74=65=6E=63=69=C3=B3=6E=20=61=6C=20=43=6C=69=65=6E=74=65;;;",
	"FN;CHARSET=UTF-8;ENCODING=QUOTED-PRINTABLE:=41=74=65=6E=63=69=C3=B3=6E=20=61=6C=20=43=6C=69=65=6E=74=65",
	"TEL;CELL:1004",
	"END:VCARD",
}
