package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteVCF writes lines joined by CRLF, as phone exports do, to dir/name and
// returns the path.
func WriteVCF(t testing.TB, dir, name string, lines ...string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	content := strings.Join(lines, "\r\n")
	if len(lines) > 0 {
		content += "\r\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
