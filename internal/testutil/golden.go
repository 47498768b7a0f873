package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// UpdateGoldenEnv names the environment variable that rewrites golden files
// from the current output instead of comparing against them.
const UpdateGoldenEnv = "TASKPAD_UPDATE_GOLDEN"

// Golden compares got with testdata/<name>.golden. Line endings are
// normalized so files checked out with CRLF still match, and a mismatch
// reports the first differing line.
func Golden(t *testing.T, name string, got []byte) {
	t.Helper()

	path := filepath.Join("testdata", name+".golden")
	if os.Getenv(UpdateGoldenEnv) != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("create %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, got, 0o644); err != nil {
			t.Fatalf("update %s: %v", path, err)
		}
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v (run with %s=1 to create it)\ngot:\n%s", path, err, UpdateGoldenEnv, got)
	}

	wantLines := splitLines(string(want))
	gotLines := splitLines(string(got))
	for i := 0; i < len(wantLines) || i < len(gotLines); i++ {
		var w, g string
		if i < len(wantLines) {
			w = wantLines[i]
		}
		if i < len(gotLines) {
			g = gotLines[i]
		}
		if i >= len(wantLines) || i >= len(gotLines) || w != g {
			t.Errorf("%s: line %d differs\nwant: %q\ngot:  %q\nfull output:\n%s", path, i+1, w, g, got)
			return
		}
	}
}

// GoldenString is Golden for string output.
func GoldenString(t *testing.T, name string, got string) {
	t.Helper()
	Golden(t, name, []byte(got))
}

func splitLines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}
