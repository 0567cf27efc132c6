package pipeline

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func stageFile(t *testing.T, st *stage, name, body string) {
	t.Helper()
	if err := st.write(name, func(w io.Writer) error {
		_, err := io.WriteString(w, body)
		return err
	}); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func readString(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

func TestStageCommit_Fresh(t *testing.T) {
	root := t.TempDir()
	st, err := newStage(root)
	if err != nil {
		t.Fatalf("newStage: %v", err)
	}
	stageFile(t, st, "GRBrates.csv", "new")

	dest := filepath.Join(root, "GRB")
	if err := st.commit(dest); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if got := readString(t, filepath.Join(dest, "GRBrates.csv")); got != "new" {
		t.Errorf("want new content, got %q", got)
	}
	assertNoStaging(t, root)
}

func TestStageCommit_ReplacesOwnFilesKeepsOthers(t *testing.T) {
	root := t.TempDir()
	dest := filepath.Join(root, "GRB")
	if err := os.MkdirAll(filepath.Join(dest, "notes"), 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, dest, "GRBrates.csv", "old")
	writeFile(t, dest, "GRBweighted.csv", "weighted")
	writeFile(t, filepath.Join(dest, "notes"), "readme.txt", "keep")

	st, err := newStage(root)
	if err != nil {
		t.Fatalf("newStage: %v", err)
	}
	stageFile(t, st, "GRBrates.csv", "new")
	if err := st.commit(dest); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if got := readString(t, filepath.Join(dest, "GRBrates.csv")); got != "new" {
		t.Errorf("staged file not swapped in: %q", got)
	}
	if got := readString(t, filepath.Join(dest, "GRBweighted.csv")); got != "weighted" {
		t.Errorf("other command's artifact lost: %q", got)
	}
	if got := readString(t, filepath.Join(dest, "notes", "readme.txt")); got != "keep" {
		t.Errorf("subdirectory lost: %q", got)
	}
	assertNoStaging(t, root)
}

func TestStageCommit_FailureLeavesDestUntouched(t *testing.T) {
	root := t.TempDir()
	// A file where the mode dir should be cannot be read as a directory.
	dest := writeFile(t, root, "GRB", "not a dir")

	st, err := newStage(root)
	if err != nil {
		t.Fatalf("newStage: %v", err)
	}
	stageFile(t, st, "GRBrates.csv", "new")
	if err := st.commit(dest); err == nil {
		t.Fatal("expected commit error")
	}
	st.discard()

	if got := readString(t, dest); got != "not a dir" {
		t.Errorf("dest modified on failure: %q", got)
	}
	assertNoStaging(t, root)
}
