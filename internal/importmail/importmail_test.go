package importmail

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStage_CopiesRegularFiles(t *testing.T) {
	maildir := t.TempDir()
	base := t.TempDir()

	if err := os.WriteFile(filepath.Join(maildir, "1.eml"), []byte("Subject: hi\n\nbody\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(maildir, "tmp"), 0o755); err != nil {
		t.Fatal(err)
	}

	staged, batchDir, err := Stage(maildir, base)
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if len(staged) != 1 {
		t.Fatalf("expected 1 staged message, got %d", len(staged))
	}
	if filepath.Dir(staged[0].StagedPath) != batchDir {
		t.Fatalf("staged path %s not under batch dir %s", staged[0].StagedPath, batchDir)
	}
	data, err := os.ReadFile(staged[0].StagedPath)
	if err != nil || string(data) != "Subject: hi\n\nbody\n" {
		t.Fatalf("staged file content mismatch: %q, err=%v", data, err)
	}
}

func TestImportMessages_NotImplemented(t *testing.T) {
	if err := ImportMessages(nil); err != ErrNotImplemented {
		t.Fatalf("expected ErrNotImplemented, got %v", err)
	}
}
