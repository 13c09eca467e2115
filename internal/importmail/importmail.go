// Package importmail stages a maildir folder's messages for import. The
// conversion of staged messages into commits is an open question left
// unresolved by the source this was distilled from; ImportMessages
// reports ErrNotImplemented rather than guessing at behavior.
package importmail

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrNotImplemented marks the maildir-to-commits conversion as
// unimplemented; staging (Stage) is the only supported part of import.
var ErrNotImplemented = errors.New("importmail: maildir-to-commit conversion is not implemented")

// StagedMessage is one file copied out of a maildir folder into a batch
// staging directory, prior to any parsing or conversion.
type StagedMessage struct {
	SourcePath string
	StagedPath string
}

// Stage copies every regular file directly under maildirPath (a maildir
// "new" or "cur" subdirectory) into a fresh staging directory under
// baseDir, named with a random batch ID the way the teacher names
// per-run tracker directories. It does not interpret file contents.
func Stage(maildirPath, baseDir string) ([]StagedMessage, string, error) {
	entries, err := os.ReadDir(maildirPath)
	if err != nil {
		return nil, "", fmt.Errorf("importmail: read maildir %s: %w", maildirPath, err)
	}

	batchDir := filepath.Join(baseDir, uuid.NewString())
	if err := os.MkdirAll(batchDir, 0o755); err != nil {
		return nil, "", fmt.Errorf("importmail: create staging dir: %w", err)
	}

	var staged []StagedMessage
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		src := filepath.Join(maildirPath, e.Name())
		dst := filepath.Join(batchDir, e.Name())
		if err := copyFile(src, dst); err != nil {
			return nil, "", fmt.Errorf("importmail: stage %s: %w", e.Name(), err)
		}
		staged = append(staged, StagedMessage{SourcePath: src, StagedPath: dst})
	}
	return staged, batchDir, nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}

// ImportMessages would convert staged maildir messages into issue
// messages. Left unimplemented; see the package doc comment.
func ImportMessages(staged []StagedMessage) error {
	return ErrNotImplemented
}
