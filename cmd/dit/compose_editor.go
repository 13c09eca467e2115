package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/git-dit/dit/pkg/message"
)

// writeTempTemplate writes a scratch file pre-filled with a default
// subject/body for the editor to open, matching how "git commit" seeds
// COMMIT_EDITMSG.
func writeTempTemplate(subjectDefault string, bodyDefault []string) (string, error) {
	f, err := os.CreateTemp("", "dit-message-*.txt")
	if err != nil {
		return "", fmt.Errorf("compose: create scratch file: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	b.WriteString(subjectDefault)
	b.WriteByte('\n')
	if len(bodyDefault) > 0 {
		b.WriteByte('\n')
		b.WriteString(strings.Join(bodyDefault, "\n"))
		b.WriteByte('\n')
	}
	if _, err := f.WriteString(b.String()); err != nil {
		return "", fmt.Errorf("compose: write scratch file: %w", err)
	}
	return f.Name(), nil
}

// readMessageFile reads back an edited scratch file and parses it.
func readMessageFile(path string) (message.Message, error) {
	defer os.Remove(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return message.Message{}, fmt.Errorf("compose: read scratch file: %w", err)
	}
	return message.Parse(string(data)), nil
}
