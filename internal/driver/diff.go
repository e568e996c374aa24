package driver

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Diff returns a unified diff of old and new, or nil when they are equal.
// It runs the system diff tool and falls back to a whole-file diff when the
// tool is not available.
func Diff(oldName string, old []byte, newName string, new []byte) ([]byte, error) {
	if bytes.Equal(old, new) {
		return nil, nil
	}
	data, err := toolDiff(oldName, old, newName, new)
	if err != nil {
		return fallbackDiff(oldName, old, newName, new), nil
	}
	return data, nil
}

func toolDiff(oldName string, old []byte, newName string, new []byte) ([]byte, error) {
	f1, err := writeTempFile(old)
	if err != nil {
		return nil, err
	}
	defer func() { _ = os.Remove(f1) }()

	f2, err := writeTempFile(new)
	if err != nil {
		return nil, err
	}
	defer func() { _ = os.Remove(f2) }()

	// #nosec G204 -- both arguments are our own temp files
	data, err := exec.Command("diff", "-u", f1, f2).CombinedOutput()
	if err != nil && len(data) == 0 {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	// заменяем заголовки с именами временных файлов
	i := bytes.IndexByte(data, '\n')
	if i < 0 {
		return data, nil
	}
	j := bytes.IndexByte(data[i+1:], '\n')
	if j < 0 {
		return data, nil
	}
	start := i + 1 + j + 1
	if start >= len(data) || data[start] != '@' {
		return data, nil
	}
	return append([]byte(fmt.Sprintf("--- %s\n+++ %s\n", oldName, newName)), data[start:]...), nil
}

func writeTempFile(data []byte) (string, error) {
	file, err := os.CreateTemp("", "phpfix-diff")
	if err != nil {
		return "", err
	}
	_, err = file.Write(data)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(file.Name())
		return "", err
	}
	return file.Name(), nil
}

// fallbackDiff prints the common prefix and suffix lines as context and the
// middle as one hunk.
func fallbackDiff(oldName string, old []byte, newName string, new []byte) []byte {
	a := splitLines(string(old))
	b := splitLines(string(new))

	pre := 0
	for pre < len(a) && pre < len(b) && a[pre] == b[pre] {
		pre++
	}
	suf := 0
	for suf < len(a)-pre && suf < len(b)-pre && a[len(a)-1-suf] == b[len(b)-1-suf] {
		suf++
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n+++ %s\n", oldName, newName)
	fmt.Fprintf(&sb, "@@ -%s +%s @@\n", hunkRange(pre, len(a)-pre-suf), hunkRange(pre, len(b)-pre-suf))
	for _, l := range a[pre : len(a)-suf] {
		writeDiffLine(&sb, '-', l)
	}
	for _, l := range b[pre : len(b)-suf] {
		writeDiffLine(&sb, '+', l)
	}
	return []byte(sb.String())
}

func hunkRange(start, n int) string {
	if n == 0 {
		return fmt.Sprintf("%d,0", start)
	}
	return fmt.Sprintf("%d,%d", start+1, n)
}

func writeDiffLine(sb *strings.Builder, prefix byte, line string) {
	sb.WriteByte(prefix)
	sb.WriteString(line)
	if !strings.HasSuffix(line, "\n") {
		sb.WriteString("\n\\ No newline at end of file\n")
	}
}

// splitLines keeps the line terminators.
func splitLines(s string) []string {
	var lines []string
	for s != "" {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			lines = append(lines, s)
			break
		}
		lines = append(lines, s[:i+1])
		s = s[i+1:]
	}
	return lines
}
