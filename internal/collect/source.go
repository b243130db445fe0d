package collect

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/nxadm/tail"
)

// Log sources. Auth logs are usually root-readable only, so the default
// path shells out to tail(1) through sudo the way the log host grants it;
// ReadFile covers logs the process can open itself.

// LastLines returns the most recent n lines of path via a tail subprocess,
// optionally through sudo.
func LastLines(ctx context.Context, path string, n int, useSudo bool) ([]string, error) {
	args := []string{"tail", "-n", strconv.Itoa(n), path}
	if useSudo {
		args = append([]string{"sudo"}, args...)
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return splitLines(string(out)), nil
}

// ReadFile reads path directly and keeps the last n lines. The tail
// library is used without follow so a file rotated mid-read does not
// truncate the batch.
func ReadFile(path string, n int) ([]string, error) {
	t, err := tail.TailFile(path, tail.Config{
		MustExist: true,
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer t.Cleanup()

	var lines []string
	for line := range t.Lines {
		if line.Err != nil {
			continue
		}
		lines = append(lines, line.Text)
	}

	if n > 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}

// splitLines breaks subprocess output into lines, dropping the trailing
// empty entry a final newline produces
func splitLines(out string) []string {
	out = strings.TrimRight(out, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}
