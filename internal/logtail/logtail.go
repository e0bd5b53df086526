package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Read returns at most maxLines from the end of the file at path. A missing
// file yields no lines and no error.
func Read(path string, maxLines int) ([]string, error) {
	return Tail(path, maxLines, nil)
}

// Tail returns the last maxLines lines of the file at path for which keep
// reports true. A nil keep keeps every line.
func Tail(path string, maxLines int, keep func(string) bool) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()
	return tail(file, maxLines, keep)
}

func tail(r io.Reader, maxLines int, keep func(string) bool) ([]string, error) {
	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count, idx := 0, 0
	for scanner.Scan() {
		line := scanner.Text()
		if keep != nil && !keep(line) {
			continue
		}
		ring[idx] = line
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// IsProblem reports whether a zap log line, console or JSON encoded, is at
// warn level or above.
func IsProblem(line string) bool {
	for _, lvl := range []string{"WARN", "ERROR", "DPANIC", "PANIC", "FATAL"} {
		if strings.Contains(line, "\t"+lvl+"\t") {
			return true
		}
		if strings.Contains(line, `"level":"`+strings.ToLower(lvl)+`"`) {
			return true
		}
	}
	return false
}
