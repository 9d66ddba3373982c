// Package logging wires slog to both the console and the append-only
// process log file, and tails that file for the /logs endpoint.
package logging

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Setup opens the log file for appending and installs a text handler
// writing to both stdout and the file as the default logger. The returned
// closer releases the file handle.
func Setup(logFile string) (io.Closer, error) {
	if dir := filepath.Dir(logFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	handler := slog.NewTextHandler(io.MultiWriter(os.Stdout, f), nil)
	slog.SetDefault(slog.New(handler))
	return f, nil
}

// Tail returns the last n lines of the log file. A missing file is not an
// error: it yields an empty slice.
func Tail(logFile string, n int) ([]string, error) {
	f, err := os.Open(logFile)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if n > 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	if lines == nil {
		lines = []string{}
	}
	return lines, nil
}
