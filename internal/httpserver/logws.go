package httpserver

import (
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// LogWS streams lines appended to the process log file, so a frontend
// terminal can follow activity live instead of polling /logs.
type LogWS struct {
	logFile  string
	interval time.Duration
	upgrader websocket.Upgrader
}

func NewLogWS(logFile string) *LogWS {
	return &LogWS{
		logFile:  logFile,
		interval: time.Second,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *LogWS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	var offset int64
	if info, err := os.Stat(h.logFile); err == nil {
		offset = info.Size()
	}
	var pending string

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
			chunk, next, err := readFrom(h.logFile, offset)
			if err != nil {
				continue
			}
			offset = next
			if chunk == "" {
				continue
			}
			pending += chunk
			lines := strings.Split(pending, "\n")
			pending = lines[len(lines)-1] // possibly incomplete tail
			for _, line := range lines[:len(lines)-1] {
				if line == "" {
					continue
				}
				conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
					return
				}
			}
		}
	}
}

func readFrom(path string, offset int64) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		// Log file may not exist yet; keep waiting at the same offset.
		if os.IsNotExist(err) {
			return "", offset, nil
		}
		return "", offset, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return "", offset, err
	}
	size := info.Size()
	if size < offset {
		// Truncated or rotated; start over from the beginning.
		offset = 0
	}
	if size == offset {
		return "", offset, nil
	}
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return "", offset, err
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return "", offset, err
	}
	return string(data), offset + int64(len(data)), nil
}
