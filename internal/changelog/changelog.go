package changelog

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

var separator = strings.Repeat("-", 50)

// Logger appends human-readable change entries to a plaintext history file.
// It is a non-critical sink: Append never fails from the caller's point of
// view, so a broken history file cannot block inventory or user operations.
type Logger struct {
	path string
	mu   sync.Mutex
}

func New(path string) *Logger {
	return &Logger{path: path}
}

// Append records one change block. The entry is attributed to "Sistema"
// when user is empty. Write errors only reach the process log.
func (l *Logger) Append(user, action, detail string) {
	if l == nil {
		return
	}
	if user == "" {
		user = "Sistema"
	}
	entry := fmt.Sprintf("[%s] Usuario: %s | Acción: %s\nDetalles: %s\n%s\n",
		time.Now().Format("2006-01-02 15:04:05"), user, action, detail, separator)

	l.mu.Lock()
	defer l.mu.Unlock()
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("history: could not open %s: %v", l.path, err)
		return
	}
	defer f.Close()
	if _, err := f.WriteString(entry); err != nil {
		log.Printf("history: write to %s failed: %v", l.path, err)
	}
}

// Read returns the raw history text, empty when no history exists yet.
func (l *Logger) Read() (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return string(data), nil
}

// Clear truncates the history file.
func (l *Logger) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return os.WriteFile(l.path, nil, 0o644)
}
