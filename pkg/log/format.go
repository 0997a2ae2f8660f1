package log

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

// Formatter defines the interface for formatting log entries.
type Formatter interface {
	Format(entry *Entry) ([]byte, error)
}

// Output defines the interface for log outputs.
type Output interface {
	Write(entry *Entry, formattedEntry []byte) error
	Close() error
}

// TextFormatter renders entries as "ts LEVEL message key=value ...".
type TextFormatter struct{}

// Format implements Formatter.
func (f *TextFormatter) Format(entry *Entry) ([]byte, error) {
	var b strings.Builder
	b.WriteString(entry.Timestamp.Format("2006-01-02T15:04:05.000Z07:00"))
	b.WriteByte(' ')
	b.WriteString(entry.Level.String())
	b.WriteByte(' ')
	b.WriteString(entry.Message)
	for _, fld := range entry.Fields {
		b.WriteByte(' ')
		b.WriteString(fld.Key)
		b.WriteByte('=')
		fmt.Fprintf(&b, "%v", fld.Value)
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

// JSONFormatter renders entries as single-line JSON objects.
type JSONFormatter struct{}

// Format implements Formatter.
func (f *JSONFormatter) Format(entry *Entry) ([]byte, error) {
	obj := map[string]interface{}{
		"ts":    entry.Timestamp.Format("2006-01-02T15:04:05.000Z07:00"),
		"level": entry.Level.String(),
		"msg":   entry.Message,
	}
	for _, fld := range entry.Fields {
		obj[fld.Key] = fld.Value
	}
	b, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// ConsoleOutput writes formatted entries to stderr.
type ConsoleOutput struct {
	mu sync.Mutex
}

// NewConsoleOutput returns a stderr-backed Output.
func NewConsoleOutput() *ConsoleOutput { return &ConsoleOutput{} }

// Write implements Output.
func (o *ConsoleOutput) Write(_ *Entry, formattedEntry []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, err := os.Stderr.Write(formattedEntry)
	return err
}

// Close implements Output.
func (o *ConsoleOutput) Close() error { return nil }
