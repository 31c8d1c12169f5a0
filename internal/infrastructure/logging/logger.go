package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/lvaldes/statecraft/internal/application/common"
	"github.com/lvaldes/statecraft/internal/infrastructure/config"
)

var levelRank = map[string]int{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
}

// writerLogger emits structured log lines to a single writer, filtering
// entries below the configured level
type writerLogger struct {
	out      io.Writer
	asJSON   bool
	minLevel int
}

// NewLogger builds a logger from the logging configuration. For file output
// the file is opened in append mode and stays open for the process lifetime.
func NewLogger(cfg *config.LoggingConfig) (common.Logger, error) {
	var out io.Writer
	switch cfg.Output {
	case "stderr":
		out = os.Stderr
	case "file":
		if cfg.FilePath == "" {
			return nil, fmt.Errorf("logging output is 'file' but no file_path is set")
		}
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
	default:
		out = os.Stdout
	}

	rank, ok := levelRank[strings.ToLower(cfg.Level)]
	if !ok {
		rank = levelRank["info"]
	}

	return &writerLogger{
		out:      out,
		asJSON:   cfg.Format == "json",
		minLevel: rank,
	}, nil
}

func (l *writerLogger) Log(level, message string, metadata map[string]interface{}) {
	rank, ok := levelRank[strings.ToLower(level)]
	if !ok || rank < l.minLevel {
		return
	}

	if l.asJSON {
		entry := map[string]interface{}{
			"time":    time.Now().UTC().Format(time.RFC3339),
			"level":   strings.ToLower(level),
			"message": message,
		}
		for k, v := range metadata {
			entry[k] = v
		}
		line, err := json.Marshal(entry)
		if err != nil {
			return
		}
		fmt.Fprintln(l.out, string(line))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %-5s %s", time.Now().UTC().Format(time.RFC3339), strings.ToUpper(level), message)
	for _, k := range sortedMetadataKeys(metadata) {
		fmt.Fprintf(&b, " %s=%v", k, metadata[k])
	}
	fmt.Fprintln(l.out, b.String())
}

func sortedMetadataKeys(metadata map[string]interface{}) []string {
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
