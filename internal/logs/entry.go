package logs

import (
	"encoding/json"
	"log/slog"
	"sort"
	"strings"
	"time"

	"comicsdb/internal/logging"
)

// Entry is one decoded line of comicsdb.log.
type Entry struct {
	Time      time.Time         `json:"ts"`
	Level     string            `json:"level"`
	Message   string            `json:"msg"`
	Component string            `json:"component,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
	Raw       string            `json:"-"`
}

func reservedKey(key string) bool {
	switch key {
	case "ts", "level", "msg", logging.FieldComponent:
		return true
	}
	return false
}

// ParseEntry decodes a JSON log line. Lines that are not JSON objects come
// back as info entries carrying the raw text as the message.
func ParseEntry(line string) Entry {
	entry := Entry{Raw: line}
	var doc map[string]any
	if err := json.Unmarshal([]byte(line), &doc); err != nil {
		entry.Level = "info"
		entry.Message = line
		return entry
	}
	if ts, ok := doc["ts"].(string); ok {
		if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
			entry.Time = parsed
		}
	}
	entry.Level, _ = doc["level"].(string)
	entry.Message, _ = doc["msg"].(string)
	entry.Component, _ = doc[logging.FieldComponent].(string)
	for key, value := range doc {
		if reservedKey(key) {
			continue
		}
		if entry.Fields == nil {
			entry.Fields = make(map[string]string)
		}
		entry.Fields[key] = stringify(value)
	}
	return entry
}

// FieldKeys returns the extra field names in sorted order.
func (e Entry) FieldKeys() []string {
	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (e Entry) severity() slog.Level {
	return ParseLevel(e.Level)
}

// ParseLevel maps a level name to its slog level; unknown names are info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(data)
	}
}
