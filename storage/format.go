package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Format is the on-disk serialization of a TaskList.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatYAML, FormatTOML}

// ParseFormat validates a format name. "yml" is accepted as YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unsupported format %q (json, yaml, toml)", s)
}

// FormatFromPath infers the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	if f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), ".")); err == nil {
		return f
	}
	return FormatJSON
}

// Encode serializes list in format f.
func Encode(f Format, list *TaskList) ([]byte, error) {
	switch f {
	case FormatJSON:
		data, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(list)
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(list); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unsupported format %q", f)
}

// Decode parses data written in format f. Empty input decodes to an empty
// list. JSON files written by the first release of the tool, an object
// keyed by task id, are migrated on the fly.
func Decode(f Format, data []byte) (*TaskList, error) {
	list := NewTaskList()
	if len(bytes.TrimSpace(data)) == 0 {
		return list, nil
	}

	switch f {
	case FormatJSON:
		legacy, ok, err := decodeLegacyJSON(data)
		if err != nil {
			return nil, err
		}
		if ok {
			list = legacy
		} else if err := json.Unmarshal(data, list); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, list); err != nil {
			return nil, err
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), list); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", f)
	}

	list.normalize()
	return list, nil
}

// legacyTask mirrors a record of the map-based file layout.
type legacyTask struct {
	ID           int         `json:"id"`
	Name         string      `json:"name"`
	TotalSeconds int64       `json:"total_duration_seconds"`
	Running      bool        `json:"running"`
	LastRun      *legacyTime `json:"last_run"`
}

type legacyTime struct {
	Secs  int64 `json:"secs_since_epoch"`
	Nanos int64 `json:"nanos_since_epoch"`
}

// decodeLegacyJSON reports ok=false when data is not a legacy document.
func decodeLegacyJSON(data []byte) (*TaskList, bool, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, false, err
	}
	for key := range raw {
		if _, err := strconv.Atoi(key); err != nil {
			return nil, false, nil
		}
	}

	list := NewTaskList()
	for key, msg := range raw {
		var lt legacyTask
		if err := json.Unmarshal(msg, &lt); err != nil {
			return nil, false, fmt.Errorf("legacy task %s: %w", key, err)
		}
		task := &Task{
			ID:           lt.ID,
			UID:          uuid.NewString(),
			Name:         lt.Name,
			TotalSeconds: lt.TotalSeconds,
			Running:      lt.Running,
		}
		if lt.LastRun != nil {
			ts := time.Unix(lt.LastRun.Secs, lt.LastRun.Nanos).UTC()
			task.LastRun = &ts
		}
		list.Tasks = append(list.Tasks, task)
	}
	slices.SortFunc(list.Tasks, func(a, b *Task) int { return a.ID - b.ID })
	return list, true, nil
}
