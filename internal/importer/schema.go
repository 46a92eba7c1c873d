package importer

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ActivityFile is the top-level structure of an activity import. The file
// may also be a bare list of entries.
type ActivityFile struct {
	Activities []ActivityImport `yaml:"activities"`
}

// ActivityImport is one history entry in an import file. JSON input is
// accepted through the YAML decoder.
type ActivityImport struct {
	ID         string    `yaml:"id"`
	Label      string    `yaml:"label"`
	Food       string    `yaml:"food"`
	Status     string    `yaml:"status"`
	FinishedAt Timestamp `yaml:"finishedAt"`
	StartedAt  Timestamp `yaml:"startedAt"`
	At         Timestamp `yaml:"at"`
	Time       Timestamp `yaml:"time"`
}

// Timestamp decodes epoch milliseconds, RFC 3339 strings, or
// {seconds, nanoseconds} objects. Values it cannot read decode to a nil
// Time so the entry is treated as lacking that timestamp.
type Timestamp struct {
	Time *time.Time
}

var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func (ts *Timestamp) UnmarshalYAML(n *yaml.Node) error {
	ts.Time = nil
	switch n.Kind {
	case yaml.ScalarNode:
		ts.Time = parseScalarTime(n.Value)
	case yaml.MappingNode:
		var obj struct {
			Seconds      *int64 `yaml:"seconds"`
			Nanoseconds  int64  `yaml:"nanoseconds"`
			USeconds     *int64 `yaml:"_seconds"`
			UNanoseconds int64  `yaml:"_nanoseconds"`
		}
		if err := n.Decode(&obj); err != nil {
			return nil
		}
		switch {
		case obj.Seconds != nil:
			t := time.Unix(*obj.Seconds, obj.Nanoseconds)
			ts.Time = &t
		case obj.USeconds != nil:
			t := time.Unix(*obj.USeconds, obj.UNanoseconds)
			ts.Time = &t
		}
	}
	return nil
}

func parseScalarTime(v string) *time.Time {
	v = strings.TrimSpace(v)
	if v == "" || v == "null" || v == "~" {
		return nil
	}
	if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
		if ms <= 0 {
			return nil
		}
		t := time.UnixMilli(ms)
		return &t
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		if f <= 0 {
			return nil
		}
		t := time.UnixMilli(int64(f))
		return &t
	}
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return &t
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return &t
		}
	}
	return nil
}

// ParseActivities decodes a YAML or JSON document holding either a list of
// entries or an object with an "activities" list.
func ParseActivities(r io.Reader) ([]ActivityImport, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	switch root.Kind {
	case yaml.SequenceNode:
		var entries []ActivityImport
		if err := root.Decode(&entries); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
		return entries, nil
	case yaml.MappingNode:
		var file ActivityFile
		if err := root.Decode(&file); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
		return file.Activities, nil
	default:
		return nil, fmt.Errorf("parsing import file: expected a list or an object with activities")
	}
}

// LoadActivities reads and parses an import file.
func LoadActivities(path string) ([]ActivityImport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseActivities(f)
}
