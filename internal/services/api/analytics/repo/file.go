package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"hranalytics/internal/core/records"
	"hranalytics/internal/core/window"
)

type fileRepo struct {
	path string
	read func(string) ([]byte, error)
}

// NewFile reads a JSON array of attribute objects on every fetch and filters it in memory
func NewFile(path string) Repo {
	if strings.TrimSpace(path) == "" {
		panic("analytics.repo requires a records file path")
	}
	return &fileRepo{path: path, read: os.ReadFile}
}

func (r *fileRepo) Source() string { return SourceFile }

func (r *fileRepo) Fetch(ctx context.Context, w window.Window) ([]records.QueryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := r.read(r.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}
	attrs, err := DecodeAttrs(b)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.path, err)
	}
	return records.InWindow(records.FromAttrsList(attrs), w), nil
}

// DecodeAttrs parses a JSON array of flat objects into attribute bags
// strings pass through, numbers keep their literal text, bools become true or false, null is dropped
func DecodeAttrs(b []byte) ([]records.Attrs, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var raw []map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	out := make([]records.Attrs, 0, len(raw))
	for _, obj := range raw {
		a := make(records.Attrs, len(obj))
		for k, v := range obj {
			switch x := v.(type) {
			case string:
				a[k] = x
			case json.Number:
				a[k] = x.String()
			case bool:
				if x {
					a[k] = "true"
				} else {
					a[k] = "false"
				}
			}
		}
		out = append(out, a)
	}
	return out, nil
}
