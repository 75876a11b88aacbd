package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dkoosis/printer/pkg/table"
)

// loadTable reads path as CSV or as a YAML sequence of mappings, chosen by extension.
// Stdin is read as CSV.
func (a *app) loadTable(path, name string) (*table.Table, error) {
	data, err := readInput(path, a.stdin)
	if err != nil {
		return nil, fmt.Errorf("reading table input: %w", err)
	}
	if name == "" {
		name = baseName(path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return tableFromYAML(name, data)
	default:
		return tableFromCSV(name, data)
	}
}

func tableFromCSV(name string, data []byte) (*table.Table, error) {
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV table %q: %w", name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("table %q: no header record", name)
	}

	t := table.New(name, records[0]...)
	for _, rec := range records[1:] {
		values := make([]any, len(rec))
		for i, v := range rec {
			values[i] = v
		}
		if err := t.AddValues(values...); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// tableFromYAML keeps mapping keys in document order, so columns appear as written.
func tableFromYAML(name string, data []byte) (*table.Table, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML table %q: %w", name, err)
	}
	if len(doc.Content) == 0 {
		return table.New(name), nil
	}
	seq := doc.Content[0]
	if seq.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("table %q: line %d: expected a list of mappings", name, seq.Line)
	}

	rows := make([]table.Row, 0, len(seq.Content))
	for _, item := range seq.Content {
		if item.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("table %q: line %d: expected a mapping", name, item.Line)
		}
		row := make(table.Row, 0, len(item.Content)/2)
		for i := 0; i+1 < len(item.Content); i += 2 {
			var value any
			if err := item.Content[i+1].Decode(&value); err != nil {
				return nil, fmt.Errorf("table %q: line %d: %w", name, item.Content[i+1].Line, err)
			}
			row = append(row, table.Cell{Key: item.Content[i].Value, Value: value})
		}
		rows = append(rows, row)
	}
	return table.FromRows(name, rows...), nil
}
