package table

import (
	"encoding/csv"
	"html/template"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/dkoosis/printer/pkg/ansi"
)

// plain strips escape sequences from every exported value.
func (t *Table) plain() ([]string, [][]string, error) {
	cols := make([]string, len(t.columns))
	for i, c := range t.columns {
		s, err := ansi.Strip(c)
		if err != nil {
			return nil, nil, err
		}
		cols[i] = s
	}
	rows := make([][]string, len(t.rows))
	for i, r := range t.rows {
		rows[i] = make([]string, len(r))
		for j, v := range r {
			s, err := ansi.Strip(v)
			if err != nil {
				return nil, nil, err
			}
			rows[i][j] = s
		}
	}
	return cols, rows, nil
}

// CSV returns the header and rows as CSV, without color.
func (t *Table) CSV() (string, error) {
	cols, rows, err := t.plain()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.Write(cols); err != nil {
		return "", err
	}
	if err := w.WriteAll(rows); err != nil {
		return "", err
	}
	return sb.String(), nil
}

var htmlTable = template.Must(template.New("table").Parse(
	`<center><h1>{{.Name}}</h1></center>
<table>
  <thead>
    <tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
  </thead>
  <tbody>
{{- range .Rows}}
    <tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
  </tbody>
</table>
`))

// HTML returns the table as an HTML fragment headed by its name. Values are escaped.
func (t *Table) HTML() (string, error) {
	cols, rows, err := t.plain()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	err = htmlTable.Execute(&sb, struct {
		Name    string
		Columns []string
		Rows    [][]string
	}{t.Name, cols, rows})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Markdown writes the table as a GitHub-flavored Markdown table.
func (t *Table) Markdown(w io.Writer) error {
	cols, rows, err := t.plain()
	if err != nil {
		return err
	}
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(cols)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	tw.SetCenterSeparator("|")
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.AppendBulk(rows)
	tw.Render()
	return nil
}
