package render

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"math"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/ReconfigureIO/hlsflow/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Format is an export file format, named by its file extension.
type Format string

// Supported export formats.
const (
	JSON     Format = ".json"
	CSV      Format = ".csv"
	TSV      Format = ".tsv"
	Markdown Format = ".md"
	HTML     Format = ".html"
)

// UnsupportedFormatError is returned for output names with an unknown
// extension.
type UnsupportedFormatError struct {
	Ext string
}

func (e UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported output format: %q", e.Ext)
}

// FormatFor picks the export format from the extension of name.
func FormatFor(name string) (Format, error) {
	ext := filepath.Ext(name)
	switch f := Format(ext); f {
	case JSON, CSV, TSV, Markdown, HTML:
		return f, nil
	}
	return "", UnsupportedFormatError{Ext: ext}
}

// Export writes the run in format f. JSON carries the full records as they
// were loaded; every other format serializes the table.
func Export(w io.Writer, f Format, records []models.Record, t *models.Table) error {
	switch f {
	case JSON:
		return exportJSON(w, records)
	case CSV:
		return exportDelimited(w, t, ",", csvQuote)
	case TSV:
		return exportDelimited(w, t, "\t", func(s string) string { return s })
	case Markdown:
		return exportMarkdown(w, t)
	case HTML:
		return exportHTML(w, t)
	}
	return UnsupportedFormatError{Ext: string(f)}
}

func exportJSON(w io.Writer, records []models.Record) error {
	out := make([]models.Record, len(records))
	for i, r := range records {
		clean := models.Record{}
		for k, v := range r {
			if f, ok := v.(float64); ok {
				// JSON has no NaN or infinities
				if math.IsNaN(f) || math.IsInf(f, 0) {
					v = nil
				} else {
					// 400.0 stays a float for readers
					v = jsoniter.Number(models.FormatFloat(f))
				}
			}
			clean[k] = v
		}
		out[i] = clean
	}
	data, err := json.Marshal(out)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func csvQuote(s string) string {
	if strings.Contains(s, ",") {
		return `"` + s + `"`
	}
	return s
}

func exportDelimited(w io.Writer, t *models.Table, sep string, quote func(string) string) error {
	out := bufio.NewWriter(w)
	line := make([]string, len(t.Header))
	for i, h := range t.Header {
		line[i] = quote(h)
	}
	fmt.Fprintln(out, strings.Join(line, sep))
	for _, row := range t.Rows {
		for i, v := range row {
			line[i] = quote(models.FormatValue(v))
		}
		fmt.Fprintln(out, strings.Join(line, sep))
	}
	return out.Flush()
}

func exportMarkdown(w io.Writer, t *models.Table) error {
	out := bufio.NewWriter(w)
	fmt.Fprintln(out, "| "+strings.Join(t.Header, " | ")+" |")
	rule := make([]string, len(t.Header))
	for i := range rule {
		rule[i] = "---"
	}
	fmt.Fprintln(out, "|"+strings.Join(rule, "|")+"|")
	cells := make([]string, len(t.Header))
	for _, row := range t.Rows {
		for i, v := range row {
			cells[i] = models.FormatValue(v)
		}
		fmt.Fprintln(out, "| "+strings.Join(cells, " | ")+" |")
	}
	return out.Flush()
}

func exportHTML(w io.Writer, t *models.Table) error {
	out := bufio.NewWriter(w)
	fmt.Fprintln(out, "<table>")
	fmt.Fprint(out, "  <tr>")
	for _, h := range t.Header {
		fmt.Fprintf(out, "<th>%s</th>", html.EscapeString(h))
	}
	fmt.Fprintln(out, "</tr>")
	for _, row := range t.Rows {
		fmt.Fprint(out, "  <tr>")
		for _, v := range row {
			fmt.Fprintf(out, "<td>%s</td>", html.EscapeString(models.FormatValue(v)))
		}
		fmt.Fprintln(out, "</tr>")
	}
	fmt.Fprintln(out, "</table>")
	return out.Flush()
}
