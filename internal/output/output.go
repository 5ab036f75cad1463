/*
 * Copyright (c) 2026 Firefly Software Solutions Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package output renders result tables, schemas and token dumps for the shell.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"memdb/internal/config"
	"memdb/internal/sql"
)

// Writer writes query results.
type Writer interface {
	WriteHeader(cols []string) error
	WriteRow(cols []string, vals []interface{}) error
	Flush() error
}

// New returns the Writer for a configured format name.
func New(format string, w io.Writer) (Writer, error) {
	switch format {
	case config.FormatTable:
		return NewTableWriter(w), nil
	case config.FormatPlain:
		return NewPlainWriter(w), nil
	case config.FormatJSON:
		return NewJSONWriter(w), nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

// WriteTable sends every row of t through w.
func WriteTable(w Writer, t *sql.Table) error {
	cols := t.ColumnNames()
	if err := w.WriteHeader(cols); err != nil {
		return err
	}
	for _, row := range t.Rows {
		vals := make([]interface{}, len(row.Values))
		for i, v := range row.Values {
			vals[i] = v.Interface()
		}
		if err := w.WriteRow(cols, vals); err != nil {
			return err
		}
	}
	return w.Flush()
}

// RowCount formats a row count footer such as "(1,024 rows)".
func RowCount(n int) string {
	if n == 1 {
		return "(1 row)"
	}
	return fmt.Sprintf("(%s rows)", humanize.Comma(int64(n)))
}

func cell(v interface{}) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprint(v)
}

// TableWriter draws bordered ASCII tables.
type TableWriter struct {
	out   io.Writer
	table *tablewriter.Table
	rows  int
}

func NewTableWriter(w io.Writer) *TableWriter {
	return &TableWriter{out: w, table: newTable(w)}
}

func newTable(w io.Writer) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetAutoFormatHeaders(false)
	t.SetAutoWrapText(false)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	return t
}

func (tw *TableWriter) WriteHeader(cols []string) error {
	tw.table.SetHeader(cols)
	return nil
}

func (tw *TableWriter) WriteRow(_ []string, vals []interface{}) error {
	cells := make([]string, len(vals))
	for i, v := range vals {
		cells[i] = cell(v)
	}
	tw.table.Append(cells)
	tw.rows++
	return nil
}

func (tw *TableWriter) Flush() error {
	tw.table.Render()
	_, err := fmt.Fprintln(tw.out, RowCount(tw.rows))
	tw.table = newTable(tw.out)
	tw.rows = 0
	return err
}

// PlainWriter writes tab-separated lines with a header line.
type PlainWriter struct {
	w io.Writer
}

func NewPlainWriter(w io.Writer) *PlainWriter {
	return &PlainWriter{w: w}
}

func (pw *PlainWriter) WriteHeader(cols []string) error {
	_, err := fmt.Fprintln(pw.w, strings.Join(cols, "\t"))
	return err
}

func (pw *PlainWriter) WriteRow(_ []string, vals []interface{}) error {
	cells := make([]string, len(vals))
	for i, v := range vals {
		cells[i] = cell(v)
	}
	_, err := fmt.Fprintln(pw.w, strings.Join(cells, "\t"))
	return err
}

func (pw *PlainWriter) Flush() error {
	return nil
}

// JSONWriter writes JSON lines to an io.Writer.
type JSONWriter struct {
	w io.Writer
}

func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

func (jw *JSONWriter) WriteHeader([]string) error {
	return nil
}

func (jw *JSONWriter) WriteRow(cols []string, vals []interface{}) error {
	rec := make(map[string]interface{}, len(cols))
	for i, col := range cols {
		rec[col] = vals[i]
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(jw.w, string(b))
	return err
}

func (jw *JSONWriter) Flush() error {
	return nil
}
