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

package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"memdb/internal/metrics"
	"memdb/internal/sql"
)

// Tokens prints one row per token with its position, class and raw text.
func Tokens(w io.Writer, tokens []sql.Token) {
	table := newTable(w)
	table.SetHeader([]string{"#", "Type", "Value"})
	for i, tok := range tokens {
		table.Append([]string{strconv.Itoa(i), tok.Type.String(), fmt.Sprintf("%q", tok.Value)})
	}
	table.Render()
}

// Describe prints the schema of t: column types, attributes, defaults and
// the next autoincrement value.
func Describe(w io.Writer, t *sql.Table) {
	fmt.Fprintf(w, "Table %q\n", t.Name)
	table := newTable(w)
	table.SetHeader([]string{"Column", "Type", "Attributes", "Default", "Next"})
	for _, c := range t.Columns {
		var attrs []string
		if c.Key {
			attrs = append(attrs, sql.AttrKey)
		}
		if c.Unique {
			attrs = append(attrs, sql.AttrUnique)
		}
		next := ""
		if c.Autoincrement {
			attrs = append(attrs, sql.AttrAutoincrement)
			next = humanize.Comma(int64(c.AutoincrementCounter))
		}
		def := ""
		if c.HasDefault() {
			def = c.Default.String()
		}
		table.Append([]string{c.Name, c.Type.String(), strings.Join(attrs, ", "), def, next})
	}
	table.Render()
}

// ListTables prints every table with its column and row counts.
func ListTables(w io.Writer, tables []*sql.Table) {
	table := newTable(w)
	table.SetHeader([]string{"Table", "Columns", "Rows"})
	for _, t := range tables {
		table.Append([]string{
			t.Name,
			strconv.Itoa(len(t.Columns)),
			humanize.Comma(int64(t.Len())),
		})
	}
	table.Render()
}

// Stats prints the statement counters of a database.
func Stats(w io.Writer, m *metrics.Metrics) {
	s := m.Snapshot()
	table := newTable(w)
	table.SetHeader([]string{"Counter", "Value"})
	table.Append([]string{"statements", humanize.Comma(s.Total)})
	for _, cmd := range metrics.Commands {
		table.Append([]string{"  " + strings.ToLower(cmd), humanize.Comma(s.ByCommand[cmd])})
	}
	table.Append([]string{"failed", humanize.Comma(s.Failed)})
	table.Append([]string{"rows", humanize.Comma(s.Rows)})
	table.Append([]string{"avg latency", fmt.Sprintf("%.2fµs", s.AvgLatency)})
	table.Render()
}
