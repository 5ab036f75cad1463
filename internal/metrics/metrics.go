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

/*
Package metrics keeps statement counters for a memdb database.

COUNTERS:
=========
- Statements: executed (total, by command: CREATE, INSERT, SELECT, DELETE, UPDATE)
- Failures: statements rejected by the validator or the executor
- Rows: rows returned by SELECT and rows touched by INSERT, DELETE and UPDATE
- Latency: running sum and count, reported as an average

The counters are atomic so a snapshot can be taken while statements run.
WritePrometheus renders them in the Prometheus text exposition format:

	memdb_statements_total 42
	memdb_statements_by_command_total{command="SELECT"} 12
	memdb_statements_failed_total 3
*/
package metrics

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"
)

// Commands in the order they are reported.
var Commands = []string{"CREATE", "INSERT", "SELECT", "DELETE", "UPDATE"}

// Metrics holds the counters for one database.
type Metrics struct {
	StatementsTotal  atomic.Int64
	StatementsCreate atomic.Int64
	StatementsInsert atomic.Int64
	StatementsSelect atomic.Int64
	StatementsDelete atomic.Int64
	StatementsUpdate atomic.Int64
	StatementsFailed atomic.Int64

	RowsAffected atomic.Int64

	// Latency in microseconds.
	LatencySum   atomic.Int64
	LatencyCount atomic.Int64
}

// New returns zeroed counters.
func New() *Metrics {
	return &Metrics{}
}

// RecordStatement counts a successful statement. command is the upper-case
// command word; unknown commands only count towards the total.
func (m *Metrics) RecordStatement(command string, rows int, latency time.Duration) {
	m.StatementsTotal.Add(1)
	if c := m.counter(command); c != nil {
		c.Add(1)
	}
	m.RowsAffected.Add(int64(rows))
	m.recordLatency(latency)
}

// RecordFailure counts a rejected statement.
func (m *Metrics) RecordFailure(latency time.Duration) {
	m.StatementsTotal.Add(1)
	m.StatementsFailed.Add(1)
	m.recordLatency(latency)
}

func (m *Metrics) recordLatency(latency time.Duration) {
	m.LatencySum.Add(latency.Microseconds())
	m.LatencyCount.Add(1)
}

func (m *Metrics) counter(command string) *atomic.Int64 {
	switch command {
	case "CREATE":
		return &m.StatementsCreate
	case "INSERT":
		return &m.StatementsInsert
	case "SELECT":
		return &m.StatementsSelect
	case "DELETE":
		return &m.StatementsDelete
	case "UPDATE":
		return &m.StatementsUpdate
	}
	return nil
}

// AverageLatency returns the average statement latency in microseconds.
func (m *Metrics) AverageLatency() float64 {
	count := m.LatencyCount.Load()
	if count == 0 {
		return 0
	}
	return float64(m.LatencySum.Load()) / float64(count)
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Total      int64
	Failed     int64
	Rows       int64
	ByCommand  map[string]int64
	AvgLatency float64
}

// Snapshot copies the current counter values.
func (m *Metrics) Snapshot() Snapshot {
	s := Snapshot{
		Total:      m.StatementsTotal.Load(),
		Failed:     m.StatementsFailed.Load(),
		Rows:       m.RowsAffected.Load(),
		ByCommand:  make(map[string]int64, len(Commands)),
		AvgLatency: m.AverageLatency(),
	}
	for _, cmd := range Commands {
		s.ByCommand[cmd] = m.counter(cmd).Load()
	}
	return s
}

// Reset zeroes every counter.
func (m *Metrics) Reset() {
	for _, c := range []*atomic.Int64{
		&m.StatementsTotal, &m.StatementsCreate, &m.StatementsInsert,
		&m.StatementsSelect, &m.StatementsDelete, &m.StatementsUpdate,
		&m.StatementsFailed, &m.RowsAffected, &m.LatencySum, &m.LatencyCount,
	} {
		c.Store(0)
	}
}

// WritePrometheus writes the counters in Prometheus text format.
func (m *Metrics) WritePrometheus(w io.Writer) error {
	s := m.Snapshot()

	var err error
	printf := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	printf("# HELP memdb_statements_total Total statements executed\n")
	printf("# TYPE memdb_statements_total counter\n")
	printf("memdb_statements_total %d\n", s.Total)

	printf("# HELP memdb_statements_by_command_total Statements by command\n")
	printf("# TYPE memdb_statements_by_command_total counter\n")
	for _, cmd := range Commands {
		printf("memdb_statements_by_command_total{command=%q} %d\n", cmd, s.ByCommand[cmd])
	}

	printf("# HELP memdb_statements_failed_total Failed statements\n")
	printf("# TYPE memdb_statements_failed_total counter\n")
	printf("memdb_statements_failed_total %d\n", s.Failed)

	printf("# HELP memdb_rows_affected_total Rows returned or modified\n")
	printf("# TYPE memdb_rows_affected_total counter\n")
	printf("memdb_rows_affected_total %d\n", s.Rows)

	printf("# HELP memdb_statement_latency_avg_microseconds Average statement latency\n")
	printf("# TYPE memdb_statement_latency_avg_microseconds gauge\n")
	printf("memdb_statement_latency_avg_microseconds %.2f\n", s.AvgLatency)

	return err
}
