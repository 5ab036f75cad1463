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

package sql

import (
	"sync"

	ferrors "memdb/internal/errors"
	"memdb/internal/logging"
	"memdb/internal/metrics"
)

// Database is an ordered collection of tables. It grows by CREATE and SELECT
// and never shrinks. It is safe for concurrent use; statements run one at a time.
type Database struct {
	mu       sync.RWMutex
	tables   []*Table
	executor *Executor
	metrics  *metrics.Metrics
	logger   *logging.Logger
}

// NewDatabase creates an empty database.
func NewDatabase() *Database {
	db := &Database{
		metrics: metrics.New(),
		logger:  logging.NewLogger("database"),
	}
	db.executor = NewExecutor(db)
	return db
}

// Execute tokenizes, validates and runs one statement.
func (db *Database) Execute(query string) (*Result, error) {
	qc := logging.NewQueryContext(query)
	qc.LogStart(db.logger)

	tokens := Tokenize(query)
	if err := Validate(tokens); err != nil {
		qc.LogError(db.logger, err, "stage", "validate")
		db.metrics.RecordFailure(qc.Duration())
		return nil, err
	}

	db.mu.Lock()
	res, err := db.executor.Execute(tokens)
	db.mu.Unlock()
	if err != nil {
		qc.LogError(db.logger, err, "stage", "execute")
		db.metrics.RecordFailure(qc.Duration())
		return nil, err
	}

	qc.LogComplete(db.logger, res.Tag, "rows", res.RowsAffected)
	db.metrics.RecordStatement(res.Command(), res.RowsAffected, qc.Duration())
	return res, nil
}

// Metrics returns the statement counters of this database.
func (db *Database) Metrics() *metrics.Metrics {
	return db.metrics
}

// Table returns the table with the given name.
func (db *Database) Table(name string) (*Table, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.table(name)
}

// Tables returns the tables in the order they were added. Every select adds
// one more select_table.
func (db *Database) Tables() []*Table {
	db.mu.RLock()
	defer db.mu.RUnlock()
	out := make([]*Table, len(db.tables))
	copy(out, db.tables)
	return out
}

// table resolves name to the most recently added table with that name. Only
// select_table can appear more than once.
func (db *Database) table(name string) (*Table, error) {
	for i := len(db.tables) - 1; i >= 0; i-- {
		if t := db.tables[i]; t.Name == name {
			return t, nil
		}
	}
	return nil, ferrors.TableNotFound(name)
}

func (db *Database) addTable(t *Table) {
	db.tables = append(db.tables, t)
}
