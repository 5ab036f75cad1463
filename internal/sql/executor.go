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
Package sql contains the Executor component for statement execution.

Executor Overview:
==================

The Executor takes a validated token stream and interprets it directly
against the Database. There is no separate parse tree: each statement
handler walks the tokens itself.

Execution Flow:
===============

	query text → Lexer → Validator → Executor → Result
	                                     ↓
	                                  Database

Supported statements:

	create table <name> ( [{attrs}] field : type [= default], ... )
	insert ( values | field = value, ... ) to <name>
	select field, ... from <name> where <condition>
	delete <name> where <condition>
	update <name> set field = value, ... where <condition>

Statement Atomicity:
====================

Every handler validates the whole statement before touching the table.
A failed INSERT, UPDATE or DELETE leaves rows and autoincrement counters
exactly as they were.
*/
package sql

import (
	"fmt"
	"strings"

	ferrors "memdb/internal/errors"
	"memdb/internal/logging"
)

// Result describes the outcome of one statement.
type Result struct {
	// Tag is a short completion message such as "INSERT 1" or "SELECT 2".
	Tag string

	// Table is the result table of a SELECT. It is nil for other statements.
	Table *Table

	// RowsAffected counts inserted, deleted, updated or selected rows.
	RowsAffected int
}

// Command returns the command word of the tag, e.g. "CREATE" for
// "CREATE TABLE".
func (r *Result) Command() string {
	cmd, _, _ := strings.Cut(r.Tag, " ")
	return cmd
}

// Executor interprets token streams against a Database.
type Executor struct {
	db     *Database
	logger *logging.Logger
}

// NewExecutor creates an Executor bound to db.
func NewExecutor(db *Database) *Executor {
	return &Executor{
		db:     db,
		logger: logging.NewLogger("executor"),
	}
}

// Execute dispatches a validated token stream to its statement handler.
// The caller must hold the database write lock.
func (e *Executor) Execute(tokens []Token) (*Result, error) {
	if len(tokens) == 0 {
		return nil, ferrors.UnknownQuery("empty query")
	}

	switch fold(tokens[0].Value) {
	case KeywordCreate:
		return e.executeCreate(tokens)
	case KeywordInsert:
		return e.executeInsert(tokens)
	case KeywordSelect:
		return e.executeSelect(tokens)
	case KeywordDelete:
		return e.executeDelete(tokens)
	case KeywordUpdate:
		return e.executeUpdate(tokens)
	}
	return nil, ferrors.UnknownQuery(lower(tokens[0].Value))
}

// lookupTable resolves the table named by tok, which must be a table name token.
func (e *Executor) lookupTable(tok Token) (*Table, error) {
	if tok.Type != TokenTableName {
		return nil, ferrors.UnexpectedToken("table name", tok.Value)
	}
	return e.db.table(tok.Value)
}

// splitWhere returns the index of the where keyword in tokens, or -1.
func splitWhere(tokens []Token) int {
	for i, tok := range tokens {
		if tok.IsKeyword(KeywordWhere) {
			return i
		}
	}
	return -1
}

// whereClause compiles the condition after the where keyword at index at.
func whereClause(t *Table, tokens []Token, at int) (Condition, error) {
	if at < 0 {
		return nil, ferrors.MissingKeyword(KeywordWhere, "end of query")
	}
	return CompileCondition(t, tokens[at+1:])
}

func tag(command string, n int) string {
	return fmt.Sprintf("%s %d", command, n)
}
