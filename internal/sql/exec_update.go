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
	ferrors "memdb/internal/errors"
)

// assignment is one field = value pair of an update.
type assignment struct {
	column int
	value  Value
}

// executeUpdate handles update <name> set f = v, ... where <condition>.
//
// Assigned values are type checked before any row is visited and uniqueness
// is checked against the table as it would look afterwards. Rows change only
// when every check passes. Autoincrement counters are never touched.
func (e *Executor) executeUpdate(tokens []Token) (*Result, error) {
	if len(tokens) < 3 {
		return nil, ferrors.UnexpectedEnd("set")
	}
	t, err := e.lookupTable(tokens[1])
	if err != nil {
		return nil, err
	}
	if !tokens[2].IsKeyword(KeywordSet) {
		return nil, ferrors.MissingKeyword(KeywordSet, tokens[2].Value)
	}

	where := splitWhere(tokens)
	if where < 0 {
		return nil, ferrors.MissingKeyword(KeywordWhere, tokens[len(tokens)-1].Value)
	}
	assignments, err := parseAssignments(t, tokens[3:where])
	if err != nil {
		return nil, err
	}
	cond, err := whereClause(t, tokens, where)
	if err != nil {
		return nil, err
	}
	mask, err := Match(t, cond)
	if err != nil {
		return nil, err
	}

	next := make([]Row, len(t.Rows))
	updated := 0
	for i, row := range t.Rows {
		if !mask[i] {
			next[i] = row
			continue
		}
		r := row.Clone()
		for _, a := range assignments {
			r.Values[a.column] = a.value.Clone()
		}
		next[i] = r
		updated++
	}

	candidate := &Table{Name: t.Name, Columns: t.Columns, Rows: next}
	for _, a := range assignments {
		col := &t.Columns[a.column]
		if !col.IsUnique() {
			continue
		}
		for i := range next {
			if mask[i] && candidate.findDuplicate(a.column, next[i].Values[a.column], i) {
				return nil, ferrors.DuplicateKey(col.Name, a.value.String())
			}
		}
	}

	t.Rows = next
	return &Result{Tag: tag("UPDATE", updated), RowsAffected: updated}, nil
}

// parseAssignments reads f = v pairs separated by commas.
func parseAssignments(t *Table, tokens []Token) ([]assignment, error) {
	if len(tokens) == 0 {
		return nil, ferrors.UnexpectedToken("field = value", KeywordWhere)
	}

	var out []assignment
	seen := make(map[int]bool)
	for i := 0; i < len(tokens); i += 4 {
		if i+2 >= len(tokens) {
			return nil, ferrors.UnexpectedToken("field = value", joinTokens(tokens[i:]))
		}
		field, eq, lit := tokens[i], tokens[i+1], tokens[i+2]
		if field.Type != TokenFieldName || !eq.Is("=") || lit.Type != TokenValue {
			return nil, ferrors.UnexpectedToken("field = value", joinTokens(tokens[i:i+3]))
		}
		if i+3 < len(tokens) && !tokens[i+3].Is(",") {
			return nil, ferrors.MissingSeparator(lit.Value, tokens[i+3].Value)
		}
		if i+3 == len(tokens)-1 {
			return nil, ferrors.UnexpectedToken("field = value", KeywordWhere)
		}

		idx, _, err := t.Column(field.Value)
		if err != nil {
			return nil, err
		}
		if seen[idx] {
			return nil, ferrors.DuplicateColumn(field.Value)
		}
		seen[idx] = true

		v, err := ParseValue(lit.Value)
		if err != nil {
			return nil, err
		}
		if err := t.Columns[idx].Type.Check(field.Value, v); err != nil {
			return nil, err
		}
		out = append(out, assignment{column: idx, value: v})
	}
	return out, nil
}
