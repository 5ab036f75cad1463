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

// executeSelect handles select f, ... from <name> where <condition>.
// The result is appended to the database as a new select_table and returned.
func (e *Executor) executeSelect(tokens []Token) (*Result, error) {
	from := -1
	for i, tok := range tokens {
		if tok.IsKeyword(KeywordFrom) {
			from = i
			break
		}
	}
	if from < 0 {
		return nil, ferrors.MissingKeyword(KeywordFrom, tokens[len(tokens)-1].Value)
	}
	if from+1 >= len(tokens) {
		return nil, ferrors.UnexpectedEnd("table name after from")
	}

	src, err := e.lookupTable(tokens[from+1])
	if err != nil {
		return nil, err
	}

	projection, err := e.projection(src, tokens[1:from])
	if err != nil {
		return nil, err
	}

	where := splitWhere(tokens)
	if where >= 0 && where != from+2 {
		return nil, ferrors.UnexpectedToken(KeywordWhere, tokens[from+2].Value)
	}
	cond, err := whereClause(src, tokens, where)
	if err != nil {
		return nil, err
	}
	mask, err := Match(src, cond)
	if err != nil {
		return nil, err
	}

	columns := make([]ColumnInfo, len(projection))
	for i, idx := range projection {
		c := src.Columns[idx]
		c.Default = c.Default.Clone()
		columns[i] = c
	}
	result := NewTable(SelectTableName, columns)
	for i, row := range src.Rows {
		if !mask[i] {
			continue
		}
		values := make([]Value, len(projection))
		for j, idx := range projection {
			values[j] = row.Values[idx].Clone()
		}
		result.Rows = append(result.Rows, Row{Values: values})
	}

	e.db.addTable(result)
	return &Result{
		Tag:          tag("SELECT", result.Len()),
		Table:        result,
		RowsAffected: result.Len(),
	}, nil
}

// projection resolves the comma-separated column list of a select. A column
// may be listed more than once; order is kept.
func (e *Executor) projection(t *Table, tokens []Token) ([]int, error) {
	if len(tokens) == 0 {
		return nil, ferrors.UnexpectedToken("column list", KeywordFrom)
	}

	var out []int
	for i, tok := range tokens {
		if i%2 == 1 {
			if !tok.Is(",") {
				return nil, ferrors.MissingSeparator(tokens[i-1].Value, tok.Value)
			}
			continue
		}
		if tok.Type != TokenFieldName {
			return nil, ferrors.UnexpectedToken("column name", tok.Value)
		}
		idx, _, err := t.Column(tok.Value)
		if err != nil {
			return nil, err
		}
		out = append(out, idx)
	}
	if len(tokens)%2 == 0 {
		return nil, ferrors.UnexpectedToken("column name", KeywordFrom)
	}
	return out, nil
}
