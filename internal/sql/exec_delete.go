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

// executeDelete handles delete <name> where <condition>. Surviving rows keep
// their relative order and autoincrement counters are left alone.
func (e *Executor) executeDelete(tokens []Token) (*Result, error) {
	if len(tokens) < 2 {
		return nil, ferrors.UnexpectedEnd("table name after delete")
	}
	t, err := e.lookupTable(tokens[1])
	if err != nil {
		return nil, err
	}

	where := splitWhere(tokens)
	if where >= 0 && where != 2 {
		return nil, ferrors.UnexpectedToken(KeywordWhere, tokens[2].Value)
	}
	cond, err := whereClause(t, tokens, where)
	if err != nil {
		return nil, err
	}
	mask, err := Match(t, cond)
	if err != nil {
		return nil, err
	}

	kept := t.Rows[:0]
	for i, row := range t.Rows {
		if !mask[i] {
			kept = append(kept, row)
		}
	}
	deleted := len(t.Rows) - len(kept)
	for i := len(kept); i < len(t.Rows); i++ {
		t.Rows[i] = Row{}
	}
	t.Rows = kept

	return &Result{Tag: tag("DELETE", deleted), RowsAffected: deleted}, nil
}
