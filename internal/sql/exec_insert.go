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

// insertSlot is one comma-separated entry of an insert value list.
type insertSlot struct {
	field string // empty for positional entries
	value Token
	blank bool
}

// executeInsert handles insert ( values ) to <name>.
func (e *Executor) executeInsert(tokens []Token) (*Result, error) {
	n := len(tokens)
	if n < 2 || !tokens[1].Is("(") {
		got := "end of query"
		if n >= 2 {
			got = tokens[1].Value
		}
		return nil, ferrors.UnexpectedToken("( after insert", got)
	}
	if n < 5 || !tokens[n-2].IsKeyword(KeywordTo) || tokens[n-1].Type != TokenTableName {
		return nil, ferrors.MissingKeyword(KeywordTo, tokens[n-1].Value).
			WithHint("Insert statements end with ) to <table>")
	}
	if !tokens[n-3].Is(")") {
		return nil, ferrors.UnexpectedToken(")", tokens[n-3].Value)
	}

	t, err := e.lookupTable(tokens[n-1])
	if err != nil {
		return nil, err
	}

	slots, err := splitInsertSlots(tokens[2 : n-3])
	if err != nil {
		return nil, err
	}

	values, err := bindInsertSlots(t, slots)
	if err != nil {
		return nil, err
	}

	row, advance, err := completeRow(t, values)
	if err != nil {
		return nil, err
	}

	for _, col := range advance {
		t.Columns[col].AutoincrementCounter++
	}
	t.Rows = append(t.Rows, row)

	return &Result{Tag: tag("INSERT", 1), RowsAffected: 1}, nil
}

// splitInsertSlots cuts the tokens between the parentheses at top-level commas.
func splitInsertSlots(tokens []Token) ([]insertSlot, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	var slots []insertSlot
	start := 0
	for i := 0; i <= len(tokens); i++ {
		if i < len(tokens) && !tokens[i].Is(",") {
			continue
		}
		part := tokens[start:i]
		start = i + 1

		switch {
		case len(part) == 0:
			slots = append(slots, insertSlot{blank: true})
		case len(part) == 1 && part[0].Type == TokenValue:
			slots = append(slots, insertSlot{value: part[0]})
		case len(part) == 3 && part[0].Type == TokenFieldName && part[1].Is("=") && part[2].Type == TokenValue:
			slots = append(slots, insertSlot{field: part[0].Value, value: part[2]})
		default:
			return nil, ferrors.UnexpectedToken("value or field = value", joinTokens(part))
		}
	}
	return slots, nil
}

// bindInsertSlots maps slots onto column positions. Missing entries are null.
func bindInsertSlots(t *Table, slots []insertSlot) ([]Value, error) {
	values := make([]Value, len(t.Columns))
	named, positional := false, false
	for _, s := range slots {
		if s.field != "" {
			named = true
		} else {
			positional = true
		}
	}
	if named && positional {
		return nil, ferrors.MixedInsert()
	}

	if !named {
		if len(slots) > len(t.Columns) {
			return nil, ferrors.TooManyValues(t.Name, len(t.Columns))
		}
		for i, s := range slots {
			if s.blank {
				continue
			}
			v, err := ParseValue(s.value.Value)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		return values, nil
	}

	seen := make(map[int]bool, len(slots))
	for _, s := range slots {
		idx, _, err := t.Column(s.field)
		if err != nil {
			return nil, err
		}
		if seen[idx] {
			return nil, ferrors.DuplicateColumn(s.field)
		}
		seen[idx] = true
		v, err := ParseValue(s.value.Value)
		if err != nil {
			return nil, err
		}
		values[idx] = v
	}
	return values, nil
}

// completeRow fills missing values from autoincrement counters and defaults,
// then checks types, lengths and uniqueness. It returns the columns whose
// counters must be advanced once the row is stored.
func completeRow(t *Table, values []Value) (Row, []int, error) {
	var advance []int
	for i := range t.Columns {
		col := &t.Columns[i]
		if values[i].IsNull() {
			switch {
			case col.Autoincrement:
				v, err := col.nextAutoincrement()
				if err != nil {
					return Row{}, nil, err
				}
				values[i] = v
				advance = append(advance, i)
			case col.HasDefault():
				values[i] = col.Default.Clone()
			default:
				return Row{}, nil, ferrors.MissingValue(col.Name)
			}
		}

		if err := col.Type.Check(col.Name, values[i]); err != nil {
			return Row{}, nil, err
		}
		if col.IsUnique() && t.findDuplicate(i, values[i], -1) {
			return Row{}, nil, ferrors.DuplicateKey(col.Name, values[i].String())
		}
	}
	return Row{Values: values}, advance, nil
}
