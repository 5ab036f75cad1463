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
Package sql contains the WHERE condition evaluator.

A condition is a token slice taken from after the where keyword. It is
compiled once per statement into a small tree and then evaluated against
each row:

	len == 0              error, empty condition
	len == 1  field       truthiness of the field's value
	len == 3  f op lit    comparison, tried before any connective
	otherwise             split at the first && or || and recurse

Splitting always happens at the first connective and the remainder forms
the right operand, so a && b || c groups as a && (b || c). Both sides of a
connective are always evaluated.

Truthiness of a single field:

	int32         value != 0
	bool          the value itself
	string/bytes  true when the stored value is empty (quotes count)
	null          error
*/
package sql

import (
	ferrors "memdb/internal/errors"
)

// Condition is a compiled WHERE clause.
type Condition interface {
	// Eval evaluates the condition against one row of t.
	Eval(t *Table, row Row) (bool, error)
}

// fieldCondition tests the truthiness of one column.
type fieldCondition struct {
	column int
	name   string
}

// comparison compares one column against a literal.
type comparison struct {
	column  int
	op      string
	literal Value
}

// connective joins two conditions with && or ||.
type connective struct {
	op          string
	left, right Condition
}

var comparisonOperators = map[string]bool{
	"==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true,
}

// CompileCondition resolves the column references in tokens against t and
// builds the condition tree.
func CompileCondition(t *Table, tokens []Token) (Condition, error) {
	switch len(tokens) {
	case 0:
		return nil, ferrors.EmptyCondition()
	case 1:
		tok := tokens[0]
		if tok.Type != TokenFieldName {
			return nil, ferrors.UnsupportedCondition(tok.Value).
				WithHint("A single-token condition must name a column")
		}
		idx, _, err := t.Column(tok.Value)
		if err != nil {
			return nil, err
		}
		return &fieldCondition{column: idx, name: tok.Value}, nil
	case 3:
		return compileComparison(t, tokens)
	}

	for i, tok := range tokens {
		if tok.Type == TokenOperator && (tok.Value == "&&" || tok.Value == "||") {
			left, err := CompileCondition(t, tokens[:i])
			if err != nil {
				return nil, err
			}
			right, err := CompileCondition(t, tokens[i+1:])
			if err != nil {
				return nil, err
			}
			return &connective{op: tok.Value, left: left, right: right}, nil
		}
	}
	return nil, ferrors.UnsupportedCondition(joinTokens(tokens))
}

func compileComparison(t *Table, tokens []Token) (Condition, error) {
	field, op, lit := tokens[0], tokens[1], tokens[2]
	if field.Type != TokenFieldName {
		return nil, ferrors.UnsupportedCondition(joinTokens(tokens)).
			WithDetail("left operand must be a column")
	}
	if op.Type != TokenOperator || !comparisonOperators[op.Value] {
		return nil, ferrors.UnsupportedOperator(op.Value)
	}
	idx, _, err := t.Column(field.Value)
	if err != nil {
		return nil, err
	}
	literal, err := ParseValue(lit.Value)
	if err != nil {
		return nil, err
	}
	return &comparison{column: idx, op: op.Value, literal: literal}, nil
}

// Eval implements Condition.
func (c *fieldCondition) Eval(_ *Table, row Row) (bool, error) {
	v := row.Values[c.column]
	switch v.Kind {
	case KindInt32:
		return v.Int != 0, nil
	case KindBool:
		return v.Bool, nil
	case KindText:
		return len(v.Text) == 0, nil
	case KindBytes:
		return len(v.Bytes) == 0, nil
	}
	return false, ferrors.NotBoolean(c.name, v.Kind.String())
}

// Eval implements Condition.
func (c *comparison) Eval(_ *Table, row Row) (bool, error) {
	cmp := row.Values[c.column].Compare(c.literal)
	switch c.op {
	case "==":
		return cmp == 0, nil
	case "!=":
		return cmp != 0, nil
	case "<":
		return cmp < 0, nil
	case ">":
		return cmp > 0, nil
	case "<=":
		return cmp <= 0, nil
	case ">=":
		return cmp >= 0, nil
	}
	return false, ferrors.UnsupportedOperator(c.op)
}

// Eval implements Condition.
func (c *connective) Eval(t *Table, row Row) (bool, error) {
	left, err := c.left.Eval(t, row)
	if err != nil {
		return false, err
	}
	right, err := c.right.Eval(t, row)
	if err != nil {
		return false, err
	}
	if c.op == "&&" {
		return left && right, nil
	}
	return left || right, nil
}

// Match evaluates cond against every row of t and returns one flag per row.
func Match(t *Table, cond Condition) ([]bool, error) {
	mask := make([]bool, len(t.Rows))
	for i, row := range t.Rows {
		ok, err := cond.Eval(t, row)
		if err != nil {
			return nil, err
		}
		mask[i] = ok
	}
	return mask, nil
}

func joinTokens(tokens []Token) string {
	var out []byte
	for i, tok := range tokens {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, tok.Value...)
	}
	return string(out)
}
