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

// columnBuilder accumulates the pieces of one column definition.
type columnBuilder struct {
	col      ColumnInfo
	inBraces bool
	colon    bool
	typed    bool
	named    bool
}

func (b *columnBuilder) empty() bool {
	return !b.named && !b.typed && !b.col.Key && !b.col.Unique && !b.col.Autoincrement
}

// executeCreate handles create table <name> ( ... ).
func (e *Executor) executeCreate(tokens []Token) (*Result, error) {
	name := tokens[2].Value
	if name == SelectTableName {
		return nil, ferrors.TableExists(name).WithDetail("name is reserved for select results")
	}
	if _, err := e.db.table(name); err == nil {
		return nil, ferrors.TableExists(name)
	}
	if len(tokens) < 4 {
		return nil, ferrors.UnexpectedEnd("(")
	}
	if !tokens[3].Is("(") {
		return nil, ferrors.UnexpectedToken("(", tokens[3].Value)
	}

	var columns []ColumnInfo
	finish := func(b *columnBuilder) error {
		if !b.named || !b.typed {
			return ferrors.NewSyntaxError("incomplete column definition").
				WithHint("Columns are declared as [{attributes}] name : type [= default]")
		}
		for _, c := range columns {
			if c.Name == b.col.Name {
				return ferrors.DuplicateColumn(b.col.Name)
			}
		}
		if b.col.Autoincrement && b.col.Type.Base != TypeInt32 {
			return ferrors.InvalidType(b.col.Type.String(), "autoincrement requires int32").
				WithDetail("column " + b.col.Name)
		}
		columns = append(columns, b.col)
		*b = columnBuilder{}
		return nil
	}

	var b columnBuilder
	closed := -1
	for i := 4; i < len(tokens) && closed < 0; i++ {
		tok := tokens[i]
		switch {
		case tok.Is("{"):
			if b.inBraces || b.named {
				return nil, ferrors.UnexpectedToken("column name", tok.Value)
			}
			b.inBraces = true
		case tok.Is("}"):
			if !b.inBraces {
				return nil, ferrors.UnexpectedToken("column name", tok.Value)
			}
			b.inBraces = false
		case tok.Type == TokenAttribute:
			if !b.inBraces {
				return nil, ferrors.UnexpectedToken("attribute inside { }", tok.Value)
			}
			switch tok.Value {
			case AttrKey:
				b.col.Key = true
			case AttrUnique:
				b.col.Unique = true
			case AttrAutoincrement:
				b.col.Autoincrement = true
			}
		case tok.Is(","):
			if b.inBraces {
				continue
			}
			if err := finish(&b); err != nil {
				return nil, err
			}
		case tok.Type == TokenFieldName:
			if b.inBraces || b.named {
				return nil, ferrors.UnexpectedToken(":", tok.Value)
			}
			b.col.Name = tok.Value
			b.named = true
		case tok.Is(":"):
			if !b.named || b.colon {
				return nil, ferrors.UnexpectedToken("column name", tok.Value)
			}
			b.colon = true
		case tok.Type == TokenTypeName:
			if !b.colon || b.typed {
				return nil, ferrors.UnexpectedToken(":", tok.Value)
			}
			ct, err := ParseColumnType(tok.Value)
			if err != nil {
				return nil, err
			}
			b.col.Type = ct
			b.typed = true
		case tok.Is("="):
			if !b.typed || b.col.HasDefault() {
				return nil, ferrors.UnexpectedToken(", or )", tok.Value)
			}
			if i+1 >= len(tokens) {
				return nil, ferrors.UnexpectedEnd("default value")
			}
			lit := tokens[i+1]
			if lit.Type != TokenDefaultValue {
				return nil, ferrors.UnexpectedToken("default value", lit.Value)
			}
			v, err := ParseValue(lit.Value)
			if err != nil {
				return nil, err
			}
			if err := b.col.Type.Check(b.col.Name, v); err != nil {
				return nil, err
			}
			b.col.Default = v
			i++
		case tok.Is(")"):
			if b.inBraces {
				return nil, ferrors.Unbalanced("{", "}")
			}
			if !b.empty() || len(columns) == 0 {
				if err := finish(&b); err != nil {
					return nil, err
				}
			}
			closed = i
		default:
			return nil, ferrors.UnexpectedToken("column definition", tok.Value)
		}
	}

	if closed < 0 {
		return nil, ferrors.UnexpectedEnd(")")
	}
	if closed != len(tokens)-1 {
		return nil, ferrors.UnexpectedToken("end of query", tokens[closed+1].Value)
	}

	e.db.addTable(NewTable(name, columns))
	e.logger.Debug("table created", "table", name, "columns", len(columns))
	return &Result{Tag: "CREATE TABLE"}, nil
}
