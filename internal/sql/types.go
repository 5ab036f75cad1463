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
	"fmt"
	"regexp"
	"strconv"

	ferrors "memdb/internal/errors"
)

// BaseType is the type family of a column.
type BaseType int

const (
	TypeInt32 BaseType = iota
	TypeBool
	TypeString
	TypeBytes
)

// ColumnType is a declared column type: int32, bool, string[N] or bytes[N].
// Capacity is zero for int32 and bool.
type ColumnType struct {
	Base     BaseType
	Capacity int
}

// String returns the type as it is written in CREATE TABLE.
func (c ColumnType) String() string {
	switch c.Base {
	case TypeInt32:
		return "int32"
	case TypeBool:
		return "bool"
	case TypeString:
		return fmt.Sprintf("string[%d]", c.Capacity)
	case TypeBytes:
		return fmt.Sprintf("bytes[%d]", c.Capacity)
	default:
		return "unknown"
	}
}

// Kind returns the value kind a column of this type stores.
func (c ColumnType) Kind() ValueKind {
	switch c.Base {
	case TypeInt32:
		return KindInt32
	case TypeBool:
		return KindBool
	case TypeString:
		return KindText
	case TypeBytes:
		return KindBytes
	default:
		return KindNull
	}
}

var sizedTypeRegex = regexp.MustCompile(`^(string|bytes)\[(\d+)\]$`)

// ParseColumnType parses a type name such as "int32" or "string[16]".
func ParseColumnType(name string) (ColumnType, error) {
	switch name {
	case "int32":
		return ColumnType{Base: TypeInt32}, nil
	case "bool":
		return ColumnType{Base: TypeBool}, nil
	}

	m := sizedTypeRegex.FindStringSubmatch(name)
	if m == nil {
		return ColumnType{}, ferrors.InvalidType(name, "expected int32, bool, string[N] or bytes[N]")
	}
	capacity, err := strconv.Atoi(m[2])
	if err != nil {
		return ColumnType{}, ferrors.InvalidType(name, "capacity out of range")
	}
	if capacity <= 0 {
		return ColumnType{}, ferrors.InvalidType(name, "capacity must be positive")
	}

	base := TypeString
	if m[1] == "bytes" {
		base = TypeBytes
	}
	return ColumnType{Base: base, Capacity: capacity}, nil
}

// Check verifies that v can be stored in a column of this type: the kind must
// match and sized values must fit. string[N] counts the stored bytes, quotes
// included; bytes[N] counts decoded bytes.
func (c ColumnType) Check(column string, v Value) error {
	if v.Kind != c.Kind() {
		return ferrors.TypeMismatch(c.String(), v.Kind.String(), column)
	}
	var length int
	switch c.Base {
	case TypeString:
		length = len(v.Text)
	case TypeBytes:
		length = len(v.Bytes)
	default:
		return nil
	}
	if length > c.Capacity {
		return ferrors.ValueTooLong(column, c.Capacity, length)
	}
	return nil
}
