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
	"bytes"
	"encoding/hex"
	"errors"
	"regexp"
	"strconv"
	"strings"

	ferrors "memdb/internal/errors"
)

// ValueKind identifies which variant a Value holds.
// The declaration order is also the cross-variant sort order.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindInt32
	KindText
	KindBool
	KindBytes
)

// String returns the lower-case name of the kind.
func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt32:
		return "int32"
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	case KindBytes:
		return "bytes"
	default:
		return "unknown"
	}
}

// Value represents a single cell: Null, Int32, Text, Bool or Bytes.
// Only the field matching Kind is meaningful.
//
// Text keeps the surrounding double quotes exactly as they were written in
// the query, and comparisons see them.
type Value struct {
	Kind  ValueKind
	Int   int32
	Text  string
	Bool  bool
	Bytes []byte
}

// NullValue returns the Null value.
func NullValue() Value { return Value{Kind: KindNull} }

// Int32Value wraps an int32.
func Int32Value(v int32) Value { return Value{Kind: KindInt32, Int: v} }

// TextValue wraps a text literal. The quotes are part of the value.
func TextValue(s string) Value { return Value{Kind: KindText, Text: s} }

// BoolValue wraps a bool.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// BytesValue wraps a byte sequence. The slice is not copied.
func BytesValue(b []byte) Value { return Value{Kind: KindBytes, Bytes: b} }

// IsNull reports whether v is the Null value.
func (v Value) IsNull() bool {
	return v.Kind == KindNull
}

// Clone returns a copy of v that shares no memory with it.
func (v Value) Clone() Value {
	if v.Kind == KindBytes {
		v.Bytes = append([]byte(nil), v.Bytes...)
	}
	return v
}

// Compare orders two values. Values of different kinds are ordered by kind
// (Null < Int32 < Text < Bool < Bytes); values of the same kind by their
// natural order, with Text compared byte-wise including its quotes.
// The result is -1, 0 or +1.
func (v Value) Compare(other Value) int {
	if v.Kind != other.Kind {
		if v.Kind < other.Kind {
			return -1
		}
		return 1
	}
	switch v.Kind {
	case KindInt32:
		switch {
		case v.Int < other.Int:
			return -1
		case v.Int > other.Int:
			return 1
		}
		return 0
	case KindText:
		return strings.Compare(v.Text, other.Text)
	case KindBool:
		switch {
		case v.Bool == other.Bool:
			return 0
		case !v.Bool:
			return -1
		}
		return 1
	case KindBytes:
		return bytes.Compare(v.Bytes, other.Bytes)
	}
	return 0
}

// Equal reports whether v and other are the same variant with the same content.
func (v Value) Equal(other Value) bool {
	return v.Compare(other) == 0
}

// String renders v the way it would be written in a query.
func (v Value) String() string {
	switch v.Kind {
	case KindInt32:
		return strconv.FormatInt(int64(v.Int), 10)
	case KindText:
		return v.Text
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindBytes:
		return "0x" + hex.EncodeToString(v.Bytes)
	default:
		return "NULL"
	}
}

// Interface returns v as a plain Go value for encoders: nil, int32, string,
// bool or the hex string of the bytes.
func (v Value) Interface() interface{} {
	switch v.Kind {
	case KindInt32:
		return v.Int
	case KindText:
		return v.Text
	case KindBool:
		return v.Bool
	case KindBytes:
		return v.String()
	default:
		return nil
	}
}

var (
	intLiteralRegex = regexp.MustCompile(`^\d+$`)
	hexLiteralRegex = regexp.MustCompile(`^0x[0-9a-fA-F]+$`)
)

// ParseValue converts a literal lexeme into a Value.
//
//	123        -> Int32
//	true/false -> Bool (any case)
//	"text"     -> Text, quotes included
//	0xdeadbeef -> Bytes, an even number of hex digits
func ParseValue(lexeme string) (Value, error) {
	switch {
	case intLiteralRegex.MatchString(lexeme):
		n, err := strconv.ParseInt(lexeme, 10, 32)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return Value{}, ferrors.OutOfRange(lexeme)
			}
			return Value{}, ferrors.UnsupportedValue(lexeme).WithCause(err)
		}
		return Int32Value(int32(n)), nil
	case fold(lexeme) == "true":
		return BoolValue(true), nil
	case fold(lexeme) == "false":
		return BoolValue(false), nil
	case strings.HasPrefix(lexeme, `"`):
		return TextValue(lexeme), nil
	case hexLiteralRegex.MatchString(lexeme):
		digits := lexeme[2:]
		if len(digits)%2 != 0 {
			return Value{}, ferrors.UnsupportedValue(lexeme).WithDetail("odd number of hex digits")
		}
		b, err := hex.DecodeString(digits)
		if err != nil {
			return Value{}, ferrors.UnsupportedValue(lexeme).WithCause(err)
		}
		return BytesValue(b), nil
	default:
		return Value{}, ferrors.UnsupportedValue(lexeme)
	}
}
