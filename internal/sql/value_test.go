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
	"testing"

	ferrors "memdb/internal/errors"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected Value
	}{
		{"0", Int32Value(0)},
		{"42", Int32Value(42)},
		{"2147483647", Int32Value(2147483647)},
		{"true", BoolValue(true)},
		{"FALSE", BoolValue(false)},
		{`"vasya"`, TextValue(`"vasya"`)},
		{`""`, TextValue(`""`)},
		{"0xdeadbeef", BytesValue([]byte{0xde, 0xad, 0xbe, 0xef})},
		{"0x00FF", BytesValue([]byte{0x00, 0xff})},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseValue(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.expected) {
				t.Errorf("ParseValue(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseValueErrors(t *testing.T) {
	tests := []struct {
		input string
		code  ferrors.ErrorCode
	}{
		{"2147483648", ferrors.ErrCodeOutOfRange},
		{"99999999999999999999", ferrors.ErrCodeOutOfRange},
		{"0xabc", ferrors.ErrCodeUnsupportedValue},
		{"abc", ferrors.ErrCodeUnsupportedValue},
		{"-1", ferrors.ErrCodeUnsupportedValue},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseValue(tt.input)
			if got := ferrors.GetCode(err); got != tt.code {
				t.Errorf("expected code %d, got %d (%v)", tt.code, got, err)
			}
		})
	}
}

func TestValueCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Value
		expected int
	}{
		{"Ints", Int32Value(1), Int32Value(2), -1},
		{"Equal ints", Int32Value(7), Int32Value(7), 0},
		{"Texts", TextValue(`"b"`), TextValue(`"a"`), 1},
		{"Bools", BoolValue(false), BoolValue(true), -1},
		{"Bytes", BytesValue([]byte{1}), BytesValue([]byte{1, 0}), -1},
		{"Null before int", NullValue(), Int32Value(0), -1},
		{"Int before text", Int32Value(100), TextValue(`"1"`), -1},
		{"Text before bool", TextValue(`"z"`), BoolValue(false), -1},
		{"Bytes after bool", BytesValue(nil), BoolValue(true), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Compare(tt.b); got != tt.expected {
				t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.expected)
			}
			if got := tt.b.Compare(tt.a); got != -tt.expected {
				t.Errorf("Compare(%v, %v) = %d, want %d", tt.b, tt.a, got, -tt.expected)
			}
		})
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		v        Value
		expected string
	}{
		{NullValue(), "NULL"},
		{Int32Value(-5), "-5"},
		{TextValue(`"hi"`), `"hi"`},
		{BoolValue(true), "true"},
		{BytesValue([]byte{0xab, 0x01}), "0xab01"},
	}

	for _, tt := range tests {
		if got := tt.v.String(); got != tt.expected {
			t.Errorf("String() = %q, want %q", got, tt.expected)
		}
	}
}

func TestValueCloneIsIndependent(t *testing.T) {
	orig := BytesValue([]byte{1, 2, 3})
	clone := orig.Clone()
	clone.Bytes[0] = 9
	if !bytes.Equal(orig.Bytes, []byte{1, 2, 3}) {
		t.Errorf("clone shares memory with original: %v", orig.Bytes)
	}
}

func TestParseColumnType(t *testing.T) {
	tests := []struct {
		input    string
		expected ColumnType
	}{
		{"int32", ColumnType{Base: TypeInt32}},
		{"bool", ColumnType{Base: TypeBool}},
		{"string[16]", ColumnType{Base: TypeString, Capacity: 16}},
		{"bytes[8]", ColumnType{Base: TypeBytes, Capacity: 8}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColumnType(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("ParseColumnType(%q) = %+v, want %+v", tt.input, got, tt.expected)
			}
			if got.String() != tt.input {
				t.Errorf("String() = %q, want %q", got.String(), tt.input)
			}
		})
	}

	for _, bad := range []string{"string[0]", "bytes", "int64", "string[99999999999999999999]"} {
		if _, err := ParseColumnType(bad); ferrors.GetCode(err) != ferrors.ErrCodeInvalidType {
			t.Errorf("ParseColumnType(%q): expected invalid type error, got %v", bad, err)
		}
	}
}

func TestColumnTypeCheck(t *testing.T) {
	str4 := ColumnType{Base: TypeString, Capacity: 4}
	bytes2 := ColumnType{Base: TypeBytes, Capacity: 2}

	tests := []struct {
		name string
		typ  ColumnType
		v    Value
		code ferrors.ErrorCode
	}{
		{"String fits with quotes", str4, TextValue(`"ab"`), 0},
		{"Quotes count towards length", str4, TextValue(`"abc"`), ferrors.ErrCodeValueTooLong},
		{"Bytes fit", bytes2, BytesValue([]byte{1, 2}), 0},
		{"Bytes too long", bytes2, BytesValue([]byte{1, 2, 3}), ferrors.ErrCodeValueTooLong},
		{"Int into string", str4, Int32Value(1), ferrors.ErrCodeTypeMismatch},
		{"Bool into int", ColumnType{Base: TypeInt32}, BoolValue(true), ferrors.ErrCodeTypeMismatch},
		{"Bool into bool", ColumnType{Base: TypeBool}, BoolValue(false), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.typ.Check("c", tt.v)
			if got := ferrors.GetCode(err); got != tt.code {
				t.Errorf("expected code %d, got %d (%v)", tt.code, got, err)
			}
		})
	}
}
