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
	"reflect"
	"testing"
)

func TestSplitLexemes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Create with attributes",
			input:    "create table t ({key, autoincrement} id : int32)",
			expected: []string{"create", "table", "t", "(", "{", "key", ",", "autoincrement", "}", "id", ":", "int32", ")"},
		},
		{
			name:     "Quoted string keeps spaces",
			input:    `insert ("hello world", 1) to t`,
			expected: []string{"insert", "(", `"hello world"`, ",", "1", ")", "to", "t"},
		},
		{
			name:     "Escaped quote inside string",
			input:    `insert ("a\"b") to t`,
			expected: []string{"insert", "(", `"a\"b"`, ")", "to", "t"},
		},
		{
			name:     "Two-character operators",
			input:    "a<=1||b>=2&&c!=3",
			expected: []string{"a", "<=", "1", "||", "b", ">=", "2", "&&", "c", "!=", "3"},
		},
		{
			name:     "Equality without spaces",
			input:    "id==5",
			expected: []string{"id", "==", "5"},
		},
		{
			name:     "Trailing semicolon dropped",
			input:    "delete t where id < 10;",
			expected: []string{"delete", "t", "where", "id", "<", "10"},
		},
		{
			name:     "Newlines and tabs",
			input:    "delete users\nwhere\tlogin > 2",
			expected: []string{"delete", "users", "where", "login", ">", "2"},
		},
		{
			name:     "Sized type stays whole",
			input:    "login:string[32]",
			expected: []string{"login", ":", "string[32]"},
		},
		{
			name:     "Empty input",
			input:    "   ",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLexemes(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("SplitLexemes(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTokenizeCreate(t *testing.T) {
	query := "create table users ({key, autoincrement} id : int32, {unique} login: string[32], " +
		"password_hash: bytes[8], is_admin: bool = false)"

	expected := []Token{
		{TokenKeyword, "create"},
		{TokenKeyword, "table"},
		{TokenTableName, "users"},
		{TokenSymbol, "("},
		{TokenSymbol, "{"},
		{TokenAttribute, "key"},
		{TokenSymbol, ","},
		{TokenAttribute, "autoincrement"},
		{TokenSymbol, "}"},
		{TokenFieldName, "id"},
		{TokenSymbol, ":"},
		{TokenTypeName, "int32"},
		{TokenSymbol, ","},
		{TokenSymbol, "{"},
		{TokenAttribute, "unique"},
		{TokenSymbol, "}"},
		{TokenFieldName, "login"},
		{TokenSymbol, ":"},
		{TokenTypeName, "string[32]"},
		{TokenSymbol, ","},
		{TokenFieldName, "password_hash"},
		{TokenSymbol, ":"},
		{TokenTypeName, "bytes[8]"},
		{TokenSymbol, ","},
		{TokenFieldName, "is_admin"},
		{TokenSymbol, ":"},
		{TokenTypeName, "bool"},
		{TokenSymbol, "="},
		{TokenDefaultValue, "false"},
		{TokenSymbol, ")"},
	}

	got := Tokenize(query)
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("Tokenize mismatch\n got: %v\nwant: %v", got, expected)
	}
}

func TestTokenizeTypes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TokenType
	}{
		{
			name:  "Select with connective",
			input: "select id, login from users where is_admin || id < 10",
			expected: []TokenType{
				TokenKeyword, TokenFieldName, TokenSymbol, TokenFieldName, TokenKeyword,
				TokenTableName, TokenKeyword, TokenFieldName, TokenOperator, TokenFieldName,
				TokenOperator, TokenValue,
			},
		},
		{
			name:  "Positional insert",
			input: `insert (,"vasya", 0xdeadbeefdeadbeef) to users`,
			expected: []TokenType{
				TokenKeyword, TokenSymbol, TokenSymbol, TokenValue, TokenSymbol, TokenValue,
				TokenSymbol, TokenKeyword, TokenTableName,
			},
		},
		{
			name:  "Named insert",
			input: `insert (login = "vasya") to users`,
			expected: []TokenType{
				TokenKeyword, TokenSymbol, TokenFieldName, TokenSymbol, TokenValue,
				TokenSymbol, TokenKeyword, TokenTableName,
			},
		},
		{
			name:  "Update",
			input: `update users set is_admin = true where login == "vasya"`,
			expected: []TokenType{
				TokenKeyword, TokenTableName, TokenKeyword, TokenFieldName, TokenSymbol,
				TokenValue, TokenKeyword, TokenFieldName, TokenOperator, TokenValue,
			},
		},
		{
			name:  "Mixed case keywords",
			input: "CreaTe Table users (id: int32)",
			expected: []TokenType{
				TokenKeyword, TokenKeyword, TokenTableName, TokenSymbol, TokenFieldName,
				TokenSymbol, TokenTypeName, TokenSymbol,
			},
		},
		{
			name:     "Attribute word outside braces is a field",
			input:    "select key from t where key",
			expected: []TokenType{TokenKeyword, TokenFieldName, TokenKeyword, TokenTableName, TokenKeyword, TokenFieldName},
		},
		{
			name:     "Type name without colon is a field",
			input:    "select int32 from t where int32",
			expected: []TokenType{TokenKeyword, TokenFieldName, TokenKeyword, TokenTableName, TokenKeyword, TokenFieldName},
		},
		{
			name:     "Undefined lexemes",
			input:    "select a$ from t where !",
			expected: []TokenType{TokenKeyword, TokenUndefined, TokenKeyword, TokenTableName, TokenKeyword, TokenUndefined},
		},
		{
			name:     "Keyword look-alike outside ASCII",
			input:    "ſelect id from t where id",
			expected: []TokenType{TokenUndefined, TokenFieldName, TokenKeyword, TokenTableName, TokenKeyword, TokenFieldName},
		},
		{
			name:  "Attributes are case-sensitive",
			input: "({KEY} id: int32)",
			expected: []TokenType{
				TokenSymbol, TokenSymbol, TokenFieldName, TokenSymbol, TokenFieldName,
				TokenSymbol, TokenTypeName, TokenSymbol,
			},
		},
		{
			name:     "Single bar and percent are operators",
			input:    "| %",
			expected: []TokenType{TokenOperator, TokenOperator},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.input)
			if len(tokens) != len(tt.expected) {
				t.Fatalf("expected %d tokens, got %d: %v", len(tt.expected), len(tokens), tokens)
			}
			for i, tok := range tokens {
				if tok.Type != tt.expected[i] {
					t.Errorf("token %d (%q): expected %s, got %s", i, tok.Value, tt.expected[i], tok.Type)
				}
			}
		})
	}
}

func TestTokenizeDefaultOnlyAfterType(t *testing.T) {
	// "=" in a named insert must not turn the next literal into a default.
	tokens := Tokenize(`insert (a = 1) to t`)
	if tokens[4].Type != TokenValue {
		t.Errorf("expected VALUE, got %s", tokens[4].Type)
	}

	tokens = Tokenize(`create table t (a: int32 = 1)`)
	if tokens[8].Type != TokenDefaultValue {
		t.Errorf("expected DEFAULT_VALUE, got %s", tokens[8].Type)
	}
}

func TestTokenTypeString(t *testing.T) {
	if TokenTableName.String() != "TABLE_NAME" {
		t.Errorf("unexpected name %q", TokenTableName.String())
	}
	if TokenType(99).String() == "" {
		t.Error("expected a fallback name for unknown token types")
	}
}
