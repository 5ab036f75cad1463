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
Package sql contains the Lexer component for memdb query tokenization.

Lexer Overview:
===============

Tokenizing runs in two passes over the query text:

 1. SplitLexemes cuts the text into raw lexemes.
 2. Tokenize classifies each lexeme into a TokenType.

Classification is context-sensitive. The same lexeme becomes a field name
or a table name depending on the keyword before it, and a bare word inside
{...} is an attribute only while the braces are open:

	Input: create table users ({key} id: int32 = 0)

	Output Tokens:
	  1. {TokenKeyword,      "create"}
	  2. {TokenKeyword,      "table"}
	  3. {TokenTableName,    "users"}
	  4. {TokenSymbol,       "("}
	  5. {TokenSymbol,       "{"}
	  6. {TokenAttribute,    "key"}
	  7. {TokenSymbol,       "}"}
	  8. {TokenFieldName,    "id"}
	  9. {TokenSymbol,       ":"}
	 10. {TokenTypeName,     "int32"}
	 11. {TokenSymbol,       "="}
	 12. {TokenDefaultValue, "0"}
	 13. {TokenSymbol,       ")"}

Lexeme Splitting:
=================

  - Whitespace separates lexemes and is discarded.
  - "double quoted" literals are kept verbatim, quotes included. A backslash
    escapes the next character, so \" does not close the literal.
  - ( ) { } , : ; always form a lexeme of their own.
  - <= >= == != && || are matched before the single characters < > = ! |.
  - Everything else accumulates into the current lexeme.
  - A trailing ; ends the statement and is dropped.

Classification Order:
=====================

 1. keyword (create, table, insert, select, from, where, to, delete,
    update, set; ASCII case-insensitive)
 2. table name, while a preceding table/from/to/delete/update asks for one
 3. attribute (key, autoincrement, unique; exact case), while inside {...}
 4. type name (int32, bool, string[N], bytes[N]), right after :
 5. default value, right after = that follows a type name
 6. value literal (123, 0xbeef, true, false, "text")
 7. field name
 8. operator
 9. symbol
 10. undefined

Tokenize never fails. Undefined tokens are reported by Validate.
*/
package sql

import (
	"regexp"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TokenType represents the type of a lexical token.
type TokenType int

// Token type constants.
const (
	TokenKeyword      TokenType = iota // create, table, insert, ...
	TokenFieldName                     // Column name
	TokenTableName                     // Table name after table/from/to/delete/update
	TokenTypeName                      // int32, bool, string[N], bytes[N]
	TokenDefaultValue                  // Literal after "<type> ="
	TokenOperator                      // ==, !=, <, >, <=, >=, &&, ||, |, %
	TokenValue                         // Literal value
	TokenSymbol                        // ( ) { } , : =
	TokenAttribute                     // key, autoincrement, unique
	TokenUndefined                     // Anything else
)

var tokenTypeNames = map[TokenType]string{
	TokenKeyword:      "KEYWORD",
	TokenFieldName:    "FIELD_NAME",
	TokenTableName:    "TABLE_NAME",
	TokenTypeName:     "TYPE_NAME",
	TokenDefaultValue: "DEFAULT_VALUE",
	TokenOperator:     "OPERATOR",
	TokenValue:        "VALUE",
	TokenSymbol:       "SYMBOL",
	TokenAttribute:    "ATTRIBUTE",
	TokenUndefined:    "UNDEFINED",
}

// String returns the upper-case name of the token type.
func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	return "UNDEFINED"
}

// Token represents a single classified lexeme.
type Token struct {
	Type  TokenType // The category of this token
	Value string    // The lexeme exactly as written
}

// Is reports whether the token is the given symbol or operator text.
func (t Token) Is(text string) bool {
	return t.Value == text
}

// IsKeyword reports whether the token is the given keyword, ignoring case.
func (t Token) IsKeyword(keyword string) bool {
	return t.Type == TokenKeyword && fold(t.Value) == keyword
}

// Keywords recognised by the tokenizer, in folded form.
const (
	KeywordCreate = "create"
	KeywordTable  = "table"
	KeywordInsert = "insert"
	KeywordSelect = "select"
	KeywordFrom   = "from"
	KeywordWhere  = "where"
	KeywordTo     = "to"
	KeywordDelete = "delete"
	KeywordUpdate = "update"
	KeywordSet    = "set"
)

var keywords = map[string]bool{
	KeywordCreate: true,
	KeywordTable:  true,
	KeywordInsert: true,
	KeywordSelect: true,
	KeywordFrom:   true,
	KeywordWhere:  true,
	KeywordTo:     true,
	KeywordDelete: true,
	KeywordUpdate: true,
	KeywordSet:    true,
}

// tableNameKeywords are the keywords directly followed by a table name.
var tableNameKeywords = map[string]bool{
	KeywordTable:  true,
	KeywordFrom:   true,
	KeywordTo:     true,
	KeywordDelete: true,
	KeywordUpdate: true,
}

// Column attributes accepted inside {...}.
const (
	AttrKey           = "key"
	AttrAutoincrement = "autoincrement"
	AttrUnique        = "unique"
)

var attributes = map[string]bool{
	AttrKey:           true,
	AttrAutoincrement: true,
	AttrUnique:        true,
}

var operators = map[string]bool{
	"==": true, "!=": true,
	"<": true, ">": true, "<=": true, ">=": true,
	"&&": true, "||": true,
	"|": true, "%": true,
}

var symbols = map[string]bool{
	"(": true, ")": true,
	"{": true, "}": true,
	",": true, ":": true, "=": true,
}

var (
	identRegex    = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
	typeNameRegex = regexp.MustCompile(`^(int32|bool|string\[\d+\]|bytes\[\d+\])$`)
	valueRegex    = regexp.MustCompile(`^(0x[0-9a-fA-F]+|\d+|(?i:true|false)|"(?:[^"\\]|\\.)*")$`)
)

// fold returns the case-folded form of s for case-insensitive matching.
// Only ASCII input is folded; anything else is returned unchanged so that
// look-alikes such as "ſelect" never match a keyword.
// A fresh Caser is used per call since Casers carry state.
func fold(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return s
		}
	}
	return cases.Fold().String(s)
}

// lower returns s in lower case, used when echoing keywords back to users.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// lexerState carries the context flags of one tokenizing pass.
type lexerState struct {
	expectTableName    bool // set by table/from/to/delete/update
	expectAttribute    bool // set by {, cleared by }
	expectTypeName     bool // set by :
	expectDefaultValue bool // set by = right after a type name
	prev               TokenType
	hasPrev            bool
}

// Lexer turns query text into classified tokens.
type Lexer struct {
	input string
	state lexerState
}

// NewLexer creates a new Lexer for the given query text.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize splits and classifies the query text. It never fails.
func Tokenize(query string) []Token {
	return NewLexer(query).Tokens()
}

// Tokens runs both lexer passes and returns the classified tokens.
func (l *Lexer) Tokens() []Token {
	l.state = lexerState{}
	lexemes := SplitLexemes(l.input)
	tokens := make([]Token, 0, len(lexemes))
	for _, lexeme := range lexemes {
		tokens = append(tokens, l.classify(lexeme))
	}
	return tokens
}

// classify assigns a TokenType to one lexeme and updates the context flags.
func (l *Lexer) classify(lexeme string) Token {
	st := &l.state
	folded := fold(lexeme)

	var typ TokenType
	switch {
	case keywords[folded]:
		typ = TokenKeyword
		if tableNameKeywords[folded] {
			st.expectTableName = true
		}
	case st.expectTableName && identRegex.MatchString(lexeme):
		typ = TokenTableName
		st.expectTableName = false
	case st.expectAttribute && attributes[lexeme]:
		typ = TokenAttribute
	case st.expectTypeName && typeNameRegex.MatchString(lexeme):
		typ = TokenTypeName
		st.expectTypeName = false
	case st.expectDefaultValue && valueRegex.MatchString(lexeme):
		typ = TokenDefaultValue
		st.expectDefaultValue = false
	case valueRegex.MatchString(lexeme):
		typ = TokenValue
	case identRegex.MatchString(lexeme):
		typ = TokenFieldName
	case operators[lexeme]:
		typ = TokenOperator
	case symbols[lexeme]:
		typ = TokenSymbol
		switch lexeme {
		case "{":
			st.expectAttribute = true
		case "}":
			st.expectAttribute = false
		case ":":
			st.expectTypeName = true
		case "=":
			if st.hasPrev && st.prev == TokenTypeName {
				st.expectDefaultValue = true
			}
		}
	default:
		typ = TokenUndefined
	}

	st.prev = typ
	st.hasPrev = true
	return Token{Type: typ, Value: lexeme}
}

// SplitLexemes cuts query text into raw lexemes without classifying them.
func SplitLexemes(input string) []string {
	var (
		lexemes  []string
		current  []byte
		inString bool
		escaped  bool
	)

	flush := func() {
		if len(current) > 0 {
			lexemes = append(lexemes, string(current))
			current = current[:0]
		}
	}
	emit := func(s string) {
		flush()
		lexemes = append(lexemes, s)
	}

	for i := 0; i < len(input); i++ {
		ch := input[i]

		if inString {
			current = append(current, ch)
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				flush()
				inString = false
			}
			continue
		}

		next := byte(0)
		if i+1 < len(input) {
			next = input[i+1]
		}

		switch {
		case ch == '"':
			flush()
			inString = true
			current = append(current, ch)
		case isSpace(ch):
			flush()
		case isStructural(ch):
			emit(string(ch))
		case (ch == '<' || ch == '>' || ch == '=' || ch == '!') && next == '=':
			emit(string([]byte{ch, next}))
			i++
		case ch == '|' && next == '|':
			emit("||")
			i++
		case ch == '&' && next == '&':
			emit("&&")
			i++
		case ch == '<' || ch == '>' || ch == '=' || ch == '!' || ch == '|':
			emit(string(ch))
		default:
			current = append(current, ch)
		}
	}
	flush()

	if n := len(lexemes); n > 0 && lexemes[n-1] == ";" {
		lexemes = lexemes[:n-1]
	}
	return lexemes
}

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isStructural(ch byte) bool {
	switch ch {
	case '(', ')', '{', '}', ',', ':', ';':
		return true
	}
	return false
}
