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
Package sql contains the syntax Validator for memdb queries.

Validate runs over the token stream before any statement is interpreted and
never touches table state. It only checks structure; whether a table or a
column exists is decided later by the Executor.

Checks, in order (the first failure is returned):

 1. The first token is a keyword.
 2. create is followed by table.
 3. create table is followed by a table name.
 4. No token is undefined.
 5. ( ) and { } each appear an even number of times.
 6. insert, create and delete carry exactly 2 keywords;
    select and update carry exactly 3.
 7. No two adjacent tokens are both field names, both attributes or both
    values.
 8. Every { is followed by an attribute.

The bracket check is a parity count, not a nesting check.
*/
package sql

import (
	ferrors "memdb/internal/errors"
)

// keywordBudget is the exact number of keywords each command carries.
var keywordBudget = map[string]int{
	KeywordInsert: 2,
	KeywordCreate: 2,
	KeywordDelete: 2,
	KeywordSelect: 3,
	KeywordUpdate: 3,
}

// Validate performs the structural checks on a token stream.
func Validate(tokens []Token) error {
	if len(tokens) == 0 {
		return ferrors.UnknownQuery("empty query")
	}

	first := tokens[0]
	if first.Type != TokenKeyword {
		return ferrors.NewSyntaxError("query has to start with a keyword").WithDetail(first.Value)
	}

	command := fold(first.Value)
	if command == KeywordCreate {
		if len(tokens) < 2 {
			return ferrors.UnexpectedEnd("table")
		}
		if !tokens[1].IsKeyword(KeywordTable) {
			return ferrors.MissingKeyword("table", tokens[1].Value).
				WithHint("Use create table <name> (...)")
		}
		if len(tokens) < 3 {
			return ferrors.UnexpectedEnd("table name after create table")
		}
		if tokens[2].Type != TokenTableName {
			return ferrors.UnexpectedToken("table name after create table", tokens[2].Value)
		}
	}

	var keywordCount, parens, braces int
	for _, tok := range tokens {
		switch {
		case tok.Type == TokenUndefined:
			return ferrors.UndefinedToken(tok.Value)
		case tok.Type == TokenKeyword:
			keywordCount++
		case tok.Is("(") || tok.Is(")"):
			parens++
		case tok.Is("{") || tok.Is("}"):
			braces++
		}
	}

	if parens%2 != 0 {
		return ferrors.Unbalanced("(", ")")
	}
	if braces%2 != 0 {
		return ferrors.Unbalanced("{", "}")
	}

	if want, ok := keywordBudget[command]; ok && keywordCount != want {
		return ferrors.KeywordCount(command, want, keywordCount)
	}

	for i := 0; i+1 < len(tokens); i++ {
		cur, next := tokens[i], tokens[i+1]
		if cur.Type == next.Type {
			switch cur.Type {
			case TokenFieldName, TokenAttribute, TokenValue:
				return ferrors.MissingSeparator(cur.Value, next.Value)
			}
		}
		if cur.Is("{") && next.Type != TokenAttribute {
			return ferrors.UnexpectedToken("attribute after {", next.Value)
		}
	}

	return nil
}
