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
Package errors provides the error type reported by every memdb query.

A query either succeeds or fails with a BadQuery. There is no recovery path
and no retry: the failing Execute call returns the error and the database is
left exactly as it was before the call.

BadQuery carries:
  - a numeric code for programmatic handling
  - a category that narrows down which stage rejected the query
  - a human-readable message, with optional detail and hint

Categories:
  - SYNTAX: structural checks over the token stream
  - EXECUTION: unknown tables or columns, malformed statements
  - CONSTRAINT: key/unique duplicates, length bounds, missing values, types
  - VALUE: literals that cannot be parsed
  - CONDITION: malformed WHERE conditions
*/
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error identifier.
type ErrorCode int

const (
	// Syntax errors (1000-1999)
	ErrCodeSyntax           ErrorCode = 1000
	ErrCodeMissingKeyword   ErrorCode = 1001
	ErrCodeUndefinedToken   ErrorCode = 1002
	ErrCodeUnbalanced       ErrorCode = 1003
	ErrCodeKeywordCount     ErrorCode = 1004
	ErrCodeMissingSeparator ErrorCode = 1005
	ErrCodeUnexpectedToken  ErrorCode = 1006
	ErrCodeUnexpectedEnd    ErrorCode = 1007

	// Execution errors (2000-2999)
	ErrCodeExecution       ErrorCode = 2000
	ErrCodeUnknownQuery    ErrorCode = 2001
	ErrCodeTableNotFound   ErrorCode = 2002
	ErrCodeTableExists     ErrorCode = 2003
	ErrCodeColumnNotFound  ErrorCode = 2004
	ErrCodeTooManyValues   ErrorCode = 2005
	ErrCodeMixedInsert     ErrorCode = 2006
	ErrCodeDuplicateColumn ErrorCode = 2007

	// Constraint errors (3000-3999)
	ErrCodeConstraint   ErrorCode = 3000
	ErrCodeDuplicateKey ErrorCode = 3001
	ErrCodeValueTooLong ErrorCode = 3002
	ErrCodeMissingValue ErrorCode = 3003
	ErrCodeTypeMismatch ErrorCode = 3004

	// Value errors (4000-4999)
	ErrCodeValue            ErrorCode = 4000
	ErrCodeUnsupportedValue ErrorCode = 4001
	ErrCodeOutOfRange       ErrorCode = 4002
	ErrCodeInvalidType      ErrorCode = 4003

	// Condition errors (5000-5999)
	ErrCodeCondition            ErrorCode = 5000
	ErrCodeEmptyCondition       ErrorCode = 5001
	ErrCodeUnsupportedCondition ErrorCode = 5002
	ErrCodeUnsupportedOperator  ErrorCode = 5003
	ErrCodeNotBoolean           ErrorCode = 5004
)

// Category represents the error category.
type Category string

const (
	CategorySyntax     Category = "SYNTAX"
	CategoryExecution  Category = "EXECUTION"
	CategoryConstraint Category = "CONSTRAINT"
	CategoryValue      Category = "VALUE"
	CategoryCondition  Category = "CONDITION"
)

// BadQuery is the single error kind returned by query execution.
type BadQuery struct {
	Code     ErrorCode
	Category Category
	Message  string
	Detail   string
	Hint     string
	Cause    error
}

// Error implements the error interface.
func (e *BadQuery) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("bad query: %s - %s", e.Message, e.Detail)
	}
	return "bad query: " + e.Message
}

// Unwrap returns the underlying cause.
func (e *BadQuery) Unwrap() error {
	return e.Cause
}

// UserMessage returns a user-friendly error message.
func (e *BadQuery) UserMessage() string {
	msg := fmt.Sprintf("ERROR %d (%s): %s", e.Code, e.Category, e.Message)
	if e.Detail != "" {
		msg += fmt.Sprintf(" (%s)", e.Detail)
	}
	if e.Hint != "" {
		msg += fmt.Sprintf("\nHINT: %s", e.Hint)
	}
	return msg
}

// WithDetail adds detail to the error.
func (e *BadQuery) WithDetail(detail string) *BadQuery {
	e.Detail = detail
	return e
}

// WithHint adds a hint to the error.
func (e *BadQuery) WithHint(hint string) *BadQuery {
	e.Hint = hint
	return e
}

// WithCause adds a cause to the error.
func (e *BadQuery) WithCause(cause error) *BadQuery {
	e.Cause = cause
	return e
}

// ============================================================================
// Syntax Error Constructors
// ============================================================================

// NewSyntaxError creates a new syntax error.
func NewSyntaxError(message string) *BadQuery {
	return &BadQuery{
		Code:     ErrCodeSyntax,
		Category: CategorySyntax,
		Message:  message,
	}
}

// MissingKeyword creates an error for a statement that does not start the way
// its command requires.
func MissingKeyword(keyword, got string) *BadQuery {
	return &BadQuery{
		Code:     ErrCodeMissingKeyword,
		Category: CategorySyntax,
		Message:  fmt.Sprintf("expected %s, got %q", keyword, got),
	}
}

// UndefinedToken creates an error for a lexeme the tokenizer could not classify.
func UndefinedToken(lexeme string) *BadQuery {
	return &BadQuery{
		Code:     ErrCodeUndefinedToken,
		Category: CategorySyntax,
		Message:  fmt.Sprintf("undefined value %s", lexeme),
	}
}

// Unbalanced creates an error for an odd number of bracket symbols.
func Unbalanced(open, close string) *BadQuery {
	return &BadQuery{
		Code:     ErrCodeUnbalanced,
		Category: CategorySyntax,
		Message:  fmt.Sprintf("problems with %s and %s", open, close),
	}
}

// KeywordCount creates an error for a statement with the wrong number of keywords.
func KeywordCount(command string, want, got int) *BadQuery {
	msg := "too few keywords"
	if got > want {
		msg = "too many keywords"
	}
	return &BadQuery{
		Code:     ErrCodeKeywordCount,
		Category: CategorySyntax,
		Message:  msg,
		Detail:   fmt.Sprintf("%s takes %d keywords, found %d", command, want, got),
	}
}

// MissingSeparator creates an error for two same-class tokens side by side.
func MissingSeparator(left, right string) *BadQuery {
	return &BadQuery{
		Code:     ErrCodeMissingSeparator,
		Category: CategorySyntax,
		Message:  fmt.Sprintf("expected , or : between %s and %s", left, right),
	}
}

// UnexpectedToken creates an error for unexpected tokens.
func UnexpectedToken(expected, got string) *BadQuery {
	return &BadQuery{
		Code:     ErrCodeUnexpectedToken,
		Category: CategorySyntax,
		Message:  fmt.Sprintf("expected %s, got %q", expected, got),
	}
}

// UnexpectedEnd creates an error for a statement that ends too early.
func UnexpectedEnd(expected string) *BadQuery {
	return &BadQuery{
		Code:     ErrCodeUnexpectedEnd,
		Category: CategorySyntax,
		Message:  fmt.Sprintf("unexpected end of query, expected %s", expected),
	}
}

// ============================================================================
// Execution Error Constructors
// ============================================================================

// UnknownQuery creates an error for statements with no executor.
func UnknownQuery(command string) *BadQuery {
	return &BadQuery{
		Code:     ErrCodeUnknownQuery,
		Category: CategoryExecution,
		Message:  "unknown query",
		Detail:   command,
		Hint:     "Supported statements: create table, insert, select, update, delete",
	}
}

// TableNotFound creates an error for missing tables.
func TableNotFound(table string) *BadQuery {
	return &BadQuery{
		Code:     ErrCodeTableNotFound,
		Category: CategoryExecution,
		Message:  fmt.Sprintf("table not found: %s", table),
	}
}

// TableExists creates an error for a CREATE of a name already in use.
func TableExists(table string) *BadQuery {
	return &BadQuery{
		Code:     ErrCodeTableExists,
		Category: CategoryExecution,
		Message:  fmt.Sprintf("table already exists: %s", table),
	}
}

// ColumnNotFound creates an error for missing columns.
func ColumnNotFound(column, table string) *BadQuery {
	return &BadQuery{
		Code:     ErrCodeColumnNotFound,
		Category: CategoryExecution,
		Message:  fmt.Sprintf("column '%s' not found in table '%s'", column, table),
	}
}

// DuplicateColumn creates an error for a column named twice in one statement.
func DuplicateColumn(column string) *BadQuery {
	return &BadQuery{
		Code:     ErrCodeDuplicateColumn,
		Category: CategoryExecution,
		Message:  fmt.Sprintf("column '%s' specified more than once", column),
	}
}

// TooManyValues creates an error for a positional insert longer than the table.
func TooManyValues(table string, columns int) *BadQuery {
	return &BadQuery{
		Code:     ErrCodeTooManyValues,
		Category: CategoryExecution,
		Message:  "too many values provided",
		Detail:   fmt.Sprintf("table '%s' has %d columns", table, columns),
	}
}

// MixedInsert creates an error for inserts that mix positional and named values.
func MixedInsert() *BadQuery {
	return &BadQuery{
		Code:     ErrCodeMixedInsert,
		Category: CategoryExecution,
		Message:  "mixed positional and named values in insert",
	}
}

// ============================================================================
// Constraint Error Constructors
// ============================================================================

// DuplicateKey creates an error for key and unique violations.
func DuplicateKey(column, value string) *BadQuery {
	return &BadQuery{
		Code:     ErrCodeDuplicateKey,
		Category: CategoryConstraint,
		Message:  fmt.Sprintf("duplicate value for unique or key column '%s'", column),
		Detail:   fmt.Sprintf("Key: %s", value),
	}
}

// ValueTooLong creates an error for values exceeding a declared capacity.
func ValueTooLong(column string, capacity, length int) *BadQuery {
	return &BadQuery{
		Code:     ErrCodeValueTooLong,
		Category: CategoryConstraint,
		Message:  fmt.Sprintf("value too long for column '%s'", column),
		Detail:   fmt.Sprintf("capacity %d, got %d", capacity, length),
	}
}

// MissingValue creates an error for a column with no value, default or counter.
func MissingValue(column string) *BadQuery {
	return &BadQuery{
		Code:     ErrCodeMissingValue,
		Category: CategoryConstraint,
		Message:  fmt.Sprintf("missing value for column '%s'", column),
	}
}

// TypeMismatch creates an error for type mismatches.
func TypeMismatch(expected, got, column string) *BadQuery {
	return &BadQuery{
		Code:     ErrCodeTypeMismatch,
		Category: CategoryConstraint,
		Message:  fmt.Sprintf("type mismatch for column '%s': expected %s, got %s", column, expected, got),
	}
}

// ============================================================================
// Value Error Constructors
// ============================================================================

// UnsupportedValue creates an error for literals that cannot be parsed.
func UnsupportedValue(lexeme string) *BadQuery {
	return &BadQuery{
		Code:     ErrCodeUnsupportedValue,
		Category: CategoryValue,
		Message:  fmt.Sprintf("unsupported value: %s", lexeme),
	}
}

// OutOfRange creates an error for integer literals outside int32.
func OutOfRange(lexeme string) *BadQuery {
	return &BadQuery{
		Code:     ErrCodeOutOfRange,
		Category: CategoryValue,
		Message:  fmt.Sprintf("integer out of range: %s", lexeme),
		Hint:     "int32 values must lie in [-2147483648, 2147483647]",
	}
}

// InvalidType creates an error for column type names that cannot be parsed.
func InvalidType(name, reason string) *BadQuery {
	return &BadQuery{
		Code:     ErrCodeInvalidType,
		Category: CategoryValue,
		Message:  fmt.Sprintf("invalid column type: %s", name),
		Detail:   reason,
	}
}

// ============================================================================
// Condition Error Constructors
// ============================================================================

// EmptyCondition creates an error for a WHERE with nothing after it.
func EmptyCondition() *BadQuery {
	return &BadQuery{
		Code:     ErrCodeEmptyCondition,
		Category: CategoryCondition,
		Message:  "empty condition",
	}
}

// UnsupportedCondition creates an error for conditions of an unknown shape.
func UnsupportedCondition(condition string) *BadQuery {
	return &BadQuery{
		Code:     ErrCodeUnsupportedCondition,
		Category: CategoryCondition,
		Message:  "unsupported condition",
		Detail:   condition,
	}
}

// UnsupportedOperator creates an error for comparison operators the evaluator
// does not implement.
func UnsupportedOperator(op string) *BadQuery {
	return &BadQuery{
		Code:     ErrCodeUnsupportedOperator,
		Category: CategoryCondition,
		Message:  fmt.Sprintf("unsupported operator: %s", op),
		Hint:     "Use one of ==, !=, <, >, <=, >=",
	}
}

// NotBoolean creates an error for a bare field whose value has no boolean reading.
func NotBoolean(column, kind string) *BadQuery {
	return &BadQuery{
		Code:     ErrCodeNotBoolean,
		Category: CategoryCondition,
		Message:  fmt.Sprintf("column '%s' of kind %s cannot be used as a condition", column, kind),
	}
}

// ============================================================================
// Helper Functions
// ============================================================================

// IsBadQuery reports whether err is, or wraps, a BadQuery.
func IsBadQuery(err error) bool {
	var bq *BadQuery
	return errors.As(err, &bq)
}

// IsSyntaxError checks if an error is a syntax error.
func IsSyntaxError(err error) bool {
	var bq *BadQuery
	if errors.As(err, &bq) {
		return bq.Category == CategorySyntax
	}
	return false
}

// IsConstraintError checks if an error is a constraint violation.
func IsConstraintError(err error) bool {
	var bq *BadQuery
	if errors.As(err, &bq) {
		return bq.Category == CategoryConstraint
	}
	return false
}

// GetCode returns the error code if it's a BadQuery, or 0 otherwise.
func GetCode(err error) ErrorCode {
	var bq *BadQuery
	if errors.As(err, &bq) {
		return bq.Code
	}
	return 0
}

// FormatError formats an error for user display.
func FormatError(err error) string {
	var bq *BadQuery
	if errors.As(err, &bq) {
		return bq.UserMessage()
	}
	return fmt.Sprintf("ERROR: %v", err)
}
