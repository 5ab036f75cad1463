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

package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestBadQueryError(t *testing.T) {
	err := TableNotFound("users")
	if err.Error() != "bad query: table not found: users" {
		t.Errorf("unexpected message %q", err.Error())
	}

	err = ValueTooLong("login", 4, 5)
	if !strings.HasPrefix(err.Error(), "bad query: ") {
		t.Errorf("missing prefix: %q", err.Error())
	}
}

func TestCategories(t *testing.T) {
	tests := []struct {
		name     string
		err      *BadQuery
		category Category
	}{
		{"Syntax", UndefinedToken("$"), CategorySyntax},
		{"Execution", TableExists("t"), CategoryExecution},
		{"Constraint", DuplicateKey("id", "1"), CategoryConstraint},
		{"Value", OutOfRange("99999999999"), CategoryValue},
		{"Condition", EmptyCondition(), CategoryCondition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Category != tt.category {
				t.Errorf("expected %s, got %s", tt.category, tt.err.Category)
			}
		})
	}
}

func TestHelpersSeeWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("exec: %w", MissingKeyword("table", "users"))

	if !IsBadQuery(wrapped) {
		t.Error("expected IsBadQuery")
	}
	if !IsSyntaxError(wrapped) {
		t.Error("expected IsSyntaxError")
	}
	if IsConstraintError(wrapped) {
		t.Error("did not expect IsConstraintError")
	}
	if GetCode(wrapped) != ErrCodeMissingKeyword {
		t.Errorf("unexpected code %d", GetCode(wrapped))
	}
	if GetCode(errors.New("plain")) != 0 {
		t.Error("plain errors have no code")
	}
}

func TestUserMessage(t *testing.T) {
	err := KeywordCount("select", 3, 2).WithHint("select needs from and where")
	msg := FormatError(err)

	for _, want := range []string{"ERROR 1004 (SYNTAX)", "too few keywords", "select takes 3 keywords, found 2", "HINT: select needs"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}

	if got := FormatError(errors.New("plain")); got != "ERROR: plain" {
		t.Errorf("unexpected plain format %q", got)
	}
}

func TestUnwrapCause(t *testing.T) {
	cause := errors.New("strconv failure")
	err := UnsupportedValue("x").WithCause(cause)
	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable through errors.Is")
	}
}
