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

package main

import (
	"fmt"

	"memdb/internal/output"
)

const demoRows = 20

// demoScript is the users walkthrough: named inserts, a point select and a
// range delete.
func demoScript() []string {
	script := []string{"create table users (id: int32, login: string[16])"}
	for i := 0; i < demoRows; i++ {
		script = append(script, fmt.Sprintf(`insert (id = %d, login = "number%d") to users`, i, i))
	}
	return append(script,
		`select id from users where login == "number5"`,
		"delete users where id < 10",
	)
}

// runDemo runs demoScript quietly and then prints every table.
func runDemo(sh *shell) error {
	for _, q := range demoScript() {
		if _, err := sh.db.Execute(q); err != nil {
			return fmt.Errorf("%s: %s", q, sh.formatError(err))
		}
	}

	for _, t := range sh.db.Tables() {
		fmt.Fprintf(sh.out, "%s\n", t.Name)
		if err := output.WriteTable(sh.writer, t); err != nil {
			return err
		}
		fmt.Fprintln(sh.out)
	}
	return nil
}
