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
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"memdb/internal/config"
	ferrors "memdb/internal/errors"
	"memdb/internal/logging"
	"memdb/internal/output"
	"memdb/internal/sql"
)

// completions feeds readline's tab completion.
var completions = []string{
	"create table", "insert", "select", "from", "where", "delete", "update", "set", "to",
	"int32", "bool", "string[", "bytes[", "key", "autoincrement", "unique",
	`\q`, `\h`, `\d`, `\tokens`, `\stats`,
}

const helpText = `Statements:
  create table <name> ( [{attr, ...}] <field> : <type> [= <default>], ... )
  insert ( [<field> = ]<value>, ... ) to <name>
  select <field>, ... from <name> where <condition>
  delete <name> where <condition>
  update <name> set <field> = <value>, ... where <condition>

Types:      int32  bool  string[N]  bytes[N]
Attributes: key  autoincrement  unique
Literals:   123  true  "text"  0xdeadbeef
Operators:  ==  !=  <  >  <=  >=  &&  ||

Commands:
  \d            list tables
  \d <table>    show a table's schema and rows
  \tokens <q>   show how a query is tokenized
  \stats        show statement counters
  \stats prom   counters in Prometheus text format
  \stats reset  zero the counters
  \h            this help
  \q            quit

End a line with \ to continue the statement on the next line.
`

// shell reads statements and meta-commands and prints their results.
type shell struct {
	db     *sql.Database
	cfg    *config.Config
	out    io.Writer
	errOut io.Writer
	writer output.Writer
	logger *logging.Logger

	pending     strings.Builder
	stopOnError bool
}

func newShell(db *sql.Database, cfg *config.Config, out, errOut io.Writer) (*shell, error) {
	w, err := output.New(cfg.Format, out)
	if err != nil {
		return nil, err
	}
	return &shell{
		db:     db,
		cfg:    cfg,
		out:    out,
		errOut: errOut,
		writer: w,
		logger: logging.NewLogger("shell"),
	}, nil
}

// feed handles one input line. It reports whether the shell should exit.
// A failed statement returns its error only when stopOnError is set.
func (s *shell) feed(line string) (bool, error) {
	input := strings.TrimSpace(line)

	if strings.HasSuffix(input, `\`) && !strings.HasPrefix(input, `\`) {
		s.pending.WriteString(strings.TrimSuffix(input, `\`))
		s.pending.WriteString(" ")
		return false, nil
	}
	if s.pending.Len() > 0 {
		s.pending.WriteString(input)
		input = strings.TrimSpace(s.pending.String())
		s.pending.Reset()
	}

	if input == "" || strings.HasPrefix(input, "--") {
		return false, nil
	}
	if strings.HasPrefix(input, `\`) {
		return s.meta(input), nil
	}

	if err := s.execute(input); err != nil {
		fmt.Fprintln(s.errOut, s.formatError(err))
		if s.stopOnError {
			return true, err
		}
	}
	return false, nil
}

// continuing reports whether a statement is being continued across lines.
func (s *shell) continuing() bool {
	return s.pending.Len() > 0
}

// execute runs one statement and prints its result.
func (s *shell) execute(query string) error {
	res, err := s.db.Execute(query)
	if err != nil {
		return err
	}

	if res.Table != nil {
		return output.WriteTable(s.writer, res.Table)
	}
	if s.cfg.Format == config.FormatJSON {
		b, err := json.Marshal(map[string]interface{}{
			"status":        res.Tag,
			"rows_affected": res.RowsAffected,
		})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(s.out, string(b))
		return err
	}
	_, err = fmt.Fprintln(s.out, res.Tag)
	return err
}

func (s *shell) formatError(err error) string {
	return ferrors.FormatError(err)
}

// meta runs a backslash command and reports whether the shell should exit.
func (s *shell) meta(input string) bool {
	fields := strings.Fields(input)
	switch fields[0] {
	case `\q`, `\quit`:
		return true
	case `\h`, `\help`, `\?`:
		fmt.Fprint(s.out, helpText)
	case `\d`:
		if len(fields) == 1 {
			output.ListTables(s.out, s.db.Tables())
			return false
		}
		t, err := s.db.Table(fields[1])
		if err != nil {
			fmt.Fprintln(s.errOut, s.formatError(err))
			return false
		}
		output.Describe(s.out, t)
		if err := output.WriteTable(s.writer, t); err != nil {
			fmt.Fprintln(s.errOut, err)
		}
	case `\tokens`:
		query := strings.TrimSpace(strings.TrimPrefix(input, `\tokens`))
		output.Tokens(s.out, sql.Tokenize(query))
	case `\stats`:
		s.stats(fields[1:])
	default:
		fmt.Fprintf(s.errOut, "unknown command %s, try \\h\n", fields[0])
	}
	return false
}

func (s *shell) stats(args []string) {
	m := s.db.Metrics()
	if len(args) == 0 {
		output.Stats(s.out, m)
		return
	}
	switch args[0] {
	case "prom":
		if err := m.WritePrometheus(s.out); err != nil {
			fmt.Fprintln(s.errOut, err)
		}
	case "reset":
		m.Reset()
		fmt.Fprintln(s.out, "counters reset")
	default:
		fmt.Fprintf(s.errOut, "unknown \\stats option %s\n", args[0])
	}
}

// runReadline drives the shell from an interactive terminal.
func (s *shell) runReadline() error {
	items := make([]readline.PrefixCompleterInterface, 0, len(completions))
	for _, c := range completions {
		items = append(items, readline.PcItem(c))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:              s.cfg.Prompt,
		HistoryFile:         s.cfg.HistoryFile,
		AutoComplete:        readline.NewPrefixCompleter(items...),
		InterruptPrompt:     "^C",
		EOFPrompt:           `\q`,
		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		if s.continuing() {
			rl.SetPrompt(continuationPrompt(s.cfg.Prompt))
		} else {
			rl.SetPrompt(s.cfg.Prompt)
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if s.continuing() {
				s.pending.Reset()
				continue
			}
			fmt.Fprintln(s.out, `(Use \q to quit or Ctrl+D to exit)`)
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		quit, _ := s.feed(line)
		if quit {
			return nil
		}
	}
}

// runScanner drives the shell from a pipe or file, one line at a time.
// No prompt is printed.
func (s *shell) runScanner(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++

		quit, err := s.feed(scanner.Text())
		if err != nil {
			s.logger.Debug("stopping at failed statement", "line", lineNum, "code", ferrors.GetCode(err))
			return fmt.Errorf("stopped at line %d", lineNum)
		}
		if quit {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if s.continuing() {
		_, err := s.feed("")
		return err
	}
	return nil
}

func continuationPrompt(prompt string) string {
	width := len(strings.TrimRight(prompt, " "))
	if width < 2 {
		return "> "
	}
	return strings.Repeat(" ", width-2) + "-> "
}

// filterInput disables Ctrl+Z in the line editor.
func filterInput(r rune) (rune, bool) {
	switch r {
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}
