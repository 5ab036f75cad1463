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
Package banner prints the memdb shell's startup banner.

ANSI Color Codes:
=================

Color is applied with ANSI escape sequences of the form \033[<code>m and is
switched off when the output is not a terminal.

Usage:

	banner.PrintTo(os.Stdout, cfg, term.IsTerminal(int(os.Stdout.Fd())))
*/
package banner

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"memdb/internal/config"
)

const logo = `
                         _ _
 _ __ ___   ___ _ __ ___   __| | |__
| '_ ` + "`" + ` _ \ / _ \ '_ ` + "`" + ` _ \ / _` + "`" + ` | '_ \
| | | | | |  __/ | | | | | (_| | |_) |
|_| |_| |_|\___|_| |_| |_|\__,_|_.__/
`

// ANSI escape codes for terminal text formatting.
const (
	AnsiRed   = "\033[31m"
	AnsiGreen = "\033[32m"
	AnsiCyan  = "\033[36m"
	AnsiReset = "\033[0m"
	AnsiBold  = "\033[1m"
	AnsiDim   = "\033[2m"
)

// Version information for the memdb shell.
const (
	Version = "0.3.0"
	License = "Licensed under Apache 2.0"
)

// PrintTo writes the banner followed by a one-line summary of the active
// shell settings.
func PrintTo(w io.Writer, cfg *config.Config, color bool) {
	paint := func(codes, s string) string {
		if !color {
			return s
		}
		return codes + s + AnsiReset
	}

	fmt.Fprintln(w, paint(AnsiCyan, strings.TrimPrefix(logo, "\n")))
	fmt.Fprintln(w, paint(AnsiCyan+AnsiBold, fmt.Sprintf(":: memdb ::  (v%s, %s)", Version, runtime.Version())))
	fmt.Fprintln(w, paint(AnsiGreen, License))

	settings := fmt.Sprintf("format=%s log_level=%s", cfg.Format, cfg.LogLevel)
	if cfg.ConfigFile != "" {
		settings += " config=" + cfg.ConfigFile
	}
	fmt.Fprintln(w, paint(AnsiDim, settings))
	fmt.Fprintln(w, paint(AnsiDim, `Type \h for help, \q to quit.`))
	fmt.Fprintln(w)
}
