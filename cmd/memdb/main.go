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
memdb is the command-line front end for the in-memory relational store.

Usage:

	memdb [flags]                 start the interactive shell
	memdb exec <query>...         run queries and exit
	memdb exec --file script.mdb  run one query per line from a file
	memdb exec --stats <query>... also print statement counters
	memdb demo                    run the built-in users walkthrough
	memdb tokens <query>          print how a query is tokenized
	memdb version                 print version information

Global flags override the configuration file and MEMDB_* environment
variables:

	--config     configuration file path
	--format     result format: table, plain or json
	--log-level  debug, info, warn or error
	--log-json   log JSON lines instead of text
*/
package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/alecthomas/kong"
	"golang.org/x/term"

	"memdb/internal/banner"
	"memdb/internal/config"
	"memdb/internal/logging"
	"memdb/internal/output"
	"memdb/internal/sql"
)

// Globals are flags shared by every command.
type Globals struct {
	Config   string `name:"config" short:"c" help:"Configuration file path" type:"path"`
	Format   string `name:"format" short:"f" help:"Result format (table, plain, json)"`
	LogLevel string `name:"log-level" help:"Log level (debug, info, warn, error)"`
	LogJSON  bool   `name:"log-json" help:"Write logs as JSON lines"`
}

// load builds the effective configuration: defaults, file, environment, then
// flags. It also configures the global logger.
func (g *Globals) load() (*config.Config, error) {
	mgr := config.NewManager()
	if err := mgr.Load(g.Config); err != nil {
		return nil, err
	}

	cfg := mgr.Get()
	if g.Format != "" {
		cfg.Format = g.Format
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	if g.LogJSON {
		cfg.LogJSON = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logging.Configure(logging.Config{
		Level:    logging.ParseLevel(cfg.LogLevel),
		Output:   os.Stderr,
		JSONMode: cfg.LogJSON,
		Color:    !cfg.LogJSON && term.IsTerminal(int(os.Stderr.Fd())),
	})
	return cfg, nil
}

var CLI struct {
	Globals

	Shell   ShellCmd   `cmd:"" default:"1" help:"Start the interactive shell"`
	Exec    ExecCmd    `cmd:"" help:"Run queries and exit"`
	Demo    DemoCmd    `cmd:"" help:"Run the built-in users walkthrough"`
	Tokens  TokensCmd  `cmd:"" help:"Print how a query is tokenized"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// ShellCmd starts the read-eval-print loop.
type ShellCmd struct{}

func (c *ShellCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	sh, err := newShell(sql.NewDatabase(), cfg, os.Stdout, os.Stderr)
	if err != nil {
		return err
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if interactive && cfg.ShowBanner {
		banner.PrintTo(os.Stdout, cfg, term.IsTerminal(int(os.Stdout.Fd())))
	}
	if interactive {
		return sh.runReadline()
	}
	return sh.runScanner(os.Stdin)
}

// ExecCmd runs queries given as arguments or read from a file.
type ExecCmd struct {
	Queries []string `arg:"" optional:"" help:"Queries to run, in order"`
	File    string   `name:"file" help:"Read queries from a file, one per line" type:"existingfile"`
	Stats   bool     `name:"stats" help:"Print statement counters in Prometheus text format when done"`
}

func (c *ExecCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	sh, err := newShell(sql.NewDatabase(), cfg, os.Stdout, os.Stderr)
	if err != nil {
		return err
	}

	if c.File != "" {
		f, err := os.Open(c.File)
		if err != nil {
			return err
		}
		defer f.Close()
		sh.stopOnError = true
		if err := sh.runScanner(f); err != nil {
			return err
		}
	}
	for _, q := range c.Queries {
		if err := sh.execute(q); err != nil {
			return fmt.Errorf("%s", sh.formatError(err))
		}
	}
	if c.Stats {
		return sh.db.Metrics().WritePrometheus(os.Stdout)
	}
	return nil
}

// DemoCmd runs a short scripted session against a fresh database.
type DemoCmd struct{}

func (c *DemoCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	sh, err := newShell(sql.NewDatabase(), cfg, os.Stdout, os.Stderr)
	if err != nil {
		return err
	}
	return runDemo(sh)
}

// TokensCmd prints the token table of a query without running it.
type TokensCmd struct {
	Query []string `arg:"" help:"Query text"`
}

func (c *TokensCmd) Run(g *Globals) error {
	if _, err := g.load(); err != nil {
		return err
	}
	tokens := sql.Tokenize(strings.Join(c.Query, " "))
	output.Tokens(os.Stdout, tokens)
	if err := sql.Validate(tokens); err != nil {
		fmt.Fprintln(os.Stdout, "validation:", err)
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("memdb %s (%s %s/%s)\n", banner.Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("memdb"),
		kong.Description("In-memory relational store with a small query language"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(&CLI.Globals)
	ctx.FatalIfErrorf(err)
}
