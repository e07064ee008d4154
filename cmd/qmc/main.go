// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command qmc minimizes boolean functions given as truth tables or
// expressions.
//
//	qmc -vars A,B,C -table 0,1,1,1,0,0,x,1
//	qmc -expr "A & B | A & !B" -notation unicode
//
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/builder"
	"github.com/db47h/logicsim/expr"
	"github.com/db47h/logicsim/qmc"
	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

type options struct {
	vars     string
	table    string
	expr     string
	strategy string
	notation string
	limit    int

	all    bool
	primes bool
	verify bool
	debug  bool
	quiet  bool
}

func main() {
	opts := readArguments()
	logger := createLogger(opts.debug, opts.quiet)
	printBanner(logger, opts)

	if err := run(logger, opts); err != nil {
		logger.Error("Minimization failed", log.Err(err))
		os.Exit(1)
	}
}

func readArguments() options {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options

	flags.StringVar(&opts.vars, "vars", "", "comma separated variable names, most significant first")
	flags.StringVar(&opts.table, "table", "", "truth table rows: 0, 1 or x, separated by commas")
	flags.StringVar(&opts.expr, "expr", "", "expression to minimize instead of a table")
	flags.StringVar(&opts.strategy, "strategy", "greedy", "prime selection strategy: greedy or exhaustive")
	flags.StringVar(&opts.notation, "notation", "plain", "output notation: unicode, plain, programming or cupl")
	flags.IntVar(&opts.limit, "limit", qmc.DefaultPrimeLimit, "maximum prime count for the exhaustive strategy")
	flags.BoolVar(&opts.all, "all", false, "print all minimal solutions (exhaustive strategy only)")
	flags.BoolVar(&opts.primes, "primes", false, "print the prime implicants")
	flags.BoolVar(&opts.verify, "verify", false, "simulate the minimized circuit and check it against the table")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.quiet, "q", false, "perform operations quietly")

	err := flags.Parse(os.Args[1:])
	if err != nil || (opts.table == "") == (opts.expr == "") || flags.NArg() > 0 {
		printBanner(createLogger(false, false), opts)
		fmt.Printf("usage: qmc [options] -table <rows> | -expr <expression>\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}
	return opts
}

func createLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func printBanner(logger *log.Logger, opts options) {
	if opts.quiet {
		return
	}
	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}
	logger.Info("qmc", log.String("version", versionString))
	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

func parseVars(s string) []expr.Variable {
	var vs []expr.Variable
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			vs = append(vs, expr.Var(f))
		}
	}
	return vs
}

// defaultVars returns A, B, C... for n variables.
func defaultVars(n int) []expr.Variable {
	vs := make([]expr.Variable, n)
	for i := range vs {
		if n <= 26 {
			vs[i] = expr.Var(string(rune('A' + i)))
		} else {
			vs[i] = expr.Var(fmt.Sprintf("X%d", i))
		}
	}
	return vs
}

func loadTable(opts options) ([]expr.Variable, qmc.BoolTable, error) {
	vars := parseVars(opts.vars)
	if opts.expr != "" {
		e, err := expr.Parse(opts.expr)
		if err != nil {
			return nil, nil, err
		}
		if len(vars) == 0 {
			vars = expr.Variables(e)
		}
		t, err := qmc.NewExpressionTable(vars, e)
		return vars, t, err
	}
	t, err := qmc.ParseTable(opts.table)
	if err != nil {
		return nil, nil, err
	}
	if len(vars) == 0 {
		n := 0
		for 1<<uint(n) < len(t) {
			n++
		}
		vars = defaultVars(n)
	}
	if len(t) != 1<<uint(len(vars)) {
		return nil, nil, errors.Errorf("table has %d rows, expected %d for %d variables", len(t), 1<<uint(len(vars)), len(vars))
	}
	return vars, t, nil
}

func run(logger *log.Logger, opts options) error {
	notation, err := expr.NotationByName(opts.notation)
	if err != nil {
		return err
	}
	sel, err := qmc.SelectorByName(opts.strategy)
	if err != nil {
		return err
	}
	if x, ok := sel.(*qmc.Exhaustive); ok {
		x.Limit = opts.limit
	}
	vars, table, err := loadTable(opts)
	if err != nil {
		return err
	}

	primes, err := qmc.Reduce(len(vars), table)
	if err != nil {
		return err
	}
	logger.Debug("Reduced table",
		log.Int("variables", len(vars)),
		log.Int("primes", len(primes)))
	if opts.primes {
		for i := range primes {
			fmt.Printf("%s\t%s\n", primes[i].Pattern(len(vars)), expr.Format(primes[i].Expression(vars), notation))
		}
	}

	ones, _ := qmc.Minterms(table)
	if opts.all {
		x, ok := sel.(*qmc.Exhaustive)
		if !ok {
			return errors.New("-all requires the exhaustive strategy")
		}
		sols, err := x.SelectAll(primes, ones)
		if err != nil {
			return err
		}
		logger.Debug("Minimal solutions", log.Int("count", len(sols)))
		for _, s := range sols {
			fmt.Println(expr.Format(qmc.ToExpression(vars, s), notation))
		}
		return nil
	}

	terms, err := sel.Select(primes, ones)
	if err != nil {
		return err
	}
	e := qmc.ToExpression(vars, terms)
	fmt.Println(expr.Format(e, notation))

	if opts.verify {
		return verify(logger, vars, table, e)
	}
	return nil
}

// verify simulates e and checks its output against table.
func verify(logger *log.Logger, vars []expr.Variable, table qmc.BoolTable, e expr.Expression) error {
	const out = "_y"
	b := builder.New()
	if err := b.Add(out, e); err != nil {
		return err
	}
	c, err := b.Build(logicsim.WithLogger(logger))
	if err != nil {
		return err
	}
	defer c.Close()
	if err = c.Init(); err != nil {
		return err
	}

	f, err := expr.NewContextFiller(vars)
	if err != nil {
		return err
	}
	inputs := make(map[string]bool)
	for _, p := range c.Inputs() {
		inputs[p.Name] = true
	}
	vals := make(map[string]uint64)
	for row := 0; row < f.Rows(); row++ {
		want := table.Get(row)
		if want == qmc.DontCare {
			continue
		}
		ctx := f.Fill(row)
		for v, b := range ctx {
			// variables eliminated by minimization are not circuit inputs.
			if !inputs[string(v)] {
				continue
			}
			vals[string(v)] = 0
			if b {
				vals[string(v)] = 1
			}
		}
		if err = c.SetAll(vals); err != nil {
			return err
		}
		got, err := c.Get(out)
		if err != nil {
			return err
		}
		if got.Bool() != (want == qmc.One) {
			return errors.Errorf("row %d: simulated output %v, expected %v", row, got, want)
		}
	}
	logger.Info("Circuit verified",
		log.Int("components", c.Size()),
		log.Int("rows", f.Rows()))
	return nil
}
