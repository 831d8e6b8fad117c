package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/stepstone/lpcheck"
	"github.com/katalvlaran/stepstone/report"
	"github.com/katalvlaran/stepstone/transport"
)

// errVerify marks a --verify mismatch.
var errVerify = errors.New("verification failed")

const solveLong = `Solve a transportation problem file.

The file is YAML unless its extension is .json:

    supply: [20, 30, 25]
    demand: [10, 25, 20, 20]
    costs:
      - [2, 4, 1, 3]
      - [4, 8, 2, 4]
      - [2, 2, 6, 5]
    # optional, priced into a dummy sink / dummy source
    supply_penalty: [0, 0, 0]
    demand_penalty: [0, 0, 0, 0]

The text format walks through every stage; json and yaml print a summary,
plus every trace step with --steps.`

type solveOptions struct {
	root *rootOptions

	method  string
	rule    string
	maxIter int
	tol     float64
	format  string
	steps   bool
	plot    string
	verify  bool
	runID   string

	path string
}

func newCommandSolve(root *rootOptions) *cobra.Command {
	o := &solveOptions{root: root}

	cmd := &cobra.Command{
		Use:   "solve [flags] FILE",
		Short: "Solve a problem file",
		Long:  solveLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(args); err != nil {
				return err
			}
			if err := o.Validate(); err != nil {
				return err
			}

			return o.Run(cmd)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.method, "method", "m", transport.MinimumCost.String(), "initial plan: minimum-cost or north-west-corner")
	f.StringVarP(&o.rule, "rule", "r", transport.SteepestDescent.String(), "entering cell rule: steepest or first-improving")
	f.IntVar(&o.maxIter, "max-iter", 0, "pivot limit (0 = max(100, 10·m·n))")
	f.Float64Var(&o.tol, "tol", transport.DefaultTolerance, "numeric tolerance")
	f.StringVarP(&o.format, "format", "f", formatText, "output format: text, json or yaml")
	f.BoolVar(&o.steps, "steps", false, "include trace steps in json/yaml output")
	f.StringVar(&o.plot, "plot", "", "write a cost-per-pivot chart to this file (.png, .svg, .pdf)")
	f.BoolVar(&o.verify, "verify", false, "cross-check the optimum with an LP simplex solve")
	f.StringVar(&o.runID, "run-id", "", "run identifier for log records (default: random UUID)")

	return cmd
}

func (o *solveOptions) Complete(args []string) error {
	o.path = args[0]

	return nil
}

func (o *solveOptions) Validate() error {
	switch o.format {
	case formatText, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", o.format)
	}
	if o.maxIter < 0 {
		return fmt.Errorf("--max-iter must be >= 0, got %d", o.maxIter)
	}
	if !(o.tol > 0 && o.tol < 1) {
		return fmt.Errorf("--tol must be in (0, 1), got %g", o.tol)
	}

	return nil
}

func (o *solveOptions) Run(cmd *cobra.Command) error {
	method, err := transport.ParseMethod(o.method)
	if err != nil {
		return err
	}
	rule, err := transport.ParsePivotRule(o.rule)
	if err != nil {
		return err
	}
	d, err := loadData(o.path, cmd.InOrStdin())
	if err != nil {
		return err
	}
	p, err := d.Problem()
	if err != nil {
		return err
	}

	opts := []transport.Option{
		transport.WithMethod(method),
		transport.WithPivotRule(rule),
		transport.WithMaxIterations(o.maxIter),
		transport.WithTolerance(o.tol),
		transport.WithLogger(o.root.logger()),
	}
	if o.runID != "" {
		opts = append(opts, transport.WithRunID(o.runID))
	}

	res, solveErr := transport.Solve(cmd.Context(), p, opts...)
	if res == nil {
		return solveErr
	}

	// A partial result from ErrNonConvergence is still printed.
	out := cmd.OutOrStdout()
	if err = o.write(out, res); err != nil {
		return err
	}
	if o.plot != "" {
		if err = report.SaveCostPlot(o.plot, res); err != nil {
			return fmt.Errorf("plot: %w", err)
		}
	}
	if solveErr != nil {
		return solveErr
	}
	if o.verify {
		sol, verr := lpcheck.Verify(p, res, o.tol*1e3)
		if verr != nil {
			return fmt.Errorf("%w: %w", errVerify, verr)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "verified: LP optimum %g\n", sol.Cost)
	}

	return nil
}

func (o *solveOptions) write(w io.Writer, res *transport.Result) error {
	switch o.format {
	case formatJSON:
		return report.JSON(w, res, o.steps)
	case formatYAML:
		return report.YAML(w, res, o.steps)
	default:
		return report.Text(w, res)
	}
}
