package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/stepstone/generate"
)

type genOptions struct {
	rows, cols       int
	seed             int64
	qtyMin, qtyMax   int
	costMin, costMax int
	imbalance        int
	penMin, penMax   int
	penalties        bool
	format           string
	output           string
}

func newCommandGen() *cobra.Command {
	o := &genOptions{}

	cmd := &cobra.Command{
		Use:   "gen [flags]",
		Short: "Write a random problem file",
		Long: `Write a reproducible random problem in the file format read by solve.
--imbalance sets sum(supply) - sum(demand): positive values leave a surplus,
negative values a shortage. Penalties are emitted when either penalty bound
is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o.penalties = cmd.Flags().Changed("penalty-min") || cmd.Flags().Changed("penalty-max")
			if err := o.Validate(); err != nil {
				return err
			}

			return o.Run(cmd)
		},
	}

	f := cmd.Flags()
	f.IntVar(&o.rows, "rows", 3, "number of sources")
	f.IntVar(&o.cols, "cols", 4, "number of sinks")
	f.Int64Var(&o.seed, "seed", 1, "random seed")
	f.IntVar(&o.qtyMin, "qty-min", 1, "minimum supply")
	f.IntVar(&o.qtyMax, "qty-max", 50, "maximum supply")
	f.IntVar(&o.costMin, "cost-min", 1, "minimum unit cost")
	f.IntVar(&o.costMax, "cost-max", 20, "maximum unit cost")
	f.IntVar(&o.imbalance, "imbalance", 0, "sum(supply) - sum(demand)")
	f.IntVar(&o.penMin, "penalty-min", 0, "minimum unit penalty")
	f.IntVar(&o.penMax, "penalty-max", 0, "maximum unit penalty")
	f.StringVarP(&o.format, "format", "f", formatYAML, "output format: yaml or json")
	f.StringVarP(&o.output, "output", "o", "", "output file (default stdout)")

	return cmd
}

// Validate rejects the ranges the generate option constructors panic on.
func (o *genOptions) Validate() error {
	if o.format != formatYAML && o.format != formatJSON {
		return fmt.Errorf("unknown format %q (want yaml or json)", o.format)
	}
	if o.qtyMin < 0 || o.qtyMax < o.qtyMin {
		return fmt.Errorf("bad quantity range [%d, %d]", o.qtyMin, o.qtyMax)
	}
	if o.costMax < o.costMin {
		return fmt.Errorf("bad cost range [%d, %d]", o.costMin, o.costMax)
	}
	if o.penalties && o.penMax < o.penMin {
		return fmt.Errorf("bad penalty range [%d, %d]", o.penMin, o.penMax)
	}

	return nil
}

func (o *genOptions) Run(cmd *cobra.Command) error {
	opts := []generate.Option{
		generate.WithSeed(o.seed),
		generate.WithQuantityRange(o.qtyMin, o.qtyMax),
		generate.WithCostRange(o.costMin, o.costMax),
		generate.WithImbalance(o.imbalance),
	}
	if o.penalties {
		opts = append(opts, generate.WithPenaltyRange(o.penMin, o.penMax))
	}
	d, err := generate.Random(o.rows, o.cols, opts...)
	if err != nil {
		return err
	}

	if o.output == "" {
		return writeData(cmd.OutOrStdout(), d, o.format)
	}
	f, err := os.Create(o.output)
	if err != nil {
		return err
	}
	if err = writeData(f, d, o.format); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
