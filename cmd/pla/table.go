package main

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/operator-framework/pla/pkg/minimize"
	"github.com/operator-framework/pla/pkg/pla"
	"github.com/operator-framework/pla/pkg/pla/cnf"
)

func newTableCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Minimize a single-valued truth table",
		Long: `The pla table command minimizes a table written in the espresso
        input format and prints the reduced table.

        $ pla table -f adder.pla
        `,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.solver(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return o.run(cmd, func(ctx context.Context) error {
				in, err := o.input(cmd)
				if err != nil {
					return err
				}
				t, err := pla.Read(in)
				in.Close()
				if err != nil {
					return err
				}

				r, err := minimize.Table(ctx, s, t)
				if err != nil {
					return err
				}
				o.logger.WithField("rows", r.Len()).Infof("minimized table of %d rows", t.Len())
				return o.write(cmd, func(w io.Writer) error {
					_, err := r.WriteTo(w)
					return err
				})
			})
		},
	}
}

func newCNFCmd(o *options) *cobra.Command {
	var (
		maxVars int
		verify  bool
	)
	cmd := &cobra.Command{
		Use:   "cnf",
		Short: "Minimize a clause set",
		Long: `The pla cnf command reads a DIMACS cnf problem, minimizes it as a
        table of blocking rows and prints the equivalent reduced problem.

        $ pla cnf -f problem.cnf --verify
        `,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.solver(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return o.run(cmd, func(ctx context.Context) error {
				in, err := o.input(cmd)
				if err != nil {
					return err
				}
				f, declared, err := cnf.ReadDimacs(in)
				in.Close()
				if err != nil {
					return err
				}
				vars := declared
				if maxVars > 0 {
					vars = maxVars
				}

				r, err := minimize.CNF(ctx, s, f, vars)
				if err != nil {
					return err
				}
				o.logger.WithField("clauses", len(r)).Infof("minimized %d clauses", len(f))

				if verify {
					ok, err := cnf.Equivalent(f, r)
					if err != nil {
						return errors.Wrap(err, "verifying result")
					}
					if !ok {
						return errors.New("minimized clause set is not equivalent to the input")
					}
					o.logger.Info("result verified equivalent")
				}
				return o.write(cmd, func(w io.Writer) error {
					return cnf.WriteDimacs(w, r, vars)
				})
			})
		},
	}
	cmd.Flags().IntVar(&maxVars, "max-vars", 0, "table width, defaults to the variable count of the problem line or, without one, the largest variable used")
	cmd.Flags().BoolVar(&verify, "verify", false, "check the result is equivalent to the input with a SAT solver")
	return cmd
}
