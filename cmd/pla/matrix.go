package main

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/operator-framework/pla/pkg/espresso"
	"github.com/operator-framework/pla/pkg/minimize"
	"github.com/operator-framework/pla/pkg/mv"
)

const (
	compressMode = mv.Compress
	reduceMode   = mv.Reduce
)

var matrixHelp = map[mv.Mode]struct{ short, long string }{
	compressMode: {
		short: "Pare a value matrix down to its essential rows",
		long: `The pla compress command reads a YAML matrix document and prints an
        equivalent document with fewer rows, merging rows into value sets
        and wildcards where possible.

        $ pla compress -f matrix.yaml
        `,
	},
	reduceMode: {
		short: "Minimize a value matrix keyed on its last column",
		long: `The pla reduce command reads a YAML matrix document whose last
        column is the target and prints a minimized document. Target cells
        are never widened into wildcards.

        $ pla reduce -f matrix.yaml
        `,
	},
}

func newMatrixCmd(o *options, mode mv.Mode) *cobra.Command {
	return &cobra.Command{
		Use:   mode.String(),
		Short: matrixHelp[mode].short,
		Long:  matrixHelp[mode].long,
		Args:  cobra.NoArgs,
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
				d, err := mv.ReadDocument(in)
				in.Close()
				if err != nil {
					return err
				}

				r, err := runMatrix(ctx, s, mode, d)
				if err != nil {
					return err
				}
				o.logger.WithField("rows", len(r.Rows)).Infof("%s: %d rows in", mode, len(d.Rows))
				return o.write(cmd, func(w io.Writer) error {
					return mv.WriteDocument(w, r)
				})
			})
		},
	}
}

func runMatrix(ctx context.Context, s espresso.Solver, mode mv.Mode, d *mv.Document) (*mv.Document, error) {
	m, err := d.Matrix()
	if err != nil {
		return nil, err
	}
	var r *mv.Matrix[string]
	switch mode {
	case compressMode:
		r, err = minimize.Compress(ctx, s, m, nil)
	case reduceMode:
		r, err = minimize.Reduce(ctx, s, m, nil)
	default:
		err = errors.Errorf("unknown mode %v", mode)
	}
	if err != nil {
		return nil, err
	}
	return mv.NewDocument(d.Columns, r), nil
}

func newBatchCmd(o *options) *cobra.Command {
	var (
		parallel int
		reduce   bool
	)
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Compress or reduce several matrix documents concurrently",
		Long: `The pla batch command runs every --file through espresso, at most
        --parallel at a time, and prints the results in input order as a
        YAML stream. The first failure stops the whole batch.

        $ pla batch -f a.yaml -f b.yaml --parallel 4
        `,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(o.files) == 0 {
				return errors.New("batch needs at least one --file")
			}
			if o.watch {
				return errors.New("batch does not support --watch")
			}
			docs := make([]*mv.Document, len(o.files))
			for i, name := range o.files {
				in, err := open(cmd, name)
				if err != nil {
					return err
				}
				docs[i], err = mv.ReadDocument(in)
				in.Close()
				if err != nil {
					return errors.Wrap(err, name)
				}
			}

			mode := compressMode
			if reduce {
				mode = reduceMode
			}
			s, err := o.solver(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			ctx, stop := o.context(cmd)
			defer stop()

			results, err := minimize.Batch(ctx, parallel, docs, func(ctx context.Context, d *mv.Document) (*mv.Document, error) {
				return runMatrix(ctx, s, mode, d)
			})
			if err != nil {
				return err
			}
			o.logger.Infof("%s: %d documents", mode, len(results))
			return o.write(cmd, func(w io.Writer) error {
				for i, r := range results {
					if _, err := fmt.Fprintf(w, "---\n# %s\n", o.files[i]); err != nil {
						return err
					}
					if err := mv.WriteDocument(w, r); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&parallel, "parallel", 4, "maximum concurrent espresso runs, 0 for no limit")
	cmd.Flags().BoolVar(&reduce, "reduce", false, "reduce instead of compress")
	return cmd
}
