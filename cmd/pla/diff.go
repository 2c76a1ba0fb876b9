package main

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/operator-framework/pla/pkg/espresso"
)

var (
	removedStyle = color.New(color.FgRed)
	addedStyle   = color.New(color.FgGreen)
	headerStyle  = color.New(color.FgCyan, color.Bold)
)

type diffSolver struct {
	espresso.Solver
	mu sync.Mutex
	w  io.Writer
}

// diffing wraps s so that every answer is printed to w as a line diff
// against the document that produced it.
func diffing(s espresso.Solver, w io.Writer) espresso.Solver {
	return &diffSolver{Solver: s, w: w}
}

func (d *diffSolver) Solve(ctx context.Context, doc []byte) (string, error) {
	out, err := d.Solver.Solve(ctx, doc)
	if err != nil {
		return "", err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	writeDiff(d.w, string(doc), out)
	return out, nil
}

func writeDiff(w io.Writer, sent, received string) {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(sent, received)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	headerStyle.Fprintln(w, "--- sent")
	headerStyle.Fprintln(w, "+++ received")
	for _, diff := range diffs {
		for _, line := range strings.SplitAfter(diff.Text, "\n") {
			if line == "" {
				continue
			}
			line = strings.TrimSuffix(line, "\n")
			switch diff.Type {
			case diffmatchpatch.DiffDelete:
				removedStyle.Fprintln(w, "-"+line)
			case diffmatchpatch.DiffInsert:
				addedStyle.Fprintln(w, "+"+line)
			default:
				io.WriteString(w, " "+line+"\n")
			}
		}
	}
}
