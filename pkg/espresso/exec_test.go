package espresso

import (
	"context"
	"os/exec"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
)

var _ = Describe("exec solver", func() {
	const doc = ".i 2\n.o 1\n.type f\n1- 1\n.e\n"

	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Context("with defaults", func() {
		It("runs espresso with the operation's arguments", func() {
			s, err := NewMinimizer()
			Expect(err).ToNot(HaveOccurred())
			Expect(s.(*execSolver).binary).To(Equal(DefaultBinary))
			Expect(s.(*execSolver).args).To(Equal([]string{"-of"}))

			s, err = NewMerger()
			Expect(err).ToNot(HaveOccurred())
			Expect(s.(*execSolver).args).To(Equal([]string{"-Dd1merge", "-of"}))
		})

		It("rejects an empty binary path", func() {
			_, err := New(WithBinary(""))
			Expect(err).To(HaveOccurred())
		})
	})

	Context("with cat standing in for espresso", func() {
		var s Solver

		BeforeEach(func() {
			cat, err := exec.LookPath("cat")
			if err != nil {
				Skip("cat is not available")
			}
			s, err = NewMinimizer(WithBinary(cat), WithArgs())
			Expect(err).ToNot(HaveOccurred())
		})

		It("returns the process output", func() {
			out, err := s.Solve(ctx, []byte(doc))
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal(doc))
		})

		It("does not start a process for an empty document", func() {
			_, err := s.Solve(ctx, nil)
			Expect(errors.Is(err, ErrEmptyDocument)).To(BeTrue())
		})
	})

	Context("with a process that writes nothing", func() {
		It("reports missing output", func() {
			t, err := exec.LookPath("true")
			if err != nil {
				Skip("true is not available")
			}
			s, err := NewMinimizer(WithBinary(t), WithArgs())
			Expect(err).ToNot(HaveOccurred())

			_, err = s.Solve(ctx, []byte(doc))
			Expect(errors.Is(err, ErrNoOutput)).To(BeTrue())
		})
	})

	Context("with a failing process", func() {
		It("wraps the exit error", func() {
			f, err := exec.LookPath("false")
			if err != nil {
				Skip("false is not available")
			}
			s, err := NewMinimizer(WithBinary(f), WithArgs())
			Expect(err).ToNot(HaveOccurred())

			_, err = s.Solve(ctx, []byte(doc))
			Expect(err).To(HaveOccurred())
			var exitErr *exec.ExitError
			Expect(errors.As(err, &exitErr)).To(BeTrue())
		})
	})

	Context("with a cancelled context", func() {
		It("stops the process", func() {
			sleep, err := exec.LookPath("sleep")
			if err != nil {
				Skip("sleep is not available")
			}
			s, err := NewMinimizer(WithBinary(sleep), WithArgs("10"))
			Expect(err).ToNot(HaveOccurred())

			ctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
			defer cancel()
			_, err = s.Solve(ctx, []byte(doc))
			Expect(errors.Is(err, context.DeadlineExceeded)).To(BeTrue())
		})
	})
})
