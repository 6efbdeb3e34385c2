package stackrun

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog"
	"go.lepovirta.org/intstack/internal/intstack"
	"go.lepovirta.org/intstack/internal/stackrun/config"
)

var (
	ErrCtxCancelled = errors.New("cancelled by context")
)

// Runner applies the steps of a single program to a stack it owns.
// A Runner must not be shared between goroutines.
type Runner struct {
	program *config.Program
	stack   *intstack.Stack
	out     bytes.Buffer
}

func (this *Runner) getLogger(ctx context.Context) zerolog.Logger {
	return zerolog.Ctx(ctx).With().
		Str("program", this.program.Name).
		Logger()
}

func (this *Runner) Init(program *config.Program) error {
	this.program = program
	this.out.Reset()

	var err error
	if program.Seed != nil {
		this.stack, err = intstack.FromSlice(program.Seed.Elements, program.Seed.Count)
	} else if program.Capacity != nil {
		this.stack, err = intstack.New(*program.Capacity)
	} else {
		err = errors.New("neither capacity nor seed is specified")
	}
	if err != nil {
		return this.stepError(-1, config.OpUndefined, "failed to create stack", err)
	}
	return nil
}

// Stack returns the stack the runner operates on.
func (this *Runner) Stack() *intstack.Stack {
	return this.stack
}

// Output returns the step results recorded so far.
func (this *Runner) Output() []byte {
	return this.out.Bytes()
}

func (this *Runner) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(this.out.Bytes())
	return int64(n), err
}

func (this *Runner) Run(ctx context.Context) error {
	log := this.getLogger(ctx)
	log.Debug().
		Str("stack", this.stack.String()).
		Int("steps", len(this.program.Steps)).
		Msg("program started")

	for i := range this.program.Steps {
		if ctx.Err() != nil {
			log.Warn().Int("step", i).Msg("program cancelled")
			return ErrCtxCancelled
		}
		if err := this.runStep(&log, i); err != nil {
			log.Error().Err(err).Int("step", i).Msg("step failed")
			return err
		}
	}

	log.Debug().
		Str("stack", this.stack.String()).
		Msg("program finished")
	return nil
}

func (this *Runner) runStep(log *zerolog.Logger, index int) error {
	step := &this.program.Steps[index]
	result, err := this.apply(step)

	if err != nil {
		if !step.Fails || !isPreconditionError(err) {
			return this.stepError(index, step.Op, "operation failed", err)
		}
		result = "error: " + err.Error()
	} else if step.Fails {
		return this.stepError(index, step.Op, "operation was expected to fail", nil)
	} else if !step.Expect.MatchString(result) {
		return this.stepError(
			index, step.Op,
			fmt.Sprintf("result '%s' does not match '%s'", result, step.Expect.String()),
			nil,
		)
	}

	log.Debug().
		Int("step", index).
		Str("op", step.Op.String()).
		Str("result", result).
		Msg("step done")
	this.writeResult(step, result)
	return nil
}

func (this *Runner) apply(step *config.Step) (string, error) {
	switch step.Op {
	case config.OpPush:
		if err := this.stack.Push(step.Value.Int()); err != nil {
			return "", err
		}
		return this.stack.String(), nil
	case config.OpPop:
		v, err := this.stack.Pop()
		if err != nil {
			return "", err
		}
		return strconv.Itoa(v), nil
	case config.OpTop:
		v, err := this.stack.Top()
		if err != nil {
			return "", err
		}
		return strconv.Itoa(v), nil
	case config.OpLen:
		return strconv.Itoa(this.stack.Len()), nil
	case config.OpCapacity:
		return strconv.Itoa(this.stack.Capacity()), nil
	case config.OpEmpty:
		return strconv.FormatBool(this.stack.IsEmpty()), nil
	case config.OpFull:
		return strconv.FormatBool(this.stack.IsFull()), nil
	case config.OpHash:
		return strconv.Itoa(this.stack.Hash()), nil
	case config.OpString:
		return this.stack.String(), nil
	case config.OpClone:
		clone := this.stack.Clone()
		equal := clone.Equal(this.stack)
		this.stack = clone
		return strconv.FormatBool(equal), nil
	default:
		return "", fmt.Errorf("unexpected op %s", step.Op)
	}
}

func (this *Runner) writeResult(step *config.Step, result string) {
	_, _ = this.out.WriteString(this.program.Name)
	_, _ = this.out.WriteString(": ")
	_, _ = this.out.WriteString(step.Op.String())
	if step.Value.IsSet() {
		_ = this.out.WriteByte(' ')
		_, _ = this.out.WriteString(step.Value.String())
	}
	_, _ = this.out.WriteString(" -> ")
	_, _ = this.out.WriteString(result)
	_ = this.out.WriteByte('\n')
}

func (this *Runner) stepError(index int, op config.Op, reason string, cause error) *StepError {
	return &StepError{
		Program: this.program.Name,
		Index:   index,
		Op:      op,
		Reason:  reason,
		Cause:   cause,
	}
}

func isPreconditionError(err error) bool {
	return errors.Is(err, intstack.ErrUnderflow) ||
		errors.Is(err, intstack.ErrCapacityExceeded) ||
		errors.Is(err, intstack.ErrInvalidArgument)
}

// StepError describes a program step that did not behave as expected.
// Index is -1 when the stack could not be created.
type StepError struct {
	Program string
	Index   int
	Op      config.Op
	Reason  string
	Cause   error
}

func (this *StepError) Error() string {
	where := fmt.Sprintf("program '%s'", this.Program)
	if this.Index >= 0 {
		where = fmt.Sprintf("step %d (%s) of program '%s'", this.Index, this.Op, this.Program)
	}
	if this.Cause == nil {
		return fmt.Sprintf("%s in %s", this.Reason, where)
	}
	return fmt.Sprintf("%s in %s: %s", this.Reason, where, this.Cause.Error())
}

func (this *StepError) Unwrap() error {
	return this.Cause
}
