// Package engine evaluates transform scripts. It wraps zygomys in a
// sandboxed environment and produces a plan.Plan from user source code.
package engine

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/rigid/pkg/plan"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error, a runtime error in user code or a blocking
// validation finding.
type EvalError struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// EvalWarning is an advisory finding about an evaluated plan.
type EvalWarning struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
	Step    string `json:"step,omitempty"`
}

// EvalTimeout is the hard limit for a single evaluation.
const EvalTimeout = 5 * time.Second

// Engine wraps the zygomys interpreter. It is safe for concurrent use;
// each call to Evaluate creates a fresh sandboxed environment.
type Engine struct {
	mu         sync.Mutex
	generation uint64
}

// NewEngine creates a new Engine instance.
func NewEngine() *Engine {
	return &Engine{}
}

// evalResult carries one evaluation's output out of its goroutine.
type evalResult struct {
	plan   *plan.Plan
	errors []EvalError
	err    error
}

// Evaluate runs a transform script and returns the validated plan.
//
// Return semantics:
//   - On success: returns plan + nil errors + nil error
//   - On parse, eval or validation failure: returns nil plan + eval errors + nil error
//   - On fatal failure (timeout, panic, superseded): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*plan.Plan, []EvalError, error) {
	return e.EvaluateContext(context.Background(), source)
}

// EvaluateContext is Evaluate bounded by ctx as well as EvalTimeout.
// The script keeps running in its sandbox after ctx ends; its result is
// dropped.
func (e *Engine) EvaluateContext(ctx context.Context, source string) (*plan.Plan, []EvalError, error) {
	gen := e.next()
	ctx, cancel := context.WithTimeout(ctx, EvalTimeout)
	defer cancel()

	ch := make(chan evalResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()
		p, evalErrs, err := e.evaluate(source)
		ch <- evalResult{plan: p, errors: evalErrs, err: err}
	}()

	p, evalErrs, err := e.await(ctx, ch, gen)
	if p != nil {
		p.Version = gen
	}
	return p, evalErrs, err
}

func (e *Engine) next() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.generation++
	return e.generation
}

func (e *Engine) current() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generation
}

// await returns the result from ch unless ctx ends first. A result from
// an evaluation that a newer call has overtaken is discarded.
func (e *Engine) await(ctx context.Context, ch <-chan evalResult, gen uint64) (*plan.Plan, []EvalError, error) {
	select {
	case res := <-ch:
		if gen != e.current() {
			return nil, nil, fmt.Errorf("evaluation superseded by newer request")
		}
		return res.plan, res.errors, res.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, nil, fmt.Errorf("evaluation timed out: %w", ctx.Err())
		}
		return nil, nil, fmt.Errorf("evaluation abandoned: %w", ctx.Err())
	}
}

// evaluate performs the zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*plan.Plan, []EvalError, error) {
	p := plan.New()
	if strings.TrimSpace(source) == "" {
		return p, nil, nil
	}

	// Sandbox mode keeps scripts away from the filesystem and syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()
	registerBuiltins(env, p)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}

	if res := plan.Validate(p); !res.OK() {
		errs := make([]EvalError, len(res.Errors))
		for i, v := range res.Errors {
			errs[i] = EvalError{Line: v.Line, Message: v.Error()}
		}
		return nil, errs, nil
	}
	return p, nil, nil
}

// Lint returns the advisory findings for a plan that evaluated cleanly.
func Lint(p *plan.Plan) []EvalWarning {
	if p == nil {
		return nil
	}
	var out []EvalWarning
	for _, w := range plan.Validate(p).Warnings {
		out = append(out, EvalWarning{Line: w.Line, Message: w.Message, Step: w.Name})
	}
	return out
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into EvalError values,
// pulling a line number out of the message when one is present.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()
	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
		}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
