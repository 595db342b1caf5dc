package engine

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestEvaluateSourcesWithoutSteps(t *testing.T) {
	sources := map[string]string{
		"empty":      "",
		"whitespace": "   \n\t  \n  ",
		"comment":    "; nothing to do yet\n",
		"arithmetic": "(+ 1 2)",
		"def":        "(def half 0.5)\n(* half 4)",
	}
	eng := NewEngine()
	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			p, evalErrs, err := eng.Evaluate(src)
			if err != nil {
				t.Fatalf("unexpected fatal error: %v", err)
			}
			if len(evalErrs) > 0 {
				t.Fatalf("unexpected eval errors: %v", evalErrs)
			}
			if p == nil {
				t.Fatal("expected non-nil plan")
			}
			if !p.IsEmpty() {
				t.Errorf("expected empty plan, got %d steps", p.StepCount())
			}
		})
	}
}

func TestEvaluateFailures(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unbalanced", "(+ 1 2", ""},
		{"undefined symbol", "(+ 1 undefined-symbol)", ""},
		{"zero axis", `(step "r" (rotate :axis (vec3 0 0 0) :angle 30))`, "axis direction is zero"},
		{"zero normal", `(step "m" (reflect :normal (vec3 0 0 0)))`, "normal is zero"},
		{"singular scale", `(step "s" (scale (vec3 1 0 1)))`, "zero factor"},
	}
	eng := NewEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, evalErrs, err := eng.Evaluate(tt.src)
			if err != nil {
				t.Fatalf("expected eval errors, not a fatal error: %v", err)
			}
			if p != nil {
				t.Fatal("expected nil plan")
			}
			if len(evalErrs) == 0 {
				t.Fatal("expected at least one eval error")
			}
			if tt.want != "" && !strings.Contains(evalErrs[0].Message, tt.want) {
				t.Errorf("message = %q, want containing %q", evalErrs[0].Message, tt.want)
			}
		})
	}
}

func TestEvaluateSyntaxErrorHasLineInfo(t *testing.T) {
	source := `(step "a" (translate (vec3 1 0 0)))
(step "b" (translate (vec3 0 1 0)))
(step "c" (translate (vec3 0 0 1)`

	eng := NewEngine()
	_, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors")
	}
	if evalErrs[0].Line == 0 {
		t.Logf("no line info extracted, message=%q", evalErrs[0].Message)
	}
}

func TestEvalErrorString(t *testing.T) {
	tests := []struct {
		err      EvalError
		contains []string
		excludes string
	}{
		{EvalError{Line: 5, Message: "bad pitch"}, []string{"line 5", "bad pitch"}, ""},
		{EvalError{Message: "no location"}, []string{"no location"}, "line"},
	}
	for _, tt := range tests {
		s := tt.err.Error()
		for _, want := range tt.contains {
			if !strings.Contains(s, want) {
				t.Errorf("%q does not contain %q", s, want)
			}
		}
		if tt.excludes != "" && strings.Contains(s, tt.excludes) {
			t.Errorf("%q should not contain %q", s, tt.excludes)
		}
	}
}

func TestEvaluateKeepsStepOrder(t *testing.T) {
	source := `(body "cube" :kind :cube)
(step "spin" (rotate :axis (vec3 0 0 1) :angle 90))
(step "lift" (translate (vec3 0 0 2)))
(step "flip" (reflect :normal (vec3 1 0 0)))`

	eng := NewEngine()
	for i := 0; i < 3; i++ {
		p, evalErrs, err := eng.Evaluate(source)
		if err != nil || len(evalErrs) > 0 {
			t.Fatalf("run %d: err=%v evalErrs=%v", i, err, evalErrs)
		}
		var names []string
		for _, s := range p.Steps {
			names = append(names, s.Name)
		}
		if got := strings.Join(names, ","); got != "spin,lift,flip" {
			t.Errorf("run %d: steps = %s", i, got)
		}
	}
}

func TestEvaluateConcurrently(t *testing.T) {
	eng := NewEngine()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// A superseded evaluation reports a fatal error; anything
			// else must be a clean plan.
			p, evalErrs, err := eng.Evaluate(`(step "m" (translate (vec3 1 2 3)))`)
			if err != nil {
				return
			}
			if len(evalErrs) > 0 || p.StepCount() != 1 {
				t.Errorf("evalErrs=%v plan=%v", evalErrs, p)
			}
		}()
	}
	wg.Wait()
}

func TestAwaitTimesOut(t *testing.T) {
	eng := NewEngine()
	gen := eng.next()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, _, err := eng.await(ctx, make(chan evalResult), gen)
		done <- err
	}()

	select {
	case err := <-done:
		if err == nil || !strings.Contains(err.Error(), "timed out") {
			t.Fatalf("expected timeout error, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("await ignored the deadline")
	}
}

func TestEvaluateContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// The script may win the race with the cancelled context; either a
	// plan or an abandoned error is acceptable, never both.
	p, _, err := NewEngine().EvaluateContext(ctx, `(step "m" (translate (vec3 1 0 0)))`)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
		if p != nil {
			t.Error("plan returned with an error")
		}
	}
}

func TestAwaitDiscardsStaleGeneration(t *testing.T) {
	eng := NewEngine()
	stale := eng.next()
	eng.next()
	ch := make(chan evalResult, 1)
	ch <- evalResult{}

	_, _, err := eng.await(context.Background(), ch, stale)
	if err == nil || !strings.Contains(err.Error(), "superseded") {
		t.Fatalf("expected superseded error, got %v", err)
	}
}

type errString string

func (e errString) Error() string { return string(e) }

func TestParseZygomysError(t *testing.T) {
	tests := []struct {
		msg      string
		wantLine int
		wantMsg  string
	}{
		{"Error on line 5: unexpected token\n", 5, "unexpected token"},
		{"error on line 12: missing paren", 12, "missing paren"},
		{"some generic error", 0, "some generic error"},
	}
	for _, tt := range tests {
		errs := parseZygomysError(errString(tt.msg))
		if len(errs) == 0 {
			t.Fatalf("%q: no errors", tt.msg)
		}
		if errs[0].Line != tt.wantLine {
			t.Errorf("%q: line = %d, want %d", tt.msg, errs[0].Line, tt.wantLine)
		}
		if !strings.Contains(errs[0].Message, tt.wantMsg) {
			t.Errorf("%q: message = %q", tt.msg, errs[0].Message)
		}
	}
}

func TestEvaluateVersionIncreases(t *testing.T) {
	eng := NewEngine()
	a, _, err := eng.Evaluate("")
	if err != nil {
		t.Fatal(err)
	}
	b, _, err := eng.Evaluate("")
	if err != nil {
		t.Fatal(err)
	}
	if b.Version <= a.Version {
		t.Errorf("version did not increase: %d then %d", a.Version, b.Version)
	}
}
