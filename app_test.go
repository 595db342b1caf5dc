package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/chazu/rigid/pkg/anim"
	"github.com/chazu/rigid/pkg/config"
	"github.com/chazu/rigid/pkg/geom"
)

func newTestApp(t *testing.T) (*App, *anim.Manual) {
	t.Helper()
	clock := anim.NewManual(time.Unix(0, 0))
	app, err := NewApp(config.Default(), clock)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	return app, clock
}

// TestE2ECubeSequenceExample exercises the full pipeline: Lisp source →
// engine → plan → realize → step matrices and meshes.
func TestE2ECubeSequenceExample(t *testing.T) {
	app, _ := newTestApp(t)

	source, err := os.ReadFile("examples/cube-sequence.lisp")
	if err != nil {
		t.Fatalf("failed to read cube-sequence.lisp: %v", err)
	}

	result := app.Evaluate(string(source))

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error (line %d): %s", e.Line, e.Message)
		}
		t.FailNow()
	}

	// The untransformed state plus five steps.
	wantSteps := []string{"original", "rotate", "scale", "reflect", "screw", "move"}
	if len(result.Steps) != len(wantSteps) {
		t.Fatalf("expected %d steps, got %d", len(wantSteps), len(result.Steps))
	}
	for i, name := range wantSteps {
		if result.Steps[i].Name != name {
			t.Errorf("step %d = %q, want %q", i, result.Steps[i].Name, name)
		}
		if result.Steps[i].Grid == "" {
			t.Errorf("step %q has no grid", name)
		}
		if !result.Steps[i].Matrix.IsAffine() {
			t.Errorf("step %q is not affine", name)
		}
	}
	if !result.Steps[0].Matrix.ApproxEqual(geom.Identity(), 1e-12) {
		t.Error("step 0 should be the identity")
	}

	if len(result.Meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(result.Meshes))
	}
	m := result.Meshes[0]
	if m.BodyName != "cube" {
		t.Errorf("body name = %q, want cube", m.BodyName)
	}
	if len(m.Vertices) != 8*3 {
		t.Errorf("cube has %d vertex floats, want 24", len(m.Vertices))
	}
	if len(m.Indices) != 12*2 {
		t.Errorf("cube has %d edge indices, want 24", len(m.Indices))
	}
	if m.Color == "" {
		t.Error("mesh has no color assigned")
	}

	// Non-unit normals and axes are reported, not rejected.
	if len(result.Warnings) == 0 {
		t.Error("expected lint warnings for non-unit directions")
	}
}

// TestE2EShippedExamples evaluates every script under examples/.
func TestE2EShippedExamples(t *testing.T) {
	paths, err := filepath.Glob("examples/*.lisp")
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) < 2 {
		t.Fatalf("expected the shipped examples, found %v", paths)
	}
	app, _ := newTestApp(t)
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			source, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			var bodies, steps int
			for _, line := range strings.Split(string(source), "\n") {
				line = strings.TrimSpace(line)
				switch {
				case strings.HasPrefix(line, "(body "):
					bodies++
				case strings.HasPrefix(line, "(step "):
					steps++
				}
			}

			result := app.Evaluate(string(source))
			if len(result.Errors) > 0 {
				t.Fatalf("eval errors: %v", result.Errors)
			}
			if len(result.Steps) != steps+1 {
				t.Errorf("got %d steps, want %d plus the original", len(result.Steps), steps)
			}
			if len(result.Meshes) != bodies {
				t.Errorf("got %d meshes, want %d", len(result.Meshes), bodies)
			}
			for _, s := range result.Steps {
				if !s.Matrix.IsAffine() {
					t.Errorf("step %q is not affine", s.Name)
				}
			}
		})
	}
}

// TestE2EEmptySource ensures the pipeline handles empty input gracefully.
func TestE2EEmptySource(t *testing.T) {
	app, _ := newTestApp(t)
	result := app.Evaluate("")

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors for empty source: %v", result.Errors)
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes for empty source, got %d", len(result.Meshes))
	}
	if len(result.Steps) != 1 {
		t.Errorf("expected only the identity step, got %d", len(result.Steps))
	}
}

// TestE2ESyntaxError ensures eval errors are reported, not fatal errors.
func TestE2ESyntaxError(t *testing.T) {
	app, _ := newTestApp(t)
	result := app.Evaluate(`(step "spin"`)

	if len(result.Errors) == 0 {
		t.Fatal("expected eval errors for syntax error")
	}
	if len(result.Steps) != 0 {
		t.Errorf("expected 0 steps on error, got %d", len(result.Steps))
	}
}

// TestE2ESingleStep ensures a one-step script maps points as expected.
func TestE2ESingleStep(t *testing.T) {
	app, _ := newTestApp(t)
	result := app.Evaluate(`(step "mirror" (reflect :normal (vec3 0 1 0)))`)

	if len(result.Errors) > 0 {
		t.Fatalf("eval errors: %v", result.Errors)
	}
	if len(result.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(result.Steps))
	}
	got := result.Steps[1].Matrix.Apply(geom.V(1, 1, 0))
	if !got.ApproxEqual(geom.V(1, -1, 0), 1e-12) {
		t.Errorf("reflected point = %v, want (1, -1, 0)", got)
	}
}

func TestSessionLifecycle(t *testing.T) {
	app, clock := newTestApp(t)

	id, err := app.Open("snake")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(app.Sessions()) != 1 {
		t.Fatalf("expected 1 session, got %v", app.Sessions())
	}

	if err := app.Start(id); err != nil {
		t.Fatalf("Start: %v", err)
	}
	clock.Frames(10, 16*time.Millisecond)

	st, err := app.Status(id)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.State.Phase != anim.Running {
		t.Errorf("phase = %s, want running", st.State.Phase)
	}
	if st.State.Tick != 10 {
		t.Errorf("tick = %d, want 10", st.State.Tick)
	}
	if _, ok := st.State.Counters["reflections"]; !ok {
		t.Error("expected a reflections counter")
	}
	if st.Demo != "snake" || st.Line == "" {
		t.Errorf("status = %+v", st)
	}

	if err := app.Pause(id); err != nil {
		t.Fatalf("Pause: %v", err)
	}
	clock.Frames(10, 16*time.Millisecond)
	st, _ = app.Status(id)
	if st.State.Tick != 10 {
		t.Errorf("paused session ticked: %d", st.State.Tick)
	}

	if err := app.Reset(id); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	st, _ = app.Status(id)
	if st.State.Phase != anim.Idle || st.State.Tick != 0 {
		t.Errorf("after reset: %+v", st.State)
	}

	if err := app.Close(id); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := app.Status(id); err == nil {
		t.Error("expected error for closed session")
	}
}

func TestSteppedSession(t *testing.T) {
	app, _ := newTestApp(t)
	id, err := app.Open("arc")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	steps := 0
	for {
		more, err := app.Step(id)
		if err != nil {
			t.Fatalf("Step: %v", err)
		}
		if !more {
			break
		}
		steps++
	}
	if steps != 3 {
		t.Errorf("took %d steps, want 3", steps)
	}
	st, _ := app.Status(id)
	if st.State.Phase != anim.Completed || st.State.StepIndex != 3 {
		t.Errorf("state = %+v", st.State)
	}
	if err := app.Speed(id, 500); err != nil {
		t.Errorf("Speed: %v", err)
	}
}

func TestCubeOperatorsSession(t *testing.T) {
	app, clock := newTestApp(t)
	id, err := app.Open("cube-operators")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := app.SetOperator(id, "reflection"); err != nil {
		t.Fatalf("SetOperator: %v", err)
	}
	if err := app.SetTruePath(id, true); err != nil {
		t.Fatalf("SetTruePath: %v", err)
	}
	if err := app.Start(id); err != nil {
		t.Fatalf("Start: %v", err)
	}
	clock.Frames(200, 16*time.Millisecond)

	st, _ := app.Status(id)
	if st.State.Phase != anim.Completed {
		t.Fatalf("phase = %s, want completed", st.State.Phase)
	}
	d, _ := app.Demo(id)
	co, ok := d.Operators()
	if !ok {
		t.Fatal("cube-operators has no operators")
	}
	if co.Operator.String() != "reflection" || !co.TruePath {
		t.Errorf("operator = %s, true path = %v", co.Operator, co.TruePath)
	}

	// The plane through (0,1,0) with normal (2,4,6) maps the corner
	// (0.5,0.5,0.5) to (0.5,0.5,0.5) - 2·(n·(p-P0))/|n|²·n.
	n := geom.V(2, 4, 6)
	p := geom.V(0.5, 0.5, 0.5)
	want := p.Sub(n.Scale(2 * n.Dot(p.Sub(geom.V(0, 1, 0))) / n.Dot(n)))
	if got := co.Target().Points[6]; !got.ApproxEqual(want, 1e-9) {
		t.Errorf("target corner = %v, want %v", got, want)
	}
	if got := co.Current().Points[6]; !got.ApproxEqual(want, 1e-9) {
		t.Errorf("current corner = %v, want %v", got, want)
	}

	if err := app.SetOperator(id, "shear"); err == nil {
		t.Error("expected an error for an unknown operator")
	}
	other, _ := app.Open("ball")
	if err := app.SetOperator(other, "screw"); err == nil {
		t.Error("expected an error for a demo without operators")
	}
	if err := app.SetTruePath(other, true); err == nil {
		t.Error("expected an error for a demo without operators")
	}
}
