package plan

import (
	"fmt"
	"math"

	"github.com/chazu/rigid/pkg/xform"
)

// ValidationSeverity indicates whether a validation finding blocks
// realization or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks realization
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	Name     string             // step or body name (empty if plan-level)
	Line     int                // source line, 0 if unknown
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Name, e.Message)
}

// ValidationResult bundles blocking errors and advisory warnings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// OK reports whether the plan has no blocking errors.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// unitTolerance is how far a direction's length may stray from 1 before
// a warning is issued.
const unitTolerance = 1e-9

// Validate runs every check on the plan and separates errors from
// warnings. It never mutates the plan.
func Validate(p *Plan) ValidationResult {
	var all []ValidationError
	all = append(all, validateStepGeometry(p)...)
	all = append(all, validateNames(p)...)
	all = append(all, validateBodies(p)...)

	var r ValidationResult
	for _, e := range all {
		if e.Severity == SeverityWarning {
			r.Warnings = append(r.Warnings, e)
		} else {
			r.Errors = append(r.Errors, e)
		}
	}
	return r
}

// validateStepGeometry rejects degenerate operators: zero axis
// directions, zero normals and singular scales. Non-unit directions are
// accepted with a warning since kernels normalize them.
func validateStepGeometry(p *Plan) []ValidationError {
	var errs []ValidationError
	add := func(s *Step, sev ValidationSeverity, format string, args ...interface{}) {
		errs = append(errs, ValidationError{
			Name:     s.Name,
			Line:     s.Source.Line,
			Message:  fmt.Sprintf(format, args...),
			Severity: sev,
		})
	}
	for _, s := range p.Steps {
		t := s.Transform
		switch t.Kind {
		case xform.Rotation, xform.Helicoidal:
			l := t.Axis.Dir.Len()
			if l == 0 {
				add(s, SeverityError, "%s axis direction is zero", t.Kind)
			} else if math.Abs(l-1) > unitTolerance {
				add(s, SeverityWarning, "%s axis direction %v is not unit length and will be normalized", t.Kind, t.Axis.Dir)
			}
			if math.IsNaN(t.Angle) || math.IsInf(t.Angle, 0) {
				add(s, SeverityError, "angle is not finite")
			}
		case xform.Reflection:
			l := t.Plane.Normal.Len()
			if l == 0 {
				add(s, SeverityError, "reflection plane normal is zero")
			} else if math.Abs(l-1) > unitTolerance {
				add(s, SeverityWarning, "plane normal %v is not unit length and will be normalized", t.Plane.Normal)
			}
		case xform.Scale:
			if t.Vec.X == 0 || t.Vec.Y == 0 || t.Vec.Z == 0 {
				add(s, SeverityError, "scale %v has a zero factor and collapses the body", t.Vec)
			}
		}
	}
	return errs
}

// validateNames warns about step names used more than once; lookups by
// name only reach the last of them.
func validateNames(p *Plan) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]int)
	for _, s := range p.Steps {
		seen[s.Name]++
		if seen[s.Name] == 2 {
			errs = append(errs, ValidationError{
				Name:     s.Name,
				Line:     s.Source.Line,
				Message:  "step name is used more than once",
				Severity: SeverityWarning,
			})
		}
	}
	return errs
}

// MaxPoints bounds the point count of a polyline and the segment count
// of a cone or circle.
const MaxPoints = 10000

// validateBodies checks that every body has a positive size and a
// drawable number of points.
func validateBodies(p *Plan) []ValidationError {
	var errs []ValidationError
	names := make(map[string]bool)
	for _, b := range p.Bodies {
		if names[b.Name] {
			errs = append(errs, ValidationError{
				Name: b.Name, Line: b.Source.Line,
				Message:  "body name is used more than once",
				Severity: SeverityError,
			})
		}
		names[b.Name] = true

		switch b.Kind {
		case BodyCube, BodyCircle:
			if b.Size <= 0 {
				errs = append(errs, ValidationError{
					Name: b.Name, Line: b.Source.Line,
					Message:  fmt.Sprintf("%s size must be positive, got %g", b.Kind, b.Size),
					Severity: SeverityError,
				})
			}
		case BodyCone:
			if b.Size <= 0 || b.Height == 0 {
				errs = append(errs, ValidationError{
					Name: b.Name, Line: b.Source.Line,
					Message:  fmt.Sprintf("cone needs a positive radius and non-zero height, got r=%g h=%g", b.Size, b.Height),
					Severity: SeverityError,
				})
			}
		case BodyPolyline:
			if b.Count < 2 || b.Count > MaxPoints {
				errs = append(errs, ValidationError{
					Name: b.Name, Line: b.Source.Line,
					Message:  fmt.Sprintf("polyline needs 2 to %d points, got %d", MaxPoints, b.Count),
					Severity: SeverityError,
				})
			}
		}
		if (b.Kind == BodyCone || b.Kind == BodyCircle) && b.Segments > MaxPoints {
			errs = append(errs, ValidationError{
				Name: b.Name, Line: b.Source.Line,
				Message:  fmt.Sprintf("%s has %d segments, at most %d allowed", b.Kind, b.Segments, MaxPoints),
				Severity: SeverityError,
			})
		}
	}
	return errs
}
