// Package report formats demo status for people: labelled values
// localized with golang.org/x/text, and matrices as fixed-width grids.
package report

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/chazu/rigid/pkg/geom"
)

// Field is one labelled value. Value is a float64, int, string or
// geom.Vec3.
type Field struct {
	Label string
	Value interface{}
	Unit  string
}

// Matrix is a named matrix shown under the fields.
type Matrix struct {
	Name string
	M    geom.Mat4
}

// Status describes a demo at one instant.
type Status struct {
	Title    string
	Fields   []Field
	Matrices []Matrix
}

// Add appends a field and returns the status for chaining.
func (s Status) Add(label string, v interface{}, unit string) Status {
	s.Fields = append(s.Fields, Field{Label: label, Value: v, Unit: unit})
	return s
}

// With appends a matrix.
func (s Status) With(name string, m geom.Mat4) Status {
	s.Matrices = append(s.Matrices, Matrix{Name: name, M: m})
	return s
}

// Reporter is implemented by scenes that describe themselves.
type Reporter interface {
	Status() Status
}

// Printer renders statuses in one language.
type Printer struct {
	tag language.Tag
	p   *message.Printer
}

// NewPrinter returns a printer for a BCP 47 language tag such as "en"
// or "pt-BR". Unknown tags fall back to English.
func NewPrinter(lang string) *Printer {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return &Printer{tag: tag, p: message.NewPrinter(tag)}
}

// Language returns the printer's tag.
func (pr *Printer) Language() language.Tag { return pr.tag }

// tr translates a catalog key; unknown keys come back unchanged.
func (pr *Printer) tr(key string) string {
	return pr.p.Sprintf(message.Key(key, key))
}

// Value formats a single value.
func (pr *Printer) Value(v interface{}) string {
	switch x := v.(type) {
	case float64:
		return pr.p.Sprintf("%.2f", x)
	case int:
		return pr.p.Sprintf("%d", x)
	case geom.Vec3:
		return pr.p.Sprintf("(%.2f; %.2f; %.2f)", x.X, x.Y, x.Z)
	case string:
		return pr.tr(x)
	}
	return fmt.Sprint(v)
}

// Line renders the title and fields on one line, separated by " | ".
func (pr *Printer) Line(s Status) string {
	parts := make([]string, 0, len(s.Fields)+1)
	if s.Title != "" {
		parts = append(parts, pr.tr(s.Title))
	}
	for _, f := range s.Fields {
		parts = append(parts, pr.tr(f.Label)+": "+pr.Value(f.Value)+f.Unit)
	}
	return strings.Join(parts, " | ")
}

// Text renders the status line followed by every matrix grid.
func (pr *Printer) Text(s Status) string {
	var b strings.Builder
	b.WriteString(pr.Line(s))
	b.WriteByte('\n')
	for _, m := range s.Matrices {
		b.WriteByte('\n')
		b.WriteString(pr.tr(m.Name))
		b.WriteString(":\n")
		b.WriteString(Grid(m.M))
	}
	return b.String()
}

// Grid renders m as four bracketed rows of %9.4f cells. It is not
// localized so columns stay aligned.
func Grid(m geom.Mat4) string {
	var b strings.Builder
	for i := 0; i < 4; i++ {
		b.WriteByte('[')
		for j := 0; j < 4; j++ {
			fmt.Fprintf(&b, "%9.4f", m[i][j])
		}
		b.WriteString(" ]\n")
	}
	return b.String()
}
