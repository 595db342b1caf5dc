// Package plan defines the data structure produced by evaluating a
// transform script: the bodies being moved and the ordered, named steps
// that move them. A Plan is built once per evaluation and then only read.
package plan
