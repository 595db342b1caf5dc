package plan

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/chazu/rigid/pkg/xform"
)

// ID is a content-addressed identifier for bodies and steps.
type ID [32]byte

// ZeroID is the unset ID.
var ZeroID ID

// NewID derives an ID from a path such as "step/rotate".
func NewID(path string) ID {
	return sha256.Sum256([]byte(path))
}

// IsZero reports whether the ID is unset.
func (id ID) IsZero() bool {
	return id == ZeroID
}

// Short returns the first 6 bytes as hex.
func (id ID) Short() string {
	return hex.EncodeToString(id[:6])
}

func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// ContentHash fingerprints a transform's defining data so a UI can tell
// which steps changed between two evaluations.
type ContentHash [32]byte

// HashTransform returns the content hash of t. The name is excluded.
func HashTransform(t xform.Transform) ContentHash {
	t.Name = ""
	return sha256.Sum256([]byte(fmt.Sprintf("%d|%v|%v|%v|%v|%v|%v", t.Kind, t.Axis, t.Angle, t.Pitch, t.Plane, t.Vec, t.M)))
}

// SourceRef points back to the script expression that created an entry.
type SourceRef struct {
	Line int    `json:"line"`
	Expr string `json:"expr,omitempty"`
}
