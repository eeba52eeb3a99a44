package alloppnet

import "github.com/pkg/errors"

// Data errors returned by constructors and setters. Use errors.Cause to
// compare against them.
var (
	ErrUnknownSequence = errors.New("unknown sequence")
	ErrUnknownSpecies  = errors.New("unknown species")
	ErrFootNotFound    = errors.New("leg foot does not match a diploid branch")
	ErrHeightOrder     = errors.New("heights out of order")
	ErrOutOfBounds     = errors.New("value out of bounds")
	ErrNotUltrametric  = errors.New("tree is not ultrametric")
	ErrBadTree         = errors.New("malformed tree")
)
