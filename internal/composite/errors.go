package composite

import (
	"errors"
	"fmt"
)

type ValidationKind string

const MissingRequiredDimension ValidationKind = "MissingRequiredDimension"

// ValidationError reports a configuration step attempted before a required
// dimension was chosen. The configurator state is left as it was.
type ValidationError struct {
	Kind      ValidationKind
	Dimension string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("composite: %s: %s", e.Kind, e.Dimension)
}

// Is matches any ValidationError with the same kind and dimension.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Dimension == t.Dimension
}

var (
	ErrMissingSize = &ValidationError{Kind: MissingRequiredDimension, Dimension: "size"}

	ErrUnknownSize        = errors.New("composite: size not offered")
	ErrInvalidFlavorCount = errors.New("composite: selection needs one or two distinct flavors")
	ErrInvalidQuantity    = errors.New("composite: quantity must be at least 1")
)
