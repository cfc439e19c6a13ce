package dom

import "errors"

// Errors raised by the document. Client code should test with errors.Is,
// as errors are usually wrapped with additional context.
var (
	ErrSelector        = errors.New("invalid selector")
	ErrInvalidTagName  = errors.New("invalid tag name")
	ErrInvalidAttrName = errors.New("invalid attribute name")
	ErrUnknownProperty = errors.New("unknown element property")
	ErrPropertyValue   = errors.New("illegal value for element property")
	ErrMarkup          = errors.New("cannot parse markup")
	ErrNoElement       = errors.New("nil element")
	ErrHierarchy       = errors.New("cannot insert node here")
)
