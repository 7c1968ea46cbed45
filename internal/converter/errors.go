package converter

import (
	"errors"
	"fmt"
)

var (
	// ErrTransform marks a row that could not become a line item.
	ErrTransform = errors.New("transform failed")

	// ErrNoItems is returned when there is nothing to generate.
	ErrNoItems = errors.New("no line items to generate")

	// ErrNotReady is returned when parse or validation errors block generation.
	ErrNotReady = errors.New("order data has blocking errors")
)

// TransformError is the failure of a single row. errors.Is(err, ErrTransform)
// holds for every TransformError.
type TransformError struct {
	Row    int
	Reason string
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("Row %d: %s", e.Row, e.Reason)
}

// Is lets errors.Is match ErrTransform.
func (e *TransformError) Is(target error) bool {
	return target == ErrTransform
}

// VendorError records a document failure for one vendor. Other vendors are
// unaffected by it.
type VendorError struct {
	Vendor string
	Err    error
}

func (e *VendorError) Error() string {
	return fmt.Sprintf("vendor %q: %v", e.Vendor, e.Err)
}

func (e *VendorError) Unwrap() error {
	return e.Err
}
