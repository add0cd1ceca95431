package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored. Multi
// errors are flattened.
//
// If no non-nil error is given, nil is returned. If exactly one non-nil error
// is given, it is returned unchanged.
func Append(errs ...error) error {
	var flat multiErr
	for _, err := range errs {
		if errIsNil(err) {
			continue
		}
		if m, ok := err.(multiErr); ok {
			flat = append(flat, m...)
		} else {
			flat = append(flat, err)
		}
	}

	switch len(flat) {
	case 0:
		return nil
	case 1:
		return flat[0]
	default:
		return flat
	}
}

// multiErr represents a set of errors that happened at the same time. It is
// never empty when returned by Append.
type multiErr []error

func (m multiErr) Error() string {
	points := make([]string, len(m))
	for i, err := range m {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n", len(m), strings.Join(points, "\n\t"))
}

// Unpack returns all errors clubbed together. This method implements
// unpacker interface.
func (m multiErr) Unpack() []error {
	return m
}

// Code returns the code of the first error in the set, consistent with a
// fail fast approach.
func (m multiErr) Code() uint32 {
	return code(m[0])
}

// unpacker is implemented by errors that represent a set of errors.
type unpacker interface {
	Unpack() []error
}
