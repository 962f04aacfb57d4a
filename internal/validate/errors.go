// errors.go defines sentinel errors for validation failures.

package validate

import "errors"

var (
	ErrInvalidTag = errors.New("invalid tag")
)
