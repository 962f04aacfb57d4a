// Package validate checks user-supplied tags before they reach the store.
//
// Validation is minimal. A tag name may hold anything except the bytes
// that would corrupt the stored "name\ncolor" record: a newline would split
// the name on decode, and a NUL cannot survive a C-string round trip in
// other tools reading the same attribute. Names must also be valid UTF-8,
// since the plist encoder would otherwise replace bad bytes and change the
// stored name.
//
// All validation errors wrap ErrInvalidTag. Use errors.Is() to check:
//
//	if errors.Is(err, validate.ErrInvalidTag) {
//	    // reject the invocation
//	}
package validate
