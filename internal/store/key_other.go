//go:build !darwin

package store

// DefaultKey is the Finder tag attribute in the user namespace, which Linux
// requires for unprivileged extended attributes.
const DefaultKey = "user.com.apple.metadata:_kMDItemUserTags"
