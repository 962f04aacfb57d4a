package store

// DefaultKey is the attribute Finder uses for user tags.
const DefaultKey = "com.apple.metadata:_kMDItemUserTags"
