package store

import "golang.org/x/sys/unix"

// errNoAttr is returned by getxattr and removexattr for a missing attribute.
const errNoAttr = unix.ENODATA
