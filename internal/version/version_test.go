package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShort(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "v1.2.3"
	assert.Equal(t, "1.2.3", Short())

	Version = "1.2.3"
	assert.Equal(t, "1.2.3", Short())
}

func TestGet(t *testing.T) {
	info := Get()
	assert.Equal(t, Short(), info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Contains(t, info.String(), "Version:      "+Short())
	assert.Contains(t, info.String(), "Platform:     "+runtime.GOOS)
}
