package minio

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObjectName(t *testing.T) {
	at := time.Date(2026, 5, 4, 3, 2, 1, 0, time.FixedZone("CST", 8*3600))

	name := ObjectName("/posts/hello world", at)
	assert.True(t, strings.HasPrefix(name, "comments/posts%2Fhello%20world/20260503T190201Z-"), name)
	assert.True(t, strings.HasSuffix(name, ".json"))

	root := ObjectName("/", at)
	assert.True(t, strings.HasPrefix(root, "comments/_root/"), root)

	assert.NotEqual(t, ObjectName("/a", at), ObjectName("/a", at))
}
