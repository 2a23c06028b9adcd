package filestorage

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildObjectKey(t *testing.T) {
	key := BuildObjectKey("week 3 notes.pdf")

	parts := strings.SplitN(key, "_", 2)
	require.Len(t, parts, 2)

	_, err := strconv.ParseInt(parts[0], 10, 64)
	assert.NoError(t, err)
	assert.Equal(t, "week_3_notes.pdf", parts[1])
}

func TestBuildObjectKeyStripsPath(t *testing.T) {
	assert.True(t, strings.HasSuffix(BuildObjectKey("/tmp/evil/../notes.pdf"), "_notes.pdf"))
	assert.True(t, strings.HasSuffix(BuildObjectKey(`C:\Users\me\notes.pdf`), "_notes.pdf"))
	assert.NotContains(t, BuildObjectKey("../../etc/passwd"), "..")
}

func TestBuildObjectKeyEmptyName(t *testing.T) {
	assert.True(t, strings.HasSuffix(BuildObjectKey(""), "_upload"))
	assert.True(t, strings.HasSuffix(BuildObjectKey(".."), "_upload"))
}

func TestBuildObjectKeysDiffer(t *testing.T) {
	a := BuildObjectKey("notes.pdf")
	b := BuildObjectKey("notes.pdf")
	assert.NotEqual(t, a, b)
}
