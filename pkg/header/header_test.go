package header

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	var h Header
	h.Init(KindMountReport, APIVersion, "v1.2.3")

	assert.Equal(t, KindMountReport, h.Kind)
	assert.Equal(t, APIVersion, h.APIVersion)
	assert.Equal(t, "v1.2.3", h.Metadata["version"])

	ts, err := time.Parse(time.RFC3339, h.Metadata["timestamp"])
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)
}

func TestInitWithoutVersion(t *testing.T) {
	var h Header
	h.Init(KindComponentCatalog, APIVersion, "")

	_, ok := h.Metadata["version"]
	assert.False(t, ok)
}

func TestNewWithOptions(t *testing.T) {
	h := New(
		WithKind(KindComponentCatalog),
		WithAPIVersion("v9"),
		WithMetadata("source", "page.html"),
	)
	assert.Equal(t, KindComponentCatalog, h.Kind)
	assert.Equal(t, "v9", h.APIVersion)
	assert.Equal(t, "page.html", h.Metadata["source"])
}

func TestKindIsValid(t *testing.T) {
	for _, k := range []Kind{KindMountReport, KindComponentCatalog} {
		assert.True(t, k.IsValid(), k.String())
	}
	bogus := Kind("Snapshot")
	assert.False(t, bogus.IsValid())
}
