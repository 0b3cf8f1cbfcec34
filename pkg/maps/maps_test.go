package maps

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreetViewURL(t *testing.T) {
	b := NewURLBuilder("K")
	got := b.StreetViewURL("123 Main St, Fort Collins, CO")

	assert.Contains(t, got, StreetViewBaseURL+"?")
	assert.Contains(t, got, "123+Main+St%2C+Fort+Collins%2C+CO")
	assert.Contains(t, got, "key=K")
}

func TestSatelliteURL(t *testing.T) {
	b := NewURLBuilder("K")
	got := b.SatelliteURL("123 Main St, Fort Collins, CO")

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "123 Main St, Fort Collins, CO", u.Query().Get("center"))
	assert.Equal(t, "satellite", u.Query().Get("maptype"))
	assert.Equal(t, "20", u.Query().Get("zoom"))
	assert.Equal(t, "K", u.Query().Get("key"))
}

func TestZeroValueBuilderUsesDefaults(t *testing.T) {
	b := &URLBuilder{Key: "K"}
	u, err := url.Parse(b.SatelliteURL("x"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSize, u.Query().Get("size"))
}
