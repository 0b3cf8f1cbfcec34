// Package maps builds Google Static Maps and Street View Static image URLs for an address.
// Nothing here touches the network.
package maps

import (
	"net/url"
	"strconv"
)

const (
	StaticMapBaseURL  = "https://maps.googleapis.com/maps/api/staticmap"
	StreetViewBaseURL = "https://maps.googleapis.com/maps/api/streetview"

	DefaultSize = "640x640"
	DefaultZoom = 20
)

type URLBuilder struct {
	Key  string
	Size string
	Zoom int
}

func NewURLBuilder(key string) *URLBuilder {
	return &URLBuilder{Key: key, Size: DefaultSize, Zoom: DefaultZoom}
}

func (b *URLBuilder) size() string {
	if b.Size == "" {
		return DefaultSize
	}
	return b.Size
}

// SatelliteURL is a top-down satellite tile centered on the address.
func (b *URLBuilder) SatelliteURL(address string) string {
	zoom := b.Zoom
	if zoom <= 0 {
		zoom = DefaultZoom
	}
	q := url.Values{}
	q.Set("center", address)
	q.Set("zoom", strconv.Itoa(zoom))
	q.Set("size", b.size())
	q.Set("maptype", "satellite")
	q.Set("key", b.Key)
	return StaticMapBaseURL + "?" + q.Encode()
}

// StreetViewURL is the front-of-house street level view.
func (b *URLBuilder) StreetViewURL(address string) string {
	q := url.Values{}
	q.Set("location", address)
	q.Set("size", b.size())
	q.Set("fov", "90")
	q.Set("pitch", "0")
	q.Set("key", b.Key)
	return StreetViewBaseURL + "?" + q.Encode()
}
