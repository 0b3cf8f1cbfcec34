package service

import (
	"strings"

	"xeriscape-be/internal/dto"
	"xeriscape-be/internal/pkg/serverutils"
	"xeriscape-be/pkg/maps"
)

type ILocationService interface {
	MapImages(address string) (*dto.MapImagesResponse, error)
	Configured() bool
}

type locationService struct {
	builder *maps.URLBuilder // nil when no maps key is configured
}

func NewLocationService(mapsKey string) ILocationService {
	s := &locationService{}
	if mapsKey != "" {
		s.builder = maps.NewURLBuilder(mapsKey)
	}
	return s
}

func (s *locationService) Configured() bool {
	return s.builder != nil
}

// MapImages returns satellite and street-view image URLs; the browser loads them directly.
func (s *locationService) MapImages(address string) (*dto.MapImagesResponse, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, serverutils.BadRequest("Missing address")
	}
	if s.builder == nil {
		return nil, serverutils.Internal("Maps API key missing", nil)
	}
	return &dto.MapImagesResponse{
		Address:       address,
		SatelliteURL:  s.builder.SatelliteURL(address),
		StreetViewURL: s.builder.StreetViewURL(address),
	}, nil
}
