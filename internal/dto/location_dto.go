package dto

type MapImagesResponse struct {
	Address       string `json:"address"`
	SatelliteURL  string `json:"satelliteUrl"`
	StreetViewURL string `json:"streetViewUrl"`
}
