package types

// NearbyQuery selects places either around a coordinate or inside a postcode.
type NearbyQuery struct {
	Latitude  *float64
	Longitude *float64
	Postcode  string
	Radius    string
}

// NearbyPlace mirrors one entry of the place-search provider's result list.
type NearbyPlace struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Lat         float64  `json:"lat"`
	Lon         float64  `json:"lon"`
	Icon        string   `json:"icon"`
	Tag         []string `json:"tag"`
	Type        string   `json:"type"`
	URL         string   `json:"url"`
	Address     string   `json:"address"`
	Tel         string   `json:"tel"`
	Contributor string   `json:"contributor"`
	Verified    bool     `json:"verified"`
	Obsoleted   bool     `json:"obsoleted"`
}

type NearbyResponse struct {
	Data []NearbyPlace `json:"data"`
}
