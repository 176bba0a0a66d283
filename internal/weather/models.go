package weather

// Coordinate is the fixed point we request weather for. Both values are kept as
// the decimal strings they are configured with so they reach the request URL
// exactly as written.
type Coordinate struct {
	Lat string `json:"lat" validate:"required,latitude"`
	Lon string `json:"lon" validate:"required,longitude"`
}

// DefaultCoordinate is New York City.
var DefaultCoordinate = Coordinate{Lat: "40.7143", Lon: "-74.006"}

// Payload is the weather API response body, passed through without inspection.
// Only a top-level JSON object decodes into it; arrays and scalars are decode errors.
type Payload map[string]any
