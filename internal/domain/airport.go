package domain

// Airport is one of the airports on the trip route, keyed by IATA code.
type Airport struct {
	Code       string     `json:"code"`
	Name       string     `json:"name"`
	Coordinate Coordinate `json:"coordinate"`
}

// Airports maps the route's IATA codes to coordinates for drawing flight
// paths. Segments reference airports by code; a code missing here means
// the leg cannot be drawn (it still resolves normally).
var Airports = map[string]Airport{
	"SYD": {Code: "SYD", Name: "Sydney", Coordinate: Coordinate{Lat: -33.9461, Lng: 151.1772}},
	"DXB": {Code: "DXB", Name: "Dubai", Coordinate: Coordinate{Lat: 25.2532, Lng: 55.3657}},
	"PRG": {Code: "PRG", Name: "Prague", Coordinate: Coordinate{Lat: 50.1008, Lng: 14.2600}},
}
