// Package planner produces the query points submitted to the locator
// endpoint. The endpoint caps each response at roughly 50 markers, so a
// single query per region undercounts; coverage comes from querying several
// nearby points and deduplicating afterwards.
package planner

// QueryPoint is one radius-bounded request to the locator endpoint. Points
// are generated, consumed once, and discarded.
type QueryPoint struct {
	Lat    float64
	Lng    float64
	Radius int // miles
}

// GridDelta is the angular offset between the grid center and its ring of
// surrounding points, in degrees (roughly 3.5 miles of latitude).
const GridDelta = 0.05

// gridOffsets are the cardinal and diagonal neighbors of the grid center.
var gridOffsets = [8][2]float64{
	{GridDelta, 0},           // north
	{-GridDelta, 0},          // south
	{0, GridDelta},           // east
	{0, -GridDelta},          // west
	{GridDelta, GridDelta},   // northeast
	{GridDelta, -GridDelta},  // northwest
	{-GridDelta, GridDelta},  // southeast
	{-GridDelta, -GridDelta}, // southwest
}

// CountyGrid returns the fixed nine-point grid for a county: the seat
// coordinate plus eight offset points. The grid is static; it does not adapt
// to result density and makes no coverage guarantee for large or irregular
// counties.
func CountyGrid(lat, lng float64, radius int) []QueryPoint {
	points := make([]QueryPoint, 0, 1+len(gridOffsets))
	points = append(points, QueryPoint{Lat: lat, Lng: lng, Radius: radius})
	for _, off := range gridOffsets {
		points = append(points, QueryPoint{Lat: lat + off[0], Lng: lng + off[1], Radius: radius})
	}
	return points
}

// stateCenter is the approximate geographic center of California, used for
// the low-resolution full-state pass.
var stateCenter = [2]float64{36.7783, -119.4179}

// StateWideRadius is the radius of the full-state pass in miles.
const StateWideRadius = 1000

// statewideLocations are representative city coordinates spread across the
// state, chosen so their query circles overlap the populated regions.
var statewideLocations = [][2]float64{
	{37.4419, -121.5419}, // San Jose (center)
	{34.0522, -118.2437}, // Los Angeles
	{32.7157, -117.1611}, // San Diego
	{38.5816, -121.4944}, // Sacramento
	{37.7749, -122.4194}, // San Francisco
	{36.1699, -115.1398}, // Las Vegas area (border)
	{35.3733, -119.0187}, // Bakersfield
	{38.5407, -121.7584}, // Davis
	{36.9750, -122.0306}, // Santa Cruz
	{33.9533, -117.3962}, // Riverside
	{34.0689, -118.4452}, // Beverly Hills
	{37.3382, -121.8863}, // Santa Clara
	{40.5865, -122.3917}, // Redding
	{35.2828, -120.6596}, // San Luis Obispo
	{36.7372, -119.7871}, // Fresno
	{33.6846, -117.8265}, // Orange County
}

// Statewide returns one query point per representative city at the given
// radius, followed by a single wide pass from the state center.
func Statewide(radius int) []QueryPoint {
	points := make([]QueryPoint, 0, len(statewideLocations)+1)
	for _, loc := range statewideLocations {
		points = append(points, QueryPoint{Lat: loc[0], Lng: loc[1], Radius: radius})
	}
	points = append(points, QueryPoint{Lat: stateCenter[0], Lng: stateCenter[1], Radius: StateWideRadius})
	return points
}
