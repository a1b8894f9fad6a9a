// Package counties holds the fixed California county reference data: one
// approximate seat coordinate per county and, for a handful of large
// counties, the constituent city names that show up in provider addresses.
package counties

import (
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// Seat is a county's representative coordinate, usually the county seat or
// the largest city.
type Seat struct {
	Lat float64
	Lng float64
}

// seats maps every California county to its seat coordinate.
var seats = map[string]Seat{
	"Alameda":         {37.8044, -122.2712}, // Oakland
	"Alpine":          {38.5961, -119.8104}, // Markleeville
	"Amador":          {38.3485, -120.7705}, // Jackson
	"Butte":           {39.7285, -121.8375}, // Oroville
	"Calaveras":       {38.2039, -120.6803}, // San Andreas
	"Colusa":          {39.2138, -122.0084}, // Colusa
	"Contra Costa":    {37.9358, -122.3477}, // Martinez
	"Del Norte":       {41.7557, -124.2025}, // Crescent City
	"El Dorado":       {38.6778, -121.1750}, // Placerville
	"Fresno":          {36.7378, -119.7871}, // Fresno
	"Glenn":           {39.5982, -122.3919}, // Willows
	"Humboldt":        {40.8665, -124.0828}, // Eureka
	"Imperial":        {32.8472, -115.5694}, // El Centro
	"Inyo":            {36.5107, -117.0973}, // Independence
	"Kern":            {35.3733, -119.0187}, // Bakersfield
	"Kings":           {36.3275, -119.6457}, // Hanford
	"Lake":            {39.0442, -122.9124}, // Lakeport
	"Lassen":          {40.4163, -120.6530}, // Susanville
	"Los Angeles":     {34.0522, -118.2437}, // Los Angeles
	"Madera":          {37.1553, -119.7663}, // Madera
	"Marin":           {38.0834, -122.7633}, // San Rafael
	"Mariposa":        {37.4849, -119.9663}, // Mariposa
	"Mendocino":       {39.1501, -123.2078}, // Ukiah
	"Merced":          {37.3022, -120.4829}, // Merced
	"Modoc":           {41.4479, -120.4677}, // Alturas
	"Mono":            {37.9396, -119.0023}, // Bridgeport
	"Monterey":        {36.6002, -121.8946}, // Salinas
	"Napa":            {38.2975, -122.2869}, // Napa
	"Nevada":          {39.2618, -121.0182}, // Nevada City
	"Orange":          {33.7879, -117.8531}, // Santa Ana
	"Placer":          {38.9544, -121.0972}, // Auburn
	"Plumas":          {40.0390, -120.8415}, // Quincy
	"Riverside":       {33.9533, -117.3962}, // Riverside
	"Sacramento":      {38.5816, -121.4944}, // Sacramento
	"San Benito":      {36.8527, -121.4014}, // Hollister
	"San Bernardino":  {34.1083, -117.2898}, // San Bernardino
	"San Diego":       {32.7157, -117.1611}, // San Diego
	"San Francisco":   {37.7749, -122.4194}, // San Francisco
	"San Joaquin":     {37.9537, -121.2908}, // Stockton
	"San Luis Obispo": {35.2828, -120.6596}, // San Luis Obispo
	"San Mateo":       {37.5629, -122.3255}, // Redwood City
	"Santa Barbara":   {34.4208, -119.6982}, // Santa Barbara
	"Santa Clara":     {37.3541, -121.9552}, // San Jose
	"Santa Cruz":      {36.9741, -122.0308}, // Santa Cruz
	"Shasta":          {40.5865, -122.3917}, // Redding
	"Sierra":          {39.6240, -120.5170}, // Downieville
	"Siskiyou":        {41.7375, -122.6344}, // Yreka
	"Solano":          {38.2494, -122.0409}, // Fairfield
	"Sonoma":          {38.2919, -122.4580}, // Santa Rosa
	"Stanislaus":      {37.6387, -120.9967}, // Modesto
	"Sutter":          {39.1404, -121.6199}, // Yuba City
	"Tehama":          {40.1785, -122.2358}, // Red Bluff
	"Trinity":         {40.7381, -123.0203}, // Weaverville
	"Tulare":          {36.2077, -119.3471}, // Visalia
	"Tuolumne":        {37.9847, -120.3821}, // Sonora
	"Ventura":         {34.2746, -119.2290}, // Ventura
	"Yolo":            {38.5419, -121.7398}, // Woodland
	"Yuba":            {39.1404, -121.6199}, // Marysville
}

// Names returns all county names in lexicographic order.
func Names() []string {
	names := make([]string, 0, len(seats))
	for name := range seats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SeatOf returns the seat coordinate for a county.
func SeatOf(name string) (Seat, bool) {
	s, ok := seats[name]
	return s, ok
}

// Count returns the number of counties in the table.
func Count() int {
	return len(seats)
}

// Lookup resolves user input to a county name. Input may be a 1-based index
// into the sorted name list or a case-insensitive partial county name. An
// ambiguous partial match lists the candidates in the error.
func Lookup(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", eris.New("counties: empty selection")
	}

	names := Names()

	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(names) {
			return "", eris.Errorf("counties: number out of range 1-%d", len(names))
		}
		return names[n-1], nil
	}

	var matches []string
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), strings.ToLower(input)) {
			matches = append(matches, name)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", eris.Errorf("counties: no county matches %q", input)
	default:
		return "", eris.Errorf("counties: ambiguous selection %q: %s", input, strings.Join(matches, ", "))
	}
}
