// Package refdata holds the immutable reference tables the generator and
// injector draw from: cities, merchant categories, name pools, and the
// high-risk lists. Nothing in this package is mutated at runtime.
package refdata

import "genie/synthdata-api/internal/domain"

// City is one entry of the reference city list.
type City struct {
	Name      string
	State     string
	ZipPrefix string
	Lat       float64
	Lon       float64
	Region    string
}

// Internal region tags carried by each city.
const (
	regionNortheast = "northeast"
	regionWestCoast = "west_coast"
	regionMidwest   = "midwest"
	regionSouth     = "south"
)

// Cities is the full list of supported US major cities.
var Cities = []City{
	{"New York", "NY", "100", 40.7128, -74.0060, regionNortheast},
	{"Los Angeles", "CA", "900", 34.0522, -118.2437, regionWestCoast},
	{"Chicago", "IL", "606", 41.8781, -87.6298, regionMidwest},
	{"Houston", "TX", "770", 29.7604, -95.3698, regionSouth},
	{"Phoenix", "AZ", "850", 33.4484, -112.0740, regionWestCoast},
	{"Philadelphia", "PA", "191", 39.9526, -75.1652, regionNortheast},
	{"San Antonio", "TX", "782", 29.4241, -98.4936, regionSouth},
	{"San Diego", "CA", "921", 32.7157, -117.1611, regionWestCoast},
	{"Dallas", "TX", "752", 32.7767, -96.7970, regionSouth},
	{"San Jose", "CA", "951", 37.3382, -121.8863, regionWestCoast},
	{"Austin", "TX", "787", 30.2672, -97.7431, regionSouth},
	{"Seattle", "WA", "981", 47.6062, -122.3321, regionWestCoast},
	{"Denver", "CO", "802", 39.7392, -104.9903, regionMidwest},
	{"Boston", "MA", "021", 42.3601, -71.0589, regionNortheast},
	{"Miami", "FL", "331", 25.7617, -80.1918, regionSouth},
	{"Atlanta", "GA", "303", 33.7490, -84.3880, regionSouth},
	{"Portland", "OR", "972", 45.5155, -122.6789, regionWestCoast},
	{"Las Vegas", "NV", "891", 36.1699, -115.1398, regionWestCoast},
	{"Minneapolis", "MN", "554", 44.9778, -93.2650, regionMidwest},
	{"Detroit", "MI", "482", 42.3314, -83.0458, regionMidwest},
	{"Washington", "DC", "200", 38.9072, -77.0369, regionNortheast},
	{"San Francisco", "CA", "941", 37.7749, -122.4194, regionWestCoast},
}

// regionFilters maps the public region names to the internal tags.
// RegionMajorCities maps to the empty string, meaning "no filter".
var regionFilters = map[string]string{
	domain.RegionMajorCities: "",
	domain.RegionNortheast:   regionNortheast,
	domain.RegionWestCoast:   regionWestCoast,
	domain.RegionMidwest:     regionMidwest,
	domain.RegionSouth:       regionSouth,
}

// CitiesForRegion returns the cities belonging to the named region. An
// unrecognized region falls back to the full city set rather than erroring.
func CitiesForRegion(region string) []City {
	tag, known := regionFilters[region]
	if !known || tag == "" {
		return Cities
	}
	var out []City
	for _, c := range Cities {
		if c.Region == tag {
			out = append(out, c)
		}
	}
	return out
}

// DistantCityPair is a fixed pair of far-apart locations used by the
// geographic anomaly archetype to fabricate impossible travel.
type DistantCityPair struct {
	Customer domain.Location
	Merchant domain.Location
}

// DistantCityPairs lists the city pairs the injector picks from.
var DistantCityPairs = []DistantCityPair{
	{
		Customer: domain.Location{City: "New York", State: "NY", Zip: "10001"},
		Merchant: domain.Location{City: "Los Angeles", State: "CA", Zip: "90001"},
	},
	{
		Customer: domain.Location{City: "Miami", State: "FL", Zip: "33101"},
		Merchant: domain.Location{City: "Seattle", State: "WA", Zip: "98101"},
	},
	{
		Customer: domain.Location{City: "Chicago", State: "IL", Zip: "60601"},
		Merchant: domain.Location{City: "San Francisco", State: "CA", Zip: "94101"},
	},
	{
		Customer: domain.Location{City: "Boston", State: "MA", Zip: "02101"},
		Merchant: domain.Location{City: "Phoenix", State: "AZ", Zip: "85001"},
	},
	{
		Customer: domain.Location{City: "Dallas", State: "TX", Zip: "75201"},
		Merchant: domain.Location{City: "Detroit", State: "MI", Zip: "48201"},
	},
}
