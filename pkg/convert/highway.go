package convert

import "math"

// EarthRadiusMiles is the mean earth radius used for edge distances.
const EarthRadiusMiles = 3959.0

// Defaults for way tags that are absent or unreadable.
const (
	DefaultName  = "Unknown"
	DefaultLanes = 2
)

// speedLimits maps the highway classes kept as roads to their default speed
// limit in mph. Ways of any other class are ignored.
var speedLimits = map[string]int{
	"motorway":      65,
	"motorway_link": 50,
	"trunk":         65,
	"trunk_link":    50,
	"primary":       65,
	"primary_link":  50,
	"secondary":     50,
	"tertiary":      40,
	"unclassified":  25,
	"residential":   25,
}

// DefaultSpeedLimit returns the speed limit for a highway class and whether
// the class is a road the converter keeps.
func DefaultSpeedLimit(highway string) (int, bool) {
	v, ok := speedLimits[highway]
	return v, ok
}

// Haversine returns the great-circle distance in miles between two points
// given in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(d float64) float64 { return d * math.Pi / 180 }
	phi1, phi2 := toRad(lat1), toRad(lat2)
	dphi := phi2 - phi1
	dlambda := toRad(lon2 - lon1)

	a := math.Pow(math.Sin(dphi/2), 2) + math.Cos(phi1)*math.Cos(phi2)*math.Pow(math.Sin(dlambda/2), 2)
	return EarthRadiusMiles * 2 * math.Asin(math.Sqrt(a))
}
