// Package route resolves free-text port names to stored route polylines and
// measures their length.
package route

import (
	"encoding/json"
	"fmt"
	"math"
)

// Point is a (longitude, latitude) pair in degrees.
// It is encoded as a two-element JSON array, [lng, lat].
type Point struct {
	Lng float64
	Lat float64
}

// Valid reports whether the point lies within the WGS84 coordinate ranges.
func (p Point) Valid() bool {
	if math.IsNaN(p.Lng) || math.IsNaN(p.Lat) || math.IsInf(p.Lng, 0) || math.IsInf(p.Lat, 0) {
		return false
	}
	return p.Lng >= -180 && p.Lng <= 180 && p.Lat >= -90 && p.Lat <= 90
}

// MarshalJSON encodes the point as [lng, lat].
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.Lng, p.Lat})
}

// UnmarshalJSON decodes a [lng, lat] array.
func (p *Point) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("point must be a [lng, lat] array: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("point must have exactly 2 coordinates, got %d", len(pair))
	}
	p.Lng, p.Lat = pair[0], pair[1]
	return nil
}

// Reverse returns a copy of points in reverse order.
func Reverse(points []Point) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[len(points)-1-i] = p
	}
	return out
}

// Key identifies a directed route between two canonical places.
type Key struct {
	Origin      Place `json:"origin"`
	Destination Place `json:"destination"`
}

// String returns the storage name of the route, e.g. "shanghai_ningbo".
func (k Key) String() string {
	return string(k.Origin) + "_" + string(k.Destination)
}

// Reversed returns the key for the opposite direction.
func (k Key) Reversed() Key {
	return Key{Origin: k.Destination, Destination: k.Origin}
}

// Registered reports whether the pair has a stored route.
func (k Key) Registered() bool {
	_, ok := registry[k]
	return ok
}

// cityPairs lists the supported connections. Each is registered in both directions.
var cityPairs = []Key{
	{Shanghai, Ningbo},
	{Shanghai, Qingdao},
	{Qingdao, Tianjin},
	{Tianjin, Dalian},
	{Shenzhen, Xiamen},
}

var (
	registry     = make(map[Key]struct{})
	registryKeys []Key
)

func init() {
	for _, k := range cityPairs {
		for _, key := range []Key{k, k.Reversed()} {
			registry[key] = struct{}{}
			registryKeys = append(registryKeys, key)
		}
	}
}

// RegisteredKeys returns every supported route key.
func RegisteredKeys() []Key {
	return append([]Key(nil), registryKeys...)
}
