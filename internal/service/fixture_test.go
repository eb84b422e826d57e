package service

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// newCollection builds a collection with n line features per layer_type
func newCollection(layers map[string]int) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	i := 0
	for _, lt := range []string{"school", "buffer", "closed_road", "road", "highway", "open_road", "parking"} {
		for n := 0; n < layers[lt]; n++ {
			x := 31.0 + float64(i)*0.001
			f := geojson.NewFeature(orb.LineString{{x, 36.85}, {x, 36.86}})
			f.Properties["layer_type"] = lt
			fc.Append(f)
			i++
		}
	}
	return fc
}

// schoolZoneCollection is 3 schools, 3 closed roads, 5 roads and 1 parking lot
func schoolZoneCollection() *geojson.FeatureCollection {
	return newCollection(map[string]int{
		"school":      3,
		"closed_road": 3,
		"road":        2,
		"highway":     1,
		"open_road":   2,
		"parking":     1,
	})
}
