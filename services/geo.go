// services/geo.go
package services

import "math"

// Degrees of latitude per meter (constant everywhere on the ellipsoid model we use)
const metersToLatDegrees = 0.000008983152841195216

// BoundingBox is an axis-aligned lat/lng rectangle around a center point.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// GetBoundingBox converts a point and radius in meters into a bounding
// rectangle. The longitude delta is widened by 1/cos(lat) to compensate for
// longitude compression away from the equator. Known approximation: no
// wraparound at the ±180° meridian or the poles — fine for the small dedup
// radii this service uses.
func GetBoundingBox(lat, lng, distanceMeters float64) BoundingBox {
	dLat := distanceMeters * metersToLatDegrees
	dLng := dLat / math.Cos(lat*(math.Pi/180))

	return BoundingBox{
		MinLat: lat - dLat,
		MaxLat: lat + dLat,
		MinLng: lng - dLng,
		MaxLng: lng + dLng,
	}
}
