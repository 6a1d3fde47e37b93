package shp2ch

// computeDistance returns length of an edge in meters.
// When distance column is used the raw value is multiplied by the factor as is.
// Otherwise the polyline (from vertex, intermediates, to vertex) is measured.
func computeDistance(hasDistanceColumn bool, rawValue float64, distanceFactor float64, polyline []GeoPoint) float64 {
	if hasDistanceColumn {
		return rawValue * distanceFactor
	}
	return sphericalLength(polyline)
}

// edgePolyline returns full geometry of an edge
func edgePolyline(from GeoPoint, intermediates []GeoPoint, to GeoPoint) []GeoPoint {
	polyline := make([]GeoPoint, 0, len(intermediates)+2)
	polyline = append(polyline, from)
	polyline = append(polyline, intermediates...)
	polyline = append(polyline, to)
	return polyline
}
