// Package generate implements component H: the planar linear
// interpolation along a matched segment and the perpendicular offset
// that separates odd (right) from even (left) house numbers, plus the
// segment-centroid operation (interpolation at p=0.5).
package generate
