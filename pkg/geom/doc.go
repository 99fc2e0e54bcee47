// Package geom holds the small amount of planar geometry the resonator
// contours need: points, affine side-frame transforms and polygon measures.
//
// Coordinates follow the layout convention (y grows upwards), so a positive
// [SignedArea] means the polygon is wound counter-clockwise.
package geom
