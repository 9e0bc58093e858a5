// Copyright 2024 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Line3 represents a 3D line segment defined by a start and an end point.
type Line3 struct {
	Start Vector3
	End   Vector3
}

// NewLine3 creates and returns a new Line3 with the
// specified start and end points.
func NewLine3(start, end Vector3) Line3 {
	return Line3{start, end}
}

// Set sets this line segment start and end points.
func (l *Line3) Set(start, end Vector3) {
	l.Start = start
	l.End = end
}

// Center calculates this line segment center point.
func (l *Line3) Center() Vector3 {
	return l.Start.Add(l.End).MulScalar(0.5)
}

// Delta calculates the vector from the start to end point of this line segment.
func (l *Line3) Delta() Vector3 {
	return l.End.Sub(l.Start)
}

// Length returns the length from the start point to the end point.
func (l *Line3) Length() float32 {
	return l.Start.DistanceTo(l.End)
}

// At returns the point at parameter t along the segment,
// where 0 is the start and 1 is the end.
func (l *Line3) At(t float32) Vector3 {
	return l.Start.Add(l.Delta().MulScalar(t))
}

// note: ClosestPointToPoint is adapted from https://math.stackexchange.com/questions/2193720/find-a-point-on-a-line-segment-which-is-the-closest-to-other-point-not-on-the-li

// ClosestPointToPoint returns the point along the line that is
// closest to the given point.
func (l *Line3) ClosestPointToPoint(point Vector3) Vector3 {
	v := l.Delta()
	ds := v.LengthSquared()
	if ds == 0 {
		return l.Start
	}
	t := v.Dot(point.Sub(l.Start)) / ds
	switch {
	case t <= 0:
		return l.Start
	case t >= 1:
		return l.End
	default:
		return l.Start.Add(v.MulScalar(t))
	}
}
