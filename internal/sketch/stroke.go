// Package sketch implements the freehand stroke layer drawn over the cube.
package sketch

import (
	"math"

	"cubesketch/internal/math3d"
)

const (
	DefaultColor = "lightblue"
	DefaultWidth = 2.0

	// DefaultStraightTolerance is the IsStraightLine tolerance in centred
	// pixel units.
	DefaultStraightTolerance = 0.06
)

// Stroke is one continuous pointer gesture. Points are relative to the
// canvas centre.
type Stroke struct {
	Points []math3d.Vec2
	Color  string
	Width  float64
}

// Empty reports whether the stroke has no points.
func (s *Stroke) Empty() bool { return s == nil || len(s.Points) == 0 }

// PostProcessor rewrites a finished stroke. Returning nil or an empty stroke
// discards it.
type PostProcessor func(*Stroke) *Stroke

// IsStraightLine reports whether every interior point lies within tolerance
// of the line through the first and last points. Strokes with fewer than
// three points are trivially straight. When the endpoints coincide the
// distance to the endpoint is used.
func IsStraightLine(points []math3d.Vec2, tolerance float64) bool {
	if len(points) < 3 {
		return true
	}
	p1, p2 := points[0], points[len(points)-1]
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	length := math.Sqrt(dx*dx + dy*dy)

	for _, p0 := range points[1 : len(points)-1] {
		var distance float64
		if length == 0 {
			distance = p0.Sub(p1).Length()
		} else {
			distance = math.Abs(dy*p0.X-dx*p0.Y+p2.X*p1.Y-p2.Y*p1.X) / length
		}
		if distance > tolerance {
			return false
		}
	}
	return true
}

// Straighten returns a post-processor that snaps strokes passing
// IsStraightLine(tolerance) down to their two endpoints. Other strokes are
// kept unchanged.
func Straighten(tolerance float64) PostProcessor {
	return func(s *Stroke) *Stroke {
		if len(s.Points) < 3 || !IsStraightLine(s.Points, tolerance) {
			return s
		}
		s.Points = []math3d.Vec2{s.Points[0], s.Points[len(s.Points)-1]}
		return s
	}
}

// DropDots returns a post-processor that discards strokes with fewer than
// minPoints points, such as a click without movement.
func DropDots(minPoints int) PostProcessor {
	return func(s *Stroke) *Stroke {
		if len(s.Points) < minPoints {
			return nil
		}
		return s
	}
}

// Chain runs post-processors in order, stopping once one discards the stroke.
func Chain(pps ...PostProcessor) PostProcessor {
	return func(s *Stroke) *Stroke {
		for _, pp := range pps {
			if s = pp(s); s.Empty() {
				return nil
			}
		}
		return s
	}
}
