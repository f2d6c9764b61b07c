// Package gesture accumulates swipe sessions and classifies them into compass directions.
package gesture

import "math"

// Direction is one of the eight compass buckets a completed swipe resolves to.
type Direction string

const (
	North     Direction = "N"
	NorthEast Direction = "NE"
	East      Direction = "E"
	SouthEast Direction = "SE"
	South     Direction = "S"
	SouthWest Direction = "SW"
	West      Direction = "W"
	NorthWest Direction = "NW"
)

// Vector is a net displacement accumulated over a gesture session.
type Vector struct {
	DX float64
	DY float64
}

// Add returns the component-wise sum of v and o.
func (v Vector) Add(o Vector) Vector {
	return Vector{DX: v.DX + o.DX, DY: v.DY + o.DY}
}

// IsZero reports whether the vector carries no motion at all.
func (v Vector) IsZero() bool {
	return v.DX == 0 && v.DY == 0
}

type bucket struct {
	lower     float64
	upper     float64
	direction Direction
}

// Lower bounds are inclusive, upper bounds exclusive. East owns whatever is left
// on both sides of the 0/360 seam.
var buckets = []bucket{
	{lower: 22.5, upper: 67.5, direction: NorthEast},
	{lower: 67.5, upper: 112.5, direction: North},
	{lower: 112.5, upper: 157.5, direction: NorthWest},
	{lower: 157.5, upper: 202.5, direction: West},
	{lower: 202.5, upper: 247.5, direction: SouthWest},
	{lower: 247.5, upper: 292.5, direction: South},
	{lower: 292.5, upper: 337.5, direction: SouthEast},
}

// Classify maps an accumulated vector to a direction. The zero vector is North.
//
// The vertical axis follows the raw device deltas: positive DY lands in the
// northern half of the circle.
func Classify(v Vector) Direction {
	if v.IsZero() {
		return North
	}
	return classifyAngle(angleDegrees(v))
}

// angleDegrees returns atan2(dy, dx) in degrees normalized into [0, 360).
func angleDegrees(v Vector) float64 {
	deg := math.Atan2(v.DY, v.DX) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg -= 360
	}
	return deg
}

func classifyAngle(deg float64) Direction {
	for _, b := range buckets {
		if deg >= b.lower && deg < b.upper {
			return b.direction
		}
	}
	return East
}
