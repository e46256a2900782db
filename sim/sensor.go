package sim

import "fmt"

// Sensor is a placed sensing disk. X, Y and Radius are in raster cell units.
// Sensors are values: once placed they are never mutated.
type Sensor struct {
	X      float64
	Y      float64
	Radius float64
}

// NewSensor creates a Sensor centered at (x, y) with the given sensing radius.
func NewSensor(x, y, radius float64) Sensor {
	return Sensor{X: x, Y: y, Radius: radius}
}

// Covers reports whether the point (px, py) lies inside the closed sensing disk.
func (s Sensor) Covers(px, py float64) bool {
	dx := px - s.X
	dy := py - s.Y
	return dx*dx+dy*dy <= s.Radius*s.Radius
}

func (s Sensor) String() string {
	return fmt.Sprintf("sensor(%.2f, %.2f, r=%.2f)", s.X, s.Y, s.Radius)
}
