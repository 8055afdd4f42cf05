package drag

const (
	// DefaultRotationSpeed is the discrete rotation speed in degrees per second.
	DefaultRotationSpeed = 100.0

	// DefaultFineFactor scales pointer motion while fine adjust is held.
	// Discrete rotation is divided by 10 instead.
	DefaultFineFactor = 0.1
)

// Option configures a Controller.
type Option func(*Controller)

// WithRotationSpeed sets the discrete rotation speed in degrees per second.
func WithRotationSpeed(degPerSec float64) Option {
	return func(c *Controller) {
		if degPerSec > 0 {
			c.rotationSpeed = degPerSec
		}
	}
}

// WithFineFactor sets the pointer speed factor applied under fine adjust.
func WithFineFactor(f float64) Option {
	return func(c *Controller) {
		if f > 0 {
			c.fineFactor = f
		}
	}
}
