package starfield

// Options is the caller-facing configuration of one generation call.
// Nil fields take the package defaults; an explicit zero count is kept.
type Options struct {
	NumStars *int     `json:"numStars,omitempty"`
	Radius   *float64 `json:"radius,omitempty"`
}

// Int returns a pointer to v, for filling Options literals.
func Int(v int) *int { return &v }

// Float64 returns a pointer to v, for filling Options literals.
func Float64(v float64) *float64 { return &v }

// Resolve returns the count and radius with defaults applied.
func (o Options) Resolve() (count int, radius float64) {
	count, radius = DefaultNumStars, DefaultRadius
	if o.NumStars != nil {
		count = *o.NumStars
	}
	if o.Radius != nil {
		radius = *o.Radius
	}
	return count, radius
}

// Generate resolves the options and samples a cloud from src.
func (o Options) Generate(src Source) (*PointCloud, error) {
	count, radius := o.Resolve()
	return Generate(count, radius, src)
}
