package blueprint

import "math"

const (
	// SqFtPerOccupant is the floor area one occupant needs.
	SqFtPerOccupant = 50
	SqFtPerAcre     = 43560
)

// Blueprint describes a structure's footprint. x/z are horizontal, height is vertical.
type Blueprint struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
	Depth  float64 `json:"depth" yaml:"depth"`
	Floors int     `json:"floors" yaml:"floors"`
}

func New(width, height, depth float64, floors int) Blueprint {
	return Blueprint{Width: width, Height: height, Depth: depth, Floors: floors}
}

func (b Blueprint) Valid() bool {
	return b.Width > 0 && b.Height > 0 && b.Depth > 0 && b.Floors > 0
}

func (b Blueprint) AreaPerFloor() float64 {
	return b.Width * b.Depth
}

func (b Blueprint) TotalArea() float64 {
	return b.AreaPerFloor() * float64(b.Floors)
}

func (b Blueprint) MaxOccupantsTotal() int {
	return int(math.Floor(b.TotalArea() / SqFtPerOccupant))
}

// Acres is the land covered by the footprint.
func (b Blueprint) Acres() float64 {
	return b.AreaPerFloor() / SqFtPerAcre
}

// Upgrade doubles the horizontal dimensions.
func (b *Blueprint) Upgrade() {
	b.Width *= 2
	b.Depth *= 2
}
