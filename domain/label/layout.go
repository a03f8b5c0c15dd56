package label

// Layout asset names reported by ConfigurationError
const (
	AssetRatingY = "rating_y"
	AssetIconX   = "icon_x"
)

// Layout holds the fixed positions used by the label template: the vertical
// offset of the rating pointer for every grade and the horizontal offsets for
// every supported icon count. A Layout is never mutated after construction
// and may be shared between goroutines.
type Layout struct {
	ratingY map[string]int
	iconX   map[int][]int
}

var defaultLayout = Layout{
	ratingY: map[string]int{"A": 38, "B": 60, "C": 83, "D": 106, "E": 128},
	iconX: map[int][]int{
		1: {73},
		2: {48, 124},
		3: {11, 87, 144},
	},
}

// DefaultLayout returns the layout of the EU tyre label template
func DefaultLayout() Layout {
	return defaultLayout
}

// RatingY returns the pointer offset for grade
func (l Layout) RatingY(grade string) (int, bool) {
	y, ok := l.ratingY[grade]
	return y, ok
}

// IconX returns a copy of the icon offsets for count icons
func (l Layout) IconX(count int) ([]int, bool) {
	xs, ok := l.iconX[count]
	if !ok {
		return nil, false
	}
	out := make([]int, len(xs))
	copy(out, xs)
	return out, true
}
