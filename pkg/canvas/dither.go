package canvas

// bayer4 is the 4×4 ordered-dither threshold matrix.
//
//nolint:gochecknoglobals // lookup table
var bayer4 = [4][4]float64{
	{0, 8, 2, 10},
	{12, 4, 14, 6},
	{3, 11, 1, 9},
	{15, 7, 13, 5},
}

// Dithered reports whether the pixel at (x, y) is drawn at dither level.
// Level 1 draws every pixel, level 0 none, and 0.5 every other one.
func Dithered(x, y int, level float64) bool {
	if level >= 1 {
		return true
	}
	if level <= 0 {
		return false
	}
	return (bayer4[y&3][x&3]+0.5)/16 < level
}
