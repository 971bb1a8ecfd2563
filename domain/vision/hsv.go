package vision

// HSV is a colour in OpenCV's 8-bit HSV space: H in [0,179], S and V in
// [0,255].
type HSV struct {
	H, S, V uint8
}

// ToHSV converts an 8-bit RGB triple with OpenCV's rounding rules, so bands
// tuned against OpenCV frames select the same pixels here.
func ToHSV(r, g, b uint8) HSV {
	ri, gi, bi := int(r), int(g), int(b)
	v := max(ri, gi, bi)
	diff := v - min(ri, gi, bi)
	if v == 0 || diff == 0 {
		return HSV{V: uint8(v)}
	}
	s := roundDiv(255*diff, v)

	var units int
	switch v {
	case ri:
		units = gi - bi
	case gi:
		units = bi - ri + 2*diff
	default:
		units = ri - gi + 4*diff
	}
	h := roundDiv(30*units, diff)
	if h < 0 {
		h += 180
	}
	if h >= 180 {
		h -= 180
	}
	return HSV{H: uint8(h), S: uint8(s), V: uint8(v)}
}

// roundDiv returns num/den rounded half up. den must be positive.
func roundDiv(num, den int) int {
	q := num / den
	r := num % den
	if r < 0 {
		q--
		r += den
	}
	if 2*r >= den {
		q++
	}
	return q
}
