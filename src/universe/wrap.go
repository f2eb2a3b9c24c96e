package universe

//wrapSub returns (v - 1) mod max, 0 wraps to max-1
func wrapSub(v int, max int) int {
	if v == 0 {
		return max - 1
	}
	return v - 1
}

//wrapAdd returns (v + 1) mod max, max-1 wraps to 0
func wrapAdd(v int, max int) int {
	return (v + 1) % max
}

//wrapOffset moves v by d (-1, 0 or 1) along an axis of length max
func wrapOffset(v int, max int, d int) int {
	switch d {
	case -1:
		return wrapSub(v, max)
	case 1:
		return wrapAdd(v, max)
	}
	return v
}
