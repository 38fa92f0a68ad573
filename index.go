package goinspect

// IndexFields assigns every field a distinct non-negative position. A field
// whose key is a non-negative integer keeps that integer; the others take the
// lowest integers no field claims, in field order.
func IndexFields(fields []Field) []int {
	out := make([]int, len(fields))
	taken := make(map[int]bool, len(fields))
	natural := make([]bool, len(fields))
	for i, f := range fields {
		if n, ok := f.Key.Index(); ok && n >= 0 && !taken[n] {
			out[i] = n
			taken[n] = true
			natural[i] = true
		}
	}
	next := 0
	for i := range fields {
		if natural[i] {
			continue
		}
		for taken[next] {
			next++
		}
		out[i] = next
		taken[next] = true
	}
	return out
}

// positionOf returns the slot in fields whose assigned position is pos.
func positionOf(index []int, pos int) (int, bool) {
	for i, p := range index {
		if p == pos {
			return i, true
		}
	}
	return 0, false
}
