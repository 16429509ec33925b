package util

// IntersectIndices returns the elements of b that also appear in a, in b's order.
// Duplicates in b are kept.
func IntersectIndices(a, b []int) []int {
	result := []int{}
	if len(a) == 0 || len(b) == 0 {
		return result
	}

	inA := make(map[int]struct{}, len(a))
	for _, v := range a {
		inA[v] = struct{}{}
	}

	for _, v := range b {
		if _, ok := inA[v]; ok {
			result = append(result, v)
		}
	}
	return result
}

// AllIndices returns 0..n-1.
func AllIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
