package wfa

func grow[T any](s []T, size int) []T {
	if len(s) >= size {
		return s
	}
	var empty T
	add := size - len(s)
	for i := 0; i < add; i++ {
		s = append(s, empty)
	}
	return s
}

// fill Returns a slice of n copies of v.
func fill[T any](n int, v T) []T {
	s := make([]T, n)
	for i := range s {
		s[i] = v
	}
	return s
}
