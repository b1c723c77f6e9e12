package utils

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

func Contains[T comparable](slice []T, item T) bool {
	return FindIndex(slice, item) >= 0
}

// Intersect keeps the items of slice that are also in other, in slice's order.
func Intersect[T comparable](slice, other []T) []T {
	kept := make([]T, 0, len(slice))
	for _, v := range slice {
		if Contains(other, v) {
			kept = append(kept, v)
		}
	}
	return kept
}
