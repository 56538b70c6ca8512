package utils

// FindIndex returns the position of the first element equal to item, or -1.
func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// GroupBy splits slice by key, keeping the original order inside each group.
func GroupBy[T any, K comparable](slice []T, key func(T) K) map[K][]T {
	groups := make(map[K][]T)
	for _, v := range slice {
		k := key(v)
		groups[k] = append(groups[k], v)
	}
	return groups
}
