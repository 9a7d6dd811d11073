package utils

// ListToMap indexes list by key, taking the value with value. When two
// entries share a key the later one wins.
func ListToMap[T any, K comparable, V any](list []T, key func(T) K, value func(T) V) map[K]V {
	out := make(map[K]V, len(list))
	for _, item := range list {
		out[key(item)] = value(item)
	}
	return out
}
