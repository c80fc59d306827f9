package listpos

import "fmt"

// valuesManager backs List[T]: runs are plain value slices.
type valuesManager[T any] struct{}

func (valuesManager[T]) New() []T { return []T{} }

func (valuesManager[T]) Deserialize(raw any) ([]T, error) {
	if v, ok := raw.([]T); ok {
		return v, nil
	}
	arr, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected array, got %T", ErrMalformed, raw)
	}
	out := make([]T, len(arr))
	for i, x := range arr {
		v, ok := x.(T)
		if !ok {
			return nil, fmt.Errorf("%w: element %d has the wrong type", ErrMalformed, i)
		}
		out[i] = v
	}
	return out, nil
}

func (valuesManager[T]) Length(item []T) int { return len(item) }

func (valuesManager[T]) Slice(item []T, start, end int) []T {
	out := make([]T, end-start)
	copy(out, item[start:end])
	return out
}

func (valuesManager[T]) Append(dst, src []T) []T {
	out := make([]T, 0, len(dst)+len(src))
	out = append(out, dst...)
	return append(out, src...)
}

func (valuesManager[T]) Get(item []T, offset int) T { return item[offset] }

func (valuesManager[T]) Replace(item []T, offset int, value T) []T {
	out := append([]T(nil), item...)
	out[offset] = value
	return out
}

// stringManager backs Text: runs are strings, indexed by rune.
type stringManager struct{}

func (stringManager) New() string { return "" }

func (stringManager) Deserialize(raw any) (string, error) {
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: expected string, got %T", ErrMalformed, raw)
	}
	return s, nil
}

func (stringManager) Length(item string) int { return len([]rune(item)) }

func (stringManager) Slice(item string, start, end int) string {
	return string([]rune(item)[start:end])
}

func (stringManager) Append(dst, src string) string { return dst + src }

func (stringManager) Get(item string, offset int) rune { return []rune(item)[offset] }

func (stringManager) Replace(item string, offset int, value rune) string {
	r := []rune(item)
	r[offset] = value
	return string(r)
}

// countManager backs Outline: runs are bare present-counts, with no value
// payload (V is struct{}), for outline/tree structures that only need
// presence, not content.
type countManager struct{}

func (countManager) New() int { return 0 }

func (countManager) Deserialize(raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("%w: expected number, got %T", ErrMalformed, raw)
	}
}

func (countManager) Length(item int) int { return item }

func (countManager) Slice(item int, start, end int) int { return end - start }

func (countManager) Append(dst, src int) int { return dst + src }

func (countManager) Get(int, int) struct{} { return struct{}{} }

func (countManager) Replace(item int, _ int, _ struct{}) int { return item }
