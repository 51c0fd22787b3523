package result

import "reflect"

// Response is the envelope a Deserializer produces.
type Response struct {
	// Payload is the deserialized value: a []any of decoded rows, an int64
	// row count or a bool, depending on the deserializer.
	Payload any

	// Failures holds one *DecodeError per row that could not be decoded
	// under CollectFailures.
	Failures []error

	// Dropped counts rows discarded under DropFailures.
	Dropped int
}

// Cast narrows the payload to T.
func Cast[T any](resp *Response) (T, bool) {
	var zero T
	if resp == nil {
		return zero, false
	}
	v, ok := resp.Payload.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// CastList narrows a slice payload to []T. The whole response is rejected
// only when the payload is not a slice; elements that are not T are
// skipped. The returned slice is never nil when ok is true.
func CastList[T any](resp *Response) ([]T, bool) {
	if resp == nil || resp.Payload == nil {
		return nil, false
	}
	if typed, ok := resp.Payload.([]T); ok {
		out := make([]T, len(typed))
		copy(out, typed)
		return out, true
	}

	rv := reflect.ValueOf(resp.Payload)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	out := make([]T, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i)
		if !elem.CanInterface() {
			continue
		}
		if v, ok := elem.Interface().(T); ok {
			out = append(out, v)
		}
	}
	return out, true
}

// CastListOrDefault is CastList returning def when the payload is not a slice.
func CastListOrDefault[T any](resp *Response, def []T) []T {
	if out, ok := CastList[T](resp); ok {
		return out
	}
	return def
}
