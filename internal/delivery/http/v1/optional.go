package v1

import "encoding/json"

// optional is a tri-state JSON field: it tells apart a key that was
// never sent, a key sent as null and a key sent with a value.
// UnmarshalJSON only runs for keys present in the body, which is
// what records presence.
type optional[T any] struct {
	present bool
	value   *T
}

func (o *optional[T]) UnmarshalJSON(data []byte) error {
	o.present = true
	if string(data) == "null" {
		o.value = nil
		return nil
	}
	return json.Unmarshal(data, &o.value)
}

// Present reports whether the key was sent at all.
func (o optional[T]) Present() bool { return o.present }

// Value returns the sent value, or nil for an explicit null.
func (o optional[T]) Value() *T { return o.value }
