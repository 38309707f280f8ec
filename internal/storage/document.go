package storage

import "encoding/json"

// LoadDocument reads a named JSON document and unmarshals it into T.
// A missing key or malformed content yields the caller-supplied
// default instead of an error: corrupted local state resets that one
// document rather than taking the application down.
func LoadDocument[T any](d *DB, key string, def T) T {
	data, err := d.GetBytes(key)
	if err != nil {
		return def
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return def
	}
	return v
}

// SaveDocument marshals v and writes it under the named key in a
// single update, atomic from the caller's perspective.
func SaveDocument[T any](d *DB, key string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return d.SetBytes(key, data)
}
