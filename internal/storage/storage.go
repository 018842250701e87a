// Package storage defines the key-value contract the state services persist
// through. Values are opaque strings; serialization is the caller's concern.
package storage

// KV is a string key-value store with process-lifetime persistence.
type KV interface {
	// Get returns the stored value and whether the key was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	// Remove deletes the key. Removing an absent key is not an error.
	Remove(key string) error
}
