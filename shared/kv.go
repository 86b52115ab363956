package shared

// KeyValueStore is the port the local durable store is built on. A single
// owning instance is injected per process; the production implementation is
// backed by Redis, tests use an in-memory fake.
type KeyValueStore interface {
	// Keys returns every key in the given device's bucket.
	Keys(deviceID string) ([]string, error)

	// Get returns the raw value for a key, or "" with found=false.
	Get(deviceID, key string) (value string, found bool, err error)

	Set(deviceID, key, value string) error

	Remove(deviceID, key string) error
}
