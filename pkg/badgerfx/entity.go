package badgerfx

// Entity is a value stored under a single key with optional secondary index
// keys pointing back at it.
type Entity interface {
	StorageKey() string
	StorageIndexes() []string
	MarshalStorage() ([]byte, error)
	UnmarshalStorage(data []byte) error
}
