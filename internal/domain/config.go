package domain

// KeyPrefix namespaces every key textvec writes to the store.
const KeyPrefix = "textvec:"

// Request defaults applied when optional parameters are omitted.
const (
	DefaultMaxFeatures = 100
	DefaultComponents  = 5
)
