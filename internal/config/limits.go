package config

// Input limits enforced by the request validators.
const (
	MaxCollectionNameLength = 100
	MaxBatchURLs            = 100
	MinUsernameLength       = 3
	MaxUsernameLength       = 32
)
