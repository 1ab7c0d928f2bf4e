package api

// Config holds the settings of the hash endpoint.
type Config struct {
	// Listen address, host:port.
	Addr string

	// MaxBodyBytes caps the request body; larger requests get 413.
	MaxBodyBytes int64

	// CacheSize is the number of responses kept in memory, 0 disables caching.
	CacheSize int

	// CacheMaxMessage is the longest message, in bytes, whose response is cached.
	CacheMaxMessage int
}

// DefaultConfig returns the settings used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Addr:            ":5000",
		MaxBodyBytes:    2 << 20,
		CacheSize:       256,
		CacheMaxMessage: 4096,
	}
}
