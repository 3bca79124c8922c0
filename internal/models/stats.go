package models

// CacheStats describes a cache for health reporting.
type CacheStats struct {
	Size    int   `json:"size"`
	MaxSize int   `json:"maxSize"`
	TTLMs   int64 `json:"ttlMs"`
}

// RateLimitStats describes the limiter for health reporting.
type RateLimitStats struct {
	Entries     int   `json:"entries"`
	MaxRequests int   `json:"maxRequests"`
	WindowMs    int64 `json:"windowMs"`
}
