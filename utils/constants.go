package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = time.Hour

// LawyerListCachePrefix namespaces cached directory searches.
const LawyerListCachePrefix = "lawyers:list:"

// LawyerListCacheTTL keeps directory results briefly; profile writes invalidate them.
const LawyerListCacheTTL = 5 * time.Minute

const (
	MaxImageBytes = 5 << 20
	SessionName   = "lawease_session"
)
