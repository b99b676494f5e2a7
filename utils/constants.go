package utils

// Slug generation constants
const (
	// SlugLength is the length of generated slugs
	SlugLength = 8

	// SlugAlphabet is the character set for generated slugs (URL-safe)
	SlugAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_-"

	// MaxSlugAttempts bounds retry-with-regeneration on slug collisions
	MaxSlugAttempts = 5
)

// Request context keys shared between handlers and flows
const (
	RequestIDKey  = "X-Request-ID"
	UserAgentKey  = "user_agent"
	IPAddressKey  = "ip_address"
	EndpointKey   = "endpoint"
	TimeoutKey    = "timeout"
	CancelFuncKey = "cancel_func"
)
