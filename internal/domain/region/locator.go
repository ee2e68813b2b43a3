package region

import "context"

// Locator resolves a client IP address to an ISO 3166-1 alpha-2 country code.
type Locator interface {
	CountryCode(ctx context.Context, ip string) (string, error)
}
