package id

import (
	"strings"

	"github.com/google/uuid"
)

// Generator creates opaque identifiers for request correlation.
type Generator interface {
	NewID() string
}

type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// Sanitize accepts a caller-supplied request id only when it is a short
// printable token; otherwise it returns "".
func Sanitize(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" || len(value) > 128 {
		return ""
	}
	for _, r := range value {
		if r < 0x21 || r > 0x7e {
			return ""
		}
	}
	return value
}
