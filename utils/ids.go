package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewID builds an application-level identifier like "F_1A2B3C4D" from the
// given prefix. These ids are what the API exposes; database row ids stay
// internal.
func NewID(prefix string) string {
	return prefix + "_" + strings.ToUpper(uuid.NewString()[:8])
}
