package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns prefix_<12 hex chars>, e.g. b_3f9c2a71d04e.
func NewID(prefix string) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "_" + raw[:12]
}
