package cache

import (
	"fmt"

	"github.com/google/uuid"
)

func LatestAnalysisKey(tenantID uuid.UUID) string {
	return fmt.Sprintf("analysis:latest:%s", tenantID)
}

func RateLimitKey(keyPrefix string) string {
	return fmt.Sprintf("ratelimit:%s", keyPrefix)
}
