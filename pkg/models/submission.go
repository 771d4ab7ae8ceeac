package models

import (
	"time"

	"github.com/google/uuid"
)

// Submission is a validated selection of codes, saved for transmission to a
// hospital target system. The actual transmission is out of scope; submissions
// are the durable recap of what a reviewer approved.
type Submission struct {
	ID           uuid.UUID        `db:"id"            json:"id"`
	TenantID     uuid.UUID        `db:"tenant_id"     json:"tenant_id"`
	AnalysisID   uuid.UUID        `db:"analysis_id"   json:"analysis_id"`
	TargetSystem string           `db:"target_system" json:"target_system"`
	Provider     string           `db:"provider"      json:"provider"`
	Codes        []CodeSuggestion `db:"codes"         json:"codes"`
	CreatedAt    time.Time        `db:"created_at"    json:"created_at"`
}
