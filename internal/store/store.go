package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/mullergauthier/HarmattanAI/pkg/models"
)

var ErrNotFound = errors.New("resource not found")
var ErrDuplicateKey = errors.New("duplicate key violation")

// Store is the data access interface. All database operations go through here.
type Store interface {
	Ping(ctx context.Context) error
	GetDefaultTenant(ctx context.Context) (*models.Tenant, error)

	GetAPIKeyByPrefix(ctx context.Context, prefix string) ([]*models.APIKey, error)
	UpdateAPIKeyLastUsed(ctx context.Context, id uuid.UUID) error
	CreateAPIKey(ctx context.Context, key *models.APIKey) error
	ListAPIKeys(ctx context.Context, tenantID uuid.UUID) ([]*models.APIKey, error)
	RevokeAPIKey(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) error

	CreateSubmission(ctx context.Context, sub *models.Submission) error
	GetSubmission(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) (*models.Submission, error)
	ListSubmissions(ctx context.Context, filter SubmissionFilter) ([]*models.Submission, int, error)
}

// SubmissionFilter narrows and paginates submission listings.
type SubmissionFilter struct {
	TenantID     uuid.UUID
	TargetSystem string
	Page         int
	Limit        int
}
