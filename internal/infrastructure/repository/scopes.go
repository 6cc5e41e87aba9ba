package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

const (
	// OrgIDKey is the context key for the org ID
	OrgIDKey ctxKey = "org_id"
	// SkipOrgScopeKey is the context key for skipping org scope (super admin)
	SkipOrgScopeKey ctxKey = "skip_org_scope"
)

// OrgScope returns a GORM scope that filters by org.
// This should be applied to all queries for org-scoped entities.
// If SkipOrgScopeKey is true in context (super admin), returns all records.
func OrgScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if skipScope, ok := ctx.Value(SkipOrgScopeKey).(bool); ok && skipScope {
			return db
		}

		orgID, ok := ctx.Value(OrgIDKey).(uuid.UUID)
		if !ok {
			// Fail-safe: return no results if org context missing
			// This prevents accidental cross-org data access
			return db.Where("1 = 0")
		}
		return db.Where("org_id = ?", orgID)
	}
}

// WithSkipOrgScope adds skip org scope flag to context (for super admins)
func WithSkipOrgScope(ctx context.Context, skip bool) context.Context {
	return context.WithValue(ctx, SkipOrgScopeKey, skip)
}

// WithOrg adds org ID to context
func WithOrg(ctx context.Context, orgID uuid.UUID) context.Context {
	return context.WithValue(ctx, OrgIDKey, orgID)
}

// GetOrgID extracts org ID from context
func GetOrgID(ctx context.Context) (uuid.UUID, bool) {
	orgID, ok := ctx.Value(OrgIDKey).(uuid.UUID)
	return orgID, ok
}
