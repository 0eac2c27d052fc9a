package services

import (
	"context"
	"strconv"

	"learnhub/backend/models"
	"learnhub/backend/utils"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// AuthorizationPolicy is the single admin check used by every admin route.
// The stored role is authoritative; the configured allow-list only seeds it.
type AuthorizationPolicy struct {
	DB   *gorm.DB
	Log  *utils.Logger
	seed map[string]struct{}
}

func NewAuthorizationPolicy(db *gorm.DB, log *utils.Logger, adminSeed []string) *AuthorizationPolicy {
	seed := make(map[string]struct{}, len(adminSeed))
	for _, id := range adminSeed {
		seed[id] = struct{}{}
	}
	return &AuthorizationPolicy{DB: db, Log: log, seed: seed}
}

// IsAdmin never fails: unknown subjects and lookup errors answer false.
func (p *AuthorizationPolicy) IsAdmin(ctx context.Context, userID uint) bool {
	if userID == 0 {
		return false
	}
	var user models.User
	err := p.DB.WithContext(ctx).Select("id", "role").First(&user, userID).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			p.Log.Warn("admin lookup failed", "user_id", userID, "error", err)
		}
		return false
	}
	return user.IsAdmin()
}

func (p *AuthorizationPolicy) RequireAdmin(ctx context.Context, userID uint) error {
	if userID == 0 {
		return utils.ErrUnauthenticated
	}
	if !p.IsAdmin(ctx, userID) {
		return errors.Wrap(utils.ErrForbidden, "Admin access required")
	}
	return nil
}

// RoleForNewSubject is the role given to a subject created on first visit.
func (p *AuthorizationPolicy) RoleForNewSubject(externalID string) string {
	if _, ok := p.seed[externalID]; ok {
		return models.RoleAdmin
	}
	return models.RoleUser
}

// SeedAdmins promotes every existing user named by the allow-list, matching
// either the external-auth reference or the numeric id.
func (p *AuthorizationPolicy) SeedAdmins(ctx context.Context) (int64, error) {
	if len(p.seed) == 0 {
		return 0, nil
	}
	var external []string
	var numeric []uint
	for id := range p.seed {
		external = append(external, id)
		if n, err := strconv.ParseUint(id, 10, 64); err == nil {
			numeric = append(numeric, uint(n))
		}
	}

	query := p.DB.WithContext(ctx).Model(&models.User{}).Where("external_auth_id IN ?", external)
	if len(numeric) > 0 {
		query = query.Or("id IN ?", numeric)
	}
	res := query.Update("role", models.RoleAdmin)
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "seed admins")
	}
	return res.RowsAffected, nil
}
