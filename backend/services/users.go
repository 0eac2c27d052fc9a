package services

import (
	"context"
	"strings"

	"learnhub/backend/models"
	"learnhub/backend/utils"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserService struct {
	DB     *gorm.DB
	Log    *utils.Logger
	Policy *AuthorizationPolicy
}

func NewUserService(db *gorm.DB, log *utils.Logger, policy *AuthorizationPolicy) *UserService {
	return &UserService{DB: db, Log: log, Policy: policy}
}

// ResolveSubject returns the user behind a token subject, creating the row on
// the subject's first authenticated visit.
func (s *UserService) ResolveSubject(ctx context.Context, claims *utils.SubjectClaims) (*models.User, error) {
	if claims == nil || claims.Subject == "" {
		return nil, utils.ErrUnauthenticated
	}

	db := s.DB.WithContext(ctx)
	var user models.User
	err := db.Where("external_auth_id = ?", claims.Subject).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "lookup subject")
	}

	user = models.User{
		ExternalAuthID: claims.Subject,
		Name:           claims.Name,
		Email:          strings.ToLower(claims.Email),
		Role:           s.Policy.RoleForNewSubject(claims.Subject),
		IsActive:       true,
	}
	// Two first visits can race; the loser re-reads the winner's row.
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&user).Error; err != nil {
		return nil, errors.Wrap(err, "create subject")
	}
	if user.ID == 0 {
		if err := db.Where("external_auth_id = ?", claims.Subject).First(&user).Error; err != nil {
			return nil, errors.Wrap(err, "reload subject")
		}
	} else {
		s.Log.Info("subject created", "user_id", user.ID, "role", user.Role)
	}
	return &user, nil
}

func (s *UserService) Get(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(utils.ErrNotFound, "User not found")
		}
		return nil, errors.Wrap(err, "get user")
	}
	return &user, nil
}

// SetActive toggles the active flag with a single UPDATE statement.
func (s *UserService) SetActive(ctx context.Context, userID uint, active bool) (*models.User, error) {
	res := s.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("is_active", active)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "update user status")
	}
	if res.RowsAffected == 0 {
		return nil, errors.Wrap(utils.ErrNotFound, "User not found")
	}
	return s.Get(ctx, userID)
}

type progressCount struct {
	UserID    uint
	Total     int64
	Completed int64
}

// ListSummaries joins every user with their progress counts, ordered by id.
func (s *UserService) ListSummaries(ctx context.Context) ([]models.UserSummary, error) {
	db := s.DB.WithContext(ctx)

	var users []models.User
	if err := db.Order("id").Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "list users")
	}

	var counts []progressCount
	err := db.Model(&models.LessonProgress{}).
		Select("user_id, COUNT(*) AS total, SUM(CASE WHEN completed THEN 1 ELSE 0 END) AS completed").
		Group("user_id").
		Scan(&counts).Error
	if err != nil {
		return nil, errors.Wrap(err, "count progress")
	}
	byUser := make(map[uint]progressCount, len(counts))
	for _, pc := range counts {
		byUser[pc.UserID] = pc
	}

	summaries := make([]models.UserSummary, 0, len(users))
	for _, u := range users {
		pc := byUser[u.ID]
		summaries = append(summaries, models.UserSummary{
			ID:               u.ID,
			Name:             u.Name,
			Email:            u.Email,
			Role:             u.Role,
			IsActive:         u.IsActive,
			TotalProgress:    pc.Total,
			CompletedLessons: pc.Completed,
			CurrentStreak:    u.CurrentStreak,
			LongestStreak:    u.LongestStreak,
			CreatedAt:        u.CreatedAt,
		})
	}
	return summaries, nil
}
