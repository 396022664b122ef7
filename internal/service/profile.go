package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/vegandiet/backend/internal/models"
	"github.com/pageza/vegandiet/backend/internal/types"
)

// ProfileService handles user profile operations
type ProfileService struct {
	profiles ProfileStore
	menus    MenuStore
	accounts AccountRemover
	logger   *zap.Logger
	now      func() time.Time
}

// NewProfileService creates a new ProfileService instance. accounts may be nil
// when sign-in accounts are not managed by this service.
func NewProfileService(profiles ProfileStore, menus MenuStore, accounts AccountRemover, logger *zap.Logger) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{
		profiles: profiles,
		menus:    menus,
		accounts: accounts,
		logger:   logger,
		now:      time.Now,
	}
}

// AccountDeletion reports what DeleteAccount removed
type AccountDeletion struct {
	ProfileDeleted bool
	MenusDeleted   int64
}

// GetProfile retrieves a user's profile
func (s *ProfileService) GetProfile(ctx context.Context, uid string) (*models.UserProfile, error) {
	if uid == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.profiles.FindByUID(ctx, uid)
}

// UpdateProfile creates or replaces the caller's profile answers
func (s *ProfileService) UpdateProfile(ctx context.Context, uid string, req *types.UpdateProfileRequest) (*models.UserProfile, error) {
	if uid == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if err := validateProfile(&req.Profile); err != nil {
		return nil, err
	}

	onboarded := true
	if req.OnboardingCompleted != nil {
		onboarded = *req.OnboardingCompleted
	}
	return s.profiles.Upsert(ctx, &models.UserProfile{
		FirebaseUID:         uid,
		Email:               strings.TrimSpace(req.Email),
		Name:                strings.TrimSpace(req.Name),
		OnboardingCompleted: onboarded,
		Profile:             req.Profile,
		UpdatedAt:           s.now(),
	})
}

// DeleteAccount removes the user's menus, the user document and the sign-in
// account. Deleting an account that is already gone succeeds. A failure to
// remove the sign-in account is logged and does not fail the call.
func (s *ProfileService) DeleteAccount(ctx context.Context, uid string) (*AccountDeletion, error) {
	if uid == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	menus, err := s.menus.DeleteByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	deleted, err := s.profiles.Delete(ctx, uid)
	if err != nil {
		return nil, err
	}
	if !deleted {
		s.logger.Info("no user document to delete", zap.String("user_id", uid))
	}

	if s.accounts != nil {
		if err := s.accounts.DeleteUser(ctx, uid); err != nil {
			s.logger.Warn("failed to delete sign-in account", zap.String("user_id", uid), zap.Error(err))
		}
	}

	s.logger.Info("account deleted",
		zap.String("user_id", uid),
		zap.Bool("profile_deleted", deleted),
		zap.Int64("menus_deleted", menus),
	)
	return &AccountDeletion{ProfileDeleted: deleted, MenusDeleted: menus}, nil
}

func validateProfile(p *models.ProfileDetails) error {
	if tz := p.Personal.Timezone; tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, tz)
		}
	}
	if p.Personal.HouseholdSize < 0 {
		return fmt.Errorf("%w: householdSize must not be negative", ErrInvalidInput)
	}
	if p.Cooking.TimeAvailable < 0 {
		return fmt.Errorf("%w: timeAvailable must not be negative", ErrInvalidInput)
	}
	if p.Nutrition.CalorieTarget < 0 {
		return fmt.Errorf("%w: calorieTarget must not be negative", ErrInvalidInput)
	}
	if loc := p.Personal.Location; loc != nil {
		lng, lat := loc.Coordinates[0], loc.Coordinates[1]
		if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
			return fmt.Errorf("%w: location is out of range", ErrInvalidInput)
		}
		loc.Type = "Point"
	}
	return nil
}
