package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/group-fitness/backend/internal/domain"
	"github.com/group-fitness/backend/internal/repository"
)

type UserUseCase struct {
	profileRepo repository.ProfileRepository
	prefsRepo   repository.PreferencesRepository
}

func NewUserUseCase(
	profileRepo repository.ProfileRepository,
	prefsRepo repository.PreferencesRepository,
) *UserUseCase {
	return &UserUseCase{
		profileRepo: profileRepo,
		prefsRepo:   prefsRepo,
	}
}

// UpdateProfileRequest carries a partial profile update. Only non-nil
// fields are applied.
type UpdateProfileRequest struct {
	Name         *string  `json:"name" binding:"omitempty,max=255"`
	Bio          *string  `json:"bio"`
	LocationLat  *float64 `json:"location_lat" binding:"omitempty,min=-90,max=90"`
	LocationLng  *float64 `json:"location_lng" binding:"omitempty,min=-180,max=180"`
	LocationName *string  `json:"location_name" binding:"omitempty,max=255"`
}

// UpdatePreferencesRequest carries a partial preferences update. Enum fields
// are validated at the request boundary, before any storage access.
type UpdatePreferencesRequest struct {
	Sports           *[]string `json:"sports" binding:"omitempty,dive,oneof=running cycling"`
	PreferredPace    *string   `json:"preferred_pace" binding:"omitempty,oneof=casual moderate fast"`
	RideType         *string   `json:"ride_type" binding:"omitempty,oneof=casual drop_ride competitive"`
	DistanceRangeMin *int      `json:"distance_range_min" binding:"omitempty,gte=0"`
	DistanceRangeMax *int      `json:"distance_range_max" binding:"omitempty,gte=0"`
	Availability     *[]string `json:"availability" binding:"omitempty,dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
}

// ProfileWithPreferences is the combined view returned by /users/me and the
// onboarding operation. Preferences is nil when none exist yet.
type ProfileWithPreferences struct {
	Profile     *domain.Profile     `json:"profile"`
	Preferences *domain.Preferences `json:"preferences"`
}

// GetProfile returns the profile for a Cognito user id.
func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return uc.profileRepo.GetByUserID(ctx, userID)
}

// CreateProfile creates a profile for a freshly authenticated identity. It
// is idempotent under concurrent duplicate calls: a unique violation on
// insert is recovered by returning the row that won the race.
func (uc *UserUseCase) CreateProfile(ctx context.Context, info *domain.UserInfo) (*domain.Profile, error) {
	profile := &domain.Profile{
		UserID: info.UserID,
		Email:  info.Email,
		Name:   info.Name,
	}
	err := uc.profileRepo.Create(ctx, profile)
	if err == nil {
		return profile, nil
	}
	if errors.Is(err, domain.ErrProfileAlreadyExists) {
		return uc.profileRepo.GetByUserID(ctx, info.UserID)
	}
	return nil, fmt.Errorf("failed to create profile: %w", err)
}

// UpdateProfile applies the non-nil fields of req to the stored profile.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*domain.Profile, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		profile.Name = req.Name
	}
	if req.Bio != nil {
		profile.Bio = req.Bio
	}
	if req.LocationLat != nil {
		profile.LocationLat = req.LocationLat
	}
	if req.LocationLng != nil {
		profile.LocationLng = req.LocationLng
	}
	if req.LocationName != nil {
		profile.LocationName = req.LocationName
	}

	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return profile, nil
}

// GetPreferences returns the preferences row for a user.
func (uc *UserUseCase) GetPreferences(ctx context.Context, userID string) (*domain.Preferences, error) {
	return uc.prefsRepo.GetByUserID(ctx, userID)
}

// UpsertPreferences partial-updates the existing preferences row, or creates
// one seeded with the given fields. Fails with ErrProfileNotFound when no
// profile exists for the user.
func (uc *UserUseCase) UpsertPreferences(ctx context.Context, userID string, req *UpdatePreferencesRequest) (*domain.Preferences, error) {
	if _, err := uc.profileRepo.GetByUserID(ctx, userID); err != nil {
		return nil, err
	}

	prefs, err := uc.prefsRepo.GetByUserID(ctx, userID)
	if errors.Is(err, domain.ErrPreferencesNotFound) {
		prefs = &domain.Preferences{UserID: userID}
		applyPreferences(prefs, req)
		if err := uc.prefsRepo.Create(ctx, prefs); err != nil {
			return nil, fmt.Errorf("failed to create preferences: %w", err)
		}
		return prefs, nil
	}
	if err != nil {
		return nil, err
	}

	applyPreferences(prefs, req)
	if err := uc.prefsRepo.Update(ctx, prefs); err != nil {
		return nil, fmt.Errorf("failed to update preferences: %w", err)
	}
	return prefs, nil
}

// GetProfileWithPreferences returns the profile together with preferences
// when they exist.
func (uc *UserUseCase) GetProfileWithPreferences(ctx context.Context, userID string) (*ProfileWithPreferences, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := &ProfileWithPreferences{Profile: profile}

	prefs, err := uc.prefsRepo.GetByUserID(ctx, userID)
	if err == nil {
		result.Preferences = prefs
	} else if !errors.Is(err, domain.ErrPreferencesNotFound) {
		return nil, err
	}
	return result, nil
}

// CompleteOnboarding applies the profile update and then upserts the
// preferences. The profile must already exist; there is no compensation if
// the preferences step fails after the profile step succeeded.
func (uc *UserUseCase) CompleteOnboarding(ctx context.Context, userID string, profileReq *UpdateProfileRequest, prefsReq *UpdatePreferencesRequest) (*ProfileWithPreferences, error) {
	profile, err := uc.UpdateProfile(ctx, userID, profileReq)
	if err != nil {
		return nil, err
	}

	prefs, err := uc.UpsertPreferences(ctx, userID, prefsReq)
	if err != nil {
		return nil, err
	}

	return &ProfileWithPreferences{
		Profile:     profile,
		Preferences: prefs,
	}, nil
}

func applyPreferences(prefs *domain.Preferences, req *UpdatePreferencesRequest) {
	if req.Sports != nil {
		prefs.Sports = *req.Sports
	}
	if req.PreferredPace != nil {
		prefs.PreferredPace = req.PreferredPace
	}
	if req.RideType != nil {
		prefs.RideType = req.RideType
	}
	if req.DistanceRangeMin != nil {
		prefs.DistanceRangeMin = req.DistanceRangeMin
	}
	if req.DistanceRangeMax != nil {
		prefs.DistanceRangeMax = req.DistanceRangeMax
	}
	if req.Availability != nil {
		prefs.Availability = *req.Availability
	}
}
