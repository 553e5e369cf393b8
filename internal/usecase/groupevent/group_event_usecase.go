package groupevent

import (
	"context"
	"fmt"
	"time"

	"github.com/group-fitness/backend/internal/domain"
	"github.com/group-fitness/backend/internal/repository"
)

type GroupEventUseCase struct {
	eventRepo repository.GroupEventRepository
}

func NewGroupEventUseCase(eventRepo repository.GroupEventRepository) *GroupEventUseCase {
	return &GroupEventUseCase{eventRepo: eventRepo}
}

// CreateEventRequest is the payload for creating a group event. Distance is
// a pointer so that 0 km still passes the required check.
type CreateEventRequest struct {
	Name        string    `json:"name" binding:"required,min=1,max=255"`
	SportType   string    `json:"sport_type" binding:"required"`
	StartAt     time.Time `json:"start_at" binding:"required"`
	Lat         *float64  `json:"lat" binding:"omitempty,min=-90,max=90"`
	Lng         *float64  `json:"lng" binding:"omitempty,min=-180,max=180"`
	Access      string    `json:"access" binding:"required"`
	EventType   string    `json:"event_type" binding:"required"`
	Distance    *int      `json:"distance" binding:"required,gte=0"`
	GPSFileLink *string   `json:"gps_file_link"`
}

// UpdateEventRequest is a partial update; only non-nil fields are applied.
type UpdateEventRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=255"`
	SportType   *string    `json:"sport_type"`
	StartAt     *time.Time `json:"start_at"`
	Lat         *float64   `json:"lat" binding:"omitempty,min=-90,max=90"`
	Lng         *float64   `json:"lng" binding:"omitempty,min=-180,max=180"`
	Access      *string    `json:"access"`
	EventType   *string    `json:"event_type"`
	Distance    *int       `json:"distance" binding:"omitempty,gte=0"`
	GPSFileLink *string    `json:"gps_file_link"`
}

// Create persists a new event owned by creatorID.
func (uc *GroupEventUseCase) Create(ctx context.Context, req *CreateEventRequest, creatorID string) (*domain.GroupEvent, error) {
	event := &domain.GroupEvent{
		Name:        req.Name,
		SportType:   req.SportType,
		StartAt:     req.StartAt,
		Lat:         req.Lat,
		Lng:         req.Lng,
		Access:      req.Access,
		EventType:   req.EventType,
		Distance:    *req.Distance,
		GPSFileLink: req.GPSFileLink,
		CreatedBy:   creatorID,
	}
	if err := uc.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create group event: %w", err)
	}
	return event, nil
}

// ListAll returns every event, most recent first. The access field is
// persisted but not used to filter the listing.
func (uc *GroupEventUseCase) ListAll(ctx context.Context) ([]*domain.GroupEvent, error) {
	return uc.eventRepo.ListAll(ctx)
}

// GetByID returns a single event.
func (uc *GroupEventUseCase) GetByID(ctx context.Context, id int) (*domain.GroupEvent, error) {
	return uc.eventRepo.GetByID(ctx, id)
}

// Update applies a partial update when callerID is the creator. A caller
// that is not the creator gets the same not-found signal as a missing
// event, so existence is not revealed.
func (uc *GroupEventUseCase) Update(ctx context.Context, id int, req *UpdateEventRequest, callerID string) (*domain.GroupEvent, error) {
	event, err := uc.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.CreatedBy != callerID {
		return nil, domain.ErrEventNotFound
	}

	if req.Name != nil {
		event.Name = *req.Name
	}
	if req.SportType != nil {
		event.SportType = *req.SportType
	}
	if req.StartAt != nil {
		event.StartAt = *req.StartAt
	}
	if req.Lat != nil {
		event.Lat = req.Lat
	}
	if req.Lng != nil {
		event.Lng = req.Lng
	}
	if req.Access != nil {
		event.Access = *req.Access
	}
	if req.EventType != nil {
		event.EventType = *req.EventType
	}
	if req.Distance != nil {
		event.Distance = *req.Distance
	}
	if req.GPSFileLink != nil {
		event.GPSFileLink = req.GPSFileLink
	}

	if err := uc.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update group event: %w", err)
	}
	return event, nil
}

// Delete removes an event when callerID is the creator, with the same
// folded ownership signal as Update.
func (uc *GroupEventUseCase) Delete(ctx context.Context, id int, callerID string) error {
	event, err := uc.eventRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if event.CreatedBy != callerID {
		return domain.ErrEventNotFound
	}
	return uc.eventRepo.Delete(ctx, id)
}
