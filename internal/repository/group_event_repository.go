package repository

import (
	"context"

	"github.com/group-fitness/backend/internal/domain"
)

type GroupEventRepository interface {
	Create(ctx context.Context, event *domain.GroupEvent) error
	GetByID(ctx context.Context, id int) (*domain.GroupEvent, error)
	// ListAll returns every event, most recently created first.
	ListAll(ctx context.Context) ([]*domain.GroupEvent, error)
	Update(ctx context.Context, event *domain.GroupEvent) error
	Delete(ctx context.Context, id int) error
}
