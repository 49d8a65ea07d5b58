package announcement

import (
	"context"

	"github.com/cmlabs-hris/employee-hub-go/internal/domain/user"
)

type AnnouncementService interface {
	ListAnnouncements(ctx context.Context, filter AnnouncementFilter) (ListAnnouncementResponse, error)
	GetAnnouncement(ctx context.Context, id string) (AnnouncementResponse, error)

	// CreateAnnouncement publishes with the actor as author (admin/manager only)
	CreateAnnouncement(ctx context.Context, req AnnouncementRequest, actor user.User) (AnnouncementResponse, error)

	// UpdateAnnouncement replaces title, content, priority and expiry (author OR admin)
	UpdateAnnouncement(ctx context.Context, id string, req AnnouncementRequest, actor user.User) (AnnouncementResponse, error)
	DeleteAnnouncement(ctx context.Context, id string, actor user.User) error
}
