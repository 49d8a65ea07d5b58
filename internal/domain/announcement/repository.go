package announcement

import "context"

type AnnouncementRepository interface {
	GetByID(ctx context.Context, id string) (Announcement, error)
	Create(ctx context.Context, newAnnouncement Announcement) (Announcement, error)
	Update(ctx context.Context, a Announcement) (Announcement, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter AnnouncementFilter) ([]Announcement, int64, error)
}
