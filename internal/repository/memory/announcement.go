package memory

import (
	"context"
	"time"

	"github.com/cmlabs-hris/employee-hub-go/internal/domain/announcement"
)

type announcementRepository struct {
	store *Store
}

func NewAnnouncementRepository(store *Store) announcement.AnnouncementRepository {
	return &announcementRepository{store: store}
}

func (r *announcementRepository) GetByID(ctx context.Context, id string) (announcement.Announcement, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	a, ok := r.store.announcements[id]
	if !ok {
		return announcement.Announcement{}, announcement.ErrAnnouncementNotFound
	}
	return a, nil
}

func (r *announcementRepository) Create(ctx context.Context, newAnnouncement announcement.Announcement) (announcement.Announcement, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	newAnnouncement.CreatedAt = r.store.Now()
	r.store.announcements[newAnnouncement.ID] = newAnnouncement
	return newAnnouncement, nil
}

func (r *announcementRepository) Update(ctx context.Context, a announcement.Announcement) (announcement.Announcement, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.announcements[a.ID]
	if !ok {
		return announcement.Announcement{}, announcement.ErrAnnouncementNotFound
	}
	existing.Title = a.Title
	existing.Content = a.Content
	existing.Priority = a.Priority
	existing.ExpiresAt = a.ExpiresAt
	r.store.announcements[a.ID] = existing
	return existing, nil
}

func (r *announcementRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.announcements[id]; !ok {
		return announcement.ErrAnnouncementNotFound
	}
	delete(r.store.announcements, id)
	return nil
}

func (r *announcementRepository) List(ctx context.Context, filter announcement.AnnouncementFilter) ([]announcement.Announcement, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matched := make([]announcement.Announcement, 0)
	for _, a := range r.store.announcements {
		if !filter.IncludeExpired && !a.IsActive(filter.Now) {
			continue
		}
		if filter.Priority != nil && a.Priority != *filter.Priority {
			continue
		}
		matched = append(matched, a)
	}
	newestFirst(matched,
		func(a announcement.Announcement) time.Time { return a.CreatedAt },
		func(a announcement.Announcement) string { return a.ID },
	)

	return page(matched, filter.Skip, filter.Limit), int64(len(matched)), nil
}
