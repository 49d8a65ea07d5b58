package announcement

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/employee-hub-go/internal/domain/announcement"
	"github.com/cmlabs-hris/employee-hub-go/internal/domain/user"
	"github.com/google/uuid"
)

type AnnouncementServiceImpl struct {
	announcementRepo announcement.AnnouncementRepository
	now              func() time.Time
}

func NewAnnouncementService(announcementRepo announcement.AnnouncementRepository) announcement.AnnouncementService {
	return &AnnouncementServiceImpl{
		announcementRepo: announcementRepo,
		now:              time.Now,
	}
}

// ListAnnouncements implements announcement.AnnouncementService.
func (s *AnnouncementServiceImpl) ListAnnouncements(ctx context.Context, filter announcement.AnnouncementFilter) (announcement.ListAnnouncementResponse, error) {
	if err := filter.Validate(); err != nil {
		return announcement.ListAnnouncementResponse{}, err
	}
	filter.Now = s.now()

	announcements, total, err := s.announcementRepo.List(ctx, filter)
	if err != nil {
		return announcement.ListAnnouncementResponse{}, fmt.Errorf("failed to list announcements: %w", err)
	}

	responses := make([]announcement.AnnouncementResponse, 0, len(announcements))
	for _, a := range announcements {
		responses = append(responses, announcement.NewAnnouncementResponse(a))
	}

	return announcement.ListAnnouncementResponse{
		TotalCount:    total,
		Skip:          filter.Skip,
		Limit:         filter.Limit,
		Announcements: responses,
	}, nil
}

// GetAnnouncement implements announcement.AnnouncementService.
func (s *AnnouncementServiceImpl) GetAnnouncement(ctx context.Context, id string) (announcement.AnnouncementResponse, error) {
	a, err := s.getByID(ctx, id)
	if err != nil {
		return announcement.AnnouncementResponse{}, err
	}
	return announcement.NewAnnouncementResponse(a), nil
}

// CreateAnnouncement implements announcement.AnnouncementService.
func (s *AnnouncementServiceImpl) CreateAnnouncement(ctx context.Context, req announcement.AnnouncementRequest, actor user.User) (announcement.AnnouncementResponse, error) {
	if !actor.IsManager() {
		return announcement.AnnouncementResponse{}, user.ErrManagerAccessRequired
	}
	if err := req.Validate(); err != nil {
		return announcement.AnnouncementResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return announcement.AnnouncementResponse{}, fmt.Errorf("failed to generate announcement id: %w", err)
	}

	created, err := s.announcementRepo.Create(ctx, announcement.Announcement{
		ID:        id.String(),
		Title:     strings.TrimSpace(req.Title),
		Content:   req.Content,
		AuthorID:  actor.ID,
		Priority:  req.Priority,
		ExpiresAt: req.ExpiresAtParsed,
	})
	if err != nil {
		return announcement.AnnouncementResponse{}, fmt.Errorf("failed to create announcement: %w", err)
	}

	return announcement.NewAnnouncementResponse(created), nil
}

// UpdateAnnouncement implements announcement.AnnouncementService.
func (s *AnnouncementServiceImpl) UpdateAnnouncement(ctx context.Context, id string, req announcement.AnnouncementRequest, actor user.User) (announcement.AnnouncementResponse, error) {
	if err := req.Validate(); err != nil {
		return announcement.AnnouncementResponse{}, err
	}

	existing, err := s.getByID(ctx, id)
	if err != nil {
		return announcement.AnnouncementResponse{}, err
	}
	if !actor.CanAccess(existing.AuthorID) {
		return announcement.AnnouncementResponse{}, announcement.ErrNotAuthorizedToUpdate
	}

	existing.Title = strings.TrimSpace(req.Title)
	existing.Content = req.Content
	existing.Priority = req.Priority
	existing.ExpiresAt = req.ExpiresAtParsed

	updated, err := s.announcementRepo.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, announcement.ErrAnnouncementNotFound) {
			return announcement.AnnouncementResponse{}, err
		}
		return announcement.AnnouncementResponse{}, fmt.Errorf("failed to update announcement: %w", err)
	}

	return announcement.NewAnnouncementResponse(updated), nil
}

// DeleteAnnouncement implements announcement.AnnouncementService.
func (s *AnnouncementServiceImpl) DeleteAnnouncement(ctx context.Context, id string, actor user.User) error {
	existing, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanAccess(existing.AuthorID) {
		return announcement.ErrNotAuthorizedToDelete
	}

	if err := s.announcementRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, announcement.ErrAnnouncementNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete announcement: %w", err)
	}
	return nil
}

func (s *AnnouncementServiceImpl) getByID(ctx context.Context, id string) (announcement.Announcement, error) {
	a, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, announcement.ErrAnnouncementNotFound) {
			return announcement.Announcement{}, announcement.ErrAnnouncementNotFound
		}
		return announcement.Announcement{}, fmt.Errorf("failed to get announcement: %w", err)
	}
	return a, nil
}
