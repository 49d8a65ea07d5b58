package announcement

import "errors"

var (
	ErrAnnouncementNotFound  = errors.New("Announcement not found")
	ErrNotAuthorizedToUpdate = errors.New("Not authorized to update this announcement")
	ErrNotAuthorizedToDelete = errors.New("Not authorized to delete this announcement")
)
