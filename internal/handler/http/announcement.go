package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/employee-hub-go/internal/domain/announcement"
	"github.com/cmlabs-hris/employee-hub-go/internal/handler/http/response"
	"github.com/cmlabs-hris/employee-hub-go/internal/pkg/validator"
)

type AnnouncementHandler interface {
	ListAnnouncements(w http.ResponseWriter, r *http.Request)
	GetAnnouncement(w http.ResponseWriter, r *http.Request)
	CreateAnnouncement(w http.ResponseWriter, r *http.Request)
	UpdateAnnouncement(w http.ResponseWriter, r *http.Request)
	DeleteAnnouncement(w http.ResponseWriter, r *http.Request)
}

type announcementHandlerImpl struct {
	announcementService announcement.AnnouncementService
}

func NewAnnouncementHandler(announcementService announcement.AnnouncementService) AnnouncementHandler {
	return &announcementHandlerImpl{
		announcementService: announcementService,
	}
}

// ListAnnouncements implements AnnouncementHandler
func (h *announcementHandlerImpl) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := pagination(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := announcement.AnnouncementFilter{
		Skip:  skip,
		Limit: limit,
	}
	if p := optionalQuery(r, "priority"); p != nil {
		priority := announcement.Priority(*p)
		filter.Priority = &priority
	}
	if v := optionalQuery(r, "include_expired"); v != nil {
		includeExpired, err := strconv.ParseBool(*v)
		if err != nil {
			response.HandleError(w, validator.ValidationErrors{{
				Field:   "include_expired",
				Message: "include_expired must be a boolean",
			}})
			return
		}
		filter.IncludeExpired = includeExpired
	}

	result, err := h.announcementService.ListAnnouncements(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Announcements, listMeta(result.Skip, result.Limit, result.TotalCount))
}

// GetAnnouncement implements AnnouncementHandler
func (h *announcementHandlerImpl) GetAnnouncement(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, announcement.ErrAnnouncementNotFound)
	if !ok {
		return
	}

	result, err := h.announcementService.GetAnnouncement(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateAnnouncement implements AnnouncementHandler
func (h *announcementHandlerImpl) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	current, ok := actor(w, r)
	if !ok {
		return
	}

	var req announcement.AnnouncementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.announcementService.CreateAnnouncement(r.Context(), req, current)
	if err != nil {
		slog.Error("CreateAnnouncement service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Announcement created successfully", result)
}

// UpdateAnnouncement implements AnnouncementHandler
func (h *announcementHandlerImpl) UpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	current, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, announcement.ErrAnnouncementNotFound)
	if !ok {
		return
	}

	var req announcement.AnnouncementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.announcementService.UpdateAnnouncement(r.Context(), id, req, current)
	if err != nil {
		slog.Error("UpdateAnnouncement service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Announcement updated successfully", result)
}

// DeleteAnnouncement implements AnnouncementHandler
func (h *announcementHandlerImpl) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	current, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, announcement.ErrAnnouncementNotFound)
	if !ok {
		return
	}

	if err := h.announcementService.DeleteAnnouncement(r.Context(), id, current); err != nil {
		slog.Error("DeleteAnnouncement service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.NoContent(w)
}
