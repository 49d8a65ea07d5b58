package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/employee-hub-go/internal/domain/leave"
	"github.com/cmlabs-hris/employee-hub-go/internal/handler/http/response"
)

type LeaveHandler interface {
	ListLeaves(w http.ResponseWriter, r *http.Request)
	GetLeave(w http.ResponseWriter, r *http.Request)
	CreateLeave(w http.ResponseWriter, r *http.Request)
	ApproveLeave(w http.ResponseWriter, r *http.Request)
	DeleteLeave(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
	}
}

// ListLeaves implements LeaveHandler.
func (l *LeaveHandlerImpl) ListLeaves(w http.ResponseWriter, r *http.Request) {
	current, ok := actor(w, r)
	if !ok {
		return
	}
	skip, limit, err := pagination(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := leave.LeaveFilter{
		Skip:  skip,
		Limit: limit,
	}
	if status := optionalQuery(r, "status"); status != nil {
		s := leave.LeaveStatus(*status)
		filter.Status = &s
	}

	result, err := l.leaveService.ListLeaves(r.Context(), filter, current)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Leaves, listMeta(result.Skip, result.Limit, result.TotalCount))
}

// GetLeave implements LeaveHandler.
func (l *LeaveHandlerImpl) GetLeave(w http.ResponseWriter, r *http.Request) {
	current, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, leave.ErrLeaveRequestNotFound)
	if !ok {
		return
	}

	result, err := l.leaveService.GetLeave(r.Context(), id, current)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateLeave implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateLeave(w http.ResponseWriter, r *http.Request) {
	current, ok := actor(w, r)
	if !ok {
		return
	}

	var req leave.CreateLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := l.leaveService.CreateLeave(r.Context(), req, current)
	if err != nil {
		slog.Error("CreateLeave service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", result)
}

// ApproveLeave implements LeaveHandler.
func (l *LeaveHandlerImpl) ApproveLeave(w http.ResponseWriter, r *http.Request) {
	current, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, leave.ErrLeaveRequestNotFound)
	if !ok {
		return
	}

	var req leave.ApproveLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ApproveLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := l.leaveService.ApproveLeave(r.Context(), req, current)
	if err != nil {
		slog.Error("ApproveLeave service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request "+string(result.Status), result)
}

// DeleteLeave implements LeaveHandler.
func (l *LeaveHandlerImpl) DeleteLeave(w http.ResponseWriter, r *http.Request) {
	current, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, leave.ErrLeaveRequestNotFound)
	if !ok {
		return
	}

	if err := l.leaveService.DeleteLeave(r.Context(), id, current); err != nil {
		slog.Error("DeleteLeave service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.NoContent(w)
}
