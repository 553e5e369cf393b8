package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/group-fitness/backend/internal/domain"
	"github.com/group-fitness/backend/internal/infrastructure/storage"
	"github.com/group-fitness/backend/internal/usecase/groupevent"
)

type GroupEventHandler struct {
	eventUseCase  *groupevent.GroupEventUseCase
	storageClient *storage.Client
}

// NewGroupEventHandler wires the event use case; storageClient may be nil
// when no object storage is configured.
func NewGroupEventHandler(eventUseCase *groupevent.GroupEventUseCase, storageClient *storage.Client) *GroupEventHandler {
	return &GroupEventHandler{
		eventUseCase:  eventUseCase,
		storageClient: storageClient,
	}
}

// Create handles POST /group_events/
func (h *GroupEventHandler) Create(c *gin.Context) {
	info, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req groupevent.CreateEventRequest
	if !bindJSON(c, &req) {
		return
	}

	event, err := h.eventUseCase.Create(c.Request.Context(), &req, info.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to create group event"})
		return
	}

	c.JSON(http.StatusOK, event)
}

// List handles GET /group_events/
func (h *GroupEventHandler) List(c *gin.Context) {
	events, err := h.eventUseCase.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to retrieve group events"})
		return
	}

	c.JSON(http.StatusOK, events)
}

// GetByID handles GET /group_events/:id
func (h *GroupEventHandler) GetByID(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}

	event, err := h.eventUseCase.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// Update handles PUT /group_events/:id. Only the creator succeeds; anyone
// else gets the same 404 as a missing event.
func (h *GroupEventHandler) Update(c *gin.Context) {
	info, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	id, ok := eventID(c)
	if !ok {
		return
	}

	var req groupevent.UpdateEventRequest
	if !bindJSON(c, &req) {
		return
	}

	event, err := h.eventUseCase.Update(c.Request.Context(), id, &req, info.UserID)
	if err != nil {
		h.writeEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// Delete handles DELETE /group_events/:id with the same ownership gating
// as Update.
func (h *GroupEventHandler) Delete(c *gin.Context) {
	info, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	id, ok := eventID(c)
	if !ok {
		return
	}

	if err := h.eventUseCase.Delete(c.Request.Context(), id, info.UserID); err != nil {
		h.writeEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Group event deleted successfully"})
}

// UploadURL handles GET /group_events/upload-url: a presigned PUT target
// for a GPS route file, to be stored later in gps_file_link.
func (h *GroupEventHandler) UploadURL(c *gin.Context) {
	info, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	if h.storageClient == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "object storage is not configured"})
		return
	}

	upload, err := h.storageClient.PresignRouteUpload(c.Request.Context(), info.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to create upload URL"})
		return
	}

	c.JSON(http.StatusOK, upload)
}

func eventID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid event id"})
		return 0, false
	}
	return id, true
}

func (h *GroupEventHandler) writeEventError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrEventNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "group event not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}
