package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "slotboard/internal/handler/dto/request"
	"slotboard/internal/handler/httperr"
	"slotboard/internal/pkg/errs"
	"slotboard/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	boardCommands usecase.BoardCommands
}

func NewAdminHandler(boardCommands usecase.BoardCommands) *AdminHandler {
	return &AdminHandler{
		boardCommands: boardCommands,
	}
}

func (h *AdminHandler) ClearSlot(c *gin.Context) {
	slotID, ok := h.slotID(c)
	if !ok {
		return
	}

	if err := h.boardCommands.AdminClear(c.Request.Context(), slotID); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) SetActive(c *gin.Context) {
	slotID, ok := h.slotID(c)
	if !ok {
		return
	}

	var req reqdto.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.boardCommands.AdminSetActive(c.Request.Context(), slotID, *req.Active); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) OverrideLabel(c *gin.Context) {
	slotID, ok := h.slotID(c)
	if !ok {
		return
	}

	var req reqdto.OverrideLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.boardCommands.AdminOverrideLabel(c.Request.Context(), slotID, req.Label, req.Lock); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) CreateHour(c *gin.Context) {
	var req reqdto.CreateHourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.boardCommands.CreateHour(c.Request.Context(), req.TimeLabel); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusCreated)
}

func (h *AdminHandler) RenameHour(c *gin.Context) {
	var req reqdto.RenameHourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.boardCommands.RenameHour(c.Request.Context(), req.From, req.To); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) DeleteHour(c *gin.Context) {
	timeLabel := c.Param("label")

	if err := h.boardCommands.DeleteHour(c.Request.Context(), timeLabel); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) NormalizeHour(c *gin.Context) {
	timeLabel := c.Param("label")

	if err := h.boardCommands.NormalizeHour(c.Request.Context(), timeLabel); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) BulkCleanup(c *gin.Context) {
	if err := h.boardCommands.BulkCleanup(c.Request.Context()); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) ClearAll(c *gin.Context) {
	if err := h.boardCommands.ClearAll(c.Request.Context()); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) slotID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err == nil && id < 1 {
		err = errs.New("slot id out of range")
	}
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid slot ID format", nil)
		return 0, false
	}
	return id, true
}

func (h *AdminHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrInvalidTimeLabel):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Time label must match HH:MM", nil)
	case errors.Is(err, errs.ErrHourExists):
		httperr.AbortWithError(c, http.StatusConflict, err, "Hour already exists", nil)
	case errors.Is(err, errs.ErrSlotNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Slot not found", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
