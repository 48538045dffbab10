package api

import (
	"errors"
	"net/http"

	reqdto "slotboard/internal/handler/dto/request"
	resdto "slotboard/internal/handler/dto/response"
	"slotboard/internal/handler/middleware"
	"slotboard/internal/pkg/errs"
	"slotboard/internal/usecase"
	"slotboard/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	boardCommands usecase.BoardCommands
	boardQueries  queries.BoardQueries
}

func NewBoardHandler(boardCommands usecase.BoardCommands, boardQueries queries.BoardQueries) *BoardHandler {
	return &BoardHandler{
		boardCommands: boardCommands,
		boardQueries:  boardQueries,
	}
}

func (h *BoardHandler) GetBoard(c *gin.Context) {
	slots, err := h.boardQueries.ListSlots(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromBoardSlots(slots))
}

func (h *BoardHandler) Reserve(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.boardCommands.Reserve(c.Request.Context(), userID, req.SlotID); err != nil {
		switch {
		case errors.Is(err, errs.ErrSlotNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Slot not found",
			})
		case errors.Is(err, errs.ErrSlotNotActive):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Slot is not open for reservation",
			})
		case errors.Is(err, errs.ErrSlotTaken):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Slot was taken by another user",
			})
		case errors.Is(err, errs.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *BoardHandler) Unreserve(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	if err := h.boardCommands.Unreserve(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.Status(http.StatusNoContent)
}
