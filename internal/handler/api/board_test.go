//go:build unit

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"slotboard/internal/handler/api"
	"slotboard/internal/pkg/errs"
	"slotboard/internal/usecase"
	"slotboard/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// stubBoardCommands returns the configured error from every operation and
// records which one was called.
type stubBoardCommands struct {
	err        error
	lastOp     string
	lastSlotID int64
	lastUserID uuid.UUID
}

func (s *stubBoardCommands) Reserve(_ context.Context, userID uuid.UUID, slotID int64) error {
	s.lastOp, s.lastUserID, s.lastSlotID = "reserve", userID, slotID
	return s.err
}

func (s *stubBoardCommands) Unreserve(_ context.Context, userID uuid.UUID) error {
	s.lastOp, s.lastUserID = "unreserve", userID
	return s.err
}

func (s *stubBoardCommands) AdminClear(_ context.Context, slotID int64) error {
	s.lastOp, s.lastSlotID = "admin_clear", slotID
	return s.err
}

func (s *stubBoardCommands) AdminSetActive(_ context.Context, slotID int64, _ bool) error {
	s.lastOp, s.lastSlotID = "admin_set_active", slotID
	return s.err
}

func (s *stubBoardCommands) AdminOverrideLabel(_ context.Context, slotID int64, _ string, _ bool) error {
	s.lastOp, s.lastSlotID = "admin_override_label", slotID
	return s.err
}

func (s *stubBoardCommands) CreateHour(_ context.Context, _ string) error {
	s.lastOp = "create_hour"
	return s.err
}

func (s *stubBoardCommands) RenameHour(_ context.Context, _, _ string) error {
	s.lastOp = "rename_hour"
	return s.err
}

func (s *stubBoardCommands) DeleteHour(_ context.Context, _ string) error {
	s.lastOp = "delete_hour"
	return s.err
}

func (s *stubBoardCommands) NormalizeHour(_ context.Context, _ string) error {
	s.lastOp = "normalize_hour"
	return s.err
}

func (s *stubBoardCommands) BulkCleanup(_ context.Context) error {
	s.lastOp = "bulk_cleanup"
	return s.err
}

func (s *stubBoardCommands) ClearAll(_ context.Context) error {
	s.lastOp = "clear_all"
	return s.err
}

type stubBoardQueries struct {
	slots []*queries.BoardSlotView
	err   error
}

func (s *stubBoardQueries) ListSlots(context.Context) ([]*queries.BoardSlotView, error) {
	return s.slots, s.err
}

type BoardHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	commands *stubBoardCommands
	queries  *stubBoardQueries
	userID   uuid.UUID
}

func (s *BoardHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.commands = &stubBoardCommands{}
	s.queries = &stubBoardQueries{}
	s.userID = uuid.New()

	boardHandler := api.NewBoardHandler(s.commands, s.queries)
	adminHandler := api.NewAdminHandler(s.commands)

	// Mock middleware behavior: inject the authenticated user.
	withUser := func(h gin.HandlerFunc) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.Set("user_id", s.userID)
			h(c)
		}
	}

	s.router.GET("/board", boardHandler.GetBoard)
	s.router.POST("/board/reserve", withUser(boardHandler.Reserve))
	s.router.DELETE("/board/reserve", withUser(boardHandler.Unreserve))
	s.router.DELETE("/admin/slots/:id/reservation", adminHandler.ClearSlot)
	s.router.POST("/admin/hours", adminHandler.CreateHour)
	s.router.PUT("/admin/hours", adminHandler.RenameHour)
}

func TestBoardHandlerSuite(t *testing.T) {
	suite.Run(t, new(BoardHandlerTestSuite))
}

func (s *BoardHandlerTestSuite) perform(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *BoardHandlerTestSuite) TestGetBoard() {
	s.Run("success: groups slots into rows", func() {
		s.queries.slots = []*queries.BoardSlotView{
			{ID: 1, TimeLabel: "09:00", ColIndex: 1, Active: true},
			{ID: 2, TimeLabel: "09:00", ColIndex: 2, Active: true},
			{ID: 3, TimeLabel: "10:00", ColIndex: 1, Active: true},
		}

		rec := s.perform(http.MethodGet, "/board", nil)
		s.Equal(http.StatusOK, rec.Code)

		var resp struct {
			Rows []struct {
				TimeLabel string `json:"time_label"`
				Slots     []struct {
					ID int64 `json:"id"`
				} `json:"slots"`
			} `json:"rows"`
		}
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Require().Len(resp.Rows, 2)
		s.Equal("09:00", resp.Rows[0].TimeLabel)
		s.Len(resp.Rows[0].Slots, 2)
		s.Equal("10:00", resp.Rows[1].TimeLabel)
		s.Len(resp.Rows[1].Slots, 1)
	})

	s.Run("error: 500 on query failure", func() {
		s.queries.err = errors.New("database error")
		rec := s.perform(http.MethodGet, "/board", nil)
		s.Equal(http.StatusInternalServerError, rec.Code)
		s.queries.err = nil
	})
}

func (s *BoardHandlerTestSuite) TestReserve() {
	body := gin.H{"slot_id": 7}

	s.Run("success: 204 and passes identity through", func() {
		s.commands.err = nil
		rec := s.perform(http.MethodPost, "/board/reserve", body)
		s.Equal(http.StatusNoContent, rec.Code)
		s.Equal("reserve", s.commands.lastOp)
		s.Equal(int64(7), s.commands.lastSlotID)
		s.Equal(s.userID, s.commands.lastUserID)
	})

	s.Run("error: 400 on malformed body", func() {
		rec := s.perform(http.MethodPost, "/board/reserve", gin.H{"slot_id": "x"})
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: maps engine errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{name: "slot not found", commandsError: errs.ErrSlotNotFound, expectedStatus: http.StatusNotFound},
			{name: "slot not active", commandsError: errs.ErrSlotNotActive, expectedStatus: http.StatusUnprocessableEntity},
			{name: "slot taken", commandsError: errs.ErrSlotTaken, expectedStatus: http.StatusConflict},
			{name: "slot taken via storage conflict", commandsError: errs.Mark(errors.New("duplicate key"), errs.ErrSlotTaken), expectedStatus: http.StatusConflict},
			{name: "user not found", commandsError: errs.ErrUserNotFound, expectedStatus: http.StatusNotFound},
			{name: "internal error", commandsError: errors.New("database error"), expectedStatus: http.StatusInternalServerError},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.commands.err = tc.commandsError
				rec := s.perform(http.MethodPost, "/board/reserve", body)
				s.Equal(tc.expectedStatus, rec.Code)
			})
		}
		s.commands.err = nil
	})
}

func (s *BoardHandlerTestSuite) TestUnreserve() {
	s.Run("success: 204 even when nothing was held", func() {
		s.commands.err = nil
		rec := s.perform(http.MethodDelete, "/board/reserve", nil)
		s.Equal(http.StatusNoContent, rec.Code)
		s.Equal("unreserve", s.commands.lastOp)
	})
}

func (s *BoardHandlerTestSuite) TestAdminClearSlot() {
	s.Run("success: 204", func() {
		s.commands.err = nil
		rec := s.perform(http.MethodDelete, "/admin/slots/12/reservation", nil)
		s.Equal(http.StatusNoContent, rec.Code)
		s.Equal(int64(12), s.commands.lastSlotID)
	})

	s.Run("error: 400 on non-numeric slot id", func() {
		rec := s.perform(http.MethodDelete, "/admin/slots/abc/reservation", nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *BoardHandlerTestSuite) TestCreateHour() {
	body := gin.H{"time_label": "09:15"}

	s.Run("success: 201", func() {
		s.commands.err = nil
		rec := s.perform(http.MethodPost, "/admin/hours", body)
		s.Equal(http.StatusCreated, rec.Code)
	})

	s.Run("error: maps engine errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{name: "invalid time label", commandsError: errs.Mark(errors.New("bad label"), errs.ErrInvalidTimeLabel), expectedStatus: http.StatusBadRequest},
			{name: "hour exists", commandsError: errs.ErrHourExists, expectedStatus: http.StatusConflict},
			{name: "internal error", commandsError: errors.New("database error"), expectedStatus: http.StatusInternalServerError},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.commands.err = tc.commandsError
				rec := s.perform(http.MethodPost, "/admin/hours", body)
				s.Equal(tc.expectedStatus, rec.Code)
			})
		}
		s.commands.err = nil
	})

	s.Run("error: message is carried in the error envelope", func() {
		s.commands.err = errs.ErrInvalidTimeLabel
		rec := s.perform(http.MethodPost, "/admin/hours", body)
		s.Equal(http.StatusBadRequest, rec.Code)

		var resp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal("Time label must match HH:MM", resp.Error.Message)
		s.commands.err = nil
	})
}

func (s *BoardHandlerTestSuite) TestRenameHour() {
	s.Run("success: 204", func() {
		s.commands.err = nil
		rec := s.perform(http.MethodPut, "/admin/hours", gin.H{"from": "09:00", "to": "09:30"})
		s.Equal(http.StatusNoContent, rec.Code)
		s.Equal("rename_hour", s.commands.lastOp)
	})

	s.Run("error: 400 when a label is missing", func() {
		rec := s.perform(http.MethodPut, "/admin/hours", gin.H{"from": "09:00"})
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

var _ usecase.BoardCommands = (*stubBoardCommands)(nil)
var _ queries.BoardQueries = (*stubBoardQueries)(nil)
