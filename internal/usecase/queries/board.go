package queries

import (
	"context"

	"github.com/google/uuid"
)

// BoardSlotView is the denormalized read model of one cell: slot state plus
// the occupant's identity when a reservation references it.
type BoardSlotView struct {
	ID           int64      `json:"id"`
	TimeLabel    string     `json:"time_label"`
	ColIndex     int        `json:"col_index"`
	Active       bool       `json:"active"`
	AdminLock    bool       `json:"admin_lock"`
	Label        string     `json:"label"`
	Color        string     `json:"color"`
	OccupantID   *uuid.UUID `json:"occupant_id,omitempty"`
	OccupantName *string    `json:"occupant_name,omitempty"`
}

type BoardQueries interface {
	// ListSlots returns every slot ordered chronologically by parsed time
	// label, then by column index.
	ListSlots(ctx context.Context) ([]*BoardSlotView, error)
}

type BoardViewRepo interface {
	ListSlotsWithOccupants(ctx context.Context) ([]*BoardSlotView, error)
}

type boardQueriesImpl struct {
	repo BoardViewRepo
}

func NewBoardQueries(repo BoardViewRepo) BoardQueries {
	return &boardQueriesImpl{repo: repo}
}

func (q *boardQueriesImpl) ListSlots(ctx context.Context) ([]*BoardSlotView, error) {
	return q.repo.ListSlotsWithOccupants(ctx)
}
