package response

import "slotboard/internal/usecase/queries"

// BoardResponse groups slots into rows so clients can render the grid
// without re-sorting. Rows arrive in chronological order and slots within a
// row in column order.
type BoardResponse struct {
	Rows []BoardRow `json:"rows"`
}

type BoardRow struct {
	TimeLabel string                   `json:"time_label"`
	Slots     []*queries.BoardSlotView `json:"slots"`
}

func FromBoardSlots(slots []*queries.BoardSlotView) BoardResponse {
	resp := BoardResponse{Rows: []BoardRow{}}
	for _, s := range slots {
		n := len(resp.Rows)
		if n == 0 || resp.Rows[n-1].TimeLabel != s.TimeLabel {
			resp.Rows = append(resp.Rows, BoardRow{TimeLabel: s.TimeLabel})
			n++
		}
		resp.Rows[n-1].Slots = append(resp.Rows[n-1].Slots, s)
	}
	return resp
}
