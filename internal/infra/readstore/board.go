package readstore

import (
	"context"
	"sort"

	"slotboard/internal/domain/slot"
	"slotboard/internal/domain/user"
	"slotboard/internal/infra"
	"slotboard/internal/infra/db"
	"slotboard/internal/pkg/pgconv"
	"slotboard/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
)

type BoardReadStore struct {
	db db.DBTX
}

func NewBoardReadStore(dbtx db.DBTX) *BoardReadStore {
	return &BoardReadStore{db: dbtx}
}

// ListSlotsWithOccupants joins the occupant onto each slot. Ordering is done
// by parsing the time label rather than trusting row_index, which is kept as
// an advisory hint only.
func (r *BoardReadStore) ListSlotsWithOccupants(ctx context.Context) ([]*queries.BoardSlotView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.time_label, s.col_index, s.active, s.admin_lock, s.label, s.color,
		        res.user_id, u.first_name, u.last_name
		 FROM slots s
		 LEFT JOIN reservations res ON res.slot_id = s.id
		 LEFT JOIN users u ON u.id = res.user_id`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list board slots", err)
	}
	defer rows.Close()

	var result []*queries.BoardSlotView
	for rows.Next() {
		var v queries.BoardSlotView
		var occupantID pgtype.UUID
		var firstName, lastName pgtype.Text
		err := rows.Scan(&v.ID, &v.TimeLabel, &v.ColIndex, &v.Active, &v.AdminLock, &v.Label, &v.Color,
			&occupantID, &firstName, &lastName)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan board slot", err)
		}

		if v.OccupantID = pgconv.UUIDPtrFromPgtype(occupantID); v.OccupantID != nil {
			name := user.DisplayName(firstName.String, lastName.String)
			v.OccupantName = &name
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read board slots", err)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if mi, mj := slot.Minutes(result[i].TimeLabel), slot.Minutes(result[j].TimeLabel); mi != mj {
			return mi < mj
		}
		return result[i].ColIndex < result[j].ColIndex
	})

	return result, nil
}
