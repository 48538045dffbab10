package repository

import (
	"context"

	"slotboard/internal/infra"
	"slotboard/internal/infra/db"
	"slotboard/internal/pkg/pgconv"

	"github.com/google/uuid"
)

// ReservationRepository owns the reservations table. The table carries
// UNIQUE(slot_id) and UNIQUE(user_id); those constraints, not pre-checks,
// are the final arbiter for racing reserve attempts.
type ReservationRepository struct{}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{}
}

func (r *ReservationRepository) Create(ctx context.Context, tx db.DBTX, slotID int64, userID uuid.UUID) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO reservations (id, slot_id, user_id) VALUES ($1, $2, $3)`,
		uuid.New(), slotID, userID)
	if err != nil {
		if pgconv.IsUniqueViolation(err, "") {
			return infra.WrapRepoErr("slot or user already reserved", err, infra.KindDuplicateKey)
		}
		if pgconv.IsForeignKeyViolation(err) {
			return infra.WrapRepoErr("slot or user does not exist", err, infra.KindForeignKeyViolated)
		}
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}

// DeleteByUser removes the user's reservation if any and returns the freed
// slot id so the caller can reset that slot's display state.
func (r *ReservationRepository) DeleteByUser(ctx context.Context, tx db.DBTX, userID uuid.UUID) (int64, bool, error) {
	var slotID int64
	err := tx.QueryRow(ctx,
		`DELETE FROM reservations WHERE user_id = $1 RETURNING slot_id`, userID).Scan(&slotID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return 0, false, nil
		}
		return 0, false, infra.WrapRepoErr("failed to delete reservation by user", err)
	}
	return slotID, true, nil
}

func (r *ReservationRepository) DeleteBySlot(ctx context.Context, tx db.DBTX, slotID int64) error {
	_, err := tx.Exec(ctx, `DELETE FROM reservations WHERE slot_id = $1`, slotID)
	if err != nil {
		return infra.WrapRepoErr("failed to delete reservation by slot", err)
	}
	return nil
}

func (r *ReservationRepository) DeleteAll(ctx context.Context, tx db.DBTX) error {
	_, err := tx.Exec(ctx, `DELETE FROM reservations`)
	if err != nil {
		return infra.WrapRepoErr("failed to delete all reservations", err)
	}
	return nil
}

// OccupiedSlotIDs reports which of the given slots currently hold a reservation.
func (r *ReservationRepository) OccupiedSlotIDs(ctx context.Context, tx db.DBTX, slotIDs []int64) (map[int64]bool, error) {
	occupied := make(map[int64]bool, len(slotIDs))
	if len(slotIDs) == 0 {
		return occupied, nil
	}

	rows, err := tx.Query(ctx,
		`SELECT slot_id FROM reservations WHERE slot_id = ANY($1)`, slotIDs)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query occupied slots", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan occupied slot", err)
		}
		occupied[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read occupied slots", err)
	}
	return occupied, nil
}
