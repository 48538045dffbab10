package repository

import (
	"context"

	"slotboard/internal/domain/slot"
	"slotboard/internal/infra"
	"slotboard/internal/infra/db"
	"slotboard/internal/pkg/pgconv"
)

// SlotRepository owns the slots table. Display fields are only ever written
// here on behalf of the board engine, inside the engine's transaction.
type SlotRepository struct{}

func NewSlotRepository() *SlotRepository {
	return &SlotRepository{}
}

const slotColumns = `id, time_label, col_index, row_index, active, admin_lock, label, color`

func scanSlot(row interface{ Scan(dest ...any) error }) (*slot.Slot, error) {
	var s slot.Slot
	var color string
	err := row.Scan(&s.ID, &s.TimeLabel, &s.ColIndex, &s.RowIndex, &s.Active, &s.AdminLock, &s.Label, &color)
	if err != nil {
		return nil, err
	}
	s.Color = slot.Color(color)
	return &s, nil
}

// FindForUpdate row-locks the slot for the remainder of the transaction.
// Concurrent reserve/admin operations on the same slot serialize here.
func (r *SlotRepository) FindForUpdate(ctx context.Context, tx db.DBTX, id int64) (*slot.Slot, error) {
	row := tx.QueryRow(ctx,
		`SELECT `+slotColumns+` FROM slots WHERE id = $1 FOR UPDATE`, id)

	s, err := scanSlot(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("slot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock slot", err)
	}
	return s, nil
}

// ListHourForUpdate locks every slot of one time row, ordered by column then id
// so the lock order is deterministic across concurrent structural operations.
func (r *SlotRepository) ListHourForUpdate(ctx context.Context, tx db.DBTX, timeLabel string) ([]slot.Slot, error) {
	rows, err := tx.Query(ctx,
		`SELECT `+slotColumns+` FROM slots WHERE time_label = $1 ORDER BY col_index, id FOR UPDATE`, timeLabel)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock hour slots", err)
	}
	defer rows.Close()

	var result []slot.Slot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan slot", err)
		}
		result = append(result, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read hour slots", err)
	}
	return result, nil
}

// LockHour takes a transaction-scoped advisory lock on the time label.
// Concurrent structural operations on the same row serialize here even
// when no slot rows exist yet to lock.
func (r *SlotRepository) LockHour(ctx context.Context, tx db.DBTX, timeLabel string) error {
	_, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, timeLabel)
	if err != nil {
		return infra.WrapRepoErr("failed to lock hour label", err)
	}
	return nil
}

func (r *SlotRepository) HourExists(ctx context.Context, tx db.DBTX, timeLabel string) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM slots WHERE time_label = $1)`, timeLabel).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check hour existence", err)
	}
	return exists, nil
}

func (r *SlotRepository) Insert(ctx context.Context, tx db.DBTX, s *slot.Slot) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx,
		`INSERT INTO slots (time_label, col_index, row_index, active, admin_lock, label, color)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		s.TimeLabel, s.ColIndex, s.RowIndex, s.Active, s.AdminLock, s.Label, s.Color.String()).Scan(&id)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to insert slot", err)
	}
	return id, nil
}

func (r *SlotRepository) RenameHour(ctx context.Context, tx db.DBTX, from, to string, rowIndex int) error {
	_, err := tx.Exec(ctx,
		`UPDATE slots SET time_label = $2, row_index = $3 WHERE time_label = $1`, from, to, rowIndex)
	if err != nil {
		return infra.WrapRepoErr("failed to rename hour", err)
	}
	return nil
}

// DeleteHour removes every slot of the row; reservations cascade.
func (r *SlotRepository) DeleteHour(ctx context.Context, tx db.DBTX, timeLabel string) error {
	_, err := tx.Exec(ctx, `DELETE FROM slots WHERE time_label = $1`, timeLabel)
	if err != nil {
		return infra.WrapRepoErr("failed to delete hour", err)
	}
	return nil
}

func (r *SlotRepository) Delete(ctx context.Context, tx db.DBTX, id int64) error {
	_, err := tx.Exec(ctx, `DELETE FROM slots WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete slot", err)
	}
	return nil
}

func (r *SlotRepository) UpdateDisplay(ctx context.Context, tx db.DBTX, id int64, label string, color slot.Color) error {
	_, err := tx.Exec(ctx,
		`UPDATE slots SET label = $2, color = $3 WHERE id = $1`, id, label, color.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update slot display", err)
	}
	return nil
}

func (r *SlotRepository) SetActive(ctx context.Context, tx db.DBTX, id int64, active bool) error {
	_, err := tx.Exec(ctx, `UPDATE slots SET active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return infra.WrapRepoErr("failed to set slot active flag", err)
	}
	return nil
}

func (r *SlotRepository) SetAdminLock(ctx context.Context, tx db.DBTX, id int64, lock bool) error {
	_, err := tx.Exec(ctx, `UPDATE slots SET admin_lock = $2 WHERE id = $1`, id, lock)
	if err != nil {
		return infra.WrapRepoErr("failed to set slot admin lock", err)
	}
	return nil
}

// ResetVacantUnlocked resets the cosmetic state of every slot that has no
// reservation and no admin lock. Occupied and admin-locked slots are untouched.
func (r *SlotRepository) ResetVacantUnlocked(ctx context.Context, tx db.DBTX) error {
	_, err := tx.Exec(ctx,
		`UPDATE slots SET label = '', color = ''
		 WHERE admin_lock = FALSE
		   AND NOT EXISTS (SELECT 1 FROM reservations r WHERE r.slot_id = slots.id)`)
	if err != nil {
		return infra.WrapRepoErr("failed to reset vacant slots", err)
	}
	return nil
}

// ResetAllDisplay is the unconditional full reset: every slot back to neutral,
// admin locks released. Reservations are expected to be deleted by the caller
// in the same transaction.
func (r *SlotRepository) ResetAllDisplay(ctx context.Context, tx db.DBTX) error {
	_, err := tx.Exec(ctx, `UPDATE slots SET label = '', color = '', admin_lock = FALSE`)
	if err != nil {
		return infra.WrapRepoErr("failed to reset all slots", err)
	}
	return nil
}
