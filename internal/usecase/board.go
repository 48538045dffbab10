package usecase

import (
	"context"

	"slotboard/internal/domain/slot"
	"slotboard/internal/domain/user"
	"slotboard/internal/infra"
	"slotboard/internal/notifier"
	"slotboard/internal/pkg/config"
	"slotboard/internal/pkg/errs"
	"slotboard/internal/usecase/shared"

	"github.com/google/uuid"
)

// BoardCommands is the reservation engine: every mutation of the slot grid
// goes through one of these operations, each a single transaction that keeps
// slot display state in lock-step with occupancy and signals the change
// notifier exactly once on success.
type BoardCommands interface {
	Reserve(ctx context.Context, userID uuid.UUID, slotID int64) error
	Unreserve(ctx context.Context, userID uuid.UUID) error
	AdminClear(ctx context.Context, slotID int64) error
	AdminSetActive(ctx context.Context, slotID int64, active bool) error
	AdminOverrideLabel(ctx context.Context, slotID int64, label string, lock bool) error
	CreateHour(ctx context.Context, timeLabel string) error
	RenameHour(ctx context.Context, from, to string) error
	DeleteHour(ctx context.Context, timeLabel string) error
	NormalizeHour(ctx context.Context, timeLabel string) error
	BulkCleanup(ctx context.Context) error
	ClearAll(ctx context.Context) error
}

type boardUseCaseImpl struct {
	uow      shared.UnitOfWork
	notifier notifier.Notifier
	openCols int
}

func NewBoardUseCase(uow shared.UnitOfWork, n notifier.Notifier, cfg config.BoardConfig) BoardCommands {
	openCols := cfg.DefaultOpenCols
	if openCols < 0 || openCols > slot.ColumnsPerRow {
		openCols = slot.ColumnsPerRow
	}
	return &boardUseCaseImpl{
		uow:      uow,
		notifier: n,
		openCols: openCols,
	}
}

// Reserve claims a slot for a user. The target row is locked first, the
// flags re-checked under the lock, and the insert relies on the store's
// uniqueness constraints as the final arbiter: of any set of concurrent
// attempts on one slot exactly one commits, the rest see ErrSlotTaken.
// Releasing the user's previous slot and claiming the new one are
// all-or-nothing; a loser keeps its old reservation.
func (b *boardUseCaseImpl) Reserve(ctx context.Context, userID uuid.UUID, slotID int64) error {
	err := b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := tx.Slots().FindForUpdate(ctx, tx.DB(), slotID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrSlotNotFound)
			}
			return err
		}
		if !s.Reservable() {
			return errs.ErrSlotNotActive
		}

		occupant, err := tx.Users().FindByID(ctx, tx.DB(), userID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrUserNotFound)
			}
			return err
		}

		// One slot per user: displace any previous reservation. If the
		// claim below fails the whole transaction rolls back and the
		// previous reservation survives.
		freedSlotID, freed, err := tx.Reservations().DeleteByUser(ctx, tx.DB(), userID)
		if err != nil {
			return err
		}
		if freed && freedSlotID != slotID {
			if err := tx.Slots().UpdateDisplay(ctx, tx.DB(), freedSlotID, "", slot.ColorNeutral); err != nil {
				return err
			}
		}

		if err := tx.Reservations().Create(ctx, tx.DB(), slotID, userID); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, errs.ErrSlotTaken)
			}
			return err
		}

		display := user.DisplayName(occupant.FirstName, occupant.LastName)
		return tx.Slots().UpdateDisplay(ctx, tx.DB(), slotID, display, slot.ColorReserved)
	})
	if err != nil {
		return err
	}

	b.notifier.BoardChanged(ctx)
	return nil
}

// Unreserve releases the user's reservation, if any. Idempotent.
func (b *boardUseCaseImpl) Unreserve(ctx context.Context, userID uuid.UUID) error {
	err := b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		freedSlotID, freed, err := tx.Reservations().DeleteByUser(ctx, tx.DB(), userID)
		if err != nil {
			return err
		}
		if !freed {
			return nil
		}
		return tx.Slots().UpdateDisplay(ctx, tx.DB(), freedSlotID, "", slot.ColorNeutral)
	})
	if err != nil {
		return err
	}

	b.notifier.BoardChanged(ctx)
	return nil
}

// AdminClear vacates a slot and releases any admin lock. Idempotent; clearing
// a missing slot is a no-op.
func (b *boardUseCaseImpl) AdminClear(ctx context.Context, slotID int64) error {
	err := b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Slots().FindForUpdate(ctx, tx.DB(), slotID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil
			}
			return err
		}

		if err := tx.Reservations().DeleteBySlot(ctx, tx.DB(), slotID); err != nil {
			return err
		}
		if err := tx.Slots().UpdateDisplay(ctx, tx.DB(), slotID, "", slot.ColorNeutral); err != nil {
			return err
		}
		return tx.Slots().SetAdminLock(ctx, tx.DB(), slotID, false)
	})
	if err != nil {
		return err
	}

	b.notifier.BoardChanged(ctx)
	return nil
}

// AdminOverrideLabel clears any reservation and pins administrator-authored
// text onto the slot. With lock=true the slot also stops being reservable and
// survives bulk cleanup.
func (b *boardUseCaseImpl) AdminOverrideLabel(ctx context.Context, slotID int64, label string, lock bool) error {
	err := b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Slots().FindForUpdate(ctx, tx.DB(), slotID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrSlotNotFound)
			}
			return err
		}

		if err := tx.Reservations().DeleteBySlot(ctx, tx.DB(), slotID); err != nil {
			return err
		}
		if err := tx.Slots().UpdateDisplay(ctx, tx.DB(), slotID, label, slot.ColorOverride); err != nil {
			return err
		}
		return tx.Slots().SetAdminLock(ctx, tx.DB(), slotID, lock)
	})
	if err != nil {
		return err
	}

	b.notifier.BoardChanged(ctx)
	return nil
}

// AdminSetActive opens or closes a slot. Closing is a compound operation:
// an inactive slot cannot retain an occupant, so any reservation is cleared
// first, inside the same transaction.
func (b *boardUseCaseImpl) AdminSetActive(ctx context.Context, slotID int64, active bool) error {
	err := b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Slots().FindForUpdate(ctx, tx.DB(), slotID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrSlotNotFound)
			}
			return err
		}

		if !active {
			if err := tx.Reservations().DeleteBySlot(ctx, tx.DB(), slotID); err != nil {
				return err
			}
			if err := tx.Slots().UpdateDisplay(ctx, tx.DB(), slotID, "", slot.ColorNeutral); err != nil {
				return err
			}
		}
		return tx.Slots().SetActive(ctx, tx.DB(), slotID, active)
	})
	if err != nil {
		return err
	}

	b.notifier.BoardChanged(ctx)
	return nil
}

// CreateHour adds a new time row: a full set of columns, the first
// openCols of them open for reservation, the rest closed.
func (b *boardUseCaseImpl) CreateHour(ctx context.Context, timeLabel string) error {
	label, err := slot.NewTimeLabel(timeLabel)
	if err != nil {
		return errs.Mark(err, errs.ErrInvalidTimeLabel)
	}

	err = b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// Serializes concurrent creates of the same label; without it two
		// transactions can both pass the existence check and insert.
		if err := tx.Slots().LockHour(ctx, tx.DB(), label.Value()); err != nil {
			return err
		}
		exists, err := tx.Slots().HourExists(ctx, tx.DB(), label.Value())
		if err != nil {
			return err
		}
		if exists {
			return errs.ErrHourExists
		}

		for col := 1; col <= slot.ColumnsPerRow; col++ {
			s := b.defaultSlot(label, col)
			if _, err := tx.Slots().Insert(ctx, tx.DB(), s); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	b.notifier.BoardChanged(ctx)
	return nil
}

// RenameHour re-labels every slot of a row atomically.
func (b *boardUseCaseImpl) RenameHour(ctx context.Context, from, to string) error {
	fromLabel, err := slot.NewTimeLabel(from)
	if err != nil {
		return errs.Mark(err, errs.ErrInvalidTimeLabel)
	}
	toLabel, err := slot.NewTimeLabel(to)
	if err != nil {
		return errs.Mark(err, errs.ErrInvalidTimeLabel)
	}

	err = b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Slots().LockHour(ctx, tx.DB(), toLabel.Value()); err != nil {
			return err
		}
		exists, err := tx.Slots().HourExists(ctx, tx.DB(), toLabel.Value())
		if err != nil {
			return err
		}
		if exists {
			return errs.ErrHourExists
		}
		return tx.Slots().RenameHour(ctx, tx.DB(), fromLabel.Value(), toLabel.Value(), toLabel.Minutes())
	})
	if err != nil {
		return err
	}

	b.notifier.BoardChanged(ctx)
	return nil
}

// DeleteHour removes a row and, cascading, its reservations. Idempotent:
// deleting a non-existent hour is a no-op.
func (b *boardUseCaseImpl) DeleteHour(ctx context.Context, timeLabel string) error {
	label, err := slot.NewTimeLabel(timeLabel)
	if err != nil {
		return errs.Mark(err, errs.ErrInvalidTimeLabel)
	}

	err = b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Slots().DeleteHour(ctx, tx.DB(), label.Value())
	})
	if err != nil {
		return err
	}

	b.notifier.BoardChanged(ctx)
	return nil
}

// NormalizeHour is a structural repair for one row, intended for use after
// manual data edits, not on the hot reservation path. It deduplicates
// columns (lowest id wins), discards columns outside the grid, synthesizes
// missing ones, and re-applies the default state to every slot that is
// neither occupied nor admin-locked. Safe to run repeatedly.
func (b *boardUseCaseImpl) NormalizeHour(ctx context.Context, timeLabel string) error {
	label, err := slot.NewTimeLabel(timeLabel)
	if err != nil {
		return errs.Mark(err, errs.ErrInvalidTimeLabel)
	}

	err = b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rows, err := tx.Slots().ListHourForUpdate(ctx, tx.DB(), label.Value())
		if err != nil {
			return err
		}

		keep := make(map[int]slot.Slot, slot.ColumnsPerRow)
		for _, s := range rows {
			if s.ColIndex < 1 || s.ColIndex > slot.ColumnsPerRow {
				if err := tx.Slots().Delete(ctx, tx.DB(), s.ID); err != nil {
					return err
				}
				continue
			}
			if _, dup := keep[s.ColIndex]; dup {
				// Lowest id wins; ListHourForUpdate orders by (col, id).
				if err := tx.Slots().Delete(ctx, tx.DB(), s.ID); err != nil {
					return err
				}
				continue
			}
			keep[s.ColIndex] = s
		}

		keptIDs := make([]int64, 0, len(keep))
		for _, s := range keep {
			keptIDs = append(keptIDs, s.ID)
		}
		occupied, err := tx.Reservations().OccupiedSlotIDs(ctx, tx.DB(), keptIDs)
		if err != nil {
			return err
		}

		for col := 1; col <= slot.ColumnsPerRow; col++ {
			s, ok := keep[col]
			if !ok {
				if _, err := tx.Slots().Insert(ctx, tx.DB(), b.defaultSlot(label, col)); err != nil {
					return err
				}
				continue
			}
			if occupied[s.ID] || s.AdminLock {
				continue
			}

			wantActive := col <= b.openCols
			if s.Active != wantActive {
				if err := tx.Slots().SetActive(ctx, tx.DB(), s.ID, wantActive); err != nil {
					return err
				}
			}
			if s.Label != "" || s.Color != slot.ColorNeutral {
				if err := tx.Slots().UpdateDisplay(ctx, tx.DB(), s.ID, "", slot.ColorNeutral); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	b.notifier.BoardChanged(ctx)
	return nil
}

// BulkCleanup resets cosmetic state on every vacant, unlocked slot.
func (b *boardUseCaseImpl) BulkCleanup(ctx context.Context) error {
	err := b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Slots().ResetVacantUnlocked(ctx, tx.DB())
	})
	if err != nil {
		return err
	}

	b.notifier.BoardChanged(ctx)
	return nil
}

// ClearAll is the end-of-day reset: every reservation deleted, every slot
// back to neutral, admin locks released.
func (b *boardUseCaseImpl) ClearAll(ctx context.Context) error {
	err := b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Reservations().DeleteAll(ctx, tx.DB()); err != nil {
			return err
		}
		return tx.Slots().ResetAllDisplay(ctx, tx.DB())
	})
	if err != nil {
		return err
	}

	b.notifier.BoardChanged(ctx)
	return nil
}

func (b *boardUseCaseImpl) defaultSlot(label slot.TimeLabel, col int) *slot.Slot {
	return &slot.Slot{
		TimeLabel: label.Value(),
		ColIndex:  col,
		RowIndex:  label.Minutes(),
		Active:    col <= b.openCols,
		AdminLock: false,
		Label:     "",
		Color:     slot.ColorNeutral,
	}
}
