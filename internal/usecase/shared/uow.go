package shared

import (
	"context"

	"slotboard/internal/domain/slot"
	"slotboard/internal/domain/user"
	"slotboard/internal/infra/db"
	"slotboard/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
}

type Tx interface {
	Slots() SlotRepository
	Reservations() ReservationRepository
	Users() UserRepository
	DB() db.DBTX
}

type SlotRepository interface {
	FindForUpdate(ctx context.Context, tx db.DBTX, id int64) (*slot.Slot, error)
	ListHourForUpdate(ctx context.Context, tx db.DBTX, timeLabel string) ([]slot.Slot, error)
	LockHour(ctx context.Context, tx db.DBTX, timeLabel string) error
	HourExists(ctx context.Context, tx db.DBTX, timeLabel string) (bool, error)
	Insert(ctx context.Context, tx db.DBTX, s *slot.Slot) (int64, error)
	RenameHour(ctx context.Context, tx db.DBTX, from, to string, rowIndex int) error
	DeleteHour(ctx context.Context, tx db.DBTX, timeLabel string) error
	Delete(ctx context.Context, tx db.DBTX, id int64) error
	UpdateDisplay(ctx context.Context, tx db.DBTX, id int64, label string, color slot.Color) error
	SetActive(ctx context.Context, tx db.DBTX, id int64, active bool) error
	SetAdminLock(ctx context.Context, tx db.DBTX, id int64, lock bool) error
	ResetVacantUnlocked(ctx context.Context, tx db.DBTX) error
	ResetAllDisplay(ctx context.Context, tx db.DBTX) error
}

type ReservationRepository interface {
	Create(ctx context.Context, tx db.DBTX, slotID int64, userID uuid.UUID) error
	DeleteByUser(ctx context.Context, tx db.DBTX, userID uuid.UUID) (int64, bool, error)
	DeleteBySlot(ctx context.Context, tx db.DBTX, slotID int64) error
	DeleteAll(ctx context.Context, tx db.DBTX) error
	OccupiedSlotIDs(ctx context.Context, tx db.DBTX, slotIDs []int64) (map[int64]bool, error)
}

type UserRepository interface {
	Create(ctx context.Context, tx db.DBTX, u *user.User) (uuid.UUID, error)
	FindByEmail(ctx context.Context, tx db.DBTX, email user.Email) (*readmodel.AuthorizedUserRM, string, error)
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*readmodel.AuthorizedUserRM, error)
}
