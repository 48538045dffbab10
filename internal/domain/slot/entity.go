package slot

// Slot is one reservable cell of the board. Label and color are a cached
// projection of the slot's reservation (or of admin-authored text when
// AdminLock is set); they are mutated only through the board engine.
type Slot struct {
	ID        int64
	TimeLabel string
	ColIndex  int
	RowIndex  int
	Active    bool
	AdminLock bool
	Label     string
	Color     Color
}

// Reservable reports whether an ordinary user may claim the slot,
// ignoring occupancy.
func (s *Slot) Reservable() bool {
	return s.Active && !s.AdminLock
}
