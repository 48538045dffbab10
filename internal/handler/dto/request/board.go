package request

type ReserveRequest struct {
	SlotID int64 `json:"slot_id" binding:"required,min=1"`
}

type OverrideLabelRequest struct {
	Label string `json:"label" binding:"max=200"`
	Lock  bool   `json:"lock"`
}

type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type CreateHourRequest struct {
	TimeLabel string `json:"time_label" binding:"required"`
}

type RenameHourRequest struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}
