package actionitem

// ToggleRequest sets the completion flag on an action item
type ToggleRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}
