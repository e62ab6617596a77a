package models

// Status is a per-project workflow state such as "To Do" or "In Progress".
// At most one status per project is the default.
type Status struct {
	ID          int    `json:"id"`
	ProjectID   int    `json:"project_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Position    int    `json:"position"`
	IsDefault   bool   `json:"is_default"`
}

func (s *Status) GetID() int {
	return s.ID
}
