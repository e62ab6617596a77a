package httpapi

import (
	"net/http"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/services/task"
)

type createTaskBody struct {
	ProjectID     int          `json:"project_id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	DueDate       *models.Date `json:"due_date"`
	StatusID      *int         `json:"status_id"`
	EffortScore   int          `json:"effort_score"`
	ImpactScore   int          `json:"impact_score"`
	DependencyMap []int        `json:"dependency_map"`
	BlockedBy     []int        `json:"blocked_by"`
	AssignedTo    *int         `json:"assigned_to"`
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var body createTaskBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeServiceError(w, r, err)
		return
	}
	res, err := s.app.TaskService.CreateTask(r.Context(), task.CreateTaskRequest{
		ProjectID:     body.ProjectID,
		Title:         body.Title,
		Description:   body.Description,
		DueDate:       body.DueDate,
		StatusID:      body.StatusID,
		EffortScore:   body.EffortScore,
		ImpactScore:   body.ImpactScore,
		DependencyMap: body.DependencyMap,
		BlockedBy:     body.BlockedBy,
		AssignedTo:    body.AssignedTo,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	t, err := s.app.TaskService.GetTask(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	tasks, err := s.app.TaskService.ListTasksByProject(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if tasks == nil {
		tasks = []*models.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

// updateTaskBody mirrors task.UpdateTaskRequest. Absent fields are left alone;
// the clear_* flags null out optional references.
type updateTaskBody struct {
	Title         *string      `json:"title"`
	Description   *string      `json:"description"`
	DueDate       *models.Date `json:"due_date"`
	ClearDueDate  bool         `json:"clear_due_date"`
	StatusID      *int         `json:"status_id"`
	ClearStatus   bool         `json:"clear_status"`
	EffortScore   *int         `json:"effort_score"`
	ImpactScore   *int         `json:"impact_score"`
	AssignedTo    *int         `json:"assigned_to"`
	ClearAssignee bool         `json:"clear_assignee"`
	DependencyMap *[]int       `json:"dependency_map"`
	BlockedBy     *[]int       `json:"blocked_by"`
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	var body updateTaskBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeServiceError(w, r, err)
		return
	}
	res, err := s.app.TaskService.UpdateTask(r.Context(), task.UpdateTaskRequest{
		TaskID:        id,
		Title:         body.Title,
		Description:   body.Description,
		DueDate:       body.DueDate,
		ClearDueDate:  body.ClearDueDate,
		StatusID:      body.StatusID,
		ClearStatus:   body.ClearStatus,
		EffortScore:   body.EffortScore,
		ImpactScore:   body.ImpactScore,
		AssignedTo:    body.AssignedTo,
		ClearAssignee: body.ClearAssignee,
		DependencyMap: body.DependencyMap,
		BlockedBy:     body.BlockedBy,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	update, err := s.app.TaskService.DeleteTask(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, update)
}
