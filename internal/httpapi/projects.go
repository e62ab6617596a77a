package httpapi

import (
	"fmt"
	"net/http"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/services/project"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/services/status"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/services/user"
)

type createUserBody struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var body createUserBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeServiceError(w, r, err)
		return
	}
	u, err := s.app.UserService.CreateUser(r.Context(), user.CreateUserRequest{Email: body.Email, Name: body.Name})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	u, err := s.app.UserService.GetUser(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.app.ProjectService.ListProjects(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

type createProjectBody struct {
	Name                string `json:"name"`
	Description         string `json:"description"`
	CreatedBy           *int   `json:"created_by"`
	SkipDefaultStatuses bool   `json:"skip_default_statuses"`
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var body createProjectBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeServiceError(w, r, err)
		return
	}
	p, err := s.app.ProjectService.CreateProject(r.Context(), project.CreateProjectRequest{
		Name:                body.Name,
		Description:         body.Description,
		CreatedBy:           body.CreatedBy,
		SkipDefaultStatuses: body.SkipDefaultStatuses,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

type projectView struct {
	*models.Project
	Members  []int               `json:"members"`
	Statuses []status.StatusView `json:"statuses"`
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	ctx := r.Context()
	p, err := s.app.ProjectService.GetProject(ctx, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	members, err := s.app.ProjectService.ListMembers(ctx, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	statuses, err := s.app.StatusService.ListStatuses(ctx, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if members == nil {
		members = []int{}
	}
	writeJSON(w, http.StatusOK, projectView{
		Project:  p,
		Members:  members,
		Statuses: status.Describe(s.app.Estimator, statuses),
	})
}

type addMemberBody struct {
	UserID int `json:"user_id"`
}

func (s *Server) addMember(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	var body addMemberBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := s.app.ProjectService.AddMember(r.Context(), id, body.UserID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listStatuses(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	statuses, err := s.app.StatusService.ListStatuses(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status.Describe(s.app.Estimator, statuses))
}

type createStatusBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Position    *int   `json:"position"`
	IsDefault   bool   `json:"is_default"`
}

func (s *Server) createStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	var body createStatusBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeServiceError(w, r, err)
		return
	}
	st, err := s.app.StatusService.CreateStatus(r.Context(), status.CreateStatusRequest{
		ProjectID:   id,
		Name:        body.Name,
		Description: body.Description,
		Color:       body.Color,
		Position:    body.Position,
		IsDefault:   body.IsDefault,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, st)
}

type updateStatusBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	Position    *int    `json:"position"`
	IsDefault   *bool   `json:"is_default"`
}

func (s *Server) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	var body updateStatusBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeServiceError(w, r, err)
		return
	}
	st, err := s.app.StatusService.UpdateStatus(r.Context(), status.UpdateStatusRequest{
		StatusID:    id,
		Name:        body.Name,
		Description: body.Description,
		Color:       body.Color,
		Position:    body.Position,
		IsDefault:   body.IsDefault,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// deleteStatus refuses a status that still has tasks unless ?force=true
func (s *Server) deleteStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	force, err := parseBoolStrict(r.URL.Query().Get("force"))
	if err != nil {
		writeServiceError(w, r, fmt.Errorf("%w: force must be a boolean", models.ErrValidation))
		return
	}
	detached, err := s.app.StatusService.DeleteStatus(r.Context(), id, force)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"status_id": id, "detached_tasks": detached})
}

func (s *Server) projectDeadlineRisk(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out, err := s.app.AnalyticsService.GetProjectDeadlineRisk(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) projectOverview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out, err := s.app.AnalyticsService.GetProjectOverview(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
