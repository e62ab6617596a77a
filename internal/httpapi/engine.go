package httpapi

import "net/http"

func (s *Server) recomputeTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	change, err := s.app.PriorityService.RecomputePriority(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, change)
}

func (s *Server) recomputeProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	res, err := s.app.PriorityService.RecomputeProjectPriorities(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) priorityInsights(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	insights, err := s.app.PriorityService.GetPriorityInsights(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, insights)
}

func (s *Server) deadlineInsights(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	insights, err := s.app.DeadlineService.GetTaskDeadlineInsights(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, insights)
}

// runSweep always returns the summary. A sweep that rolled back answers 500.
func (s *Server) runSweep(w http.ResponseWriter, r *http.Request) {
	summary := s.app.DeadlineService.RunDeadlineSweep(r.Context())
	status := http.StatusOK
	if summary.Error != "" {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, summary)
}
