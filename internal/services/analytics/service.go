// Package analytics summarises a project's tasks: completion, deadline risk
// and how work is spread over statuses, priorities and people.
package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/database"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/risk"
)

// NoStatus labels tasks without a status in per-status breakdowns
const NoStatus = "No Status"

// trendDays is the window of the completion trend
const trendDays = 30

// Service defines project analytics operations
type Service interface {
	GetProjectDeadlineRisk(ctx context.Context, projectID int) (*ProjectDeadlineRisk, error)
	GetProjectOverview(ctx context.Context, projectID int) (*ProjectOverview, error)
}

// ProjectDeadlineRisk rates a project against its earliest open deadline.
// DaysRemaining and EarliestDeadline are nil when no open task has a due date.
type ProjectDeadlineRisk struct {
	ProjectID          int                `json:"project_id"`
	RiskLevel          risk.Level         `json:"risk_level"`
	ProgressPercentage int                `json:"progress_percentage"`
	DaysRemaining      *int               `json:"days_remaining"`
	EarliestDeadline   *models.Date       `json:"earliest_deadline"`
	TotalTasks         int                `json:"total_tasks"`
	CompletedTasks     int                `json:"completed_tasks"`
	TaskRisk           map[risk.Level]int `json:"task_risk"`
}

// StatusCount is the number of tasks in one status
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// PriorityCount is the number of tasks with one priority label
type PriorityCount struct {
	Priority string `json:"priority"`
	Count    int    `json:"count"`
}

// DayCount is the number of tasks completed on one day
type DayCount struct {
	Date  models.Date `json:"date"`
	Count int         `json:"count"`
}

// StatusAge is how long, on average, tasks in a status have gone without an update
type StatusAge struct {
	Status  string  `json:"status"`
	AvgDays float64 `json:"avg_days"`
}

// AssigneeCount is the number of finished tasks of one assignee; nil means unassigned
type AssigneeCount struct {
	AssigneeID     *int `json:"assignee_id"`
	CompletedTasks int  `json:"completed_tasks"`
}

// ProjectOverview breaks a project's tasks down several ways
type ProjectOverview struct {
	ProjectID            int                `json:"project_id"`
	TotalTasks           int                `json:"total_tasks"`
	ByStatus             []StatusCount      `json:"by_status"`
	PriorityDistribution []PriorityCount    `json:"priority_distribution"`
	RiskDistribution     map[risk.Level]int `json:"risk_distribution"`
	CompletionTrend      []DayCount         `json:"completion_trend"`
	Bottlenecks          []StatusAge        `json:"bottleneck_analysis"`
	TeamProductivity     []AssigneeCount    `json:"team_productivity"`
}

type service struct {
	repo     database.DataStore
	analyzer *risk.Analyzer
	now      func() time.Time
}

// NewService creates an analytics service. A nil clock means time.Now.
func NewService(repo database.DataStore, analyzer *risk.Analyzer, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	if analyzer == nil {
		analyzer = risk.NewAnalyzer(risk.DefaultConfig())
	}
	return &service{repo: repo, analyzer: analyzer, now: now}
}

func (s *service) projectTasks(ctx context.Context, projectID int) ([]*models.Task, error) {
	if projectID <= 0 {
		return nil, ErrInvalidProjectID
	}
	if _, err := s.repo.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	return s.repo.ListTasksByProject(ctx, projectID)
}

func isDone(t *models.Task) bool {
	return t.Status != nil && risk.IsDoneStatus(t.Status.Name)
}

func emptyLevels() map[risk.Level]int {
	m := make(map[risk.Level]int, 4)
	for _, l := range risk.Levels() {
		m[l] = 0
	}
	return m
}

// GetProjectDeadlineRisk rates the project from its completion percentage
// and the earliest due date among unfinished tasks.
func (s *service) GetProjectDeadlineRisk(ctx context.Context, projectID int) (*ProjectDeadlineRisk, error) {
	tasks, err := s.projectTasks(ctx, projectID)
	if err != nil {
		return nil, err
	}

	out := &ProjectDeadlineRisk{
		ProjectID:  projectID,
		RiskLevel:  risk.LevelLow,
		TotalTasks: len(tasks),
		TaskRisk:   emptyLevels(),
	}
	if len(tasks) == 0 {
		return out, nil
	}

	today := models.DateOf(s.now())
	var earliest *models.Date
	for _, t := range tasks {
		if isDone(t) {
			out.CompletedTasks++
			continue
		}
		if t.DueDate == nil {
			continue
		}
		out.TaskRisk[s.analyzer.Assess(t, today).Level]++
		if earliest == nil || t.DueDate.Before(*earliest) {
			d := *t.DueDate
			earliest = &d
		}
	}
	out.ProgressPercentage = percent(out.CompletedTasks, len(tasks))

	if earliest == nil {
		return out, nil
	}
	days := today.DaysUntil(*earliest)
	out.EarliestDeadline = earliest
	out.DaysRemaining = &days
	out.RiskLevel = risk.ProjectLevel(out.ProgressPercentage, days)
	return out, nil
}

// GetProjectOverview counts tasks per status, priority, risk level and
// assignee, plus a completion trend and the staleness of each status.
func (s *service) GetProjectOverview(ctx context.Context, projectID int) (*ProjectOverview, error) {
	tasks, err := s.projectTasks(ctx, projectID)
	if err != nil {
		return nil, err
	}
	statuses, err := s.repo.ListStatuses(ctx, projectID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := models.DateOf(now)
	trendStart := today.AddDays(-trendDays)

	out := &ProjectOverview{
		ProjectID:        projectID,
		TotalTasks:       len(tasks),
		RiskDistribution: emptyLevels(),
		CompletionTrend:  []DayCount{},
		TeamProductivity: []AssigneeCount{},
	}

	byStatus := map[string]int{}
	ageSum := map[string]float64{}
	byPriority := map[string]int{}
	byDay := map[string]int{}
	byAssignee := map[int]int{}
	unassignedDone := 0

	for _, t := range tasks {
		name := NoStatus
		if t.Status != nil {
			name = t.Status.Name
		}
		byStatus[name]++
		ageSum[name] += now.Sub(t.UpdatedAt).Hours() / 24
		byPriority[t.Priority]++

		if isDone(t) {
			if day := models.DateOf(t.UpdatedAt); !day.Before(trendStart) {
				byDay[day.String()]++
			}
			if t.AssignedTo == nil {
				unassignedDone++
			} else {
				byAssignee[*t.AssignedTo]++
			}
			continue
		}
		if t.DueDate != nil {
			out.RiskDistribution[s.analyzer.Assess(t, today).Level]++
		}
	}

	// workflow order first, then the no-status bucket
	names := make([]string, 0, len(statuses)+1)
	for _, st := range statuses {
		names = append(names, st.Name)
	}
	names = append(names, NoStatus)
	for _, name := range names {
		n := byStatus[name]
		if n == 0 && name == NoStatus {
			continue
		}
		out.ByStatus = append(out.ByStatus, StatusCount{Status: name, Count: n})
		if n > 0 {
			out.Bottlenecks = append(out.Bottlenecks, StatusAge{Status: name, AvgDays: round2(ageSum[name] / float64(n))})
		}
	}

	for _, p := range []string{models.PriorityUrgent, models.PriorityHigh, models.PriorityMedium, models.PriorityLow} {
		out.PriorityDistribution = append(out.PriorityDistribution, PriorityCount{Priority: p, Count: byPriority[p]})
	}

	for day, n := range byDay {
		d, _ := models.ParseDate(day)
		out.CompletionTrend = append(out.CompletionTrend, DayCount{Date: d, Count: n})
	}
	sort.Slice(out.CompletionTrend, func(i, j int) bool {
		return out.CompletionTrend[i].Date.Before(out.CompletionTrend[j].Date)
	})

	ids := make([]int, 0, len(byAssignee))
	for id := range byAssignee {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		out.TeamProductivity = append(out.TeamProductivity, AssigneeCount{AssigneeID: &id, CompletedTasks: byAssignee[id]})
	}
	if unassignedDone > 0 {
		out.TeamProductivity = append(out.TeamProductivity, AssigneeCount{CompletedTasks: unassignedDone})
	}
	return out, nil
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(float64(part)*100/float64(total) + 0.5)
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
