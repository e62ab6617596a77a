package scoring

import (
	"testing"
	"time"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
	"github.com/stretchr/testify/assert"
)

var fixedNow = time.Date(2024, time.June, 1, 9, 30, 0, 0, time.UTC)

func newTestEngine() *Engine {
	return NewEngine(DefaultConfig(), func() time.Time { return fixedNow })
}

func dueIn(days int) *models.Date {
	d := models.DateOf(fixedNow).AddDays(days)
	return &d
}

func TestEngine_ScoreExample(t *testing.T) {
	t.Parallel()
	e := newTestEngine()
	task := &models.Task{
		EffortScore: 1,
		ImpactScore: 5,
		DueDate:     dueIn(10),
	}

	b := e.Breakdown(task)
	assert.Equal(t, 4.0, b.Urgency.Value)
	assert.Equal(t, 10.0, b.Effort.Value)
	assert.Equal(t, 1.0, b.Dependency.Value)
	assert.Equal(t, 10.0, b.Impact.Value)
	assert.Equal(t, 5.65, b.Total)
	assert.Equal(t, models.PriorityMedium, b.Label)
}

func TestEngine_Labels(t *testing.T) {
	t.Parallel()
	e := newTestEngine()
	tests := []struct {
		score float64
		want  string
	}{
		{10, models.PriorityUrgent},
		{8.0, models.PriorityUrgent},
		{7.99, models.PriorityHigh},
		{6.5, models.PriorityHigh},
		{6.49, models.PriorityMedium},
		{4.0, models.PriorityMedium},
		{3.99, models.PriorityLow},
		{0, models.PriorityLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, e.Label(tt.score), "score %v", tt.score)
	}
}

func TestEngine_OverdueIsMaxUrgency(t *testing.T) {
	t.Parallel()
	e := newTestEngine()
	task := &models.Task{DueDate: dueIn(-1), EffortScore: 3, ImpactScore: 3}
	assert.Equal(t, 10.0, e.Breakdown(task).Urgency.Value)
}

func TestEngine_ApplyIsIdempotent(t *testing.T) {
	t.Parallel()
	e := newTestEngine()
	task := &models.Task{
		Title:         "Ship release",
		DueDate:       dueIn(2),
		EffortScore:   2,
		ImpactScore:   4,
		DependencyMap: []int{2, 3, 4},
	}

	assert.True(t, e.Apply(task), "first apply should change derived fields")
	score, label := task.PriorityScore, task.Priority

	assert.False(t, e.Apply(task), "second apply should be a no-op")
	assert.Equal(t, score, task.PriorityScore)
	assert.Equal(t, label, task.Priority)
	assert.Equal(t, "Ship release", task.Title)
}

func TestEngine_MissingLevelsUseDefault(t *testing.T) {
	t.Parallel()
	e := newTestEngine()
	unset := &models.Task{}
	explicit := &models.Task{EffortScore: 3, ImpactScore: 3}
	assert.Equal(t, e.Score(explicit), e.Score(unset))
}

func TestEngine_WeightsAreACopy(t *testing.T) {
	t.Parallel()
	e := newTestEngine()
	w := e.Weights()
	w.Urgency = 1
	assert.Equal(t, 0.35, e.Weights().Urgency)
}

func TestEngine_CustomConfig(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.Weights = Weights{Urgency: 1}
	e := NewEngine(cfg, func() time.Time { return fixedNow })
	assert.Equal(t, 9.5, e.Score(&models.Task{DueDate: dueIn(0)}))
}
