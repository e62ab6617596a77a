// Package scoring computes task priority scores from urgency, effort,
// dependency and impact sub-scores.
package scoring

import (
	"errors"
	"fmt"
	"sort"
)

// Weights are the multipliers applied to each sub-score. They sum to 1.0 by default.
type Weights struct {
	Urgency    float64 `yaml:"urgency" json:"urgency"`
	Effort     float64 `yaml:"effort" json:"effort"`
	Dependency float64 `yaml:"dependency" json:"dependency"`
	Impact     float64 `yaml:"impact" json:"impact"`
}

// DayBucket scores a due date that is at most MaxDays away
type DayBucket struct {
	MaxDays int     `yaml:"max_days"`
	Score   float64 `yaml:"score"`
}

// CountBucket scores a task that blocks at least MinCount others
type CountBucket struct {
	MinCount int     `yaml:"min_count"`
	Score    float64 `yaml:"score"`
}

// LabelThresholds are the minimum scores for each label, checked high to low.
// Anything below Medium is Low.
type LabelThresholds struct {
	Urgent float64 `yaml:"urgent"`
	High   float64 `yaml:"high"`
	Medium float64 `yaml:"medium"`
}

// Config holds every weight and bucket used by the calculators.
type Config struct {
	Weights Weights `yaml:"weights"`

	NoDueDateScore float64     `yaml:"no_due_date_score"`
	OverdueScore   float64     `yaml:"overdue_score"`
	UrgencyBuckets []DayBucket `yaml:"urgency_buckets"`
	FarFutureScore float64     `yaml:"far_future_score"`

	EffortScores       map[int]float64 `yaml:"effort_scores"`
	UnknownEffortScore float64         `yaml:"unknown_effort_score"`

	DependencyBuckets []CountBucket `yaml:"dependency_buckets"`

	ImpactScores       map[int]float64 `yaml:"impact_scores"`
	UnknownImpactScore float64         `yaml:"unknown_impact_score"`

	Labels LabelThresholds `yaml:"labels"`
}

// DefaultConfig returns the stock weights and buckets.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Urgency:    0.35,
			Effort:     0.20,
			Dependency: 0.25,
			Impact:     0.20,
		},
		NoDueDateScore: 2.0,
		OverdueScore:   10.0,
		UrgencyBuckets: []DayBucket{
			{MaxDays: 0, Score: 9.5},
			{MaxDays: 1, Score: 9.0},
			{MaxDays: 3, Score: 8.0},
			{MaxDays: 7, Score: 6.0},
			{MaxDays: 14, Score: 4.0},
			{MaxDays: 30, Score: 2.5},
		},
		FarFutureScore: 1.0,
		EffortScores: map[int]float64{
			1: 10.0,
			2: 8.0,
			3: 6.0,
			4: 4.0,
			5: 2.0,
		},
		UnknownEffortScore: 6.0,
		DependencyBuckets: []CountBucket{
			{MinCount: 5, Score: 10.0},
			{MinCount: 3, Score: 8.0},
			{MinCount: 2, Score: 6.0},
			{MinCount: 1, Score: 4.0},
			{MinCount: 0, Score: 1.0},
		},
		ImpactScores: map[int]float64{
			1: 2.0,
			2: 4.0,
			3: 6.0,
			4: 8.0,
			5: 10.0,
		},
		UnknownImpactScore: 6.0,
		Labels: LabelThresholds{
			Urgent: 8.0,
			High:   6.5,
			Medium: 4.0,
		},
	}
}

// Normalize sorts the buckets into lookup order: urgency ascending by days,
// dependency descending by count.
func (c *Config) Normalize() {
	sort.SliceStable(c.UrgencyBuckets, func(i, j int) bool {
		return c.UrgencyBuckets[i].MaxDays < c.UrgencyBuckets[j].MaxDays
	})
	sort.SliceStable(c.DependencyBuckets, func(i, j int) bool {
		return c.DependencyBuckets[i].MinCount > c.DependencyBuckets[j].MinCount
	})
}

func (c Config) clone() Config {
	out := c
	out.UrgencyBuckets = append([]DayBucket(nil), c.UrgencyBuckets...)
	out.DependencyBuckets = append([]CountBucket(nil), c.DependencyBuckets...)
	out.EffortScores = make(map[int]float64, len(c.EffortScores))
	for k, v := range c.EffortScores {
		out.EffortScores[k] = v
	}
	out.ImpactScores = make(map[int]float64, len(c.ImpactScores))
	for k, v := range c.ImpactScores {
		out.ImpactScores[k] = v
	}
	return out
}

// Validate checks that weights are usable and label thresholds are ordered.
func (c Config) Validate() error {
	w := c.Weights
	if w.Urgency < 0 || w.Effort < 0 || w.Dependency < 0 || w.Impact < 0 {
		return errors.New("scoring weights must not be negative")
	}
	if w.Urgency+w.Effort+w.Dependency+w.Impact == 0 {
		return errors.New("scoring weights must not all be zero")
	}
	if !(c.Labels.Urgent >= c.Labels.High && c.Labels.High >= c.Labels.Medium) {
		return fmt.Errorf("label thresholds must be descending, got urgent=%.2f high=%.2f medium=%.2f",
			c.Labels.Urgent, c.Labels.High, c.Labels.Medium)
	}
	for _, b := range c.UrgencyBuckets {
		if b.MaxDays < 0 {
			return fmt.Errorf("urgency bucket max_days must not be negative, got %d", b.MaxDays)
		}
	}
	return nil
}
