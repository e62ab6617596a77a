package task

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/converters"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/database"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/depgraph"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
)

// edgeEdit is a validated edge change of one task, with every neighbour whose
// reciprocal list was updated to match
type edgeEdit struct {
	update     GraphUpdate
	neighbours []*models.Task
}

// prepareEdges validates the new adjacency of t and mirrors the difference
// onto the neighbours. t.DependencyMap and t.BlockedBy are replaced with the
// normalized lists. Nothing is written.
func (s *service) prepareEdges(ctx context.Context, tx database.DataStore, t *models.Task, deps, blocked []int) (*edgeEdit, error) {
	deps = converters.NormalizeIDs(deps)
	blocked = converters.NormalizeIDs(blocked)
	if containsID(deps, t.ID) || containsID(blocked, t.ID) {
		return nil, ErrSelfReference
	}

	tasks, err := tx.ListTasksByProject(ctx, t.ProjectID)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]*models.Task, len(tasks))
	for _, other := range tasks {
		byID[other.ID] = other
	}
	for _, id := range deps {
		if _, ok := byID[id]; !ok {
			return nil, s.referenceError(ctx, tx, id)
		}
	}
	for _, id := range blocked {
		if _, ok := byID[id]; !ok {
			return nil, s.referenceError(ctx, tx, id)
		}
	}

	depDelta := depgraph.Diff(t.DependencyMap, deps)
	blockedDelta := depgraph.Diff(t.BlockedBy, blocked)

	if s.detectCycles && (len(depDelta.Added) > 0 || len(blockedDelta.Added) > 0) {
		g := depgraph.FromTasks(tasks)
		g.SetSuccessors(t.ID, deps)
		g.SetPredecessors(t.ID, blocked)
		if err := depgraph.CheckAcyclic(g); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCircularDependency, err)
		}
	}

	touched := make(map[int]*models.Task)
	mirror := func(ids []int, edit func(n *models.Task)) {
		for _, id := range ids {
			// removed ids may point at tasks that no longer exist
			n, ok := byID[id]
			if !ok || id == t.ID {
				continue
			}
			edit(n)
			touched[id] = n
		}
	}
	mirror(depDelta.Added, func(n *models.Task) { n.BlockedBy = depgraph.With(n.BlockedBy, t.ID) })
	mirror(depDelta.Removed, func(n *models.Task) { n.BlockedBy = depgraph.Without(n.BlockedBy, t.ID) })
	mirror(blockedDelta.Added, func(n *models.Task) { n.DependencyMap = depgraph.With(n.DependencyMap, t.ID) })
	mirror(blockedDelta.Removed, func(n *models.Task) { n.DependencyMap = depgraph.Without(n.DependencyMap, t.ID) })

	t.DependencyMap = deps
	t.BlockedBy = blocked

	edit := &edgeEdit{
		update: GraphUpdate{
			TaskID:        t.ID,
			DependencyMap: depDelta,
			BlockedBy:     blockedDelta,
			Rescored:      []int{},
		},
	}
	for id, n := range touched {
		sort.Ints(n.DependencyMap)
		sort.Ints(n.BlockedBy)
		edit.neighbours = append(edit.neighbours, n)
		edit.update.Rescored = append(edit.update.Rescored, id)
	}
	sort.Slice(edit.neighbours, func(i, j int) bool { return edit.neighbours[i].ID < edit.neighbours[j].ID })
	sort.Ints(edit.update.Rescored)
	return edit, nil
}

// referenceError tells a missing task apart from one in another project
func (s *service) referenceError(ctx context.Context, tx database.DataStore, id int) error {
	_, err := tx.GetTask(ctx, id)
	switch {
	case errors.Is(err, models.ErrNotFound):
		return fmt.Errorf("%w: task %d", ErrUnknownDependency, id)
	case err != nil:
		return err
	default:
		return fmt.Errorf("%w: task %d", ErrCrossProject, id)
	}
}

func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
