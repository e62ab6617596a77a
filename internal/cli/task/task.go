package task

import (
	"fmt"
	"strings"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/cli"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/cli/styles"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
	taskservice "github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/services/task"
	"github.com/spf13/cobra"
)

// TaskCmd returns the task parent command
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

func renderTask(t *models.Task) string {
	due := "none"
	if t.DueDate != nil {
		due = t.DueDate.String()
	}
	status := t.StatusName()
	if status == "" {
		status = "none"
	}

	lines := []string{
		styles.TitleStyle.Render(fmt.Sprintf("#%d %s", t.ID, t.Title)) + "  " + styles.LevelBadge(t.Priority),
		"",
		styles.Field("Project", t.ProjectID),
		styles.Field("Status", status),
		styles.Field("Due", due),
		styles.Field("Score", fmt.Sprintf("%.2f", t.PriorityScore)),
		styles.Field("Effort / Impact", fmt.Sprintf("%d / %d", t.EffortScore, t.ImpactScore)),
		styles.Field("Blocks", idList(t.DependencyMap)),
		styles.Field("Blocked by", idList(t.BlockedBy)),
	}
	if t.AssignedTo != nil {
		lines = append(lines, styles.Field("Assignee", *t.AssignedTo))
	}
	if desc := cli.RenderMarkdown(t.Description, styles.CardWidth-6); desc != "" {
		lines = append(lines, styles.Section("Description"), desc)
	}
	return styles.RenderCard(lines...)
}

func renderResult(verb string, res *taskservice.Result) string {
	var b strings.Builder
	b.WriteString(styles.Success(fmt.Sprintf("Task %d %s", res.Task.ID, verb)))
	b.WriteString("\n")
	b.WriteString(renderTask(res.Task))
	if len(res.Graph.Rescored) > 1 {
		b.WriteString("\n")
		b.WriteString(styles.SubtitleStyle.Render("rescored: " + idList(res.Graph.Rescored)))
	}
	return b.String()
}

func idList(ids []int) string {
	if len(ids) == 0 {
		return "none"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("#%d", id)
	}
	return strings.Join(parts, ", ")
}
