package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
	"github.com/spf13/cobra"
)

// AddOutputFlags adds the agent-friendly flags every command carries
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")
}

// FormatterFor reads the output flags of cmd
func FormatterFor(cmd *cobra.Command) *OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &OutputFormatter{JSON: jsonOutput, Quiet: quietMode}
}

// ParseID parses a positive id from a positional argument
func ParseID(what, raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, &CommandError{Code: ExitUsage, Err: fmt.Errorf("%s ID must be a positive integer, got %q", what, raw)}
	}
	return id, nil
}

// ParseIDList parses a comma separated id list. An empty string is an empty list.
func ParseIDList(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []int{}, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, &CommandError{Code: ExitDataErr, Err: fmt.Errorf("invalid task ID %q in list", p)}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ParseDueDate parses a YYYY-MM-DD date
func ParseDueDate(raw string) (*models.Date, error) {
	d, err := models.ParseDate(strings.TrimSpace(raw))
	if err != nil {
		return nil, &CommandError{Code: ExitDataErr, Err: err}
	}
	return &d, nil
}

// ReadDescription returns raw, or stdin when raw is "-"
func ReadDescription(raw string) (string, error) {
	if raw != "-" {
		return raw, nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read description from stdin: %w", err)
	}
	return string(data), nil
}
