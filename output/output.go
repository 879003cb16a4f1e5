// Package output renders issues and statistics for the terminal.
package output

import (
	"fmt"
	"io"
	"os"

	"citysense-be/models"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// UI writes colored messages and tables.
type UI struct {
	Out    io.Writer
	ErrOut io.Writer
}

// New creates a UI on stdout/stderr.
func New() *UI {
	return &UI{
		Out:    os.Stdout,
		ErrOut: os.Stderr,
	}
}

var (
	infoPrefix    = color.New(color.FgHiBlue).Sprint("i")
	successPrefix = color.New(color.FgHiGreen).Sprint("✓")
	warningPrefix = color.New(color.FgHiYellow).Sprint("⚠")
	errorPrefix   = color.New(color.FgHiRed).Sprint("✗")
	cyan          = color.New(color.FgHiCyan).SprintFunc()
	green         = color.New(color.FgHiGreen).SprintFunc()
	yellow        = color.New(color.FgHiYellow).SprintFunc()
	red           = color.New(color.FgHiRed).SprintFunc()
	blue          = color.New(color.FgHiBlue).SprintFunc()
	orange        = color.New(color.FgYellow).SprintFunc()
)

// StatusColor colors a status after its map marker. The terminal has no
// orange, so assigned uses plain yellow.
func StatusColor(status models.IssueStatus) string {
	s := string(status)
	switch status {
	case models.Submitted:
		return red(s)
	case models.Assigned:
		return orange(s)
	case models.InProgress:
		return blue(s)
	case models.Resolved:
		return green(s)
	default:
		return s
	}
}

// PriorityColor highlights high priority issues.
func PriorityColor(priority models.IssuePriority) string {
	s := string(priority)
	switch priority {
	case models.High:
		return red(s)
	case models.Medium:
		return yellow(s)
	default:
		return cyan(s)
	}
}

func (u *UI) Info(format string, a ...any) {
	fmt.Fprintf(u.Out, "%s %s\n", infoPrefix, fmt.Sprintf(format, a...))
}

func (u *UI) Success(format string, a ...any) {
	fmt.Fprintf(u.Out, "%s %s\n", successPrefix, fmt.Sprintf(format, a...))
}

func (u *UI) Warning(format string, a ...any) {
	fmt.Fprintf(u.ErrOut, "%s %s\n", warningPrefix, fmt.Sprintf(format, a...))
}

func (u *UI) Error(format string, a ...any) {
	fmt.Fprintf(u.ErrOut, "%s %s\n", errorPrefix, fmt.Sprintf(format, a...))
}

// Table creates a borderless, left-aligned table.
func (u *UI) Table(headers []string) *tablewriter.Table {
	table := tablewriter.NewTable(u.Out,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		}),
		tablewriter.WithPadding(tw.Padding{Left: "", Right: "  "}),
	)
	table.Header(headers)
	return table
}

// Issues prints one row per issue.
func (u *UI) Issues(issues []models.Issue) error {
	table := u.Table([]string{"ID", "Title", "Category", "Priority", "Status", "Department", "Created"})
	for _, issue := range issues {
		if err := table.Append([]string{
			issue.ID.Hex(),
			issue.Title,
			string(issue.Category),
			PriorityColor(issue.Priority),
			StatusColor(issue.Status),
			issue.AssignedDepartment,
			issue.CreatedAt.Format("02 Jan, 15:04"),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

// Counters prints label/value pairs as a two-column table.
func (u *UI) Counters(rows [][2]string) error {
	table := u.Table([]string{"Metric", "Value"})
	for _, r := range rows {
		if err := table.Append([]string{r[0], cyan(r[1])}); err != nil {
			return err
		}
	}
	return table.Render()
}
