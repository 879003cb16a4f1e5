package cmd

import (
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"citysense-be/models"
	"citysense-be/projections"
	"citysense-be/transport"

	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted session against an in-process server",
	Long: `Start the service in process and drive it through the client:
a citizen reports an issue, fails to change its status, an admin
assigns it, and the simulator runs for a number of ticks. The
resulting statistics and issue list are printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ticks, _ := cmd.Flags().GetInt("ticks")
		seed, _ := cmd.Flags().GetInt64("seed")
		latency, _ := cmd.Flags().GetBool("latency")

		app, err := newApplication(cfg, log, nil, rand.New(rand.NewSource(seed)))
		if err != nil {
			return err
		}

		opts := []transport.LocalOption{transport.WithRand(rand.New(rand.NewSource(seed)))}
		if !latency {
			opts = append(opts, transport.WithDelay(0, 0))
		}
		client := transport.NewClient(transport.NewLocal(app.router, "/api", opts...))
		ctx := cmd.Context()

		if _, err := client.Login(ctx, "user@example.com", "user123"); err != nil {
			return fmt.Errorf("citizen login: %w", err)
		}
		issue, err := client.CreateIssue(ctx, models.IssueDraft{
			Title:       "Broken streetlight near the market",
			Category:    models.Infrastructure,
			Priority:    models.High,
			Description: "The streetlight has been flickering for a week.",
			Latitude:    28.4089,
			Longitude:   77.3178,
			Address:     "Sector 15, Faridabad",
		})
		if err != nil {
			return fmt.Errorf("create issue: %w", err)
		}
		ui.Success("Reported %s, routed to %s", issue.ID.Hex(), issue.AssignedDepartment)

		_, err = client.UpdateStatus(ctx, issue.ID.Hex(), models.Resolved)
		var apiErr *transport.APIError
		switch {
		case errors.As(err, &apiErr) && apiErr.Status == http.StatusForbidden:
			ui.Info("Citizen status change rejected: %s", apiErr.Message)
		case err != nil:
			return fmt.Errorf("citizen status change: %w", err)
		default:
			return errors.New("citizen status change unexpectedly succeeded")
		}

		if _, err := client.Login(ctx, "admin@citysense.com", "admin123"); err != nil {
			return fmt.Errorf("admin login: %w", err)
		}
		issue, err = client.UpdateStatus(ctx, issue.ID.Hex(), models.Assigned)
		if err != nil {
			return fmt.Errorf("assign issue: %w", err)
		}
		ui.Success("Admin moved %s to %s", issue.ID.Hex(), issue.Status)

		changes := 0
		app.issues.Subscribe(func([]models.Issue) { changes++ })
		for i := 0; i < ticks; i++ {
			app.simulator.TryTick(ctx)
		}
		if changes == 0 {
			ui.Warning("Simulator made no changes in %d ticks", ticks)
		} else {
			ui.Info("Simulator ran %d ticks, %d changes", ticks, changes)
		}

		stats, err := client.Statistics(ctx)
		if err != nil {
			return fmt.Errorf("statistics: %w", err)
		}
		if err := ui.Counters([][2]string{
			{"Total", strconv.Itoa(stats.Total)},
			{"Resolved", strconv.Itoa(stats.Resolved)},
			{"In progress", strconv.Itoa(stats.InProgress)},
			{"High priority", strconv.Itoa(stats.HighPriority)},
			{"Reported today", strconv.Itoa(stats.Today)},
			{"Avg resolution (days)", strconv.Itoa(stats.AverageResolutionDays)},
		}); err != nil {
			return err
		}
		fmt.Fprintln(ui.Out)

		issues, err := client.ListIssues(ctx, projections.Filter{})
		if err != nil {
			return fmt.Errorf("list issues: %w", err)
		}
		return ui.Issues(issues)
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().Int("ticks", 10, "simulator ticks to run")
	demoCmd.Flags().Int64("seed", time.Now().UnixNano(), "random seed for the simulator and latency")
	demoCmd.Flags().Bool("latency", false, "simulate 800-1200ms network latency per call")
}
