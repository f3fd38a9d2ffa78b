package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List jobs for the current tenant",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := a.requireSession(ctx); err != nil {
			return err
		}

		jobs, err := a.resources.ListJobs(ctx)
		if err != nil {
			return err
		}

		if len(jobs) == 0 {
			fmt.Println("no jobs")
			return nil
		}
		for _, j := range jobs {
			sched := "-"
			if j.ScheduledAt != nil {
				sched = j.ScheduledAt.Format("2006-01-02 15:04")
			}
			fmt.Printf("%6d  %-10s  %-16s  %s\n", j.ID, j.Status, sched, j.Title)
		}
		return nil
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the dashboard overview and report summary",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := a.requireSession(ctx); err != nil {
			return err
		}

		a.branding.Load(ctx)
		fmt.Printf("== %s ==\n", a.branding.Settings().PortalTitle)

		overview, err := a.dashboard.Overview(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("jobs: %d  invoices: %d  campaigns: %d\n",
			len(overview.Jobs), len(overview.Invoices), len(overview.Campaigns))

		summary, err := a.resources.ReportSummary(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("open jobs: %d  overdue invoices: %d  revenue MTD: %.2f  active campaigns: %d\n",
			summary.OpenJobs, summary.OverdueInvoices, summary.RevenueMTD, summary.ActiveCampaigns)
		return nil
	},
}
