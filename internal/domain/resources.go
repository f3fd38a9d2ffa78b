package domain

import "time"

// Resource types for the CRUD surfaces the portal renders. All of these are
// owned by the backend; the client treats them as read-mostly mirrors.

// Customer is a tenant-scoped customer record.
type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// Job is a unit of field work assigned to a technician.
type Job struct {
	ID           int64      `json:"id"`
	CustomerID   int64      `json:"customer_id"`
	Title        string     `json:"title"`
	Status       string     `json:"status"`
	TechnicianID int64      `json:"technician_id,omitempty"`
	ScheduledAt  *time.Time `json:"scheduled_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// JobCreate is the body for POST /v1/jobs.
type JobCreate struct {
	CustomerID  int64      `json:"customer_id"`
	Title       string     `json:"title"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

// Quote is a priced proposal attached to a customer.
type Quote struct {
	ID         int64   `json:"id"`
	CustomerID int64   `json:"customer_id"`
	Status     string  `json:"status"`
	Total      float64 `json:"total"`
}

// Invoice is a billed quote or job.
type Invoice struct {
	ID         int64      `json:"id"`
	CustomerID int64      `json:"customer_id"`
	Status     string     `json:"status"`
	Total      float64    `json:"total"`
	DueAt      *time.Time `json:"due_at,omitempty"`
}

// Campaign is an outreach batch (email/SMS) scoped to a tenant.
type Campaign struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Channel   string    `json:"channel"`
	Status    string    `json:"status"`
	SentCount int       `json:"sent_count"`
	CreatedAt time.Time `json:"created_at"`
}

// DispatchAssignment pairs a job with a technician for the mobile view.
type DispatchAssignment struct {
	JobID          int64      `json:"job_id"`
	TechnicianID   int64      `json:"technician_id"`
	TechnicianName string     `json:"technician_name"`
	ETA            *time.Time `json:"eta,omitempty"`
}

// MessageTemplate is a reusable campaign/notification template.
type MessageTemplate struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Channel string `json:"channel"`
	Body    string `json:"body"`
}

// ReportSummary is the aggregate block shown on the dashboard.
type ReportSummary struct {
	OpenJobs        int     `json:"open_jobs"`
	OverdueInvoices int     `json:"overdue_invoices"`
	RevenueMTD      float64 `json:"revenue_mtd"`
	ActiveCampaigns int     `json:"active_campaigns"`
}

// DashboardOverview is the client-side aggregation of the main screen's
// three list fetches.
type DashboardOverview struct {
	Jobs      []Job      `json:"jobs"`
	Invoices  []Invoice  `json:"invoices"`
	Campaigns []Campaign `json:"campaigns"`
}
