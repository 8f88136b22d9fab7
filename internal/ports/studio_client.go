package ports

import (
	"context"

	"github.com/bnema/genstudio-cli/internal/domain"
)

type SubmitRequest struct {
	Prompt      string
	Tool        domain.Tool
	Model       string
	Endpoint    string
	Metadata    string
	Attachments []string
}

// SubmitReceipt is what the backend hands back for a submission. Async
// endpoints return a JobID to poll; synchronous ones leave it empty and put
// the finished media directly in VideoURL or ImageURLs.
type SubmitReceipt struct {
	JobID     domain.JobID
	Status    string
	Progress  string
	VideoURL  string
	ImageURLs []string
}

type JobUpdate struct {
	Status    string
	Progress  string
	VideoURL  string
	ImageURLs []string
}

type HealthReport struct {
	OK   bool
	Jobs int
}

type StudioClient interface {
	Submit(ctx context.Context, req SubmitRequest) (SubmitReceipt, error)
	JobStatus(ctx context.Context, id domain.JobID) (JobUpdate, error)
	Health(ctx context.Context) (HealthReport, error)
}
