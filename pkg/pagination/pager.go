package pagination

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/refyne/refyne-go/pkg/client"
)

// Config holds pager configuration.
type Config struct {
	// PageSize is the limit passed to each jobs request.
	PageSize int
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig() Config {
	return Config{
		PageSize: 50,
	}
}

// Lister is the subset of the client the pager needs. *client.Client
// satisfies it.
type Lister interface {
	ListJobs(ctx context.Context, limit, offset int) (*client.JobList, error)
}

// Pager iterates over all jobs of an account page by page.
type Pager struct {
	lister Lister
	config Config
}

// NewPager creates a pager over lister.
func NewPager(lister Lister, config Config) *Pager {
	if config.PageSize <= 0 {
		config.PageSize = 50
	}
	return &Pager{
		lister: lister,
		config: config,
	}
}

// All fetches every job. Pages are fetched sequentially so rate limit
// handling stays inside the client's retry machinery.
func (p *Pager) All(ctx context.Context) ([]client.Job, error) {
	var jobs []client.Job
	err := p.Each(ctx, func(job client.Job) error {
		jobs = append(jobs, job)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// Each calls fn for every job in listing order. A non-nil error from fn
// stops iteration and is returned unchanged.
func (p *Pager) Each(ctx context.Context, fn func(job client.Job) error) error {
	start := time.Now()
	offset := 0
	total := 0

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		page, err := p.lister.ListJobs(ctx, p.config.PageSize, offset)
		if err != nil {
			return fmt.Errorf("list jobs at offset %d: %w", offset, err)
		}

		for _, job := range page.Jobs {
			if err := fn(job); err != nil {
				return err
			}
		}
		total += len(page.Jobs)

		// A short page is the end of the listing.
		if len(page.Jobs) < p.config.PageSize {
			break
		}
		offset += p.config.PageSize
	}

	log.Debug().
		Int("jobs", total).
		Dur("duration", time.Since(start)).
		Msg("Job listing complete")

	return nil
}
