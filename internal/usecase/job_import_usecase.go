package usecase

import (
	"context"
	"strings"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/notification"
)

// ExternalListing is a job pulled from an outside feed.
type ExternalListing struct {
	Source      string
	ExternalID  string
	URL         string
	Title       string
	Company     string
	Location    string
	Description string
	Skills      string
	SalaryMin   *int
	SalaryMax   *int
	JobType     string
}

type ImportResult struct {
	Fetched  int
	Imported int
	Skipped  int
}

// ImportExternal stores listings that are not already known by external id or
// by title and company. Imported jobs have no owner and start open.
func (u *Jobs) ImportExternal(ctx context.Context, listings []ExternalListing) (ImportResult, error) {
	res := ImportResult{Fetched: len(listings)}
	for _, l := range listings {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		j, ok := u.listingToJob(ctx, l)
		if !ok {
			res.Skipped++
			continue
		}

		created, err := u.jobs.Create(ctx, j)
		if err != nil {
			u.logger.Printf("Job import failed | source=%s external_id=%s err=%v", l.Source, l.ExternalID, err)
			res.Skipped++
			continue
		}
		res.Imported++
		u.broadcaster.EmitToAll(notification.EventJobNew, newJobEvent(created))
		u.fanout.JobCreated(created)
	}

	if res.Imported > 0 {
		u.invalidateSearch(ctx)
	}
	u.logger.Printf("Job import done | fetched=%d imported=%d skipped=%d", res.Fetched, res.Imported, res.Skipped)
	return res, nil
}

func (u *Jobs) listingToJob(ctx context.Context, l ExternalListing) (job.Job, bool) {
	source := strings.TrimSpace(l.Source)
	externalID := strings.TrimSpace(l.ExternalID)
	title := strings.TrimSpace(l.Title)
	company := strings.TrimSpace(l.Company)
	if source == "" || externalID == "" || title == "" || company == "" {
		return job.Job{}, false
	}

	exists, err := u.jobs.ExistsExternal(ctx, source, externalID)
	if err != nil || exists {
		return job.Job{}, false
	}
	exists, err = u.jobs.ExistsByTitleCompany(ctx, title, company)
	if err != nil || exists {
		return job.Job{}, false
	}

	jobType, err := job.ParseType(l.JobType)
	if err != nil {
		jobType = job.TypeFullTime
	}
	if l.SalaryMin != nil && l.SalaryMax != nil && *l.SalaryMin > *l.SalaryMax {
		l.SalaryMin, l.SalaryMax = l.SalaryMax, l.SalaryMin
	}

	j := job.Job{
		Title:          title,
		Company:        company,
		Skills:         strings.TrimSpace(l.Skills),
		Location:       strings.TrimSpace(l.Location),
		Description:    strings.TrimSpace(l.Description),
		SalaryMin:      l.SalaryMin,
		SalaryMax:      l.SalaryMax,
		JobType:        jobType,
		Status:         job.StatusOpen,
		ExternalSource: &source,
		ExternalID:     &externalID,
	}
	if url := strings.TrimSpace(l.URL); url != "" {
		j.ExternalURL = &url
	}
	return j, true
}
