package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/luispallares/forgequote-backend/pkg/logger"
)

// lapsedExpirer is the slice of the quotation service the job needs.
type lapsedExpirer interface {
	ExpireLapsed(ctx context.Context, now time.Time) (int, error)
}

// QuoteExpiryJobParams configure the daily expiry sweep.
type QuoteExpiryJobParams struct {
	Logger     *logger.Logger
	Quotations lapsedExpirer
}

// NewQuoteExpiryJob builds the job that persists the expired status for
// sent and responded quotations whose validity window has lapsed. Read
// paths already derive expiry on the fly; the sweep keeps stored rows in
// line for reporting queries.
func NewQuoteExpiryJob(params QuoteExpiryJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Quotations == nil {
		return nil, fmt.Errorf("quotations service required")
	}
	return &quoteExpiryJob{
		logg:       params.Logger,
		quotations: params.Quotations,
		now:        time.Now,
	}, nil
}

type quoteExpiryJob struct {
	logg       *logger.Logger
	quotations lapsedExpirer
	now        func() time.Time
}

func (j *quoteExpiryJob) Name() string { return "quote-expiry" }

func (j *quoteExpiryJob) Run(ctx context.Context) error {
	count, err := j.quotations.ExpireLapsed(ctx, j.now().UTC())
	if err != nil {
		return fmt.Errorf("expire lapsed quotations: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{"count": count})
	j.logg.Info(logCtx, "quote expiry sweep complete")
	return nil
}
