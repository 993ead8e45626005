package core

// aggregate.go drives the cursor-following fetch loop against the upstream
// API. The loop is strictly sequential: each page request depends on the
// cursor from the previous response, so there is nothing to parallelize.

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ryanpedersen42/risk-report-generator/internal/drata"
	"github.com/ryanpedersen42/risk-report-generator/internal/logging"
)

// Safety bounds applied when FetchOptions leaves them unset.
const (
	DefaultMaxPages   = 200
	DefaultMaxRecords = 20000

	// maxPageSize is the largest page size the upstream API accepts.
	maxPageSize = 50
)

// PageFetcher fetches one page of raw risk records from the upstream API.
// Satisfied by *drata.Client.
type PageFetcher interface {
	FetchRiskPage(ctx context.Context, registerID, token, cursor string, size int) (*drata.Page, error)
}

// TerminationReason records why a fetch session stopped accumulating pages.
type TerminationReason string

const (
	// TerminatedSinglePage: fetch-all was off; exactly one page was fetched.
	TerminatedSinglePage TerminationReason = "single_page"
	// TerminatedExhausted: the upstream returned no cursor.
	TerminatedExhausted TerminationReason = "cursor_exhausted"
	// TerminatedPageCap: the page safety bound was reached.
	TerminatedPageCap TerminationReason = "page_cap"
	// TerminatedRecordCap: the record safety bound was reached.
	TerminatedRecordCap TerminationReason = "record_cap"
)

// FetchOptions controls one aggregation session.
type FetchOptions struct {
	// FetchAll follows the cursor until exhaustion or a safety bound;
	// when false, exactly one page is fetched regardless of cursor.
	FetchAll bool

	// PageSize is the upstream page size (1..50); 0 lets the API choose.
	PageSize int

	// MaxPages caps pages per session; 0 means DefaultMaxPages.
	MaxPages int

	// MaxRecords caps accumulated records; 0 means DefaultMaxRecords.
	MaxRecords int
}

// withDefaults fills unset bounds and clamps the page size.
func (o FetchOptions) withDefaults() FetchOptions {
	if o.MaxPages <= 0 {
		o.MaxPages = DefaultMaxPages
	}
	if o.MaxRecords <= 0 {
		o.MaxRecords = DefaultMaxRecords
	}
	if o.PageSize < 0 {
		o.PageSize = 0
	}
	if o.PageSize > maxPageSize {
		o.PageSize = maxPageSize
	}
	return o
}

// FetchSession is the result of one aggregation: the flat ordered record
// collection (page order, then within-page upstream order) plus how many
// pages were consumed and why the loop stopped. A session is owned by one
// request and never shared.
type FetchSession struct {
	ID             string
	RiskRegisterID string
	Pages          int
	Records        []map[string]any
	Reason         TerminationReason
}

// Aggregator runs fetch sessions against a page fetcher.
type Aggregator struct {
	fetcher PageFetcher
}

// NewAggregator creates an Aggregator. All configuration is explicit:
// the fetcher carries the base URL and timeout, everything else arrives
// per session via FetchOptions.
func NewAggregator(fetcher PageFetcher) *Aggregator {
	return &Aggregator{fetcher: fetcher}
}

// Fetch runs one aggregation session.
//
// Termination is checked in order after each page: single-page mode,
// cursor exhaustion, page cap, record cap. Any upstream failure aborts the
// whole session — accumulated pages are discarded, never returned partially.
func (a *Aggregator) Fetch(ctx context.Context, registerID, token string, opts FetchOptions) (*FetchSession, error) {
	opts = opts.withDefaults()

	session := &FetchSession{
		ID:             uuid.NewString(),
		RiskRegisterID: registerID,
	}
	logger := logging.WithFields(ctx, "session_id", session.ID, "register_id", registerID)

	cursor := ""
	for {
		page, err := a.fetcher.FetchRiskPage(ctx, registerID, token, cursor, opts.PageSize)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", session.Pages+1, err)
		}

		session.Records = append(session.Records, page.Data...)
		session.Pages++
		cursor = page.Pagination.Cursor

		logger.Debug("page fetched",
			"page", session.Pages,
			"page_records", len(page.Data),
			"total_records", len(session.Records),
		)

		switch {
		case !opts.FetchAll:
			session.Reason = TerminatedSinglePage
		case cursor == "":
			session.Reason = TerminatedExhausted
		case session.Pages >= opts.MaxPages:
			session.Reason = TerminatedPageCap
		case len(session.Records) >= opts.MaxRecords:
			session.Reason = TerminatedRecordCap
		default:
			continue
		}

		logger.Info("aggregation complete",
			"pages", session.Pages,
			"records", len(session.Records),
			"reason", session.Reason,
		)
		return session, nil
	}
}
