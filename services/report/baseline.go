package report

import (
	"context"
	"fmt"
	"freeroom/services/snapshots"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

type Status string

const (
	// no previous report to compare against, no badge is shown
	StatusUnknown    Status = ""
	StatusUpdated    Status = "Updated"
	StatusNotUpdated Status = "Not Updated"
	StatusNotFound   Status = "Not Found"
)

// BadgeClass is the css class of the status badge.
func (s Status) BadgeClass() string {
	switch s {
	case StatusUpdated:
		return "badge-updated"
	case StatusNotUpdated:
		return "badge-not-updated"
	case StatusNotFound:
		return "badge-not-found"
	}
	return ""
}

// Baseline provides the content hash of the report that is currently
// published. found is false when there is nothing to compare against.
type Baseline interface {
	PreviousHash(ctx context.Context) (hash string, found bool, err error)
}

// Compare decides the status of a freshly generated report.
func Compare(ctx context.Context, baseline Baseline, hash string) Status {
	if baseline == nil {
		return StatusUnknown
	}
	previous, found, err := baseline.PreviousHash(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to get the published report", "err", err)
		return StatusNotFound
	}
	if !found {
		return StatusUnknown
	}
	slog.InfoContext(ctx, "compared content hash", "previous", previous, "current", hash)
	if previous == hash {
		return StatusNotUpdated
	}
	return StatusUpdated
}

// LiveSite reads the hash meta tag of the report served on Domain.
type LiveSite struct {
	Http   *resty.Client
	Domain string
	// defaults to https
	Scheme string
}

func (l LiveSite) PreviousHash(ctx context.Context) (string, bool, error) {
	scheme := l.Scheme
	if scheme == "" {
		scheme = "https"
	}
	res, err := l.Http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("%s://%s", scheme, l.Domain))
	if err != nil {
		return "", false, err
	}
	if !res.IsSuccess() {
		return "", false, fmt.Errorf("live site returned %s", res.Status())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(res.String()))
	if err != nil {
		return "", false, err
	}
	// a page without the tag is an older report, it counts as different
	hash, _ := doc.Find(`meta[name="page-content-hash"]`).Attr("content")
	return hash, true, nil
}

// StoreBaseline uses the hash of the last run saved in the snapshot store.
type StoreBaseline struct {
	Store snapshots.Store
}

func (s StoreBaseline) PreviousHash(ctx context.Context) (string, bool, error) {
	run, ok, err := s.Store.LatestRun(ctx)
	if err != nil || !ok {
		return "", false, err
	}
	return run.ContentHash, true, nil
}
