package report

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"freeroom/lib/freeroom"
	"freeroom/lib/telemetry"
	"freeroom/lib/timezone"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

var tracer = telemetry.Tracer("freeroom.services.report")

const patternPlaceholder = "<!-- 背景样式表将由JS在此处动态插入 -->"

var DefaultPatterns = []string{
	"pattern0.css",
	"pattern1.css",
	"pattern2.css",
	"pattern3.css",
	"pattern4.css",
	"pattern5.css",
	"pattern6.css",
	"pattern7.css",
}

type Options struct {
	// background stylesheets, one is picked per report
	Patterns  []string
	Events    []Event
	Quotes    []Quote
	Buildings []freeroom.BuildingRule
	// nil disables the status badge
	Baseline Baseline

	// defaults to timezone.Now()
	Now time.Time
	// returns a number in [0, n), defaults to rand.IntN
	Pick func(n int) int
}

type Result struct {
	Html    string
	Hash    string
	Status  Status
	Pattern string
	// cells that were rendered but have no element in the template
	MissingCells int
}

// CellId is the element id a cell is rendered into.
func CellId(day int, code string, key freeroom.CellKey) string {
	return fmt.Sprintf("day-%d-%s%s%s", day, code, key.Floor, key.Slot)
}

func idSelector(id string) string {
	return fmt.Sprintf(`[id="%s"]`, id)
}

// ContentHash is the md5 of today's tab container, it changes whenever
// today's availability does.
func ContentHash(doc *goquery.Document) (string, error) {
	container := doc.Find("#day-0-content .tab-container").First()
	html := ""
	if container.Length() > 0 {
		var err error
		html, err = goquery.OuterHtml(container)
		if err != nil {
			return "", err
		}
	}
	sum := md5.Sum([]byte(html))
	return hex.EncodeToString(sum[:]), nil
}

type renderedDay map[string]string

// renderDays turns the cells of every day into element id -> markup.
func renderDays(ctx context.Context, days []freeroom.Day, buildings []freeroom.BuildingRule) ([]renderedDay, error) {
	buildingCodes := make(map[string]string, len(buildings))
	for _, b := range buildings {
		buildingCodes[b.Name] = b.Code
	}

	out := make([]renderedDay, len(days))
	group, _ := errgroup.WithContext(ctx)
	for offset, day := range days {
		group.Go(func() error {
			rendered := make(renderedDay, len(day.Cells))
			for _, cell := range day.Cells {
				code, ok := buildingCodes[cell.Key.Building]
				if !ok {
					return fmt.Errorf("day %d: cell of unknown building '%s'", offset, cell.Key.Building)
				}
				rendered[CellId(offset, code, cell.Key)] = cell.Markup()
			}
			out[offset] = rendered
			return nil
		})
	}
	err := group.Wait()
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Generate fills template with the availability of every day, days[0] is
// today. The template is never modified, the filled page is returned.
func Generate(ctx context.Context, template string, days []freeroom.Day, opts Options) (Result, error) {
	ctx, span := tracer.Start(ctx, "Generate")
	defer span.End()

	now := opts.Now
	if now.IsZero() {
		now = timezone.Now()
	}
	pick := opts.Pick
	if pick == nil {
		pick = rand.IntN
	}
	buildings := opts.Buildings
	if buildings == nil {
		buildings = freeroom.Buildings
	}

	result := Result{}

	if len(opts.Patterns) > 0 {
		result.Pattern = opts.Patterns[pick(len(opts.Patterns))]
		if strings.Contains(template, patternPlaceholder) {
			template = strings.Replace(
				template,
				patternPlaceholder,
				fmt.Sprintf(`<link rel="stylesheet" href="../style/%s">`, result.Pattern),
				1,
			)
		} else {
			slog.WarnContext(ctx, "background placeholder not found in template")
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(template))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse template")
		return Result{}, err
	}

	doc.Find("#update-time-placeholder").SetText(timezone.DisplayTime(now))

	emergency := doc.Find(".emergency-info").First()
	if emergency.Length() > 0 {
		emergency.SetHtml(EmergencyHtml(now, opts.Events, opts.Quotes, pick))
	} else {
		slog.WarnContext(ctx, "emergency info box not found in template")
	}

	rendered, err := renderDays(ctx, days, buildings)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to render days")
		return Result{}, err
	}
	for offset, cells := range rendered {
		for id, markup := range cells {
			sel := doc.Find(idSelector(id))
			if sel.Length() == 0 {
				slog.WarnContext(ctx, "cell not found in template", "day", offset, "id", id)
				result.MissingCells++
				continue
			}
			sel.SetHtml(markup)
		}
	}

	result.Hash, err = ContentHash(doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to hash content")
		return Result{}, err
	}
	doc.Find("head").AppendHtml(fmt.Sprintf(`<meta name="page-content-hash" content="%s">`, result.Hash))

	result.Status = Compare(ctx, opts.Baseline, result.Hash)
	if class := result.Status.BadgeClass(); class != "" {
		doc.Find("p.update-time").First().AppendHtml(fmt.Sprintf(
			`<span class="status-badge %s">%s</span>`,
			class, result.Status,
		))
	}

	result.Html, err = doc.Html()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to render document")
		return Result{}, err
	}

	span.SetAttributes(
		attribute.String("hash", result.Hash),
		attribute.String("status", string(result.Status)),
		attribute.Int("missing_cells", result.MissingCells),
	)
	return result, nil
}

// WriteFile writes the generated page, creating its directory.
func WriteFile(path, html string) error {
	err := os.MkdirAll(filepath.Dir(path), 0777)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(html), 0644)
}
