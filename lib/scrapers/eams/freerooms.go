package eams

import (
	"bytes"
	"context"
	"fmt"
	"freeroom/lib/freeroom"
	"freeroom/lib/htmlutil"
	"freeroom/lib/timezone"
	"strconv"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// searchForm returns the form the portal's free classroom search page
// submits for a single day and period range.
func searchForm(date time.Time, slot freeroom.SlotId) map[string]string {
	begin, end := slot.Bounds()
	day := timezone.QueryDate(date)
	return map[string]string{
		"classroom.building.id": "",
		"cycleTime.dateBegin":   day,
		"cycleTime.dateEnd":     day,
		"timeBegin":             strconv.Itoa(begin),
		"timeEnd":               strconv.Itoa(end),
		"pageSize":              "1000",
		"classroom.type.id":     "",
		"classroom.campus.id":   "",
		"seats":                 "",
		"classroom.name":        "",
		"cycleTime.cycleCount":  "1",
		"cycleTime.cycleType":   "1",
		"roomApplyTimeType":     "0",
	}
}

// ParseFreeRoomTable extracts the rows of the search result table.
func ParseFreeRoomTable(ctx context.Context, body []byte) ([]map[string]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	table := doc.Find("table.gridtable").First()
	if table.Length() == 0 {
		return nil, ErrNoResultTable
	}
	return htmlutil.ParseTable(ctx, table), nil
}

// QueryFreeRooms returns the rooms free on date during slot, each row tagged
// with the slot it was queried for.
func (c *Client) QueryFreeRooms(ctx context.Context, date time.Time, slot freeroom.SlotId) ([]freeroom.RawRecord, error) {
	ctx, span := tracer.Start(ctx, "client:QueryFreeRooms")
	defer span.End()

	span.SetAttributes(
		attribute.String("date", timezone.QueryDate(date)),
		attribute.String("slot", string(slot)),
	)

	if !slot.Valid() {
		err := fmt.Errorf("unknown time slot '%s'", slot)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	res, err := c.Http.R().
		SetContext(ctx).
		SetFormData(searchForm(date, slot)).
		Post("/classroom/apply/free!search.action")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to make search request")
		return nil, err
	}
	if res.IsError() {
		err := fmt.Errorf("free room search returned %s", res.Status())
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	rows, err := ParseFreeRoomTable(ctx, res.Body())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse search response")
		return nil, err
	}

	records := make([]freeroom.RawRecord, len(rows))
	for i, row := range rows {
		records[i] = freeroom.RawRecord{Slot: slot, Fields: row}
	}
	span.SetAttributes(attribute.Int("rows", len(records)))
	return records, nil
}
