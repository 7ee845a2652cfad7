package htmlutil

import (
	"bytes"
	"context"
	"fmt"
	"freeroom/lib/textutil"
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/net/html"
)

var tracer = otel.Tracer("freeroom.lib.htmlutil")

// GetText concatenates every text node under node, unlike goquery's Text it
// also works on script elements.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		getTextRecursive(child, buffer)
	}
}

// FindInScripts returns the first capture group of re in the first inline
// script it matches.
func FindInScripts(doc *goquery.Document, re *regexp.Regexp) (string, bool) {
	for _, script := range doc.Find("script").Nodes {
		groups := re.FindStringSubmatch(GetText(script))
		if len(groups) >= 2 {
			return groups[1], true
		}
	}
	return "", false
}

// ParseTable turns a <table> with a <thead> into one map per body row, keyed
// by the trimmed header texts. Cells without a header are keyed
// column<N> (1-indexed), rows without cells are skipped.
func ParseTable(ctx context.Context, table *goquery.Selection) []map[string]string {
	_, span := tracer.Start(ctx, "ParseTable")
	defer span.End()

	var headers []string
	table.Find("thead th").Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, textutil.CollapseWhitespace(th.Text()))
	})

	rows := []map[string]string{}
	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		row := map[string]string{}
		tr.Find("td").Each(func(i int, td *goquery.Selection) {
			key := fmt.Sprintf("column%d", i+1)
			if i < len(headers) && headers[i] != "" {
				key = headers[i]
			}
			row[key] = textutil.CollapseWhitespace(td.Text())
		})
		if len(row) > 0 {
			rows = append(rows, row)
		}
	})

	span.SetAttributes(
		attribute.Int("headers", len(headers)),
		attribute.Int("rows", len(rows)),
	)
	if len(headers) == 0 && len(rows) > 0 {
		span.SetStatus(codes.Error, "table has rows but no header")
	}
	return rows
}
