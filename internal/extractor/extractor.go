// internal/extractor/extractor.go

// Package extractor pulls tabular candidate rows out of fetched markup.
// Two shapes are understood: spec tables (<table> grids as on hardware
// database sites) and listing pages (CSS-selected item cards as on e-commerce
// search results). Both produce a header row plus data rows of plain text.
package extractor

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/hwcatalog/harvester/internal/config"
)

// RawRow is one extracted row of cell text.
type RawRow []string

// Table is an ordered extraction result: a header and its data rows, every
// row padded or truncated to the header's width.
type Table struct {
	Header RawRow
	Rows   []RawRow
}

// Tables extracts every data table from the markup. Tables smaller than
// minRows data rows or minCols header columns are skipped as page furniture
// (navigation, layout grids). Rows repeating the header text are dropped.
func Tables(markup string, minRows, minCols int) ([]Table, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse markup: %w", err)
	}

	var tables []Table
	doc.Find("table").Each(func(_ int, sel *goquery.Selection) {
		t, ok := extractTable(sel, minRows, minCols)
		if ok {
			tables = append(tables, t)
		}
	})
	return tables, nil
}

func extractTable(sel *goquery.Selection, minRows, minCols int) (Table, bool) {
	var header RawRow
	var rows []RawRow

	sel.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		// Nested tables surface their rows on the outer Find too; only take
		// rows belonging to this table.
		if tr.Closest("table").Get(0) != sel.Get(0) {
			return
		}

		cells := rowCells(tr)
		if len(cells) == 0 {
			return
		}

		if header == nil {
			header = cells
			return
		}
		if isHeaderEcho(header, cells) {
			return
		}
		rows = append(rows, fitToWidth(cells, len(header)))
	})

	if len(header) < minCols || len(rows) < minRows {
		return Table{}, false
	}
	return Table{Header: header, Rows: rows}, true
}

// rowCells flattens each th/td to whitespace-normalized text. goquery's Text
// already concatenates nested tag content and decodes entities.
func rowCells(tr *goquery.Selection) RawRow {
	var cells RawRow
	tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		cells = append(cells, cleanText(cell.Text()))
	})
	return cells
}

// isHeaderEcho reports whether a data row repeats the header. Long pages
// often re-emit the header mid-table for readability.
func isHeaderEcho(header, row RawRow) bool {
	if len(row) != len(header) {
		return false
	}
	matches := 0
	for i := range row {
		if strings.EqualFold(row[i], header[i]) {
			matches++
		}
	}
	return matches*2 > len(header)
}

// fitToWidth pads short rows with empty cells and truncates long ones so
// positional column mapping stays aligned with the header.
func fitToWidth(row RawRow, width int) RawRow {
	if len(row) == width {
		return row
	}
	out := make(RawRow, width)
	copy(out, row)
	return out
}

// ListingHeader is the synthetic header attached to listing extractions so
// downstream normalization can treat both shapes uniformly.
var ListingHeader = RawRow{"Name", "Price", "Link"}

// Listings extracts item cards selected by the configured CSS selectors and
// returns them as a table of [title, price, link] rows under ListingHeader.
// Items without a title are dropped; missing price or link yield empty cells.
func Listings(markup string, sel config.ListingSelectors) (Table, error) {
	if sel.Item == "" {
		return Table{}, fmt.Errorf("listing item selector is empty")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return Table{}, fmt.Errorf("failed to parse markup: %w", err)
	}

	t := Table{Header: ListingHeader}
	doc.Find(sel.Item).Each(func(_ int, item *goquery.Selection) {
		title := cleanText(item.Find(orDefault(sel.Title, ".title")).First().Text())
		if title == "" {
			return
		}

		price := cleanText(item.Find(orDefault(sel.Price, ".price")).First().Text())

		link := ""
		if linkSel := orDefault(sel.Link, "a"); linkSel != "" {
			if href, ok := item.Find(linkSel).First().Attr("href"); ok {
				link = absolutizeLink(strings.TrimSpace(href))
			}
		}

		t.Rows = append(t.Rows, RawRow{title, price, link})
	})
	return t, nil
}

// absolutizeLink upgrades scheme-relative hrefs common on listing sites.
func absolutizeLink(href string) string {
	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	return href
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
