package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"clinic_analytics/pkg/core/record"
)

// ReadHTMLTable extracts the first <table> from a saved HMS report page. The
// first row (th cells, or td when the export omits th) becomes the header,
// upper-cased like the CSV path so both sources normalize identically.
func ReadHTMLTable(r io.Reader) ([]record.RawRow, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("no table found in document")
	}

	trs := table.Find("tr")
	if trs.Length() == 0 {
		return []record.RawRow{}, nil
	}

	keys := make([]string, 0)
	trs.First().Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		keys = append(keys, strings.ToUpper(strings.TrimSpace(cell.Text())))
	})

	rows := make([]record.RawRow, 0)
	trs.Each(func(i int, tr *goquery.Selection) {
		if i == 0 {
			return
		}
		row := make(record.RawRow, len(keys))
		tr.Find("td").Each(func(j int, cell *goquery.Selection) {
			if j < len(keys) && keys[j] != "" {
				row[keys[j]] = strings.TrimSpace(cell.Text())
			}
		})
		if len(row) > 0 {
			rows = append(rows, row)
		}
	})
	return rows, nil
}
