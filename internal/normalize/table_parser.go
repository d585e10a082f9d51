package normalize

import (
	"regexp"
	"strings"

	"github.com/savelyev/oddsfeed/internal/pkg/models"
)

// placeholderOdds is the fixed price attached to totals: the source tables
// carry the line only, never separate over/under prices. Known precision gap,
// reproduced deliberately.
const placeholderOdds = "-110"

// defaultPropName is the fixed prop label for player tables, which carry no
// per-row prop type.
const defaultPropName = "Points"

var (
	// spreadFieldPattern matches "line (price)" spread cells, e.g. "-2.5 (-110)".
	spreadFieldPattern = regexp.MustCompile(`([+-]\d+\.?\d*)\s*\(([+-]\d+)\)`)
	// totalFieldPattern pulls the leading line out of a total cell.
	totalFieldPattern = regexp.MustCompile(`(\d+\.?\d*)`)
)

// TableOdds accumulates the typed records extracted from one table.
// SkippedRows counts odds-pass data rows that yielded no spread entry, so
// len(Spread) + SkippedRows always equals the number of data rows seen by
// the odds pass.
type TableOdds struct {
	Spread      []models.SpreadEntry
	Moneyline   []models.MoneylineEntry
	Total       *models.TotalEntry
	PlayerProps []models.PlayerPropEntry
	Fighters    []models.FighterEntry
	SkippedRows int
}

// InterpretTable converts a raw table into typed odds records based on header
// keyword sniffing. The three kind checks are independent: a table whose
// headers satisfy several checks goes through several extraction passes.
// Malformed rows are skipped individually and never abort the table.
func InterpretTable(table models.RawTable) TableOdds {
	headers := table.Headers
	rows := table.Rows
	if len(headers) == 0 {
		if len(rows) == 0 {
			return TableOdds{}
		}
		// No explicit headers: row 0 becomes the header row and is consumed.
		headers = rows[0]
		rows = rows[1:]
	}

	var out TableOdds
	if headersContain(headers, "spread") {
		parseOddsRows(headers, rows, &out)
	}
	if headersContain(headers, "fighter") {
		parseFighterRows(rows, &out)
	}
	if headersContain(headers, "player") {
		parsePlayerPropRows(rows, &out)
	}
	return out
}

func headersContain(headers []string, keyword string) bool {
	for _, h := range headers {
		if strings.Contains(strings.ToLower(h), keyword) {
			return true
		}
	}
	return false
}

// parseOddsRows reads rows of the shape [team, spread, moneyline, total, ...].
// A field is skipped when empty or when it echoes its own column header
// (header-as-data-row artifacts of the first-row-as-header fallback).
func parseOddsRows(headers []string, rows [][]string, out *TableOdds) {
	for _, row := range rows {
		if len(row) < 4 {
			out.SkippedRows++
			continue
		}
		team := strings.TrimSpace(row[0])
		spreadField := strings.TrimSpace(row[1])
		moneylineField := strings.TrimSpace(row[2])
		totalField := strings.TrimSpace(row[3])

		gotSpread := false
		if usableField(spreadField, headerAt(headers, 1)) {
			if m := spreadFieldPattern.FindStringSubmatch(spreadField); m != nil {
				out.Spread = append(out.Spread, models.SpreadEntry{
					Team: team,
					Line: m[1],
					Odds: m[2],
				})
				gotSpread = true
			}
			// Non-matching spread text is dropped silently: no partial entry.
		}

		if usableField(moneylineField, headerAt(headers, 2)) {
			out.Moneyline = append(out.Moneyline, models.MoneylineEntry{
				Team: team,
				Odds: moneylineField,
			})
		}

		if out.Total == nil && usableField(totalField, headerAt(headers, 3)) {
			if m := totalFieldPattern.FindStringSubmatch(totalField); m != nil {
				out.Total = &models.TotalEntry{
					Line:  m[1],
					Over:  placeholderOdds,
					Under: placeholderOdds,
				}
			}
		}

		if !gotSpread {
			out.SkippedRows++
		}
	}
}

// parseFighterRows reads rows of the shape [name, odds, ...] verbatim.
func parseFighterRows(rows [][]string, out *TableOdds) {
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		out.Fighters = append(out.Fighters, models.FighterEntry{
			Name: row[0],
			Odds: row[1],
		})
	}
}

// parsePlayerPropRows reads rows of the shape [player, team, odds, ...].
// The prop type is not present in the source tables; the fixed label is used.
func parsePlayerPropRows(rows [][]string, out *TableOdds) {
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		out.PlayerProps = append(out.PlayerProps, models.PlayerPropEntry{
			Player: row[0],
			Team:   row[1],
			Prop:   defaultPropName,
			Odds:   row[2],
		})
	}
}

func usableField(field, header string) bool {
	return field != "" && field != strings.TrimSpace(header)
}

func headerAt(headers []string, i int) string {
	if i >= len(headers) {
		return ""
	}
	return headers[i]
}
