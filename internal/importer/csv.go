// Package importer turns broker CSV exports into canonical trades.
// Broker files differ in headers, field order and formatting; the
// importer maps recognized header synonyms onto the normalizer's
// canonical keys and lets the normalizer reject what it cannot salvage.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tradelens/journal-backend/internal/analytics"
	"github.com/tradelens/journal-backend/pkg/types"
)

// headerSynonyms maps scrubbed CSV header names to canonical record
// keys. Scrubbing lowercases and strips everything non-alphanumeric,
// so "Net P&L", "net_pnl" and "NetPnl" all collapse to "netpl"/"netpnl".
var headerSynonyms = map[string]string{
	"netpnl":      "netPnl",
	"netpl":       "netPnl",
	"pnl":         "netPnl",
	"pl":          "netPnl",
	"profit":      "netPnl",
	"netprofit":   "netPnl",
	"grosspnl":    "grossPnl",
	"grosspl":     "grossPnl",
	"gross":       "grossPnl",
	"grossprofit": "grossPnl",
	"closedate":   "closeDate",
	"closetime":   "closeDate",
	"exitdate":    "closeDate",
	"exittime":    "closeDate",
	"date":        "closeDate",
	"opendate":    "openDate",
	"opentime":    "openDate",
	"entrydate":   "openDate",
	"entrytime":   "openDate",
	"symbol":      "symbol",
	"ticker":      "symbol",
	"instrument":  "symbol",
	"side":        "side",
	"direction":   "side",
	"entryprice":  "entryPrice",
	"entry":       "entryPrice",
	"avgentry":    "entryPrice",
	"exitprice":   "exitPrice",
	"exit":        "exitPrice",
	"avgexit":     "exitPrice",
	"commission":  "commissions",
	"commissions": "commissions",
	"fees":        "commissions",
	"contracts":   "contracts",
	"quantity":    "contracts",
	"qty":         "contracts",
	"size":        "contracts",
	"volume":      "contracts",
	"strategy":    "strategy",
	"setup":       "strategy",
	"playbook":    "strategy",
	"id":          "id",
	"tradeid":     "id",
}

// Importer reads broker CSV exports.
type Importer struct {
	logger *zap.Logger
}

// New creates a CSV importer.
func New(logger *zap.Logger) *Importer {
	return &Importer{logger: logger}
}

// ImportCSV parses a CSV stream into canonical trades. Rows the
// normalizer rejects are skipped and counted, never fatal; only an
// unreadable stream or an unusable header is an error.
func (im *Importer) ImportCSV(r io.Reader, source string) ([]*types.Trade, *types.ImportReport, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := mapHeader(header)
	if len(columns) == 0 {
		return nil, nil, fmt.Errorf("no recognized columns in CSV header: %v", header)
	}

	report := &types.ImportReport{Source: source}
	var trades []*types.Trade

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row, not a fatal stream error.
			report.Skipped++
			continue
		}

		raw := make(map[string]any, len(columns))
		for i, key := range columns {
			if key == "" || i >= len(row) {
				continue
			}
			raw[key] = row[i]
		}

		trade, ok := analytics.NormalizeTrade(raw)
		if !ok {
			report.Skipped++
			continue
		}
		if trade.ID == "" {
			trade.ID = uuid.New().String()
		}
		trades = append(trades, trade)
		report.Imported++
	}

	im.logger.Info("CSV import finished",
		zap.String("source", source),
		zap.Int("imported", report.Imported),
		zap.Int("skipped", report.Skipped),
	)

	return trades, report, nil
}

// mapHeader resolves each column to a canonical key; unrecognized
// columns map to the empty string and are ignored.
func mapHeader(header []string) []string {
	columns := make([]string, len(header))
	recognized := 0
	for i, name := range header {
		if key, ok := headerSynonyms[scrubHeader(name)]; ok {
			columns[i] = key
			recognized++
		}
	}
	if recognized == 0 {
		return nil
	}
	return columns
}

func scrubHeader(name string) string {
	var b strings.Builder
	for _, c := range strings.ToLower(strings.TrimSpace(name)) {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteRune(c)
		}
	}
	return b.String()
}
