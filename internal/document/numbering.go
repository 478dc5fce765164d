package document

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NumberWidth is the zero-padded width of the numeric suffix.
const NumberWidth = 6

// FormatNumber renders a document number: kind prefix plus zero-padded
// suffix, e.g. INV-000042.
func FormatNumber(kind Kind, suffix int) string {
	return fmt.Sprintf("%s%0*d", kind.Prefix(), NumberWidth, suffix)
}

// NextSuffix parses the numeric suffix after the last separator of the
// previous number and increments it. An unparsable suffix restarts the
// sequence at 1 rather than failing the allocation; the sequence stays
// monotonic from there.
func NextSuffix(last string) int {
	idx := strings.LastIndex(last, "-")
	if idx < 0 || idx == len(last)-1 {
		return 1
	}
	n, err := strconv.Atoi(last[idx+1:])
	if err != nil || n < 0 {
		return 1
	}
	return n + 1
}

// Totals holds the derived amounts of a document.
type Totals struct {
	HT  float64
	TVA float64
	TTC float64
}

// ComputeTotals derives a document's totals from its current lines.
// Rounding to 2 decimals happens only at the tax and tax-inclusive
// aggregation boundary, never per line.
func ComputeTotals(lines []DocumentLine, vatRate float64) Totals {
	var ht, tva, ttc float64
	for _, line := range lines {
		base := line.Qty * line.UnitPrice
		ht += base
		tva += base * vatRate
		ttc += base * (1 + vatRate)
	}
	return Totals{
		HT:  ht,
		TVA: round2(tva),
		TTC: round2(ttc),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
