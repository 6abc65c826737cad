package importer

import (
	"strconv"
	"strings"
)

// NormalizeDecimalComma rewrites an Indonesian-formatted amount
// ("1.234.567,89" or "1.234.567") into plain decimal text ("1234567.89",
// "1234567"). A single-dot value like "1234.5" already parses and is returned
// unchanged: stripping its dot would corrupt it. Text that still fails to
// parse after rewriting is also returned unchanged; the query layer coerces
// it to 0 at summation time.
func NormalizeDecimalComma(s string) string {
	var plain string
	switch {
	case strings.Contains(s, ","):
		plain = strings.ReplaceAll(s, ".", "")
		plain = strings.ReplaceAll(plain, ",", ".")
	case strings.Count(s, ".") > 1:
		// Dot-grouped thousands without a decimal part.
		plain = strings.ReplaceAll(s, ".", "")
	default:
		return s
	}
	if _, err := strconv.ParseFloat(plain, 64); err != nil {
		return s
	}
	return plain
}
