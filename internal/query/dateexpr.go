package query

// Date columns hold free text in one of three layouts: YYYY-MM-DD...,
// DD-MM-YYYY... or DD/MM/YYYY..., any of them possibly with trailing text.
// The expressions below normalize them inside SQL so that date filters
// compose with COUNT/LIMIT and pagination stays consistent with filtering.
// The layout precedence (ISO first, then dash, then slash) must not change:
// stored text relies on it.

// dateExpr returns a SQLite expression yielding a comparable calendar date
// for col, or NULL when the text matches none of the supported layouts.
func dateExpr(col string) string {
	c := "TRIM(CAST(" + col + " AS TEXT))"
	return "CASE " +
		"WHEN " + c + " GLOB '____-__-__*' THEN date(substr(" + c + ",1,10)) " +
		"WHEN " + c + " GLOB '__-__-____*' THEN date(substr(" + c + ",7,4)||'-'||substr(" + c + ",4,2)||'-'||substr(" + c + ",1,2)) " +
		"WHEN " + c + " GLOB '__/__/____*' THEN date(substr(" + c + ",7,4)||'-'||substr(" + c + ",4,2)||'-'||substr(" + c + ",1,2)) " +
		"ELSE NULL END"
}

// monthExpr returns a SQLite expression yielding the YYYY-MM bucket for col,
// or '' when the text matches none of the supported layouts.
func monthExpr(col string) string {
	c := "TRIM(CAST(" + col + " AS TEXT))"
	return "CASE " +
		"WHEN " + c + " GLOB '____-__-__*' THEN substr(" + c + ",1,7) " +
		"WHEN " + c + " GLOB '__-__-____*' THEN (substr(" + c + ",7,4)||'-'||substr(" + c + ",4,2)) " +
		"WHEN " + c + " GLOB '__/__/____*' THEN (substr(" + c + ",7,4)||'-'||substr(" + c + ",4,2)) " +
		"ELSE '' END"
}
