// Package query implements the filtering, pagination and aggregation layer
// between the raw ledger tables and every page or export that renders them.
//
// Three query shapes are supported: cash-book rows (BKU), item-purchase rows
// (BHP/BHM) and per-voucher aggregates (SPJ per BPU). All three share the
// same Filter parameter object and the same Pagination engine, and all three
// compute their summary totals over the full filtered set so that page size
// never changes the reported sums.
package query

import "database/sql"

// Queries runs the read-only ledger queries against a shared database
// handle. It never mutates state.
type Queries struct {
	db *sql.DB
}

func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

func text(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}
