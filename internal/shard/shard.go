package shard

import (
	"fmt"
	"time"
)

// Settlement cycles are monthly; the high-churn tables are split by the
// settlement date's month so a cycle's rows always live in one table.

// CycleTable returns table name like iso_settlement_202608.
func CycleTable(base string, settlementDate time.Time) string {
	return fmt.Sprintf("%s_%s", base, settlementDate.Format("200601"))
}

// CycleRange returns the cycle tables covering [from, to] inclusive.
func CycleRange(base string, from, to time.Time) []string {
	out := []string{}
	cur := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cur.After(end) {
		out = append(out, CycleTable(base, cur))
		cur = cur.AddDate(0, 1, 0)
	}
	return out
}
