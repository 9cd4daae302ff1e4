package shard

import (
	"testing"
	"time"
)

func TestCycleTable(t *testing.T) {
	d := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	got := CycleTable("iso_settlement", d)
	if got != "iso_settlement_202608" {
		t.Errorf("unexpected table name: %s", got)
	}
}

func TestCycleRange(t *testing.T) {
	from := time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)
	got := CycleRange("iso_applied_tx", from, to)
	want := []string{
		"iso_applied_tx_202511",
		"iso_applied_tx_202512",
		"iso_applied_tx_202601",
		"iso_applied_tx_202602",
	}
	if len(got) != len(want) {
		t.Fatalf("got %d tables, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("table[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
