package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlapDays_ClipsToWindow(t *testing.T) {
	// Leave Jan 10-20, window Jan 15-31: only Jan 15-20 count.
	got := OverlapDays(
		day(2024, 1, 10), day(2024, 1, 20),
		day(2024, 1, 15), day(2024, 1, 31),
	)
	assert.Equal(t, 6, got)
}

func TestOverlapDays_FullyInsideWindow(t *testing.T) {
	got := OverlapDays(
		day(2024, 1, 10), day(2024, 1, 12),
		day(2024, 1, 1), day(2024, 1, 31),
	)
	assert.Equal(t, 3, got)
}

func TestOverlapDays_SingleDay(t *testing.T) {
	got := OverlapDays(
		day(2024, 1, 10), day(2024, 1, 10),
		day(2024, 1, 1), day(2024, 1, 31),
	)
	assert.Equal(t, 1, got)
}

func TestOverlapDays_Disjoint(t *testing.T) {
	got := OverlapDays(
		day(2024, 1, 1), day(2024, 1, 5),
		day(2024, 2, 1), day(2024, 2, 29),
	)
	assert.Equal(t, 0, got)
}

func TestOverlapDays_SpansWholeWindow(t *testing.T) {
	got := OverlapDays(
		day(2023, 12, 20), day(2024, 2, 10),
		day(2024, 1, 1), day(2024, 1, 31),
	)
	assert.Equal(t, 31, got)
}

func TestOverlapDays_InvertedRange(t *testing.T) {
	got := OverlapDays(
		day(2024, 1, 20), day(2024, 1, 10),
		day(2024, 1, 1), day(2024, 1, 31),
	)
	assert.Equal(t, 0, got)
}

func TestSumOverlapDays_CountsOverlappingLeavesIndependently(t *testing.T) {
	// Two approved leaves share Jan 12; the shared day counts twice.
	leaves := []Leave{
		{StartDate: day(2024, 1, 10), EndDate: day(2024, 1, 12)},
		{StartDate: day(2024, 1, 12), EndDate: day(2024, 1, 14)},
	}

	got := SumOverlapDays(leaves, day(2024, 1, 1), day(2024, 1, 31))
	assert.Equal(t, 6, got)
}

func TestSumOverlapDays_Empty(t *testing.T) {
	assert.Equal(t, 0, SumOverlapDays(nil, day(2024, 1, 1), day(2024, 1, 31)))
}
