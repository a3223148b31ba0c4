package main

import (
	"testing"
	"time"
)

func TestNextFireTime_SameDay(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Yangon")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	now := time.Date(2025, 7, 14, 8, 0, 0, 0, loc)
	next := nextFireTime(now, 9, 0, loc)

	want := time.Date(2025, 7, 14, 9, 0, 0, 0, loc)
	if !next.Equal(want) {
		t.Fatalf("expected %s, got %s", want, next)
	}
}

func TestNextFireTime_RollsToNextDay(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, 7, 14, 9, 0, 0, 0, loc)

	// Exactly at the trigger instant: next fire is tomorrow, not now.
	next := nextFireTime(now, 9, 0, loc)
	want := time.Date(2025, 7, 15, 9, 0, 0, 0, loc)
	if !next.Equal(want) {
		t.Fatalf("expected %s, got %s", want, next)
	}
}

func TestNextFireTime_UsesConfiguredZoneNotHostZone(t *testing.T) {
	yangon, err := time.LoadLocation("Asia/Yangon")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	// 02:00 UTC is 08:30 in Yangon; a 09:00 Yangon trigger is still ahead
	// on the same Yangon calendar day.
	now := time.Date(2025, 7, 14, 2, 0, 0, 0, time.UTC)
	next := nextFireTime(now, 9, 0, yangon)

	want := time.Date(2025, 7, 14, 9, 0, 0, 0, yangon)
	if !next.Equal(want) {
		t.Fatalf("expected %s, got %s", want, next)
	}
}
