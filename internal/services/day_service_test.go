package services

import (
	"errors"
	"testing"

	"github.com/terraincognita07/herflow/internal/models"
)

func newDayServiceWithProfile(t *testing.T, periodLength int) (*DayService, *DomainStore) {
	t.Helper()
	store := newLoadedStore(t, newMemoryStateRepository())
	profile := models.NewUserProfile("Ana")
	profile.PeriodLength = periodLength
	if err := store.SetProfile(&profile); err != nil {
		t.Fatalf("SetProfile() unexpected error: %v", err)
	}
	return NewDayService(store), store
}

func TestDayServiceLoadDayReturnsEmptyLog(t *testing.T) {
	service, _ := newDayServiceWithProfile(t, 5)
	day := mustDate(t, "2026-01-10")

	entry := service.LoadDay(day)
	if !entry.Date.Equal(day) || entry.HasNote() || entry.WaterIntake != 0 {
		t.Fatalf("expected empty log for %s, got %+v", day, entry)
	}
}

func TestDayServiceSaveDayWithPeriodStart(t *testing.T) {
	service, store := newDayServiceWithProfile(t, 6)
	day := mustDate(t, "2026-01-10")
	medium := int(models.FlowMedium)

	entry, err := service.SaveDay(day, DayEntryInput{PeriodStart: true, FlowIntensity: &medium, Symptoms: []string{"cramps"}})
	if err != nil {
		t.Fatalf("SaveDay() unexpected error: %v", err)
	}
	if entry.FlowIntensity == nil || *entry.FlowIntensity != models.FlowMedium {
		t.Fatalf("expected flow copied into the log, got %v", entry.FlowIntensity)
	}

	periods := store.Periods()
	if len(periods) != 1 {
		t.Fatalf("expected one period, got %d", len(periods))
	}
	if periods[0].EndDate.String() != "2026-01-15" {
		t.Fatalf("expected end = start + periodLength - 1, got %s", periods[0].EndDate)
	}
	if !service.IsPeriodStart(day) {
		t.Fatalf("expected %s to be a period start", day)
	}

	heavy := int(models.FlowHeavy)
	if _, err := service.SaveDay(day, DayEntryInput{PeriodStart: true, FlowIntensity: &heavy}); err != nil {
		t.Fatalf("SaveDay() second save unexpected error: %v", err)
	}
	periods = store.Periods()
	if len(periods) != 1 {
		t.Fatalf("expected resave to update the existing period, got %d periods", len(periods))
	}
	if *periods[0].FlowIntensity != models.FlowHeavy || periods[0].EndDate.String() != "2026-01-15" {
		t.Fatalf("unexpected updated period: %+v", periods[0])
	}
	if got, _ := store.GetDailyLog(day); len(got.Symptoms) != 0 {
		t.Fatalf("expected second save to replace the whole log, got %+v", got)
	}
}

func TestDayServiceSaveDayWithoutProfileUsesDefaultLength(t *testing.T) {
	store := newLoadedStore(t, newMemoryStateRepository())
	service := NewDayService(store)

	if _, err := service.SaveDay(mustDate(t, "2026-01-10"), DayEntryInput{PeriodStart: true}); err != nil {
		t.Fatalf("SaveDay() unexpected error: %v", err)
	}
	if got := store.Periods()[0].Length(); got != models.DefaultPeriodLength {
		t.Fatalf("expected default period length %d, got %d", models.DefaultPeriodLength, got)
	}
}

func TestDayServiceSaveDayInvalidInputLeavesStore(t *testing.T) {
	service, store := newDayServiceWithProfile(t, 5)

	if _, err := service.SaveDay(mustDate(t, "2026-01-10"), DayEntryInput{PeriodStart: true, Symptoms: []string{"glitter"}}); err == nil {
		t.Fatalf("expected error for unknown symptom")
	}
	if len(store.Periods()) != 0 || len(store.DailyLogs()) != 0 {
		t.Fatalf("expected store untouched after invalid input")
	}
}

func TestDayServiceSaveDayKeepsLogWhenPeriodWriteFails(t *testing.T) {
	repo := newMemoryStateRepository()
	store := newLoadedStore(t, repo)
	service := NewDayService(store)
	day := mustDate(t, "2026-01-10")

	repo.failKey = models.StateKeyPeriods
	if _, err := service.SaveDay(day, DayEntryInput{PeriodStart: true, Notes: "heavy morning"}); !errors.Is(err, ErrPersistFailed) {
		t.Fatalf("expected ErrPersistFailed, got %v", err)
	}
	if len(store.Periods()) != 0 {
		t.Fatalf("expected no period after failed write, got %+v", store.Periods())
	}
	saved, ok := store.GetDailyLog(day)
	if !ok || saved.Notes != "heavy morning" {
		t.Fatalf("expected log saved before the period write, got %+v (found=%v)", saved, ok)
	}

	repo.failKey = ""
	if _, err := service.SaveDay(day, DayEntryInput{PeriodStart: true, Notes: "heavy morning"}); err != nil {
		t.Fatalf("resubmit SaveDay() unexpected error: %v", err)
	}
	if len(store.Periods()) != 1 {
		t.Fatalf("expected period recorded on resubmit, got %+v", store.Periods())
	}
}

func TestDayServiceDeletePeriodStartingOn(t *testing.T) {
	service, store := newDayServiceWithProfile(t, 5)
	day := mustDate(t, "2026-01-10")
	if _, err := service.SaveDay(day, DayEntryInput{PeriodStart: true, Notes: "first day"}); err != nil {
		t.Fatalf("SaveDay() unexpected error: %v", err)
	}
	if err := store.AddPeriod(periodEntry(t, "2025-12-12", "2025-12-16")); err != nil {
		t.Fatalf("AddPeriod() unexpected error: %v", err)
	}

	deleted, err := service.DeletePeriodStartingOn(day)
	if err != nil || !deleted {
		t.Fatalf("DeletePeriodStartingOn() = %v, %v", deleted, err)
	}
	periods := store.Periods()
	if len(periods) != 1 || periods[0].StartDate.String() != "2025-12-12" {
		t.Fatalf("expected only the other period left, got %+v", periods)
	}
	entry, _ := store.GetDailyLog(day)
	if entry.FlowIntensity != nil || entry.Notes != "first day" {
		t.Fatalf("expected flow cleared and notes kept, got %+v", entry)
	}

	deleted, err = service.DeletePeriodStartingOn(mustDate(t, "2026-03-01"))
	if err != nil || deleted {
		t.Fatalf("expected no-op for unknown start, got %v, %v", deleted, err)
	}
}

func TestDayServiceAdjustWaterIntakeClamps(t *testing.T) {
	service, _ := newDayServiceWithProfile(t, 5)
	day := mustDate(t, "2026-01-10")

	tests := []struct {
		delta int
		want  int
	}{
		{delta: 1, want: 1},
		{delta: -5, want: 0},
		{delta: 20, want: 12},
		{delta: 1, want: 12},
		{delta: -1, want: 11},
	}
	for _, tt := range tests {
		entry, err := service.AdjustWaterIntake(day, tt.delta)
		if err != nil {
			t.Fatalf("AdjustWaterIntake(%d) unexpected error: %v", tt.delta, err)
		}
		if entry.WaterIntake != tt.want {
			t.Fatalf("AdjustWaterIntake(%d) = %d, want %d", tt.delta, entry.WaterIntake, tt.want)
		}
	}
}
