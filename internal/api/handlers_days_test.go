package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDayReturnsEmptyLog(t *testing.T) {
	app, _ := newTestApp(t)

	response := doJSON(t, app, http.MethodGet, "/api/days/2026-02-03", nil)
	requireStatus(t, response, http.StatusOK)

	var payload struct {
		Log struct {
			Date        string   `json:"date"`
			Symptoms    []string `json:"symptoms"`
			WaterIntake int      `json:"waterIntake"`
		} `json:"log"`
		IsPeriodStart bool `json:"isPeriodStart"`
	}
	decodeBody(t, response, &payload)
	assert.Equal(t, "2026-02-03", payload.Log.Date)
	assert.Empty(t, payload.Log.Symptoms)
	assert.Zero(t, payload.Log.WaterIntake)
	assert.False(t, payload.IsPeriodStart)
}

func TestSaveDayWithPeriodStart(t *testing.T) {
	app, store := newTestApp(t)
	onboard(t, app, "2026-01-05")

	response := doJSON(t, app, http.MethodPost, "/api/days/2026-02-02", map[string]any{
		"symptoms":      []string{"Cramps", "fatigue", "cramps"},
		"moods":         []string{"calm"},
		"waterIntake":   15,
		"notes":         "long walk",
		"periodStart":   true,
		"flowIntensity": 4,
	})
	requireStatus(t, response, http.StatusOK)

	entry, ok := store.GetDailyLog(mustDate(t, "2026-02-02"))
	require.True(t, ok)
	assert.Len(t, entry.Symptoms, 2)
	assert.Equal(t, 12, entry.WaterIntake)
	require.NotNil(t, entry.FlowIntensity)
	assert.Equal(t, 4, int(*entry.FlowIntensity))

	periods := store.Periods()
	require.Len(t, periods, 2)
	assert.Equal(t, "2026-02-02", periods[0].StartDate.String())
	assert.Equal(t, "2026-02-06", periods[0].EndDate.String())

	day := doJSON(t, app, http.MethodGet, "/api/days/2026-02-02", nil)
	var payload map[string]any
	decodeBody(t, day, &payload)
	assert.Equal(t, true, payload["isPeriodStart"])
}

func TestSaveDayRejectsUnknownTags(t *testing.T) {
	app, store := newTestApp(t)

	requireStatus(t, doJSON(t, app, http.MethodPost, "/api/days/2026-02-02", map[string]any{"symptoms": []string{"glitter"}}), http.StatusBadRequest)
	requireStatus(t, doJSON(t, app, http.MethodPost, "/api/days/2026-02-02", map[string]any{"moods": []string{"ecstatic"}}), http.StatusBadRequest)
	requireStatus(t, doJSON(t, app, http.MethodPost, "/api/days/not-a-date", map[string]any{}), http.StatusBadRequest)
	assert.Empty(t, store.DailyLogs())
}

func TestAdjustWaterClamps(t *testing.T) {
	app, store := newTestApp(t)

	requireStatus(t, doJSON(t, app, http.MethodPost, "/api/days/2026-02-02/water", map[string]any{"delta": 10}), http.StatusOK)
	requireStatus(t, doJSON(t, app, http.MethodPost, "/api/days/2026-02-02/water", map[string]any{"delta": 5}), http.StatusOK)

	entry, ok := store.GetDailyLog(mustDate(t, "2026-02-02"))
	require.True(t, ok)
	assert.Equal(t, 12, entry.WaterIntake)

	requireStatus(t, doJSON(t, app, http.MethodPost, "/api/days/2026-02-02/water", map[string]any{"delta": -20}), http.StatusOK)
	entry, _ = store.GetDailyLog(mustDate(t, "2026-02-02"))
	assert.Zero(t, entry.WaterIntake)
}
