package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/terraincognita07/herflow/internal/models"
)

var ExportCSVHeaders = []string{
	"Date",
	"Period",
	"Flow",
	"Cramps",
	"Headache",
	"Bloating",
	"Fatigue",
	"Backache",
	"Nausea",
	"Other symptoms",
	"Moods",
	"Water",
	"Notes",
}

var exportSymptomColumns = []models.Symptom{
	models.SymptomCramps,
	models.SymptomHeadache,
	models.SymptomBloating,
	models.SymptomFatigue,
	models.SymptomBackache,
	models.SymptomNausea,
}

type ExportCSVRow struct {
	Date          models.Date
	Period        bool
	Flow          *models.FlowIntensity
	Symptoms      map[models.Symptom]bool
	OtherSymptoms []string
	Moods         []string
	WaterIntake   int
	Notes         string
}

// BuildCSVRows produces one row per daily log, oldest first.
func BuildCSVRows(periods []models.PeriodEntry, logs []models.DailyLog) []ExportCSVRow {
	sorted := models.CloneDailyLogs(logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	rows := make([]ExportCSVRow, 0, len(sorted))
	for _, entry := range sorted {
		row := ExportCSVRow{
			Date:        entry.Date,
			Period:      IsPeriodDay(periods, entry.Date),
			Flow:        entry.FlowIntensity,
			Symptoms:    make(map[models.Symptom]bool, len(entry.Symptoms)),
			WaterIntake: entry.WaterIntake,
			Notes:       entry.Notes,
		}
		for _, symptom := range entry.Symptoms {
			if symptom.Known() {
				row.Symptoms[symptom] = true
				continue
			}
			if trimmed := strings.TrimSpace(string(symptom)); trimmed != "" {
				row.OtherSymptoms = append(row.OtherSymptoms, trimmed)
			}
		}
		sort.Strings(row.OtherSymptoms)
		for _, mood := range entry.Moods {
			row.Moods = append(row.Moods, string(mood))
		}
		rows = append(rows, row)
	}
	return rows
}

func (row ExportCSVRow) Columns() []string {
	columns := []string{
		row.Date.String(),
		csvYesNo(row.Period),
		csvFlowLabel(row.Flow),
	}
	for _, symptom := range exportSymptomColumns {
		columns = append(columns, csvYesNo(row.Symptoms[symptom]))
	}
	return append(columns,
		strings.Join(row.OtherSymptoms, "; "),
		strings.Join(row.Moods, "; "),
		strconv.Itoa(row.WaterIntake),
		row.Notes,
	)
}

func WriteCSV(output io.Writer, rows []ExportCSVRow) error {
	writer := csv.NewWriter(output)
	if err := writer.Write(ExportCSVHeaders); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row.Columns()); err != nil {
			return fmt.Errorf("write csv row %s: %w", row.Date, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func csvYesNo(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}

func csvFlowLabel(flow *models.FlowIntensity) string {
	if flow == nil {
		return "None"
	}
	return flow.Label()
}
