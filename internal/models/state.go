package models

import "time"

const (
	StateKeyTheme              = "theme"
	StateKeyUserProfile        = "userProfile"
	StateKeyPeriods            = "periods"
	StateKeyDailyLogs          = "dailyLogs"
	StateKeyOnboardingComplete = "onboardingComplete"
)

// StateKeys lists every persisted key in load order.
func StateKeys() []string {
	return []string{
		StateKeyTheme,
		StateKeyUserProfile,
		StateKeyPeriods,
		StateKeyDailyLogs,
		StateKeyOnboardingComplete,
	}
}

type StateRecord struct {
	Key       string    `gorm:"primaryKey"`
	Value     string    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (StateRecord) TableName() string {
	return "app_state"
}

// StateSnapshot is a read-only copy of everything the store owns.
type StateSnapshot struct {
	Profile            *UserProfile
	Periods            []PeriodEntry
	DailyLogs          []DailyLog
	Settings           Settings
	OnboardingComplete bool
}
