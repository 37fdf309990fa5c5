package models

const (
	DefaultCycleLength  = 28
	DefaultPeriodLength = 5
)

type UserProfile struct {
	Name            string `json:"name"`
	DateOfBirth     *Date  `json:"dateOfBirth,omitempty"`
	YearOfBirth     *int   `json:"yearOfBirth,omitempty"`
	CycleLength     int    `json:"cycleLength"`
	PeriodLength    int    `json:"periodLength"`
	LastPeriodStart *Date  `json:"lastPeriodStart,omitempty"`
	PregnancyMode   bool   `json:"pregnancyMode"`
}

func NewUserProfile(name string) UserProfile {
	return UserProfile{
		Name:         name,
		CycleLength:  DefaultCycleLength,
		PeriodLength: DefaultPeriodLength,
	}
}

// Clone returns a copy that shares no pointers with p.
func (p UserProfile) Clone() UserProfile {
	cloned := p
	if p.DateOfBirth != nil {
		day := *p.DateOfBirth
		cloned.DateOfBirth = &day
	}
	if p.YearOfBirth != nil {
		year := *p.YearOfBirth
		cloned.YearOfBirth = &year
	}
	if p.LastPeriodStart != nil {
		day := *p.LastPeriodStart
		cloned.LastPeriodStart = &day
	}
	return cloned
}
