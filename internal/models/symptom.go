package models

import (
	"encoding/json"
	"strings"
)

type Symptom string

const (
	SymptomCramps   Symptom = "cramps"
	SymptomHeadache Symptom = "headache"
	SymptomBloating Symptom = "bloating"
	SymptomFatigue  Symptom = "fatigue"
	SymptomBackache Symptom = "backache"
	SymptomNausea   Symptom = "nausea"
)

type Mood string

const (
	MoodHappy     Mood = "happy"
	MoodCalm      Mood = "calm"
	MoodNeutral   Mood = "neutral"
	MoodSad       Mood = "sad"
	MoodAnxious   Mood = "anxious"
	MoodIrritated Mood = "irritated"
)

type BuiltinTag struct {
	ID    string
	Label string
	Icon  string
}

func DefaultBuiltinSymptoms() []BuiltinTag {
	return []BuiltinTag{
		{ID: string(SymptomCramps), Label: "Cramps", Icon: "⚡"},
		{ID: string(SymptomHeadache), Label: "Headache", Icon: "🧠"},
		{ID: string(SymptomBloating), Label: "Bloating", Icon: "🌧"},
		{ID: string(SymptomFatigue), Label: "Fatigue", Icon: "🌙"},
		{ID: string(SymptomBackache), Label: "Backache", Icon: "⚡"},
		{ID: string(SymptomNausea), Label: "Nausea", Icon: "😣"},
	}
}

func DefaultBuiltinMoods() []BuiltinTag {
	return []BuiltinTag{
		{ID: string(MoodHappy), Label: "Happy", Icon: "😊"},
		{ID: string(MoodCalm), Label: "Calm", Icon: "✨"},
		{ID: string(MoodNeutral), Label: "Neutral", Icon: "😐"},
		{ID: string(MoodSad), Label: "Sad", Icon: "😢"},
		{ID: string(MoodAnxious), Label: "Anxious", Icon: "💗"},
		{ID: string(MoodIrritated), Label: "Irritated", Icon: "⚡"},
	}
}

var symptomAliases = map[string]Symptom{
	"cramp":     SymptomCramps,
	"back pain": SymptomBackache,
	"back ache": SymptomBackache,
	"backpain":  SymptomBackache,
	"tired":     SymptomFatigue,
	"tiredness": SymptomFatigue,
}

var moodAliases = map[string]Mood{
	"irritable":    MoodIrritated,
	"irritability": MoodIrritated,
	"anxiety":      MoodAnxious,
}

// ParseSymptom maps free text onto a known symptom. Unknown text is returned trimmed with ok=false.
func ParseSymptom(raw string) (Symptom, bool) {
	key := normalizeTagKey(raw)
	for _, builtin := range DefaultBuiltinSymptoms() {
		if key == builtin.ID {
			return Symptom(builtin.ID), true
		}
	}
	if alias, ok := symptomAliases[key]; ok {
		return alias, true
	}
	return Symptom(strings.TrimSpace(raw)), false
}

func ParseMood(raw string) (Mood, bool) {
	key := normalizeTagKey(raw)
	for _, builtin := range DefaultBuiltinMoods() {
		if key == builtin.ID {
			return Mood(builtin.ID), true
		}
	}
	if alias, ok := moodAliases[key]; ok {
		return alias, true
	}
	return Mood(strings.TrimSpace(raw)), false
}

func (s Symptom) Known() bool {
	parsed, ok := ParseSymptom(string(s))
	return ok && parsed == s
}

func (m Mood) Known() bool {
	parsed, ok := ParseMood(string(m))
	return ok && parsed == m
}

// UnmarshalJSON canonicalizes historical free-text tags and keeps unknown ones verbatim.
func (s *Symptom) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s, _ = ParseSymptom(raw)
	return nil
}

func (m *Mood) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m, _ = ParseMood(raw)
	return nil
}

func normalizeTagKey(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}
