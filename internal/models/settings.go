package models

type Theme string

const (
	ThemeModern Theme = "modern"
	ThemeRetro  Theme = "retro"
)

func (t Theme) IsValid() bool {
	return t == ThemeModern || t == ThemeRetro
}

type Settings struct {
	Theme Theme `json:"theme"`
}

func DefaultSettings() Settings {
	return Settings{Theme: ThemeModern}
}
