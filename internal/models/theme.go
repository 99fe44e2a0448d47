package models

import "strings"

type Theme struct {
	Name        string   `json:"name"`
	PrimaryBG   string   `json:"primary_bg"`
	SecondaryBG string   `json:"secondary_bg"`
	Accent      string   `json:"accent"`
	Text        string   `json:"text"`
	Palette     []string `json:"palette"`
}

var (
	LightTheme = Theme{
		Name:        "light",
		PrimaryBG:   "#fff",
		SecondaryBG: "#f7f7fa",
		Accent:      "#a259ff",
		Text:        "#22223B",
		Palette:     []string{"#a259ff", "#6c47b6", "#c3a6ff", "#e0d6f7"},
	}
	DarkTheme = Theme{
		Name:        "dark",
		PrimaryBG:   "#18122B",
		SecondaryBG: "#22223B",
		Accent:      "#a259ff",
		Text:        "#fff",
		Palette:     []string{"#a259ff", "#6c47b6", "#c3a6ff", "#e0d6f7"},
	}
)

// ThemeByName falls back to the light theme for anything but "dark".
func ThemeByName(name string) Theme {
	if strings.EqualFold(strings.TrimSpace(name), DarkTheme.Name) {
		return DarkTheme
	}
	return LightTheme
}
