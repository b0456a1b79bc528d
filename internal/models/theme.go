package models

import "strings"

// Theme is the persisted light/dark display preference
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme is used when no preference has been stored
const DefaultTheme = ThemeDark

// Valid reports whether t is light or dark
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggled returns light for dark and dark for anything else
func (t Theme) Toggled() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// ParseTheme converts user input into a Theme
func ParseTheme(s string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", &ValidationError{Field: "theme", Reason: "must be light or dark"}
	}
	return t, nil
}
