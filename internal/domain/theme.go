package domain

// ThemeStorageKey is the fixed key of the stored theme preference.
const ThemeStorageKey = "theme"

// Theme is the console colour scheme.
type Theme string

// Theme constants.
const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// IsValid reports whether t is a known theme.
func (t Theme) IsValid() bool {
	return t == ThemeDark || t == ThemeLight
}

// ThemeFor returns the theme matching a platform dark-mode preference.
func ThemeFor(prefersDark bool) Theme {
	if prefersDark {
		return ThemeDark
	}
	return ThemeLight
}
