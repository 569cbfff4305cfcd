package dashboard

import "taskboard/internal/storage"

// ResolveInitialTheme picks the starting theme: the stored preference when
// there is one, otherwise dark if the system prefers it, otherwise light.
func ResolveInitialTheme(stored storage.Theme, ok bool, systemDark bool) storage.Theme {
	if ok && stored.Valid() {
		return stored
	}
	if systemDark {
		return storage.ThemeDark
	}
	return storage.ThemeLight
}

// ToggleTheme returns the opposite theme.
func ToggleTheme(t storage.Theme) storage.Theme {
	if t == storage.ThemeDark {
		return storage.ThemeLight
	}
	return storage.ThemeDark
}

// ThemeIcon is the glyph on the theme button: a moon offers dark mode while
// light is active, a sun offers light mode while dark is active.
func ThemeIcon(t storage.Theme) string {
	if t == storage.ThemeDark {
		return "☀"
	}
	return "☾"
}
