package models

import "time"

// ThemeColor is the accent palette an organization's pages render with.
type ThemeColor string

const (
	ThemeIndigo  ThemeColor = "indigo"
	ThemeEmerald ThemeColor = "emerald"
	ThemeRose    ThemeColor = "rose"
	ThemeAmber   ThemeColor = "amber"
	ThemeBlue    ThemeColor = "blue"
)

// DefaultFontFamily is used when an organization does not pick a font.
const DefaultFontFamily = "Vazirmatn RD"

// Valid reports whether c is one of the known palettes.
func (c ThemeColor) Valid() bool {
	switch c {
	case ThemeIndigo, ThemeEmerald, ThemeRose, ThemeAmber, ThemeBlue:
		return true
	}
	return false
}

// Organization represents a tenant. Every catalog row hangs off one.
type Organization struct {
	ID         int64
	Name       string
	Slug       string
	Logo       string
	ThemeColor ThemeColor
	FontFamily string
	CreatedAt  time.Time
}
