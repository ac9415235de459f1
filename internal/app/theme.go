package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// ChargesTheme is a light theme with compact listing rows. The placement canvas
// and the rendered figures are white, so the dark variant is never used.
type ChargesTheme struct{}

var _ fyne.Theme = (*ChargesTheme)(nil)

var (
	chargesPrimary   = color.NRGBA{R: 0x1F, G: 0x6A, B: 0xA5, A: 0xFF}
	chargesSelection = color.NRGBA{R: 0x1F, G: 0x6A, B: 0xA5, A: 0x40}
	chargesHover     = color.NRGBA{R: 0x1F, G: 0x6A, B: 0xA5, A: 0x1A}
	chargesError     = color.NRGBA{R: 0xC6, G: 0x28, B: 0x28, A: 0xFF}
	chargesScrollBar = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}
)

func (t *ChargesTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return chargesPrimary
	case theme.ColorNameSelection:
		return chargesSelection
	case theme.ColorNameHover:
		return chargesHover
	case theme.ColorNameError:
		return chargesError
	case theme.ColorNameScrollBar:
		return chargesScrollBar
	default:
		return theme.DefaultTheme().Color(name, theme.VariantLight)
	}
}

func (t *ChargesTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *ChargesTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *ChargesTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 13
	case theme.SizeNameInnerPadding:
		return 6 // listing rows
	case theme.SizeNameScrollBar:
		return 14
	case theme.SizeNameScrollBarSmall:
		return 10
	default:
		return theme.DefaultTheme().Size(name)
	}
}
