package ui

import "github.com/gdamore/tcell/v2"

// Theme holds color constants for the TUI.
type Theme struct {
	BgColor           tcell.Color
	FgColor           tcell.Color
	BorderColor       tcell.Color
	BorderFocusColor  tcell.Color
	TableHeaderFg     tcell.Color
	TableHeaderBg     tcell.Color
	TableCursorFg     tcell.Color
	TableCursorBg     tcell.Color
	CrumbActiveFg     tcell.Color
	CrumbActiveBg     tcell.Color
	CrumbInactiveFg   tcell.Color
	CrumbInactiveBg   tcell.Color
	MenuKeyColor      tcell.Color
	NumericKeyColor   tcell.Color
	TitleColor        tcell.Color
	CounterColor      tcell.Color
	FlashInfoColor    tcell.Color
	FlashWarnColor    tcell.Color
	FlashErrColor     tcell.Color
	PromptBorderColor tcell.Color

	// Chat-specific accents.
	SelfMsgColor   tcell.Color
	OtherMsgColor  tcell.Color
	UnreadColor    tcell.Color
	TagColor       tcell.Color
	TickColor      tcell.Color
	FailedColor    tcell.Color
	LinkColor      tcell.Color
	OrderColor     tcell.Color
	LiveColor      tcell.Color
	ReconnectColor tcell.Color
}

// DefaultTheme returns a dark theme with WhatsApp-green accents.
func DefaultTheme() *Theme {
	return &Theme{
		BgColor:           tcell.ColorBlack,
		FgColor:           tcell.ColorGainsboro,
		BorderColor:       tcell.ColorDarkSeaGreen,
		BorderFocusColor:  tcell.ColorSpringGreen,
		TableHeaderFg:     tcell.ColorWhite,
		TableHeaderBg:     tcell.ColorBlack,
		TableCursorFg:     tcell.ColorBlack,
		TableCursorBg:     tcell.ColorMediumSpringGreen,
		CrumbActiveFg:     tcell.ColorBlack,
		CrumbActiveBg:     tcell.ColorOrange,
		CrumbInactiveFg:   tcell.ColorBlack,
		CrumbInactiveBg:   tcell.ColorMediumSpringGreen,
		MenuKeyColor:      tcell.ColorSpringGreen,
		NumericKeyColor:   tcell.ColorFuchsia,
		TitleColor:        tcell.ColorMediumSpringGreen,
		CounterColor:      tcell.ColorPapayaWhip,
		FlashInfoColor:    tcell.ColorNavajoWhite,
		FlashWarnColor:    tcell.ColorOrange,
		FlashErrColor:     tcell.ColorOrangeRed,
		PromptBorderColor: tcell.ColorSpringGreen,

		SelfMsgColor:   tcell.ColorPaleGreen,
		OtherMsgColor:  tcell.ColorGainsboro,
		UnreadColor:    tcell.ColorSpringGreen,
		TagColor:       tcell.ColorSkyblue,
		TickColor:      tcell.ColorDeepSkyBlue,
		FailedColor:    tcell.ColorOrangeRed,
		LinkColor:      tcell.ColorDeepSkyBlue,
		OrderColor:     tcell.ColorGold,
		LiveColor:      tcell.ColorSpringGreen,
		ReconnectColor: tcell.ColorOrange,
	}
}
