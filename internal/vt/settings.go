package vt

import "time"

// TerminalID selects the compatibility level reported by DA1/DA2/DA3 and
// consulted by feature gating (§3 Settings, §4.4 DA1/DA2/DA3).
type TerminalID uint8

const (
	VT100 TerminalID = iota
	VT220
	VT240
	VT320
	VT330
	VT340
	VT420
	VT510
	VT520
	VT525
)

// StatusDisplayType selects whether a status line is drawn, and if so who
// owns its content (§3 Settings, §4.4 "Status line").
type StatusDisplayType uint8

const (
	StatusDisplayNone StatusDisplayType = iota
	StatusDisplayIndicator
	StatusDisplayHostWritable
)

// StatusDisplayPosition selects which edge of the page the status line
// occupies.
type StatusDisplayPosition uint8

const (
	StatusPositionTop StatusDisplayPosition = iota
	StatusPositionBottom
)

// CursorDisplay selects whether the cursor blinks.
type CursorDisplay uint8

const (
	CursorSteady CursorDisplay = iota
	CursorBlink
)

// CursorShape selects the rendered cursor glyph.
type CursorShape uint8

const (
	CursorBlock CursorShape = iota
	CursorUnderscore
	CursorBar
	CursorRectangle
)

// PageSize is a terminal's visible geometry in character cells.
type PageSize struct {
	Lines, Columns int
}

// HistoryLimit describes the scrollback retention policy.
type HistoryLimit struct {
	Unbounded bool
	Disabled  bool
	Max       int // meaningful only when !Unbounded && !Disabled
}

// Settings collects every tunable the spec names in §3.
type Settings struct {
	PageSize PageSize

	MaxHistoryLineCount HistoryLimit

	MaxImageSize           PageSize // in pixels, reused as a bounding rectangle
	MaxImageRegisterCount  int

	StatusDisplayType     StatusDisplayType
	StatusDisplayPosition StatusDisplayPosition

	CursorDisplay        CursorDisplay
	CursorShape          CursorShape
	CursorBlinkInterval  time.Duration

	RefreshRate     float64 // Hz
	RefreshInterval time.Duration

	PTYReadBufferSize   int // must be a multiple of 16
	PTYBufferObjectSize int

	WordDelimiters string

	MouseProtocolBypassModifier Modifier
	MouseBlockSelectionModifier Modifier

	HighlightTimeout          time.Duration
	HighlightDoubleClickedWord bool
	VisualizeSelectedWord      bool

	PrimaryScreenAllowReflowOnResize bool

	URLPattern string

	TerminalID TerminalID
}

// DefaultSettings returns the settings the teacher's NewVTerm(width, height)
// constructor effectively hard-codes, generalized into an explicit,
// documented default (framegrace-texelation apps/texelterm/parser/vterm.go).
func DefaultSettings(lines, columns int) Settings {
	s := Settings{
		PageSize:                         PageSize{Lines: lines, Columns: columns},
		MaxHistoryLineCount:              HistoryLimit{Max: 10000},
		MaxImageSize:                     PageSize{Lines: 1024, Columns: 1024},
		MaxImageRegisterCount:            1024,
		StatusDisplayType:                StatusDisplayNone,
		StatusDisplayPosition:            StatusPositionBottom,
		CursorDisplay:                    CursorSteady,
		CursorShape:                      CursorBlock,
		CursorBlinkInterval:              600 * time.Millisecond,
		RefreshRate:                      60,
		PTYReadBufferSize:                8192,
		PTYBufferObjectSize:              4096,
		WordDelimiters:                   " \t\n,.;:!?\"'`()[]{}<>|/\\",
		HighlightTimeout:                 500 * time.Millisecond,
		HighlightDoubleClickedWord:       true,
		PrimaryScreenAllowReflowOnResize: true,
		URLPattern:                       `[a-zA-Z][a-zA-Z0-9+.-]*://[^\s<>"']+`,
		TerminalID:                       VT525,
	}
	s.RefreshInterval = time.Duration(float64(time.Second) / s.RefreshRate)
	return s
}

// StatusLineHeight is the number of page rows the configured status display
// consumes, per §3's grid-dimension invariant.
func (s Settings) StatusLineHeight() int {
	if s.StatusDisplayType == StatusDisplayNone {
		return 0
	}
	return 1
}
