package vt

// AnsiMode identifies one of the (few) standard SM/RM modes the core
// recognizes (§6 "Supported VT function set").
type AnsiMode int

const (
	AnsiModeIRM AnsiMode = 4 // Insert/Replace Mode
)

// DECMode identifies a DEC private mode (DECSET/DECRST), sparse up to 8452
// (§3 Modes).
type DECMode int

const (
	DECModeAppCursorKeys        DECMode = 1
	DECModeANSI                DECMode = 2
	DECMode132Columns           DECMode = 3
	DECModeSmoothScroll         DECMode = 4
	DECModeReverseVideo         DECMode = 5
	DECModeOriginMode           DECMode = 6
	DECModeAutoWrap             DECMode = 7
	DECModeAutoRepeat           DECMode = 8
	DECModeX10Mouse             DECMode = 9
	DECModeShowToolbar          DECMode = 10
	DECModeBlinkingCursor       DECMode = 12
	DECModeDECPCM               DECMode = 19
	DECModeShowCursor           DECMode = 25
	DECModeReverseWraparound    DECMode = 30
	DECModeAllow132ColumnMode   DECMode = 40
	DECModeMarginBell           DECMode = 44
	DECModeReverseWrap          DECMode = 45
	DECModeStartBlinkingCursor  DECMode = 46
	DECModeAltScreen47          DECMode = 47
	DECModeDECLRMM              DECMode = 69
	DECModeSixelScrollsRight    DECMode = 80
	DECModeNormalMouse          DECMode = 1000
	DECModeHighlightMouse       DECMode = 1001
	DECModeButtonEventMouse     DECMode = 1002
	DECModeAnyEventMouse        DECMode = 1003
	DECModeFocusTracking        DECMode = 1004
	DECModeUTF8Mouse            DECMode = 1005
	DECModeSGRMouse             DECMode = 1006
	DECModeAlternateScroll      DECMode = 1007
	DECModeURXVTMouse           DECMode = 1015
	DECModeSGRPixelsMouse       DECMode = 1016
	DECModeAltScreen1047        DECMode = 1047
	DECModeSaveCursor           DECMode = 1048
	DECModeAltScreen1049        DECMode = 1049
	DECModeBracketedPaste       DECMode = 2004
	DECModeSynchronizedUpdate   DECMode = 2026
	DECModeGraphemeClustering   DECMode = 2027
	DECModeTextReflow           DECMode = 2028
	DECModePassiveMouseTracking DECMode = 2029
	DECModeReportGridDims       DECMode = 2030
	DECModeXTGETTCAPExtended    DECMode = 8452
)

// Modes holds the ANSI and DEC-private mode bitsets plus the XTSAVE/XTRESTORE
// stack of saved DEC-mode booleans (§3 Modes).
type Modes struct {
	ansi map[AnsiMode]bool
	dec  map[DECMode]bool
	// saveStack holds one snapshot per XTSAVE, keyed by the set of modes
	// saved so XTRESTORE only touches the modes that were pushed.
	saveStack []map[DECMode]bool
}

// NewModes returns Modes with every mode at its power-on default: DEC
// AutoWrap, ShowCursor and AutoRepeat set, everything else clear.
func NewModes() *Modes {
	m := &Modes{ansi: make(map[AnsiMode]bool), dec: make(map[DECMode]bool)}
	m.dec[DECModeAutoWrap] = true
	m.dec[DECModeShowCursor] = true
	m.dec[DECModeAutoRepeat] = true
	return m
}

func (m *Modes) SetAnsi(mode AnsiMode, on bool) { m.ansi[mode] = on }
func (m *Modes) Ansi(mode AnsiMode) bool        { return m.ansi[mode] }

func (m *Modes) SetDEC(mode DECMode, on bool) { m.dec[mode] = on }
func (m *Modes) DEC(mode DECMode) bool        { return m.dec[mode] }

// Save pushes the current value of each listed mode onto the save stack
// (XTSAVE, CSI ? Pm s).
func (m *Modes) Save(modes []DECMode) {
	snap := make(map[DECMode]bool, len(modes))
	for _, mode := range modes {
		snap[mode] = m.dec[mode]
	}
	m.saveStack = append(m.saveStack, snap)
}

// Restore pops the most recent save and reapplies it (XTRESTORE, CSI ? Pm r).
// If the stack is empty, it is a no-op (Invalid outcome at the call site).
func (m *Modes) Restore() bool {
	if len(m.saveStack) == 0 {
		return false
	}
	top := m.saveStack[len(m.saveStack)-1]
	m.saveStack = m.saveStack[:len(m.saveStack)-1]
	for mode, val := range top {
		m.dec[mode] = val
	}
	return true
}

// reset restores every recognized mode to its power-on default and clears
// the save stack (RIS).
func (m *Modes) reset() {
	m.ansi = make(map[AnsiMode]bool)
	m.dec = make(map[DECMode]bool)
	m.dec[DECModeAutoWrap] = true
	m.dec[DECModeShowCursor] = true
	m.dec[DECModeAutoRepeat] = true
	m.saveStack = nil
}
