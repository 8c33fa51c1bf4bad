package vt

import "strconv"

// ViMode is the modal state of the vi-like overlay (§4.7).
type ViMode uint8

const (
	ViModeInsert ViMode = iota // default; keys pass through to the terminal
	ViModeNormal
	ViModeVisual
	ViModeVisualLine
	ViModeVisualBlock
	ViModeSearch // sub-mode entered from Normal/Visual via "/"
)

// ViScope names the span a motion or text-object resolves to, passed to
// Executor.Select/Yank so the caller knows whether to treat it as
// character-wise, line-wise, or block-wise.
type ViScope uint8

const (
	ScopeChar ViScope = iota
	ScopeLine
	ScopeBlock
)

// ViMotion identifies one of the enumerated motions/operators/text-objects
// a command resolves to (§6's exhaustive list). The handler doesn't
// interpret these itself; it hands them to the Executor along with the
// repeat count and any captured wildcard character.
type ViMotion string

const (
	MotionLeft          ViMotion = "left"
	MotionRight         ViMotion = "right"
	MotionUp            ViMotion = "up"
	MotionDown          ViMotion = "down"
	MotionLineStart     ViMotion = "line-start"
	MotionLineFirstNonBlank ViMotion = "line-first-nonblank"
	MotionLineEnd       ViMotion = "line-end"
	MotionWordForward   ViMotion = "word-forward"
	MotionWordBackward  ViMotion = "word-backward"
	MotionWordEnd       ViMotion = "word-end"
	MotionBigWordForward  ViMotion = "bigword-forward"
	MotionBigWordBackward ViMotion = "bigword-backward"
	MotionBigWordEnd    ViMotion = "bigword-end"
	MotionFileStart     ViMotion = "file-start"
	MotionFileEnd       ViMotion = "file-end"
	MotionPageUp        ViMotion = "page-up"
	MotionPageDown      ViMotion = "page-down"
	MotionHalfPageUp    ViMotion = "half-page-up"
	MotionHalfPageDown  ViMotion = "half-page-down"
	MotionScreenTop     ViMotion = "screen-top"
	MotionScreenMiddle  ViMotion = "screen-middle"
	MotionScreenBottom  ViMotion = "screen-bottom"
	MotionParagraphNext ViMotion = "paragraph-next"
	MotionParagraphPrev ViMotion = "paragraph-prev"
	MotionMatchingBrace ViMotion = "matching-brace"
	MotionSectionNext    ViMotion = "section-next"
	MotionSectionPrev    ViMotion = "section-prev"
	MotionSectionNextEnd ViMotion = "section-next-end"
	MotionSectionPrevEnd ViMotion = "section-prev-end"
	MotionMarkNext      ViMotion = "mark-next"
	MotionMarkPrev      ViMotion = "mark-prev"
	MotionFindChar      ViMotion = "find-char"
	MotionFindCharBack  ViMotion = "find-char-back"
	MotionTillChar      ViMotion = "till-char"
	MotionTillCharBack  ViMotion = "till-char-back"
	MotionRepeatFind    ViMotion = "repeat-find"
	MotionRepeatFindRev ViMotion = "repeat-find-rev"
)

// ViTextObject identifies an `i`/`a` text-object target.
type ViTextObject string

const (
	ObjDoubleQuote ViTextObject = `"`
	ObjParen       ViTextObject = "("
	ObjAngle       ViTextObject = "<"
	ObjBigWord     ViTextObject = "W"
	ObjBracket     ViTextObject = "["
	ObjSingleQuote ViTextObject = "'"
	ObjBacktick    ViTextObject = "`"
	ObjParagraph   ViTextObject = "p"
	ObjWord        ViTextObject = "w"
	ObjBrace       ViTextObject = "{"
	ObjMark        ViTextObject = "m"
)

// viCommand is the value stored at a completed trie path: what kind of
// action it is, and the motion/object it acts on. Resolves the forward
// reference from vi_trie.go.
type viCommand struct {
	kind     viCommandKind
	motion   ViMotion
	object   ViTextObject
	inner    bool // true for "i"-text-objects, false for "a"
	linewise bool // yy/Y, dd-style whole-line variants
}

type viCommandKind uint8

const (
	cmdMotion viCommandKind = iota
	cmdYankMotion   // y<motion>, e.g. yw, yb, y$
	cmdYankLine     // yy / Y
	cmdYankTillChar // y{t|T|f|F}<captured>
	cmdYankTextObject
	cmdEnterVisual
	cmdEnterVisualLine
	cmdEnterVisualBlock
	cmdVisualYank
	cmdVisualExitToNormal
	cmdVisualSearch
	cmdEnterInsert
	cmdToggleLineMark
	cmdSearchNext   // "*"
	cmdSearchPrev   // "#"
	cmdSearchStart  // "/"
	cmdPaste
	cmdPasteBefore
	cmdJoinLines
	cmdSplitLine // K, approximated as scroll-and-move per spec wording
	cmdSetMark   // mm
	cmdRepeatFindFwd
	cmdRepeatFindBack
)

// Executor is implemented by whatever owns the Screen and scrollback the
// overlay drives (§4.7 "exposes an Executor interface").
type Executor interface {
	MoveCursor(motion ViMotion, count int, target rune)
	ScrollViewport(motion ViMotion, count int)
	Yank(scope ViScope, motion ViMotion, count int, target rune)
	YankTextObject(obj ViTextObject, inner bool, count int)
	Paste(before bool, count int)
	Select(mode ViMode)
	ToggleLineMark()
	SetMark()
	SearchStart()
	SearchCancel()
	SearchDone(term string)
	UpdateSearchTerm(term string)
	JumpToNextMatch(count int)
	JumpToPreviousMatch(count int)
	JoinLines(count int)
	EnterInsert()
}

// ViInputHandler drives a commandTrie with key tokens and dispatches
// completed commands to an Executor, tracking mode and numeric-prefix
// counts (§4.7).
type ViInputHandler struct {
	exec   Executor
	mode   ViMode
	root   *commandTrie
	walker *trieWalker

	countDigits string
	lastFind    struct {
		motion ViMotion
		target rune
	}
	searchBuf string
}

// NewViInputHandler builds the full motion/operator/text-object trie and
// returns a handler in Insert mode.
func NewViInputHandler(exec Executor) *ViInputHandler {
	h := &ViInputHandler{exec: exec, mode: ViModeInsert, root: newCommandTrie()}
	h.walker = newTrieWalker(h.root)
	h.registerMotions()
	h.registerOperators()
	h.registerVisual()
	h.registerNormalExtras()
	return h
}

func (h *ViInputHandler) reg(tokens string, cmd viCommand) {
	h.root.Register(tokenize(tokens), cmd)
}

// tokenize splits a registration key like "yaw" or "<PageUp>" or "C-D"
// into trie tokens: bracketed key names and "C-X" control chords are kept
// whole; everything else is split into single-character tokens.
func tokenize(s string) []string {
	var toks []string
	for i := 0; i < len(s); {
		switch {
		case s[i] == '<':
			j := i + 1
			for j < len(s) && s[j] != '>' {
				j++
			}
			if j < len(s) {
				toks = append(toks, s[i:j+1])
				i = j + 1
				continue
			}
			toks = append(toks, string(s[i]))
			i++
		case i+1 < len(s) && s[i+1] == '-' && (s[i] == 'C' || s[i] == 'S' || s[i] == 'M') && i+2 < len(s):
			toks = append(toks, s[i:i+3])
			i += 3
		default:
			toks = append(toks, string(s[i]))
			i++
		}
	}
	return toks
}

func (h *ViInputHandler) registerMotions() {
	m := map[string]ViMotion{
		"h": MotionLeft, "<Left>": MotionLeft, "<BS>": MotionLeft,
		"l": MotionRight, "<Right>": MotionRight, "<Space>": MotionRight,
		"k": MotionUp, "<Up>": MotionUp,
		"j": MotionDown, "<Down>": MotionDown, "<NL>": MotionDown,
		"0": MotionLineStart, "<Home>": MotionLineStart,
		"^": MotionLineFirstNonBlank,
		"$": MotionLineEnd, "<End>": MotionLineEnd,
		"w": MotionWordForward, "b": MotionWordBackward, "e": MotionWordEnd,
		"W": MotionBigWordForward, "B": MotionBigWordBackward, "E": MotionBigWordEnd,
		"gg": MotionFileStart, "G": MotionFileEnd,
		"<PageUp>": MotionPageUp, "<PageDown>": MotionPageDown,
		"C-U": MotionHalfPageUp, "C-D": MotionHalfPageDown,
		"H": MotionScreenTop, "M": MotionScreenMiddle, "L": MotionScreenBottom,
		"}": MotionParagraphNext, "{": MotionParagraphPrev,
		"%": MotionMatchingBrace,
		"]]": MotionSectionNext, "[[": MotionSectionPrev,
		"][": MotionSectionNextEnd, "[]": MotionSectionPrevEnd,
		"]m": MotionMarkNext, "[m": MotionMarkPrev,
		"|": MotionLineStart,
	}
	for tok, motion := range m {
		h.reg(tok, viCommand{kind: cmdMotion, motion: motion})
	}
	for _, tok := range []string{"f", "F", "t", "T"} {
		motion := map[string]ViMotion{"f": MotionFindChar, "F": MotionFindCharBack, "t": MotionTillChar, "T": MotionTillCharBack}[tok]
		h.reg(tok+".", viCommand{kind: cmdMotion, motion: motion})
	}
	h.reg(";", viCommand{kind: cmdRepeatFindFwd})
	h.reg(",", viCommand{kind: cmdRepeatFindBack})
	h.reg("n", viCommand{kind: cmdSearchNext})
	h.reg("N", viCommand{kind: cmdSearchPrev})
}

func (h *ViInputHandler) registerOperators() {
	h.reg("yy", viCommand{kind: cmdYankLine})
	h.reg("Y", viCommand{kind: cmdYankLine})
	for _, suf := range []string{"b", "e", "w"} {
		h.reg("y"+suf, viCommand{kind: cmdYankMotion, motion: map[string]ViMotion{"b": MotionWordBackward, "e": MotionWordEnd, "w": MotionWordForward}[suf]})
	}
	for _, suf := range []string{"B", "E", "W"} {
		h.reg("y"+suf, viCommand{kind: cmdYankMotion, motion: map[string]ViMotion{"B": MotionBigWordBackward, "E": MotionBigWordEnd, "W": MotionBigWordForward}[suf]})
	}
	for _, suf := range []string{"t", "T", "f", "F"} {
		motion := map[string]ViMotion{"t": MotionTillChar, "T": MotionTillCharBack, "f": MotionFindChar, "F": MotionFindCharBack}[suf]
		h.reg("y"+suf+".", viCommand{kind: cmdYankTillChar, motion: motion})
	}
	for _, obj := range []ViTextObject{ObjDoubleQuote, ObjParen, ObjAngle, ObjBigWord, ObjBracket, ObjSingleQuote, ObjBacktick, ObjParagraph, ObjWord, ObjBrace, ObjMark} {
		h.reg("yi"+string(obj), viCommand{kind: cmdYankTextObject, object: obj, inner: true})
		h.reg("ya"+string(obj), viCommand{kind: cmdYankTextObject, object: obj, inner: false})
	}
}

func (h *ViInputHandler) registerVisual() {
	h.reg("v", viCommand{kind: cmdEnterVisual})
	h.reg("V", viCommand{kind: cmdEnterVisualLine})
	h.reg("C-V", viCommand{kind: cmdEnterVisualBlock})
}

func (h *ViInputHandler) registerNormalExtras() {
	h.reg("a", viCommand{kind: cmdEnterInsert})
	h.reg("i", viCommand{kind: cmdEnterInsert})
	h.reg("<Insert>", viCommand{kind: cmdEnterInsert})
	h.reg("mm", viCommand{kind: cmdSetMark})
	h.reg("*", viCommand{kind: cmdSearchNext})
	h.reg("#", viCommand{kind: cmdSearchPrev})
	h.reg("/", viCommand{kind: cmdSearchStart})
	h.reg("p", viCommand{kind: cmdPaste})
	h.reg("P", viCommand{kind: cmdPasteBefore})
	h.reg("J", viCommand{kind: cmdJoinLines})
	h.reg("K", viCommand{kind: cmdSplitLine})
	h.reg("<ESC>", viCommand{kind: cmdVisualExitToNormal})
}

// Mode returns the handler's current mode.
func (h *ViInputHandler) Mode() ViMode { return h.mode }

// SetMode forces the mode (e.g. the Terminal enters Normal on a bound key
// chord outside this handler's own trie).
func (h *ViInputHandler) SetMode(m ViMode) {
	h.mode = m
	h.walker.Reset()
	h.countDigits = ""
}

// Feed delivers one key token (a literal printable character, or a
// bracketed/chord token like "<PageUp>" or "C-D") to the handler.
// Insert mode never consumes tokens: Feed returns false immediately so the
// caller forwards the key to the PTY untouched.
func (h *ViInputHandler) Feed(tok string) bool {
	if h.mode == ViModeInsert {
		return false
	}
	if h.mode == ViModeSearch {
		return h.feedSearch(tok)
	}
	if tok == "y" && (h.mode == ViModeVisual || h.mode == ViModeVisualLine || h.mode == ViModeVisualBlock) {
		count := h.currentCount()
		h.countDigits = ""
		h.walker.Reset()
		h.dispatch(viCommand{kind: cmdVisualYank}, count, nil)
		return true
	}
	if len(tok) == 1 && tok[0] >= '0' && tok[0] <= '9' && !(tok == "0" && h.countDigits == "") {
		h.countDigits += tok
		return true
	}
	count := h.currentCount()

	result, cmd, captured := h.walker.Feed(tok)
	switch result {
	case matchNone:
		h.countDigits = ""
		return true
	case matchPending:
		return true
	}
	h.countDigits = ""
	h.dispatch(*cmd, count, captured)
	return true
}

func (h *ViInputHandler) currentCount() int {
	if h.countDigits == "" {
		return 1
	}
	n, err := strconv.Atoi(h.countDigits)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func (h *ViInputHandler) feedSearch(tok string) bool {
	switch tok {
	case "<Enter>":
		h.exec.SearchDone(h.searchBuf)
		h.searchBuf = ""
		h.mode = ViModeNormal
	case "<ESC>":
		h.exec.SearchCancel()
		h.searchBuf = ""
		h.mode = ViModeNormal
	case "<BS>":
		if n := len(h.searchBuf); n > 0 {
			h.searchBuf = h.searchBuf[:n-1]
			h.exec.UpdateSearchTerm(h.searchBuf)
		}
	default:
		if len(tok) == 1 {
			h.searchBuf += tok
			h.exec.UpdateSearchTerm(h.searchBuf)
		}
	}
	return true
}

func (h *ViInputHandler) dispatch(cmd viCommand, count int, captured []string) {
	var target rune
	if len(captured) > 0 && len(captured[0]) > 0 {
		target = []rune(captured[0])[0]
	}
	switch cmd.kind {
	case cmdMotion:
		h.exec.MoveCursor(cmd.motion, count, target)
	case cmdYankMotion:
		h.exec.Yank(ScopeChar, cmd.motion, count, 0)
	case cmdYankLine:
		h.exec.Yank(ScopeLine, "", count, 0)
	case cmdYankTillChar:
		h.exec.Yank(ScopeChar, cmd.motion, count, target)
	case cmdYankTextObject:
		h.exec.YankTextObject(cmd.object, cmd.inner, count)
	case cmdEnterVisual:
		h.mode = ViModeVisual
		h.exec.Select(ViModeVisual)
	case cmdEnterVisualLine:
		h.mode = ViModeVisualLine
		h.exec.Select(ViModeVisualLine)
	case cmdEnterVisualBlock:
		h.mode = ViModeVisualBlock
		h.exec.Select(ViModeVisualBlock)
	case cmdVisualYank:
		if h.mode == ViModeVisual || h.mode == ViModeVisualLine || h.mode == ViModeVisualBlock {
			scope := ScopeChar
			if h.mode == ViModeVisualLine {
				scope = ScopeLine
			} else if h.mode == ViModeVisualBlock {
				scope = ScopeBlock
			}
			h.exec.Yank(scope, "", count, 0)
			h.mode = ViModeNormal
		} else {
			h.exec.Yank(ScopeChar, "", count, 0)
		}
	case cmdVisualSearch:
		h.mode = ViModeSearch
		h.exec.SearchStart()
	case cmdVisualExitToNormal:
		h.mode = ViModeNormal
	case cmdEnterInsert:
		h.mode = ViModeInsert
		h.exec.EnterInsert()
	case cmdToggleLineMark:
		h.exec.ToggleLineMark()
	case cmdSetMark:
		h.exec.SetMark()
	case cmdSearchNext:
		h.exec.JumpToNextMatch(count)
	case cmdSearchPrev:
		h.exec.JumpToPreviousMatch(count)
	case cmdSearchStart:
		h.mode = ViModeSearch
		h.exec.SearchStart()
	case cmdPaste:
		h.exec.Paste(false, count)
	case cmdPasteBefore:
		h.exec.Paste(true, count)
	case cmdJoinLines:
		h.exec.JoinLines(count)
	case cmdSplitLine:
		h.exec.ScrollViewport(MotionDown, count)
		h.exec.MoveCursor(MotionDown, count, 0)
	case cmdRepeatFindFwd:
		h.exec.MoveCursor(h.lastFind.motion, count, h.lastFind.target)
	case cmdRepeatFindBack:
		h.exec.MoveCursor(reverseFind(h.lastFind.motion), count, h.lastFind.target)
	}
	if cmd.motion == MotionFindChar || cmd.motion == MotionFindCharBack || cmd.motion == MotionTillChar || cmd.motion == MotionTillCharBack {
		h.lastFind.motion = cmd.motion
		h.lastFind.target = target
	}
}

func reverseFind(m ViMotion) ViMotion {
	switch m {
	case MotionFindChar:
		return MotionFindCharBack
	case MotionFindCharBack:
		return MotionFindChar
	case MotionTillChar:
		return MotionTillCharBack
	case MotionTillCharBack:
		return MotionTillChar
	default:
		return m
	}
}
