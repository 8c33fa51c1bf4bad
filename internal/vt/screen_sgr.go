package vt

// applySGR implements Select Graphic Rendition (§4.4 "SGR"), including the
// colon-delimited sub-parameter forms for extended colors and underline
// styles (§9 "Sub-parameter-preserving parameter list").
//
// Grounded on framegrace-texelation's handleSGR (apps/texelterm/parser/vterm.go),
// generalized from its flat semicolon-only parameter walk into one that
// consults Param.Sub for colon-grouped parameters (38:2::R:G:B, 4:3, 58:2::R:G:B).
func (s *Screen) applySGR(params Params) {
	if len(params) == 0 {
		s.cursor.SGR = DefaultSGR()
		return
	}
	attrs := &s.cursor.SGR
	for i := 0; i < len(params); i++ {
		v := params[i].Value()
		switch v {
		case 0:
			*attrs = DefaultSGR()
		case 1:
			attrs.Flags |= FlagBold
		case 2:
			attrs.Flags |= FlagFaint
		case 3:
			attrs.Flags |= FlagItalic
		case 4:
			if sub, ok := params[i].Sub(1); ok {
				attrs.setUnderlineStyle(underlineStyleFlag(sub))
			} else {
				attrs.setUnderlineStyle(FlagUnderline)
			}
		case 5:
			attrs.Flags |= FlagBlinking
		case 6:
			attrs.Flags |= FlagRapidBlinking
		case 7:
			attrs.Flags |= FlagInverse
		case 8:
			attrs.Flags |= FlagHidden
		case 9:
			attrs.Flags |= FlagCrossedOut
		case 21:
			attrs.setUnderlineStyle(FlagDoublyUnderlined)
		case 22:
			attrs.Flags &^= FlagBold | FlagFaint
		case 23:
			attrs.Flags &^= FlagItalic
		case 24:
			attrs.setUnderlineStyle(0)
		case 25:
			attrs.Flags &^= FlagBlinking | FlagRapidBlinking
		case 27:
			attrs.Flags &^= FlagInverse
		case 28:
			attrs.Flags &^= FlagHidden
		case 29:
			attrs.Flags &^= FlagCrossedOut
		case 30, 31, 32, 33, 34, 35, 36, 37:
			attrs.Foreground = Indexed(uint8(v - 30))
		case 38:
			i += s.consumeExtendedColor(params, i, &attrs.Foreground)
		case 39:
			attrs.Foreground = DefaultColor
		case 40, 41, 42, 43, 44, 45, 46, 47:
			attrs.Background = Indexed(uint8(v - 40))
		case 48:
			i += s.consumeExtendedColor(params, i, &attrs.Background)
		case 49:
			attrs.Background = DefaultColor
		case 51:
			attrs.Flags |= FlagFramed
		case 52:
			attrs.Flags |= FlagEncircled
		case 53:
			attrs.Flags |= FlagOverline
		case 54:
			attrs.Flags &^= FlagFramed | FlagEncircled
		case 55:
			attrs.Flags &^= FlagOverline
		case 58:
			i += s.consumeExtendedColor(params, i, &attrs.Underline)
		case 59:
			attrs.Underline = DefaultColor
		case 90, 91, 92, 93, 94, 95, 96, 97:
			attrs.Foreground = Indexed(uint8(v-90) + 8)
		case 100, 101, 102, 103, 104, 105, 106, 107:
			attrs.Background = Indexed(uint8(v-100) + 8)
		}
	}
}

func underlineStyleFlag(style int) CellFlags {
	switch style {
	case 0:
		return 0
	case 2:
		return FlagDoublyUnderlined
	case 3:
		return FlagCurlyUnderline
	case 4:
		return FlagDottedUnderline
	case 5:
		return FlagDashedUnderline
	default:
		return FlagUnderline
	}
}

// consumeExtendedColor parses the 38/48/58 extended-color forms, both
// colon sub-parameter grouped (38:2::R:G:B, 38:5:N) and legacy
// semicolon-separated (38;2;R;G;B, 38;5;N spanning extra Params slots).
// It returns how many extra top-level Params slots were consumed in the
// legacy form (0 for the colon form, since those live in Sub()).
func (s *Screen) consumeExtendedColor(params Params, i int, dst *Color) int {
	mode, explicit := params[i].Sub(1)
	if explicit {
		switch mode {
		case 2:
			r, _ := params[i].Sub(3)
			g, _ := params[i].Sub(4)
			b, _ := params[i].Sub(5)
			*dst = RGB(uint8(r), uint8(g), uint8(b))
		case 5:
			n, _ := params[i].Sub(2)
			*dst = Indexed(uint8(n))
		}
		return 0
	}
	if i+1 >= len(params) {
		return 0
	}
	mode = params[i+1].Value()
	switch mode {
	case 2:
		if i+4 >= len(params) {
			return len(params) - i - 1
		}
		*dst = RGB(uint8(params[i+2].Value()), uint8(params[i+3].Value()), uint8(params[i+4].Value()))
		return 4
	case 5:
		if i+2 >= len(params) {
			return len(params) - i - 1
		}
		*dst = Indexed(uint8(params[i+2].Value()))
		return 2
	}
	return 1
}
