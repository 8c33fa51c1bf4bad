package vt

// SequenceCategory identifies which introducer started the in-flight
// sequence (§4.2 Sequencer).
type SequenceCategory uint8

const (
	SeqCSI SequenceCategory = iota
	SeqESC
	SeqOSC
	SeqDCS
	SeqAPC
	SeqPM
	SeqSOS
)

// Param is one parameter slot plus its colon-delimited sub-parameters. The
// spec requires distinguishing `38;2;R;G;B` (five top-level parameters)
// from `38:2::R:G:B` (one parameter with four sub-parameters, the middle
// one omitted) — resolved per original_source/vtbackend's
// Sequence::Parameter, which keeps sub-parameter groups explicit instead of
// flattening everything into one slice (§9 "Sub-parameter-preserving
// parameter list").
type Param struct {
	// Values holds the parameter's own value at index 0, followed by any
	// colon-separated sub-parameters.
	Values []int
	// explicit[i] is true if digits were seen for Values[i]; false means
	// that slot defaulted to 0 because it was omitted (e.g. "38:2::R:G:B"'s
	// empty third field), which Screen code must treat differently from a
	// literal 0 (§4.2 "param_or").
	explicit []bool
}

// Value returns the parameter's primary value (sub-parameter 0).
func (p Param) Value() int {
	if len(p.Values) == 0 {
		return 0
	}
	return p.Values[0]
}

// Explicit reports whether the primary value was actually typed (vs.
// defaulted from an empty field).
func (p Param) Explicit() bool {
	if len(p.explicit) == 0 {
		return false
	}
	return p.explicit[0]
}

// Sub returns sub-parameter i (1-based position after the colon), or
// (0, false) if it was omitted or doesn't exist.
func (p Param) Sub(i int) (int, bool) {
	if i < 0 || i >= len(p.Values) || i >= len(p.explicit) {
		return 0, false
	}
	return p.Values[i], p.explicit[i]
}

// Params is an ordered parameter list preserving sub-parameter grouping.
type Params []Param

// Or returns the value at index i, or def if that parameter was omitted
// entirely or its primary sub-parameter was never given a digit — the
// "default requested vs literal 0" distinction of §4.2.
func (ps Params) Or(i, def int) int {
	if i < 0 || i >= len(ps) || !ps[i].Explicit() {
		return def
	}
	return ps[i].Value()
}

// Int returns the raw value at index i (0 if absent), ignoring the
// explicit/default distinction — used where a bare 0 and an omitted
// parameter behave identically.
func (ps Params) Int(i int) int {
	if i < 0 || i >= len(ps) {
		return 0
	}
	return ps[i].Value()
}

// Len is the number of top-level parameters (sub-parameters excluded).
func (ps Params) Len() int { return len(ps) }

// Sequence is the reusable in-flight-sequence record the Sequencer
// assembles before dispatch (§4.2 Sequencer).
type Sequence struct {
	Category     SequenceCategory
	Leader       byte // '?', '>', '<', '=', or 0
	Intermediate []byte
	Params       Params
	Final        byte
	Payload      []byte // OSC/DCS string payload
}

func (s *Sequence) reset(cat SequenceCategory) {
	s.Category = cat
	s.Leader = 0
	s.Intermediate = s.Intermediate[:0]
	s.Params = s.Params[:0]
	s.Final = 0
	s.Payload = s.Payload[:0]
}
