package vt

import (
	"strconv"
	"strings"
)

// Sequencer buffers the in-flight Sequence and dispatches completed
// sequences to a Screen (§4.2). It implements Handler so a Parser can drive
// it directly.
//
// Grounded on framegrace-texelation's Parser, which inlines sequence
// buffering and dispatch into the parser switch itself
// (apps/texelterm/parser/parser.go); here that responsibility is split out
// into its own type per the spec's Parser/Sequencer separation, with
// dispatch resolved through explicit function tables keyed by
// (category, leader, intermediate, final) instead of a second state switch.
type Sequencer struct {
	screen *Screen
	log    Logger

	seq Sequence

	curVals     []int
	curExplicit []bool
	pendingSub  bool

	oscBuf []byte
	apcBuf []byte
	pmBuf  []byte
}

// NewSequencer returns a Sequencer dispatching to screen.
func NewSequencer(screen *Screen, log Logger) *Sequencer {
	if log == nil {
		log = noopLogger{}
	}
	return &Sequencer{screen: screen, log: log}
}

func (s *Sequencer) Print(r rune)   { s.screen.WriteRune(r) }
func (s *Sequencer) Execute(b byte) { s.screen.ExecuteC0(b) }

func (s *Sequencer) Collect(b byte) {
	s.seq.Intermediate = append(s.seq.Intermediate, b)
}

func (s *Sequencer) CollectLeader(b byte) { s.seq.Leader = b }

func (s *Sequencer) ParamDigit(b byte) {
	if len(s.curVals) == 0 {
		s.curVals = append(s.curVals, 0)
		s.curExplicit = append(s.curExplicit, false)
	}
	last := len(s.curVals) - 1
	s.curVals[last] = s.curVals[last]*10 + int(b-'0')
	s.curExplicit[last] = true
}

func (s *Sequencer) ParamSeparator() {
	s.flushParam()
	s.curVals = nil
	s.curExplicit = nil
	s.pendingSub = false
}

func (s *Sequencer) ParamSubSeparator() {
	s.curVals = append(s.curVals, 0)
	s.curExplicit = append(s.curExplicit, false)
	s.pendingSub = true
}

func (s *Sequencer) flushParam() {
	if len(s.curVals) == 0 {
		s.curVals = []int{0}
		s.curExplicit = []bool{false}
	}
	s.seq.Params = append(s.seq.Params, Param{Values: s.curVals, explicit: s.curExplicit})
}

func (s *Sequencer) resetSeq(cat SequenceCategory) {
	s.seq.reset(cat)
	s.curVals = nil
	s.curExplicit = nil
	s.pendingSub = false
}

func (s *Sequencer) DispatchESC(final byte) {
	s.seq.Final = final
	outcome := s.screen.DispatchESC(&s.seq)
	s.logOutcome("ESC", outcome)
	s.resetSeq(SeqESC)
}

func (s *Sequencer) DispatchCSI(final byte) {
	s.flushParam()
	s.seq.Final = final
	s.seq.Category = SeqCSI
	outcome := s.screen.DispatchCSI(&s.seq)
	s.logOutcome("CSI", outcome)
	s.resetSeq(SeqCSI)
}

func (s *Sequencer) StartOSC() { s.oscBuf = s.oscBuf[:0] }
func (s *Sequencer) PutOSC(b byte) { s.oscBuf = append(s.oscBuf, b) }
func (s *Sequencer) DispatchOSC() {
	outcome := s.screen.DispatchOSC(s.oscBuf)
	s.logOutcome("OSC", outcome)
}

// Hook begins a DCS sequence: flush params/intermediate/leader into seq,
// then ask the Screen whether it wants to install a sub-parser (Sixel,
// XTGETTCAP, DECRQSS) for the raw Put stream.
func (s *Sequencer) Hook(final byte) DCSSubParser {
	s.flushParam()
	s.seq.Final = final
	s.seq.Category = SeqDCS
	sub := s.screen.HookDCS(&s.seq)
	return sub
}

func (s *Sequencer) Put(b byte) { s.seq.Payload = append(s.seq.Payload, b) }

func (s *Sequencer) Unhook() {
	outcome := s.screen.UnhookDCS(&s.seq)
	s.logOutcome("DCS", outcome)
	s.resetSeq(SeqDCS)
}

func (s *Sequencer) StartAPC()      { s.apcBuf = s.apcBuf[:0] }
func (s *Sequencer) PutAPC(b byte)  { s.apcBuf = append(s.apcBuf, b) }
func (s *Sequencer) DispatchAPC()   { s.screen.DispatchAPC(s.apcBuf) }

func (s *Sequencer) StartPM()     { s.pmBuf = s.pmBuf[:0] }
func (s *Sequencer) PutPM(b byte) { s.pmBuf = append(s.pmBuf, b) }
func (s *Sequencer) DispatchPM()  { s.screen.DispatchPM(s.pmBuf) }

func (s *Sequencer) Error(message string) { s.log.Warnf("vt: parser error: %s", message) }

func (s *Sequencer) logOutcome(kind string, o SequenceOutcome) {
	switch o {
	case OutcomeInvalid:
		s.log.Infof("vt: invalid-parameter in %s sequence %s", kind, s.describe())
	case OutcomeUnsupported:
		s.log.Infof("vt: unsupported %s sequence %s", kind, s.describe())
	}
}

func (s *Sequencer) describe() string {
	var sb strings.Builder
	if s.seq.Leader != 0 {
		sb.WriteByte(s.seq.Leader)
	}
	for i, p := range s.seq.Params {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(strconv.Itoa(p.Value()))
	}
	sb.Write(s.seq.Intermediate)
	if s.seq.Final != 0 {
		sb.WriteByte(s.seq.Final)
	}
	return sb.String()
}
