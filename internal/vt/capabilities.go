package vt

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// CapabilityDB answers DA1/DA2/DA3 and XTGETTCAP queries from a small
// terminfo-like capability set, stored as JSON so profiles can be loaded,
// merged, and queried with gjson/sjson instead of a bespoke map-of-maps
// (§4.4 "XTGETTCAP", §6 "Capability reporting").
type CapabilityDB struct {
	id  TerminalID
	doc string // JSON object: capability name -> string value
}

// DefaultCapabilityDB returns the capability set for a given compatibility
// level, seeded with the handful of entries XTGETTCAP callers commonly probe
// (TN, co, li, colors, RGB).
func DefaultCapabilityDB(id TerminalID) *CapabilityDB {
	db := &CapabilityDB{id: id, doc: "{}"}
	db.set("TN", db.TerminalName())
	db.set("co", "80")
	db.set("li", "24")
	db.set("colors", "256")
	if id >= VT420 {
		db.set("RGB", "8/8/8")
	}
	return db
}

func (db *CapabilityDB) set(name, value string) {
	doc, err := sjson.Set(db.doc, name, value)
	if err == nil {
		db.doc = doc
	}
}

// Lookup returns a capability's value by name.
func (db *CapabilityDB) Lookup(name string) (string, bool) {
	r := gjson.Get(db.doc, gjsonEscape(name))
	if !r.Exists() {
		return "", false
	}
	return r.String(), true
}

// SetPageGeometry updates the co/li capabilities to track live resizes.
func (db *CapabilityDB) SetPageGeometry(columns, lines int) {
	db.set("co", fmt.Sprintf("%d", columns))
	db.set("li", fmt.Sprintf("%d", lines))
}

func gjsonEscape(name string) string {
	return strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`).Replace(name)
}

// TerminalName returns the self-identifying string used by TN and the
// answerback message.
func (db *CapabilityDB) TerminalName() string {
	switch db.id {
	case VT100:
		return "vt100"
	case VT220:
		return "vt220"
	case VT240:
		return "vt240"
	case VT320:
		return "vt320"
	case VT330:
		return "vt330"
	case VT340:
		return "vt340"
	case VT420:
		return "vt420"
	case VT510:
		return "vt510"
	case VT520:
		return "vt520"
	case VT525:
		return "vt525"
	default:
		return "vt525"
	}
}

// AnswerbackString is the reply to ENQ (§6 "Control codes").
func (db *CapabilityDB) AnswerbackString() string {
	return db.TerminalName()
}

// DA1Response builds the Primary Device Attributes reply for the
// configured compatibility level.
func (db *CapabilityDB) DA1Response() []byte {
	class := da1Class(db.id)
	return []byte(fmt.Sprintf("\x1b[?%d;1;2;6;9;15;18;21;22c", class))
}

func da1Class(id TerminalID) int {
	switch {
	case id >= VT525:
		return 65
	case id >= VT420:
		return 64
	case id >= VT320:
		return 63
	case id >= VT220:
		return 62
	default:
		return 1
	}
}

// DA2Response builds the Secondary Device Attributes reply: terminal type,
// firmware version, and ROM cartridge (always 0 here).
func (db *CapabilityDB) DA2Response() []byte {
	return []byte(fmt.Sprintf("\x1b[>%d;100;0c", da1Class(db.id)))
}

// DA3Response builds the Tertiary Device Attributes reply: a DECRPTUI unit
// ID report, hex-encoded.
func (db *CapabilityDB) DA3Response() []byte {
	return []byte("\x1bP!|" + encodeHex("libterm1") + "\x1b\\")
}
