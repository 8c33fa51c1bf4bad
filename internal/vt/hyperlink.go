package vt

import "github.com/google/uuid"

// Hyperlink is a registered OSC 8 target: a URI plus the raw parameter
// string (commonly "id=...") the host sent alongside it (§4.4 "Hyperlinks").
type Hyperlink struct {
	URI    string
	Params string
	ID     string // the host-supplied id=, or a generated uuid if absent
}

// HyperlinkRegistry interns Hyperlink values behind small HyperlinkID
// handles so Cell stays a fixed-size value type (§3 Data Model).
//
// Grounded on framegrace-texelation's VTerm, which has no hyperlink concept
// at all; the registry design follows the spec's "interned by id=" rule,
// using google/uuid to synthesize an id when the host sends a bare
// "OSC 8 ;; URI ST" with no id= parameter. Each bare link therefore gets
// its own entry and handle, even when the same URI is opened again; only
// links with a matching id= and URI share an entry.
type HyperlinkRegistry struct {
	byHandle map[HyperlinkID]*Hyperlink
	byID     map[string]HyperlinkID
	next     HyperlinkID
}

// NewHyperlinkRegistry returns an empty registry.
func NewHyperlinkRegistry() *HyperlinkRegistry {
	return &HyperlinkRegistry{byHandle: make(map[HyperlinkID]*Hyperlink), byID: make(map[string]HyperlinkID)}
}

// Open registers (or reuses, if id matches an existing entry) a hyperlink
// target, returning the handle newly written cells should carry. An empty
// uri closes the current hyperlink (handle 0).
func (r *HyperlinkRegistry) Open(uri, params string) HyperlinkID {
	if uri == "" {
		return 0
	}
	id := extractID(params)
	if id == "" {
		id = uuid.NewString()
	} else if existing, ok := r.byID[id]; ok {
		if r.byHandle[existing].URI == uri {
			return existing
		}
	}
	r.next++
	handle := r.next
	r.byHandle[handle] = &Hyperlink{URI: uri, Params: params, ID: id}
	r.byID[id] = handle
	return handle
}

// Lookup returns the Hyperlink a handle refers to.
func (r *HyperlinkRegistry) Lookup(handle HyperlinkID) (*Hyperlink, bool) {
	h, ok := r.byHandle[handle]
	return h, ok
}

func extractID(params string) string {
	for _, kv := range splitColon(params) {
		if len(kv) > 3 && kv[:3] == "id=" {
			return kv[3:]
		}
	}
	return ""
}

func splitColon(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}
