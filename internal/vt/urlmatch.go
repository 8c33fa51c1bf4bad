package vt

import "github.com/dlclark/regexp2"

// URLMatcher detects URL-shaped runs of already-written plain text so a
// collaborator can offer to open them (§4.4 "URL highlighting"), driven by
// Settings.URLPattern.
//
// Grounded on framegrace-texelation's VTerm, which has no URL detection;
// uses regexp2 (not the stdlib regexp package) because the spec's default
// pattern and user-supplied overrides may use lookaround the RE2 engine
// stdlib regexp implements cannot express.
type URLMatcher struct {
	re *regexp2.Regexp
}

// NewURLMatcher compiles pattern, falling back to a matcher that never
// matches if the pattern is invalid (logged by the caller via Screen's
// Logger, not here, since URLMatcher has no logger of its own).
func NewURLMatcher(pattern string) *URLMatcher {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return &URLMatcher{}
	}
	return &URLMatcher{re: re}
}

// Match reports the byte range of the first URL match in text, if any.
func (u *URLMatcher) Match(text string) (start, end int, ok bool) {
	if u.re == nil {
		return 0, 0, false
	}
	m, err := u.re.FindStringMatch(text)
	if err != nil || m == nil {
		return 0, 0, false
	}
	return m.Index, m.Index + m.Length, true
}

// FindAll returns every non-overlapping match in text.
func (u *URLMatcher) FindAll(text string) [][2]int {
	if u.re == nil {
		return nil
	}
	var out [][2]int
	m, err := u.re.FindStringMatch(text)
	for err == nil && m != nil {
		out = append(out, [2]int{m.Index, m.Index + m.Length})
		m, err = u.re.FindNextMatch(m)
	}
	return out
}
