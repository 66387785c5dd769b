// internal/selforder/session.go
package selforder

import "strings"

// StaticSession is a SessionContext with a fixed identifier.
type StaticSession string

// SessionID implements SessionContext.
func (s StaticSession) SessionID() string { return strings.TrimSpace(string(s)) }

// SessionFunc adapts a plain function into a SessionContext.
type SessionFunc func() string

// SessionID implements SessionContext.
func (f SessionFunc) SessionID() string {
	if f == nil {
		return ""
	}
	return strings.TrimSpace(f())
}
