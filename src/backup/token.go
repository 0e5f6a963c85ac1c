package backup

import "time"

// TokenFormat is the timestamp layout baked into every artifact name.
// Downstream tooling matches these names, so the format never changes.
const TokenFormat = "20060102-150405"

// TokenSource produces the run token that names a run's staging directory
// and archives. Injected so tests get deterministic names and callers can
// serialize runs with their own token scheme.
type TokenSource interface {
	Token() string
}

type clockSource struct {
	now func() time.Time
}

// Clock returns the default wall-clock TokenSource. Two runs started within
// the same second produce the same token; the staging stage detects the
// collision and rejects the second run.
func Clock() TokenSource {
	return clockSource{now: time.Now}
}

func (c clockSource) Token() string {
	return c.now().Format(TokenFormat)
}

type fixedSource string

// FixedToken returns a TokenSource that always yields tok.
func FixedToken(tok string) TokenSource {
	return fixedSource(tok)
}

func (f fixedSource) Token() string { return string(f) }
