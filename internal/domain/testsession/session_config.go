package testsession

import "time"

// DefaultExplainDelay is how long an explanation stays on screen before the
// next question is presented.
const DefaultExplainDelay = 2 * time.Second

// SessionConfig holds optional knobs for a test session.
type SessionConfig struct {
	ExplainDelay time.Duration    // 0 = DefaultExplainDelay
	Clock        func() time.Time // nil = time.Now
}

// DefaultConfig returns a config with the default explanation delay and the
// wall clock.
func DefaultConfig() SessionConfig {
	return SessionConfig{
		ExplainDelay: DefaultExplainDelay,
		Clock:        time.Now,
	}
}
