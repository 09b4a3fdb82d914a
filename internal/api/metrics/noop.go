package metrics

// Noop implements Recorder with no-op methods.
type Noop struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return Noop{}
}

func (Noop) IncRegistration(string)      {}
func (Noop) IncLogin(string)             {}
func (Noop) IncTokenVerification(string) {}
func (Noop) IncProfileCache(string)      {}
