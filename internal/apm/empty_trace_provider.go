package apm

// emptyTraceProvider leaves the global no-op tracer in place.
type emptyTraceProvider struct{}

// NewEmptyTraceProvider returns a provider whose spans are never exported.
func NewEmptyTraceProvider() TraceProvider {
	return emptyTraceProvider{}
}

func (emptyTraceProvider) Stop() error {
	return nil
}
