package input

// Sink receives normalized events from a decoder. Implementations are
// expected to be level-triggered for button state: decoders may report a
// button's current state on every packet whether or not it changed.
//
// Sink methods are only ever called from a pipeline's single dispatcher
// goroutine, so implementations need no locking against the decoder side.
type Sink interface {
	ReportKey(k Key, pressed bool)
	ReportButton(b Button, pressed bool)
	ReportMotion(a Axis, delta int32)
	// Sync is called once per fully-processed input unit.
	Sync()
}

// NopSink discards all events. Useful in tests and as a placeholder sink.
type NopSink struct{}

func (NopSink) ReportKey(Key, bool) {}

func (NopSink) ReportButton(Button, bool) {}

func (NopSink) ReportMotion(Axis, int32) {}

func (NopSink) Sync() {}
