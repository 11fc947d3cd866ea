package pipeline_test

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/virtual-input/ps2d/input"
	"github.com/virtual-input/ps2d/pipeline"
)

// echoDecoder reports every byte as a motion delta so tests can observe the
// exact byte sequence the dispatcher fed it.
type echoDecoder struct{}

func (echoDecoder) Decode(b byte, sink input.Sink) {
	sink.ReportMotion(input.AxisX, int32(b))
}

// collectSink records reported deltas. Safe for the single dispatcher
// goroutine plus the test goroutine reading after quiescence.
type collectSink struct {
	mu    sync.Mutex
	bytes []byte
}

func (s *collectSink) ReportKey(k input.Key, pressed bool) {}

func (s *collectSink) ReportButton(b input.Button, pressed bool) {}

func (s *collectSink) ReportMotion(a input.Axis, delta int32) {
	s.mu.Lock()
	s.bytes = append(s.bytes, byte(delta))
	s.mu.Unlock()
}

func (s *collectSink) Sync() {}

func (s *collectSink) snapshot() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]byte, len(s.bytes))
	copy(out, s.bytes)
	return out
}

func waitDrained(t *testing.T, p *pipeline.Pipeline, want int, sink *collectSink) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if p.Buffered() == 0 && len(sink.snapshot()) >= want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("pipeline did not drain: buffered=%d decoded=%d want=%d", p.Buffered(), len(sink.snapshot()), want)
}

func TestPipelineDecodesInPushOrder(t *testing.T) {
	sink := &collectSink{}
	var counters pipeline.Counters
	p := pipeline.New(64, echoDecoder{}, sink, &counters, slog.Default())
	defer p.Close()

	in := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	for _, b := range in {
		p.Ingest(b)
	}
	waitDrained(t, p, len(in), sink)

	assert.Equal(t, in, sink.snapshot())
	s := p.Stats()
	assert.Equal(t, uint64(len(in)), s.BytesIn)
	assert.Equal(t, uint64(0), s.Overflows)
}

func TestPipelineConcurrentIngest(t *testing.T) {
	sink := &collectSink{}
	var counters pipeline.Counters
	p := pipeline.New(4096, echoDecoder{}, sink, &counters, slog.Default())
	defer p.Close()

	const producers = 8
	const perProducer = 100

	var wg sync.WaitGroup
	for pr := 0; pr < producers; pr++ {
		wg.Add(1)
		go func(id byte) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				p.Ingest(id)
			}
		}(byte(pr))
	}
	wg.Wait()
	waitDrained(t, p, producers*perProducer, sink)

	got := sink.snapshot()
	require.Len(t, got, producers*perProducer)

	// Every producer's bytes must all arrive; cross-producer interleaving is
	// unspecified.
	counts := map[byte]int{}
	for _, b := range got {
		counts[b]++
	}
	for pr := 0; pr < producers; pr++ {
		assert.Equal(t, perProducer, counts[byte(pr)], "producer %d", pr)
	}
	assert.Equal(t, uint64(producers*perProducer), p.Stats().BytesIn)
}

func TestPipelineOverflowDropsNewestByte(t *testing.T) {
	// A decoder that blocks until released, so the ring can be filled
	// deterministically while a drain is stuck on the first byte.
	entered := make(chan struct{})
	release := make(chan struct{})
	blockOnce := sync.Once{}
	blocking := decodeFunc(func(b byte, sink input.Sink) {
		blockOnce.Do(func() {
			close(entered)
			<-release
		})
		sink.ReportMotion(input.AxisX, int32(b))
	})

	sink := &collectSink{}
	var counters pipeline.Counters
	p := pipeline.New(4, blocking, sink, &counters, slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer p.Close()

	// First byte starts the drain and blocks inside Decode.
	p.Ingest(100)
	<-entered

	// Three more fill the ring (capacity 3); the next one must be dropped.
	p.Ingest(1)
	p.Ingest(2)
	p.Ingest(3)
	p.Ingest(4)

	assert.Equal(t, uint64(1), p.Stats().Overflows)

	close(release)
	waitDrained(t, p, 4, sink)
	assert.Equal(t, []byte{100, 1, 2, 3}, sink.snapshot())
	assert.Equal(t, uint64(5), p.Stats().BytesIn)
}

func TestPipelineCloseIsIdempotentAndStopsIngest(t *testing.T) {
	sink := &collectSink{}
	var counters pipeline.Counters
	p := pipeline.New(16, echoDecoder{}, sink, &counters, slog.Default())

	p.Ingest(1)
	waitDrained(t, p, 1, sink)

	p.Close()
	p.Close()

	p.Ingest(2)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, []byte{1}, sink.snapshot())
	assert.Equal(t, uint64(1), p.Stats().BytesIn)
}

type decodeFunc func(b byte, sink input.Sink)

func (f decodeFunc) Decode(b byte, sink input.Sink) { f(b, sink) }
