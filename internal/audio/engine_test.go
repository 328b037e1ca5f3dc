// SPDX-License-Identifier: MIT
package audio

import (
	"math"
	"testing"

	"voicefront/internal/config"
	"voicefront/internal/session"
)

type recordingProcessor struct {
	frames [][]float64
}

func (p *recordingProcessor) Process(buffer []float64) {
	cp := make([]float64, len(buffer))
	copy(cp, buffer)
	p.frames = append(p.frames, cp)
}

// newTestEngine builds an engine around fake buffers without touching
// PortAudio, so the callback path can be exercised anywhere.
func newTestEngine(t *testing.T, channels int, processors ...*recordingProcessor) (*Engine, *session.Session) {
	t.Helper()

	cfg := config.NewConfig()
	cfg.Audio.InputChannels = channels
	cfg.Audio.FramesPerBuffer = 4

	sess, err := session.New(int(cfg.Audio.SampleRate), channels, 64)
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}

	engine := &Engine{
		config:      cfg,
		inputBuffer: make([]int32, cfg.Audio.FramesPerBuffer*channels),
		monoSamples: make([]float64, cfg.Audio.FramesPerBuffer),
		gate:        NewGate(cfg.Audio.GateThreshold),
		session:     sess,
	}
	for _, p := range processors {
		engine.processors = append(engine.processors, p)
	}
	return engine, sess
}

func TestProcessBufferNormalizes(t *testing.T) {
	engine, sess := newTestEngine(t, 1)

	engine.processInputStream([]int32{math.MaxInt32, math.MinInt32 + 1, 0, math.MaxInt32 / 2})

	got, err := sess.ReadSamples(4)
	if err != nil {
		t.Fatalf("ReadSamples: %v", err)
	}
	want := []float64{1, -1, 0, 0.5}
	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestProcessBufferExtractsFirstChannel(t *testing.T) {
	engine, sess := newTestEngine(t, 2)

	// Interleaved stereo: left channel carries signal, right is garbage.
	half := int32(math.MaxInt32 / 2)
	engine.processInputStream([]int32{half, -1, half, -1, half, -1, half, -1})

	got, err := sess.ReadSamples(4)
	if err != nil {
		t.Fatalf("ReadSamples: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("got %d samples, want 4", len(got))
	}
	for i, s := range got {
		if math.Abs(s-0.5) > 1e-9 {
			t.Errorf("sample %d = %v, want 0.5", i, s)
		}
	}
}

func TestProcessBufferGatesSilence(t *testing.T) {
	proc := &recordingProcessor{}
	engine, sess := newTestEngine(t, 1, proc)

	engine.processInputStream([]int32{0, 0, 0, 0})

	if sess.Len() != 0 {
		t.Errorf("gated frame reached the buffer: %d samples", sess.Len())
	}
	if len(proc.frames) != 0 {
		t.Errorf("gated frame reached processors: %d frames", len(proc.frames))
	}
}

func TestProcessBufferFansOut(t *testing.T) {
	first := &recordingProcessor{}
	second := &recordingProcessor{}
	engine, sess := newTestEngine(t, 1, first, second)

	engine.processInputStream([]int32{math.MaxInt32, 0, 0, 0})

	if sess.Len() != 4 {
		t.Errorf("session has %d samples, want 4", sess.Len())
	}
	if len(first.frames) != 1 || len(second.frames) != 1 {
		t.Fatalf("processors saw %d/%d frames, want 1/1", len(first.frames), len(second.frames))
	}
	if first.frames[0][0] != 1 {
		t.Errorf("processor frame[0] = %v, want 1", first.frames[0][0])
	}
}

func TestProcessBufferDisabledGatePassesSilence(t *testing.T) {
	engine, sess := newTestEngine(t, 1)
	engine.DisableGate()

	engine.processInputStream([]int32{0, 0, 0, 0})

	if sess.Len() != 4 {
		t.Errorf("session has %d samples, want 4 with the gate disabled", sess.Len())
	}
}

func TestStopInputStreamWithoutStream(t *testing.T) {
	engine, _ := newTestEngine(t, 1)
	if err := engine.StopInputStream(); err != nil {
		t.Errorf("StopInputStream with no stream: %v", err)
	}
}
