// SPDX-License-Identifier: MIT
package session

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voicefront/internal/dsp"
	"voicefront/internal/wakeword"
)

const (
	testRate     = 16000
	testCapacity = 4096
)

type fakeEngine struct {
	frameLength int
	sampleRate  int
	match       bool
	frames      [][]int16
}

func (e *fakeEngine) FrameLength() int { return e.frameLength }
func (e *fakeEngine) SampleRate() int  { return e.sampleRate }

func (e *fakeEngine) Process(frame []int16) (bool, error) {
	cp := make([]int16, len(frame))
	copy(cp, frame)
	e.frames = append(e.frames, cp)
	return e.match, nil
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := New(testRate, 1, testCapacity)
	require.NoError(t, err)
	return s
}

func sineWave(size int, freq float64) []float64 {
	out := make([]float64, size)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / testRate)
	}
	return out
}

func TestNewRejectsInvalidFormat(t *testing.T) {
	cases := []struct {
		name                        string
		sampleRate, channels, capac int
	}{
		{"zero sample rate", 0, 1, testCapacity},
		{"zero channels", testRate, 0, testCapacity},
		{"zero capacity", testRate, 1, 0},
		{"negative capacity", testRate, 1, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := New(tc.sampleRate, tc.channels, tc.capac)
			assert.Nil(t, s)
			assert.ErrorIs(t, err, ErrFormat)
		})
	}
}

func TestAddAndReadSamples(t *testing.T) {
	s := newTestSession(t)
	s.AddSamples([]float64{0.1, 0.2, 0.3})

	got, err := s.ReadSamples(3)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, got)
	assert.Equal(t, 3, s.Len())
}

func TestReadSamplesNegativeCount(t *testing.T) {
	s := newTestSession(t)
	got, err := s.ReadSamples(-1)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrFormat)
}

func TestSpectrumOfSilence(t *testing.T) {
	s := newTestSession(t)
	s.AddSamples([]float64{0, 0, 0, 0})

	spectrum, err := s.Spectrum(4)
	require.NoError(t, err)
	require.Len(t, spectrum, 4)
	for i, mag := range spectrum {
		assert.InDelta(t, 0, mag, 1e-12, "bin %d", i)
	}
}

func TestSpectrumEmptyBuffer(t *testing.T) {
	s := newTestSession(t)
	spectrum, err := s.Spectrum(128)
	require.NoError(t, err)
	assert.Empty(t, spectrum)
}

func TestApplyFilterUnknownType(t *testing.T) {
	s := newTestSession(t)
	out, err := s.ApplyFilter([]float64{1, 2, 3}, "allpass", dsp.Params{})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, ErrFormat)
}

func TestApplyFilterDefaults(t *testing.T) {
	s := newTestSession(t)
	in := sineWave(256, 200)

	out, err := s.ApplyFilter(in, "lowpass", dsp.Params{})
	require.NoError(t, err)
	assert.Len(t, out, len(in))
}

func TestStreamFilterChunkedMatchesOneShot(t *testing.T) {
	s := newTestSession(t)
	in := sineWave(512, 300)

	whole, err := s.ApplyFilter(in, "bandpass", dsp.Params{})
	require.NoError(t, err)

	require.NoError(t, s.BindFilter("voice", "bandpass", dsp.Params{}))
	var chunked []float64
	for _, bounds := range [][2]int{{0, 100}, {100, 101}, {101, 350}, {350, 512}} {
		out, err := s.ProcessFilter("voice", in[bounds[0]:bounds[1]])
		require.NoError(t, err)
		chunked = append(chunked, out...)
	}

	assert.Equal(t, whole, chunked)
}

func TestProcessFilterUnbound(t *testing.T) {
	s := newTestSession(t)
	out, err := s.ProcessFilter("missing", []float64{1, 2})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, ErrFormat)
}

func TestBindFilterInvalid(t *testing.T) {
	s := newTestSession(t)
	assert.ErrorIs(t, s.BindFilter("x", "sharpen", dsp.Params{}), ErrFormat)
	assert.ErrorIs(t, s.BindFilter("x", "bandpass", dsp.Params{CutoffLow: 2000, CutoffHigh: 100}), ErrFormat)
}

func TestClearResetsFilterState(t *testing.T) {
	s := newTestSession(t)
	in := sineWave(256, 300)

	require.NoError(t, s.BindFilter("lp", "lowpass", dsp.Params{}))
	first, err := s.ProcessFilter("lp", in)
	require.NoError(t, err)

	// Without the reset the second pass would continue the recurrence and
	// diverge from the first.
	s.Clear()
	second, err := s.ProcessFilter("lp", in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 0, s.Len())
}

func TestReleaseFilter(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.BindFilter("lp", "lowpass", dsp.Params{}))
	s.ReleaseFilter("lp")

	_, err := s.ProcessFilter("lp", []float64{1})
	assert.ErrorIs(t, err, ErrFormat)

	s.ReleaseFilter("never-bound")
}

func TestDetectWakeWordUninitialized(t *testing.T) {
	s := newTestSession(t)
	match, err := s.DetectWakeWord(wakeword.NewDetector(), make([]float64, 512))
	assert.False(t, match)
	assert.ErrorIs(t, err, ErrUninitialized)
}

func TestDetectWakeWordFrameLength(t *testing.T) {
	s := newTestSession(t)
	d := wakeword.NewDetector()
	require.NoError(t, d.Initialize(&fakeEngine{frameLength: 512, sampleRate: testRate}))

	match, err := s.DetectWakeWord(d, make([]float64, 511))
	assert.False(t, match)
	assert.ErrorIs(t, err, ErrFrameLength)
}

func TestDetectWakeWordForwardsPCM(t *testing.T) {
	s := newTestSession(t)
	engine := &fakeEngine{frameLength: 4, sampleRate: testRate, match: true}
	d := wakeword.NewDetector()
	require.NoError(t, d.Initialize(engine))

	match, err := s.DetectWakeWord(d, []float64{0, 1, -1, 0.5})
	require.NoError(t, err)
	assert.True(t, match)

	require.Len(t, engine.frames, 1)
	assert.Equal(t, []int16{0, 32767, -32767, 16383}, engine.frames[0])
}

func TestSetWakeSensitivity(t *testing.T) {
	s := newTestSession(t)
	d := wakeword.NewDetector()

	assert.ErrorIs(t, s.SetWakeSensitivity(d, 1.5), ErrFormat)
	assert.ErrorIs(t, s.SetWakeSensitivity(d, -0.1), ErrFormat)
	assert.NoError(t, s.SetWakeSensitivity(d, 0.0))
	assert.NoError(t, s.SetWakeSensitivity(d, 1.0))
	assert.Equal(t, 1.0, d.Sensitivity())
}

func TestDetectWakeWordReleased(t *testing.T) {
	s := newTestSession(t)
	d := wakeword.NewDetector()
	require.NoError(t, d.Initialize(&fakeEngine{frameLength: 4, sampleRate: testRate}))
	d.Release()

	match, err := s.DetectWakeWord(d, make([]float64, 4))
	assert.False(t, match)
	assert.ErrorIs(t, err, ErrUninitialized)
}
