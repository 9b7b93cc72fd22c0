package cue

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/SinomthaMzamo/vuka-coach/internal/config"
)

func TestCueSamplesPresent(t *testing.T) {
	require.NotEmpty(t, cueSamples(kindRecordStart))
	require.NotEmpty(t, cueSamples(kindRecordStop))
	require.NotEmpty(t, cueSamples(kindFeedbackReady))
	require.NotEmpty(t, cueSamples(kindError))
}

func TestSynthesizeToneDuration(t *testing.T) {
	got := synthesizeTone(toneSpec{frequencyHz: 440, duration: 100 * time.Millisecond, volume: 0.2})
	want := samplesForDuration(100 * time.Millisecond)
	require.Len(t, got, want)
}

func TestSynthesizeToneInvalidSpecReturnsEmpty(t *testing.T) {
	require.Empty(t, synthesizeTone(toneSpec{frequencyHz: 0, duration: 100 * time.Millisecond, volume: 0.2}))
	require.Empty(t, synthesizeTone(toneSpec{frequencyHz: 440, duration: 0, volume: 0.2}))
	require.Empty(t, synthesizeTone(toneSpec{frequencyHz: 440, duration: 100 * time.Millisecond, volume: 0}))
}

func TestSamplesForDuration(t *testing.T) {
	require.Equal(t, 0, samplesForDuration(0))
	require.Greater(t, samplesForDuration(25*time.Millisecond), 0)
}

func TestNotifierDisabledEmitsNothing(t *testing.T) {
	n := NewNotifier(config.CueConfig{Enable: false}, nil)

	var mu sync.Mutex
	emitted := 0
	n.emit = func([]int16) error {
		mu.Lock()
		emitted++
		mu.Unlock()
		return nil
	}

	n.RecordStart()
	n.Error()
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Zero(t, emitted)
}

func TestNotifierEnabledEmitsCue(t *testing.T) {
	n := NewNotifier(config.CueConfig{Enable: true}, nil)

	done := make(chan []int16, 1)
	n.emit = func(samples []int16) error {
		done <- samples
		return nil
	}

	n.FeedbackReady()

	select {
	case samples := <-done:
		require.Equal(t, feedbackReadyPCM, samples)
	case <-time.After(2 * time.Second):
		t.Fatal("cue was never emitted")
	}
}

func TestNilNotifierIsSafe(t *testing.T) {
	var n *Notifier
	n.RecordStart()
	n.RecordStop()
	n.FeedbackReady()
	n.Error()
}
