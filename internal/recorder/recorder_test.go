package recorder

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/SinomthaMzamo/vuka-coach/internal/audio"
	"github.com/SinomthaMzamo/vuka-coach/internal/config"
	"github.com/stretchr/testify/require"
)

func TestEncodePCM16WAVHeader(t *testing.T) {
	pcm := []byte{1, 2, 3, 4}
	wav := EncodePCM16WAV(pcm, audio.SampleRate, audio.Channels)

	require.Len(t, wav, 44+len(pcm))
	require.Equal(t, "RIFF", string(wav[0:4]))
	require.Equal(t, "WAVE", string(wav[8:12]))
	require.Equal(t, "fmt ", string(wav[12:16]))
	require.Equal(t, "data", string(wav[36:40]))

	require.Equal(t, uint32(36+len(pcm)), binary.LittleEndian.Uint32(wav[4:8]))
	require.Equal(t, uint16(1), binary.LittleEndian.Uint16(wav[20:22])) // PCM
	require.Equal(t, uint16(1), binary.LittleEndian.Uint16(wav[22:24]))
	require.Equal(t, uint32(16000), binary.LittleEndian.Uint32(wav[24:28]))
	require.Equal(t, uint32(32000), binary.LittleEndian.Uint32(wav[28:32])) // byte rate
	require.Equal(t, uint16(16), binary.LittleEndian.Uint16(wav[34:36]))
	require.Equal(t, uint32(len(pcm)), binary.LittleEndian.Uint32(wav[40:44]))
	require.Equal(t, pcm, wav[44:])
}

func TestEncodePCM16WAVDefaultsChannels(t *testing.T) {
	wav := EncodePCM16WAV(nil, 16000, 0)
	require.Equal(t, uint16(1), binary.LittleEndian.Uint16(wav[22:24]))
}

func TestStopWhileIdleIsNoOp(t *testing.T) {
	r := New(config.Default(), nil)

	blob, err := r.Stop()
	require.NoError(t, err)
	require.Nil(t, blob)
	require.Equal(t, StatusIdle, r.Status())
}

func TestDiscardWhileIdleIsNoOp(t *testing.T) {
	r := New(config.Default(), nil)
	r.Discard()
	require.Equal(t, StatusIdle, r.Status())
}

func TestStartFailsWhenPulseUnavailable(t *testing.T) {
	t.Setenv("PULSE_SERVER", "unix:/tmp/definitely-missing-pulse-server")

	r := New(config.Default(), nil)
	err := r.Start(context.Background())
	require.Error(t, err)
	require.Equal(t, StatusIdle, r.Status())
}

func TestDescribeDevice(t *testing.T) {
	require.Equal(t, "Mic (id-1)", describeDevice(audio.Device{ID: "id-1", Description: "Mic"}))
	require.Equal(t, "id-1", describeDevice(audio.Device{ID: "id-1"}))
	require.Equal(t, "Mic", describeDevice(audio.Device{Description: "Mic"}))
}
