package replay

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/combat/internal/domain/input"
)

func sessionFixture() *Recorder {
	r := NewRecorder("test")
	r.Record(input.DetectedInput{Kind: input.KindButton, ID: "down", At: 0.1, Pressed: true})
	r.Record(input.DetectedInput{Kind: input.KindButton, ID: "punch", At: 0.2, Pressed: true})
	r.Record(input.DetectedInput{
		Kind: input.KindSequence, ID: "fireball", At: 0.2, Pressed: true,
		Sequence: []string{"down", "punch"},
	})
	r.Record(input.DetectedInput{Kind: input.KindButton, ID: "punch", At: 0.5, Pressed: false, Held: 0.3})
	return r
}

func TestRecorder_Stop(t *testing.T) {
	r := sessionFixture()
	require.Equal(t, 4, r.EventCount())
	require.True(t, r.IsRecording())

	r.Stop()
	r.Record(input.DetectedInput{Kind: input.KindButton, ID: "kick", At: 1, Pressed: true})
	assert.Equal(t, 4, r.EventCount())
	assert.False(t, r.IsRecording())
}

func TestRecorder_SaveEmpty(t *testing.T) {
	r := NewRecorder("test")
	var buf bytes.Buffer
	assert.Error(t, r.Save(&buf))
}

func TestReplay_RoundTrip(t *testing.T) {
	r := sessionFixture()

	var buf bytes.Buffer
	require.NoError(t, r.Save(&buf))

	data, err := Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, "test", data.Profile)

	replayer := NewReplayer(*data)
	assert.Equal(t, 4, replayer.TotalEvents())
	assert.Equal(t, "test", replayer.Profile())

	// events come back in timestamp order as the clock advances
	first := replayer.Next(0.1)
	require.Len(t, first, 1)
	assert.Equal(t, "down", first[0].ID)

	second := replayer.Next(0.3)
	require.Len(t, second, 2)
	assert.Equal(t, "punch", second[0].ID)
	assert.Equal(t, input.KindSequence, second[1].Kind)
	assert.Equal(t, []string{"down", "punch"}, second[1].Sequence)

	assert.False(t, replayer.Done())
	third := replayer.Next(10)
	require.Len(t, third, 1)
	assert.False(t, third[0].Pressed)
	assert.InDelta(t, 0.3, third[0].Held, 1e-9)
	assert.True(t, replayer.Done())

	replayer.Reset()
	assert.False(t, replayer.Done())
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(bytes.NewReader([]byte("not json")))
	assert.Error(t, err)
}

func TestReplay_DrivesMachineInputs(t *testing.T) {
	r := sessionFixture()
	replayer := NewReplayer(r.Data())

	var ids []string
	for _, in := range replayer.Next(1) {
		if in.Pressed {
			ids = append(ids, in.ID)
		}
	}
	assert.Equal(t, []string{"down", "punch", "fireball"}, ids)
}
