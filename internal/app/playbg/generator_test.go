package playbg

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_WraparoundSequence(t *testing.T) {
	ctrl, ch, opener, sink := newTestSetup(map[string]int{
		"a": 400,
		"b": 320,
		"c": 240,
	})
	require.NoError(t, ctrl.Start(ch, "a&b&c"))

	// Enough cumulative requests to exceed the total duration of all
	// three files (960 samples) once.
	for i := 0; i < 8; i++ {
		require.NoError(t, ch.Tick(160))
	}

	assert.Equal(t, []string{"a", "b", "c", "a"}, opener.opens)
	assert.GreaterOrEqual(t, sink.samples, 960)
}

func TestGenerate_SkipsUnreadableEntry(t *testing.T) {
	// "b" does not exist
	ctrl, ch, opener, _ := newTestSetup(map[string]int{
		"a": 400,
		"c": 240,
	})
	require.NoError(t, ctrl.Start(ch, "a&b&c"))

	for i := 0; i < 5; i++ {
		require.NoError(t, ch.Tick(160))
	}

	assert.Equal(t, []string{"a", "c", "a"}, opener.opens)
	assert.Contains(t, opener.attempts, "b")
}

func TestGenerate_SkipsEmptyEntry(t *testing.T) {
	ctrl, ch, opener, _ := newTestSetup(map[string]int{
		"a": 160,
		"b": 160,
	})
	require.NoError(t, ctrl.Start(ch, "a&&b"))

	require.NoError(t, ch.Tick(160))
	require.NoError(t, ch.Tick(160))

	assert.Equal(t, []string{"a", "b"}, opener.opens)
	assert.NotContains(t, opener.attempts, "")
}

func TestResume_ContinuesAtExactOffset(t *testing.T) {
	ctrl, ch, opener, _ := newTestSetup(map[string]int{
		"a": 400,
		"b": 400,
	})
	require.NoError(t, ctrl.Start(ch, "a&b"))

	require.NoError(t, ch.Tick(160))
	require.NoError(t, ch.Tick(160))

	st, err := lookupState(ch)
	require.NoError(t, err)
	assert.Equal(t, 0, st.pos)
	assert.Equal(t, 320, st.samples)

	// A foreground stream takes over: the generator is deactivated but
	// the playlist state stays attached.
	ch.DeactivateGenerator()
	assert.True(t, opener.streams[0].closed)
	assert.Equal(t, 320, st.samples)

	require.NoError(t, ctrl.Resume(ch))
	require.NoError(t, ch.Tick(160))

	// The reopened stream was seeked to the saved offset, not restarted.
	require.Len(t, opener.streams, 3) // a, a again, b
	assert.Equal(t, []string{"a", "a", "b"}, opener.opens)
	assert.Equal(t, []int{320}, opener.streams[1].seeks)
}

func TestGenerate_BacklogSatisfiedAcrossReads(t *testing.T) {
	opener := &fakeOpener{
		lengths: map[string]int{"a": 1000},
		reads:   map[string][]int{"a": {100, 60}},
		frame:   160,
	}
	sink := &countingSink{}
	ch := newChannelWith(sink)
	ctrl := NewController(opener)
	require.NoError(t, ctrl.Start(ch, "a"))

	// A 100-sample read leaves 60 owed; the cycle keeps pulling until
	// the backlog is satisfied.
	require.NoError(t, ch.Tick(160))

	st, err := lookupState(ch)
	require.NoError(t, err)
	assert.Equal(t, 0, st.sampleQueue)
	assert.Equal(t, 160, sink.samples)
	require.Len(t, sink.frames, 2)
	assert.Equal(t, 100, sink.frames[0].SampleCount())
	assert.Equal(t, 60, sink.frames[1].SampleCount())
}

func TestGenerate_OverproductionCarriesOver(t *testing.T) {
	opener := &fakeOpener{
		lengths: map[string]int{"a": 1000},
		reads:   map[string][]int{"a": {200, 120}},
		frame:   160,
	}
	sink := &countingSink{}
	ch := newChannelWith(sink)
	ctrl := NewController(opener)
	require.NoError(t, ctrl.Start(ch, "a"))

	// A 200-sample read over-produces: the backlog goes negative rather
	// than triggering a short or negative-length write.
	require.NoError(t, ch.Tick(160))

	st, err := lookupState(ch)
	require.NoError(t, err)
	assert.Equal(t, -40, st.sampleQueue)
	assert.Equal(t, 200, sink.samples)

	// The negative backlog reduces the next cycle's effective
	// requirement instead of being resent.
	require.NoError(t, ch.Tick(160))
	assert.Equal(t, 0, st.sampleQueue)
	assert.Equal(t, 320, sink.samples)

	for _, f := range sink.frames {
		assert.Greater(t, f.SampleCount(), 0)
	}
}

func TestGenerate_AllFilesMissingFailsFirstTick(t *testing.T) {
	ctrl, ch, opener, _ := newTestSetup(nil)
	require.NoError(t, ctrl.Start(ch, "x&y&z"))

	err := ch.Tick(160)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMediaUnavailable))

	// Fatal for the session: the host deactivated the generator. The
	// retry was bounded, not an endless walk of the playlist.
	assert.False(t, ch.GeneratorActive())
	assert.LessOrEqual(t, len(opener.attempts), 2*3)

	// The state itself survives; a later Resume may retry.
	_, err = lookupState(ch)
	assert.NoError(t, err)
}

func TestGenerate_WriteFailureIsFatal(t *testing.T) {
	ctrl, ch, _, sink := newTestSetup(map[string]int{"a": 400})
	require.NoError(t, ctrl.Start(ch, "a"))

	sink.err = errors.New("channel hung up")
	err := ch.Tick(160)
	require.Error(t, err)
	assert.False(t, ch.GeneratorActive())
	assert.Nil(t, ch.Stream())
}
