package host

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petuhovskiy/soundpool/internal/bgjobs"
	"github.com/petuhovskiy/soundpool/internal/log"
	"github.com/petuhovskiy/soundpool/internal/models"
	"github.com/petuhovskiy/soundpool/internal/pool"
	"github.com/petuhovskiy/soundpool/internal/rdesc"
	"github.com/petuhovskiy/soundpool/internal/selection"
)

type fakeOutput struct {
	mu   sync.Mutex
	cues []Cue
	err  error
}

func (o *fakeOutput) Play(_ context.Context, cue Cue) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cues = append(o.cues, cue)
	return o.err
}

func (o *fakeOutput) clips() []Clip {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []Clip
	for _, c := range o.cues {
		out = append(out, c.Splash.Item)
	}
	return out
}

type fakeSaver struct {
	saved []*models.Splash
	err   error
}

func (s *fakeSaver) Save(splash *models.Splash) error {
	s.saved = append(s.saved, splash)
	return s.err
}

func modePtr(m selection.Mode) *selection.Mode { return &m }

func floatPtr(v float64) *float64 { return &v }

func sequentialDesc(name string) rdesc.Pool {
	return rdesc.Pool{
		Name: name,
		Entries: rdesc.Wrand[string]{
			{Item: "a.wav", Weight: 1},
			{Item: "b.wav", Weight: 1},
			{Item: "c.wav", Weight: 1},
		},
		Volume: &pool.Range{Min: 0.5, Max: 0.75},
		Pitch:  &pool.Range{Min: 0.9, Max: 1.1},
		Mode:   modePtr(selection.Sequential),
		Seed:   7,
	}
}

func newHost(t *testing.T, out Output, descs ...rdesc.Pool) *Host {
	t.Helper()
	h := New(out, bgjobs.NewPoolLocker())
	for _, d := range descs {
		require.NoError(t, h.Add(d))
	}
	return h
}

func TestHost_Play(t *testing.T) {
	log.DefaultGlobals()
	ctx := context.Background()
	out := &fakeOutput{}
	h := newHost(t, out, sequentialDesc("steps"))

	before := testutil.ToFloat64(Draws.WithLabelValues("steps", "sequential"))
	for i := 0; i < 4; i++ {
		require.NoError(t, h.Play(ctx, "steps"))
	}

	assert.Equal(t, []Clip{"a.wav", "b.wav", "c.wav", "a.wav"}, out.clips())
	for _, cue := range out.cues {
		assert.Equal(t, "steps", cue.Pool)
		assert.Equal(t, selection.Sequential, cue.Mode)
		assert.False(t, cue.OneShot)
		assert.True(t, pool.Range{Min: 0.5, Max: 0.75}.Contains(cue.Splash.Volume))
		assert.True(t, pool.Range{Min: 0.9, Max: 1.1}.Contains(cue.Splash.Pitch))
	}
	assert.Equal(t, before+4, testutil.ToFloat64(Draws.WithLabelValues("steps", "sequential")))
}

func TestHost_PlayOneShot(t *testing.T) {
	out := &fakeOutput{}
	h := newHost(t, out, sequentialDesc("steps"))

	require.NoError(t, h.PlayOneShot(context.Background(), "steps"))
	require.Len(t, out.cues, 1)
	assert.True(t, out.cues[0].OneShot)
	assert.Equal(t, 1.0, out.cues[0].Splash.Pitch)
}

func TestHost_UnknownPool(t *testing.T) {
	out := &fakeOutput{}
	h := newHost(t, out)

	before := testutil.ToFloat64(DrawErrors.WithLabelValues("nope"))
	err := h.Play(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrUnknownPool)
	assert.Empty(t, out.cues)
	assert.Equal(t, before+1, testutil.ToFloat64(DrawErrors.WithLabelValues("nope")))

	assert.ErrorIs(t, h.ChangeMode(context.Background(), "nope", selection.Random), ErrUnknownPool)
	_, err = h.Config("nope")
	assert.ErrorIs(t, err, ErrUnknownPool)
}

func TestHost_EmptyPool(t *testing.T) {
	out := &fakeOutput{}
	h := newHost(t, out, rdesc.Pool{Name: "silence"})

	err := h.Play(context.Background(), "silence")
	assert.Error(t, err)
	assert.Empty(t, out.cues)
}

func TestHost_OutputError(t *testing.T) {
	out := &fakeOutput{err: errors.New("device busy")}
	h := newHost(t, out, sequentialDesc("steps"))

	err := h.Play(context.Background(), "steps")
	assert.ErrorContains(t, err, "device busy")
	assert.Len(t, out.cues, 1)
}

func TestHost_ChangeMode(t *testing.T) {
	ctx := context.Background()
	out := &fakeOutput{}
	h := newHost(t, out, sequentialDesc("steps"))

	require.NoError(t, h.Play(ctx, "steps"))
	require.NoError(t, h.ChangeMode(ctx, "steps", selection.PrimaryOnly))
	require.NoError(t, h.Play(ctx, "steps"))
	require.NoError(t, h.Play(ctx, "steps"))
	assert.Equal(t, []Clip{"a.wav", "a.wav", "a.wav"}, out.clips())

	cfg, err := h.Config("steps")
	require.NoError(t, err)
	assert.Equal(t, selection.PrimaryOnly, cfg.Mode)

	assert.ErrorIs(t, h.ChangeMode(ctx, "steps", selection.Mode(77)), selection.ErrUnknownMode)
}

func TestHost_SetRanges(t *testing.T) {
	ctx := context.Background()
	h := newHost(t, &fakeOutput{}, sequentialDesc("steps"))

	err := h.SetRanges(ctx, "steps",
		RangeUpdate{Min: floatPtr(0.9)},
		RangeUpdate{Max: floatPtr(0.5)},
	)
	require.NoError(t, err)

	cfg, err := h.Config("steps")
	require.NoError(t, err)
	assert.Equal(t, pool.Range{Min: 0.9, Max: 0.9}, cfg.Volume)
	assert.Equal(t, pool.Range{Min: 0.5, Max: 0.5}, cfg.Pitch)
}

func TestHost_AddRemove(t *testing.T) {
	h := newHost(t, &fakeOutput{}, sequentialDesc("steps"), sequentialDesc("clicks"))
	assert.Equal(t, []string{"clicks", "steps"}, h.Names())

	bad := sequentialDesc("bad")
	bad.Entries = append(bad.Entries, rdesc.WrandItem[string]{Item: "d.wav", Weight: -2})
	assert.Error(t, h.Add(bad))

	h.Remove("clicks")
	assert.Equal(t, []string{"steps"}, h.Names())
	assert.ErrorIs(t, h.Play(context.Background(), "clicks"), ErrUnknownPool)
}

func TestHost_ConcurrentPlays(t *testing.T) {
	desc := sequentialDesc("steps")
	desc.Mode = modePtr(selection.Shuffle)
	out := &fakeOutput{}
	h := newHost(t, out, desc)

	register := bgjobs.NewRegister()
	for i := 0; i < 30; i++ {
		register.Go(func() {
			assert.NoError(t, h.Play(context.Background(), "steps"))
		})
	}
	register.WaitAll(context.Background())
	assert.Len(t, out.clips(), 30)
}

func TestRecordingOutput(t *testing.T) {
	saver := &fakeSaver{}
	next := &fakeOutput{}
	o := NewRecordingOutput(next, saver)

	cue := Cue{
		Pool:   "steps",
		Mode:   selection.Shuffle,
		Splash: pool.Splash[Clip]{Item: "a.wav", Volume: 0.5, Pitch: 1.2},
	}
	require.NoError(t, o.Play(context.Background(), cue))
	require.Len(t, saver.saved, 1)

	rec := saver.saved[0]
	assert.Equal(t, "steps", rec.Pool)
	assert.Equal(t, "shuffle", rec.Mode)
	assert.Equal(t, "a.wav", rec.Clip)
	assert.Equal(t, 0.5, rec.Volume)
	assert.Equal(t, 1.2, rec.Pitch)
	assert.False(t, rec.IsFailed)
	assert.NotNil(t, rec.StartedAt)
	assert.NotNil(t, rec.Duration)
}

func TestRecordingOutput_JoinsErrors(t *testing.T) {
	playErr := errors.New("device busy")
	saveErr := errors.New("db down")
	saver := &fakeSaver{err: saveErr}
	o := NewRecordingOutput(&fakeOutput{err: playErr}, saver)

	err := o.Play(context.Background(), Cue{Pool: "steps"})
	assert.ErrorIs(t, err, playErr)
	assert.ErrorIs(t, err, saveErr)

	require.Len(t, saver.saved, 1)
	assert.True(t, saver.saved[0].IsFailed)
	assert.Equal(t, "device busy", saver.saved[0].Error)
}

func TestLogOutput(t *testing.T) {
	log.DefaultGlobals()
	assert.NoError(t, LogOutput{}.Play(context.Background(), Cue{Pool: "steps"}))
}
