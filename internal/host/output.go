package host

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/petuhovskiy/soundpool/internal/log"
	"github.com/petuhovskiy/soundpool/internal/models"
	"github.com/petuhovskiy/soundpool/internal/pool"
	"github.com/petuhovskiy/soundpool/internal/selection"
)

// Clip is an opaque handle to an audio asset. The engine never loads it.
type Clip string

// Cue is everything an output needs to play one splash.
type Cue struct {
	Pool    string
	Mode    selection.Mode
	OneShot bool
	Splash  pool.Splash[Clip]
}

// Output owns the actual audio channel. It applies volume and pitch and
// starts playback; the engine never calls back into it otherwise.
type Output interface {
	Play(ctx context.Context, cue Cue) error
}

// LogOutput plays nothing and logs every cue. Use it where no audio device
// is attached.
type LogOutput struct{}

func (LogOutput) Play(ctx context.Context, cue Cue) error {
	log.Info(ctx, "play",
		zap.String("pool", cue.Pool),
		zap.String("clip", string(cue.Splash.Item)),
		zap.Float64("volume", cue.Splash.Volume),
		zap.Float64("pitch", cue.Splash.Pitch),
		zap.Bool("oneShot", cue.OneShot),
	)
	return nil
}

// Hydrates splash with additional data and saves it.
type SplashSaver interface {
	Save(splash *models.Splash) error
}

// RecordingOutput passes cues to the next output and records every attempt.
type RecordingOutput struct {
	next  Output
	saver SplashSaver
}

func NewRecordingOutput(next Output, saver SplashSaver) *RecordingOutput {
	return &RecordingOutput{
		next:  next,
		saver: saver,
	}
}

// Play returns the combined error from the output and the saver.
func (o *RecordingOutput) Play(ctx context.Context, cue Cue) (retErr error) {
	started := time.Now()
	retErr = o.next.Play(ctx, cue)
	duration := time.Since(started)

	record := &models.Splash{
		Pool:      cue.Pool,
		Mode:      cue.Mode.String(),
		Clip:      string(cue.Splash.Item),
		Volume:    cue.Splash.Volume,
		Pitch:     cue.Splash.Pitch,
		OneShot:   cue.OneShot,
		StartedAt: &started,
		Duration:  &duration,
	}
	if retErr != nil {
		record.IsFailed = true
		record.Error = retErr.Error()
	}

	if err := o.saver.Save(record); err != nil {
		retErr = errors.Join(retErr, err)
	}
	return retErr
}
