package dynamics

import (
	"context"
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/buffer"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/internal/chunk"
)

const (
	defaultLimiterCeilingDB   = -1.0
	defaultLimiterThresholdDB = -3.0
	defaultLimiterReleaseMs   = 100.0
	defaultLimiterLookaheadMs = 5.0

	minLimiterLevelDB     = -60.0
	maxLimiterLevelDB     = 0.0
	minLimiterReleaseMs   = 1.0
	maxLimiterReleaseMs   = 5000.0
	minLimiterLookaheadMs = 0.0
	maxLimiterLookaheadMs = 200.0
)

// LimiterParams configures the brick-wall lookahead limiter.
type LimiterParams struct {
	CeilingDB   float64
	ThresholdDB float64
	ReleaseMs   float64
	LookaheadMs float64
	// Linked drives all channels from one gain computed on the loudest
	// channel. When false every channel has an independent gain.
	Linked bool
}

// DefaultLimiterParams returns a -1 dB ceiling, -3 dB threshold, 100 ms
// release and 5 ms lookahead with linked channels.
func DefaultLimiterParams() LimiterParams {
	return LimiterParams{
		CeilingDB:   defaultLimiterCeilingDB,
		ThresholdDB: defaultLimiterThresholdDB,
		ReleaseMs:   defaultLimiterReleaseMs,
		LookaheadMs: defaultLimiterLookaheadMs,
		Linked:      true,
	}
}

// Sanitize clamps every field to its legal range. NaN fields take defaults.
func (p LimiterParams) Sanitize() LimiterParams {
	p.CeilingDB = core.ClampOr(p.CeilingDB, minLimiterLevelDB, maxLimiterLevelDB, defaultLimiterCeilingDB)
	p.ThresholdDB = core.ClampOr(p.ThresholdDB, minLimiterLevelDB, maxLimiterLevelDB, defaultLimiterThresholdDB)
	p.ReleaseMs = core.ClampOr(p.ReleaseMs, minLimiterReleaseMs, maxLimiterReleaseMs, defaultLimiterReleaseMs)
	p.LookaheadMs = core.ClampOr(p.LookaheadMs, minLimiterLookaheadMs, maxLimiterLookaheadMs, defaultLimiterLookaheadMs)
	return p
}

// LimitResult is the limiter output plus gain-reduction diagnostics.
type LimitResult struct {
	Buffer *buffer.SampleBuffer
	// MaxGainReductionDB is the deepest gain reduction applied (<= 0).
	MaxGainReductionDB float64
	// GainReductionDB holds, per frame, the lowest gain across channels in dB.
	GainReductionDB []float64
}

// gainStage selects how the envelope moves toward a new target gain.
type gainStage int

const (
	stageAttack gainStage = iota
	stageRelease
)

// limiterLane is the per-lane envelope state. A lane is one channel when
// unlinked, or the whole buffer when linked.
type limiterLane struct {
	detector []float64
	window   []int
	head     int
	next     int
	gain     float64
}

// windowPeak returns max(detector[i : i+lookahead+1]) using a monotonic
// deque, so each index is pushed and popped at most once.
func (l *limiterLane) windowPeak(i, lookahead int) float64 {
	last := min(i+lookahead, len(l.detector)-1)
	for ; l.next <= last; l.next++ {
		v := l.detector[l.next]
		for len(l.window) > l.head && l.detector[l.window[len(l.window)-1]] <= v {
			l.window = l.window[:len(l.window)-1]
		}
		l.window = append(l.window, l.next)
	}

	for l.window[l.head] < i {
		l.head++
	}

	if l.head > 1024 && 2*l.head > len(l.window) {
		n := copy(l.window, l.window[l.head:])
		l.window = l.window[:n]
		l.head = 0
	}

	return l.detector[l.window[l.head]]
}

func (l *limiterLane) advance(target, release float64) float64 {
	stage := stageRelease
	if target < l.gain {
		stage = stageAttack
	}

	switch stage {
	case stageAttack:
		l.gain = target
	case stageRelease:
		// r*gain + (1-r)*target, arranged to be exact once gain == target.
		l.gain = target + release*(l.gain-target)
	}

	return l.gain
}

// Limit applies brick-wall lookahead limiting to in.
func Limit(in *buffer.SampleBuffer, p LimiterParams) LimitResult {
	res, _ := LimitContext(context.Background(), in, p)
	return res
}

// LimitContext is Limit driven by the chunked executor.
//
// For every frame the detector takes the peak over the current sample and the
// lookahead window. Gain drops instantly to ceiling/peak when the peak exceeds
// the threshold and recovers exponentially with the release time constant.
// The result is hard-clipped to the ceiling, so |out| <= ceiling holds for
// every sample regardless of the envelope.
func LimitContext(ctx context.Context, in *buffer.SampleBuffer, p LimiterParams, opts ...core.ProcessorOption) (LimitResult, error) {
	p = p.Sanitize()

	frames := in.Frames()
	out := in.Like(frames)
	reduction := make([]float64, frames)

	ceiling := core.DBToLinear(p.CeilingDB)
	threshold := core.DBToLinear(p.ThresholdDB)
	lookahead := core.MsToSamples(p.LookaheadMs, in.SampleRate)
	release := math.Exp(-1 / (float64(in.SampleRate) * p.ReleaseMs / 1000))

	lanes := newLimiterLanes(in, p.Linked)
	laneOf := func(c int) *limiterLane {
		if p.Linked {
			return lanes[0]
		}
		return lanes[c]
	}

	minGain := 1.0

	step := chunk.Loop(frames, func(start, end int) {
		for i := start; i < end; i++ {
			frameMin := 1.0
			for _, lane := range lanes {
				peak := lane.windowPeak(i, lookahead)

				target := 1.0
				if peak > threshold {
					target = math.Min(1, ceiling/peak)
				}

				frameMin = math.Min(frameMin, lane.advance(target, release))
			}

			for c, ch := range in.Channels {
				g := laneOf(c).gain
				out.Channels[c][i] = core.HardClip(ch[i]*g, ceiling)
			}

			reduction[i] = core.LinearToDB(frameMin)
			minGain = math.Min(minGain, frameMin)
		}
	})

	if err := chunk.New("limit", opts...).Run(ctx, step); err != nil {
		return LimitResult{}, err
	}

	return LimitResult{
		Buffer:             out,
		MaxGainReductionDB: core.LinearToDB(minGain),
		GainReductionDB:    reduction,
	}, nil
}

func newLimiterLanes(in *buffer.SampleBuffer, linked bool) []*limiterLane {
	frames := in.Frames()

	if linked {
		det := make([]float64, frames)
		for _, ch := range in.Channels {
			for i, v := range ch {
				det[i] = math.Max(det[i], math.Abs(v))
			}
		}
		return []*limiterLane{{detector: det, gain: 1}}
	}

	lanes := make([]*limiterLane, len(in.Channels))
	for c, ch := range in.Channels {
		det := make([]float64, frames)
		for i, v := range ch {
			det[i] = math.Abs(v)
		}
		lanes[c] = &limiterLane{detector: det, gain: 1}
	}
	return lanes
}
