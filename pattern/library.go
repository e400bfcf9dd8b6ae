package pattern

import (
	"errors"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/minipuft/starrynight/music"
	"github.com/minipuft/starrynight/parameter"
	"github.com/minipuft/starrynight/status"
	"github.com/minipuft/starrynight/vmath"
)

// Variant selects a rendering mood within one pattern family
type Variant uint8

const (
	// VariantAuto resolves from the music snapshot at render time
	VariantAuto Variant = iota
	VariantCalm
	VariantFlow
	VariantBloom
	VariantPulse // beat-synchronized
)

func (v Variant) String() string {
	switch v {
	case VariantAuto:
		return "auto"
	case VariantCalm:
		return "calm"
	case VariantFlow:
		return "flow"
	case VariantBloom:
		return "bloom"
	case VariantPulse:
		return "pulse"
	default:
		return "unknown"
	}
}

// modeVariants maps harmonic modes to their default rendering mood
var modeVariants = map[music.HarmonicMode]Variant{
	music.HarmonyNeutral:            VariantCalm,
	music.HarmonyMonochrome:         VariantCalm,
	music.HarmonyAnalogous:          VariantFlow,
	music.HarmonyTriadic:            VariantFlow,
	music.HarmonyComplementary:      VariantBloom,
	music.HarmonySplitComplementary: VariantBloom,
	music.HarmonyTetradic:           VariantBloom,
}

// Options tune one render request. Zero value is usable: default size,
// variant resolved from music (or calm), palette colors
type Options struct {
	Size    float64
	Variant Variant
	Color   *colorful.Color
	Music   *music.Snapshot
	MaxOps  int
	Seed    uint64
	Owner   string // tags cached recordings for EvictOwner
}

// Result reports what one render actually did
type Result struct {
	Variant  Variant
	Ops      int
	Cached   bool
	FellBack bool
}

// ErrNilCanvas is returned when no destination was provided
var ErrNilCanvas = errors.New("pattern: nil canvas")

// Library renders named procedural patterns with memoized recordings
// A render request never escalates an internal failure: unknown names and
// renderer panics fall back to the glow pattern
//
// Frame-confined: Render and cache maintenance run on the frame goroutine
type Library struct {
	log   *slog.Logger
	cache *recordingCache

	statGenerated *atomic.Int64
	statFallbacks *atomic.Int64
}

// NewLibrary creates a library with the given cache capacity
func NewLibrary(log *slog.Logger, reg *status.Registry, cacheCapacity int) *Library {
	return &Library{
		log: log.With("component", "patterns"),
		cache: newRecordingCache(cacheCapacity,
			reg.Ints.Get("cache.hits"),
			reg.Ints.Get("cache.misses"),
			reg.Ints.Get("cache.evictions")),
		statGenerated: reg.Ints.Get("pattern.generated"),
		statFallbacks: reg.Ints.Get("pattern.fallbacks"),
	}
}

// SetCacheCapacity resizes the recording cache, evicting overflow
func (l *Library) SetCacheCapacity(n int) {
	l.cache.Resize(n)
}

// ClearCache drops all recordings (tier downgrade)
func (l *Library) ClearCache() {
	l.cache.Clear()
}

// EvictOwner drops recordings tagged with the owner, returning the count.
// Called when a generator is destroyed so its shapes do not outlive it
func (l *Library) EvictOwner(owner string) int {
	return l.cache.EvictOwner(owner)
}

// Scoped returns a view of the library that tags every render with the
// owning generator, so teardown can evict exactly its recordings
func (l *Library) Scoped(owner string) Scoped {
	return Scoped{lib: l, owner: owner}
}

// Scoped is a Library view bound to one owner tag
type Scoped struct {
	lib   *Library
	owner string
}

// Render is Library.Render with the view's owner applied when the caller
// did not set one
func (s Scoped) Render(name string, dst Canvas, x, y, intensity float64, ts time.Time, opts Options) (Result, error) {
	if opts.Owner == "" {
		opts.Owner = s.owner
	}
	return s.lib.Render(name, dst, x, y, intensity, ts, opts)
}

// CacheLen returns the number of cached recordings
func (l *Library) CacheLen() int {
	return l.cache.Len()
}

// Render draws the named pattern centered at (x, y). Identical quantized
// requests replay one cached recording bit-identically; everything else is
// generated fresh. Failures degrade to the glow pattern, never an error
func (l *Library) Render(name string, dst Canvas, x, y, intensity float64, ts time.Time, opts Options) (Result, error) {
	if dst == nil {
		return Result{}, ErrNilCanvas
	}
	if math.IsNaN(intensity) {
		intensity = 0
	}
	intensity = vmath.Clamp01(intensity)

	size := opts.Size
	if size <= 0 || math.IsNaN(size) {
		size = parameter.PatternDefaultSize
	}

	fn, known := builtins[name]
	fell := false
	if !known {
		l.log.Warn("unknown pattern", "name", name)
		l.statFallbacks.Add(1)
		name, fn = FallbackName, builtins[FallbackName]
		fell = true
	}

	variant, phase := l.resolveVariant(opts, ts)
	base, accent := resolveColors(opts)
	args := renderArgs{
		Size:      size,
		Intensity: intensity,
		Variant:   variant,
		Phase:     phase,
		Base:      base,
		Accent:    accent,
		MaxOps:    opts.MaxOps,
		Seed:      opts.Seed,
	}

	// Beat-synchronized renders vary every frame through phase; caching them
	// would thrash, so only phase-free shapes are memoized
	cacheable := l.cache.capacity > 0 &&
		variant != VariantPulse &&
		size <= parameter.PatternCacheMaxSize &&
		intensity <= parameter.PatternCacheMaxIntensity

	if cacheable {
		key := makeKey(name, variant, size, intensity)
		if rec, ok := l.cache.Get(key); ok {
			rec.Replay(dst, x, y)
			return Result{Variant: variant, Ops: rec.OpCount(), Cached: true, FellBack: fell}, nil
		}

		rec := &Recording{}
		if !l.generate(fn, rec, args) {
			return l.fallback(dst, x, y, args, variant), nil
		}
		l.cache.Put(key, rec, opts.Owner)
		rec.Replay(dst, x, y)
		return Result{Variant: variant, Ops: rec.OpCount(), FellBack: fell}, nil
	}

	lim := &limitCanvas{dst: offsetCanvas{dst: dst, dx: x, dy: y}, budget: opts.MaxOps}
	if !l.generate(fn, lim, args) {
		return l.fallback(dst, x, y, args, variant), nil
	}
	return Result{Variant: variant, Ops: lim.drawn, FellBack: fell}, nil
}

// generate runs a renderer with panic isolation; a panicking renderer
// reports failure instead of unwinding the frame
func (l *Library) generate(fn renderFunc, c Canvas, args renderArgs) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Warn("pattern renderer failed", "panic", r)
			ok = false
		}
	}()
	fn(c, args)
	l.statGenerated.Add(1)
	return true
}

// fallback draws the glow pattern directly; it is simple enough that it
// cannot fail
func (l *Library) fallback(dst Canvas, x, y float64, args renderArgs, variant Variant) Result {
	l.statFallbacks.Add(1)
	lim := &limitCanvas{dst: offsetCanvas{dst: dst, dx: x, dy: y}, budget: args.MaxOps}
	renderGlow(lim, args)
	return Result{Variant: variant, Ops: lim.drawn, FellBack: true}
}

// resolveVariant applies the selection rules: an explicit variant wins,
// then high-intensity beats with a known tempo select the pulse variant,
// then the harmonic mode picks the default mood
func (l *Library) resolveVariant(opts Options, ts time.Time) (Variant, float64) {
	snap := opts.Music

	if opts.Variant != VariantAuto {
		if opts.Variant == VariantPulse {
			return VariantPulse, beatPhase(ts, snap)
		}
		return opts.Variant, 0
	}

	if snap != nil && snap.BeatIntensity > parameter.BeatVariantThreshold && snap.BeatPeriod > 0 {
		return VariantPulse, beatPhase(ts, snap)
	}

	if snap != nil {
		if v, ok := modeVariants[snap.Mode]; ok {
			return v, 0
		}
	}
	return VariantCalm, 0
}

// beatPhase is the request position inside the current beat period, [0, 1)
func beatPhase(ts time.Time, snap *music.Snapshot) float64 {
	if snap == nil || snap.BeatPeriod <= 0 {
		return 0
	}
	period := snap.BeatPeriod.Nanoseconds()
	n := ts.UnixNano() % period
	if n < 0 {
		n += period
	}
	return float64(n) / float64(period)
}

// resolveColors picks base and accent ink: explicit color, else the active
// palette, else the built-in default
func resolveColors(opts Options) (base, accent colorful.Color) {
	var pal []colorful.Color
	if opts.Music != nil && len(opts.Music.Palette) > 0 {
		pal = opts.Music.Palette
	} else {
		pal = music.DefaultPalette()
	}

	base = pal[0]
	accent = base
	if len(pal) > 1 {
		accent = pal[1]
	}
	if opts.Color != nil {
		base = *opts.Color
	}
	return base, accent
}
