package input

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/sheetdock/pkg/errors"
	"github.com/matzehuels/sheetdock/pkg/geom"
)

// DefaultTick is the frame duration used when a script does not set one.
const DefaultTick = 50 * time.Millisecond

// Script is a replayable sequence of frames, written in TOML:
//
//	tick = "50ms"
//
//	[[frame]]
//	events = [{ move = [120, 40] }, { press = "translate-grab" }]
//
//	[[frame]]
//	repeat = 3
//	events = [{ press = "rotate-cw" }]
type Script struct {
	Tick   time.Duration `toml:"tick"`
	Frames []ScriptFrame `toml:"frame"`
}

// ScriptFrame is one tick worth of events. Repeat runs the frame several
// times; the events are applied on the first run only.
type ScriptFrame struct {
	Elapsed time.Duration `toml:"elapsed"`
	Repeat  int           `toml:"repeat"`
	Events  []ScriptEvent `toml:"events"`
}

// ScriptEvent holds exactly one of Move, Press or Release.
type ScriptEvent struct {
	Move    []float64 `toml:"move"`
	Press   string    `toml:"press"`
	Release string    `toml:"release"`
}

// LoadScript reads and validates a script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "script %s", path)
		}
		return nil, err
	}
	return ParseScript(data)
}

// ParseScript decodes and validates a TOML script.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "decode script")
	}
	if s.Tick <= 0 {
		s.Tick = DefaultTick
	}
	for i, f := range s.Frames {
		if f.Repeat < 0 {
			return nil, errors.New(errors.ErrCodeInvalidScript, "frame %d: negative repeat", i+1)
		}
		if f.Elapsed < 0 {
			return nil, errors.New(errors.ErrCodeInvalidScript, "frame %d: negative elapsed", i+1)
		}
		if _, err := f.events(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "frame %d", i+1)
		}
	}
	return &s, nil
}

func (f ScriptFrame) events() ([]Event, error) {
	out := make([]Event, 0, len(f.Events))
	for j, e := range f.Events {
		ev, err := e.event()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "event %d", j+1)
		}
		out = append(out, ev)
	}
	return out, nil
}

func (e ScriptEvent) event() (Event, error) {
	set := 0
	var ev Event
	if e.Move != nil {
		if len(e.Move) != 2 {
			return nil, errors.New(errors.ErrCodeInvalidScript, "move needs [x, y], got %d values", len(e.Move))
		}
		ev = PointerMoved{Pos: geom.V(e.Move[0], e.Move[1])}
		set++
	}
	if e.Press != "" {
		a, err := ParseAction(e.Press)
		if err != nil {
			return nil, err
		}
		ev = ActionPressed{Action: a}
		set++
	}
	if e.Release != "" {
		a, err := ParseAction(e.Release)
		if err != nil {
			return nil, err
		}
		ev = ActionReleased{Action: a}
		set++
	}
	if set != 1 {
		return nil, errors.New(errors.ErrCodeInvalidScript, "event needs exactly one of move, press, release")
	}
	return ev, nil
}

// Replay runs every frame of s through d and returns the number of ticks run.
func Replay(d *Dispatcher, s *Script) (int, error) {
	ticks := 0
	for i, f := range s.Frames {
		events, err := f.events()
		if err != nil {
			return ticks, errors.Wrap(errors.ErrCodeInvalidScript, err, "frame %d", i+1)
		}
		elapsed := f.Elapsed
		if elapsed <= 0 {
			elapsed = s.Tick
		}
		runs := max(f.Repeat, 1)
		for r := 0; r < runs; r++ {
			if r > 0 {
				events = nil
			}
			d.Frame(events, elapsed)
			ticks++
		}
	}
	return ticks, nil
}
