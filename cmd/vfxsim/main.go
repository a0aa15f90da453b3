// Command vfxsim runs an effect headlessly and logs its particle counts.
//
//	vfxsim -preset Campfire -frames 300
//	vfxsim -file my_effect.yaml -dump-yaml
//	VFXSIM_SAVE_APP=vfx_library vfxsim -list
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/phanxgames/vfx"
	"github.com/phanxgames/vfx/store"
)

// Config holds vfxsim configuration. Flags override the environment.
type Config struct {
	Preset    string  `env:"VFXSIM_PRESET"     envDefault:"Fire"`
	File      string  `env:"VFXSIM_FILE"`
	Frames    int     `env:"VFXSIM_FRAMES"     envDefault:"120"`
	DT        float64 `env:"VFXSIM_DT"         envDefault:"0.0166667"`
	Seed      uint    `env:"VFXSIM_SEED"       envDefault:"1"`
	Lanes     int     `env:"VFXSIM_LANES"`
	LogEvery  int     `env:"VFXSIM_LOG_EVERY"  envDefault:"10"`
	Orbit     float64 `env:"VFXSIM_ORBIT"`
	DumpYAML  bool    `env:"VFXSIM_DUMP_YAML"`
	DumpWords bool    `env:"VFXSIM_DUMP_WORDS"`
	SaveApp   string  `env:"VFXSIM_SAVE_APP"`
	List      bool    `env:"VFXSIM_LIST"`
}

// ParseConfig reads the environment, then flags from args.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.Preset, "preset", cfg.Preset, "built-in preset name")
	fs.StringVar(&cfg.File, "file", cfg.File, "YAML effect file; overrides -preset")
	fs.IntVar(&cfg.Frames, "frames", cfg.Frames, "number of ticks to run")
	fs.Float64Var(&cfg.DT, "dt", cfg.DT, "seconds per tick")
	fs.UintVar(&cfg.Seed, "seed", cfg.Seed, "instance seed")
	fs.IntVar(&cfg.Lanes, "lanes", cfg.Lanes, "dispatch lanes (0 = GOMAXPROCS)")
	fs.IntVar(&cfg.LogEvery, "log-every", cfg.LogEvery, "log counts every N ticks (0 = final only)")
	fs.Float64Var(&cfg.Orbit, "orbit", cfg.Orbit, "move the emitter on a circle of this radius")
	fs.BoolVar(&cfg.DumpYAML, "dump-yaml", cfg.DumpYAML, "print the effect as YAML")
	fs.BoolVar(&cfg.DumpWords, "dump-words", cfg.DumpWords, "print each emitter's packed parameter block")
	fs.StringVar(&cfg.SaveApp, "save-app", cfg.SaveApp, "save the library to this app's data directory")
	fs.BoolVar(&cfg.List, "list", cfg.List, "list preset names and exit")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.DT <= 0 {
		return Config{}, errors.New("dt must be positive")
	}
	if cfg.Seed > math.MaxUint32 {
		return Config{}, fmt.Errorf("seed %d overflows uint32", cfg.Seed)
	}
	return cfg, nil
}

func main() {
	cfg, err := ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("vfxsim: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := Run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		log.Fatalf("vfxsim: %v", err)
	}
}

// Run executes the simulation described by cfg.
func Run(ctx context.Context, cfg Config, out, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	logger := log.New(errOut, "vfxsim: ", 0)

	lib := vfx.DefaultLibrary()
	if cfg.List {
		for _, name := range lib.Names() {
			fmt.Fprintln(out, name)
		}
		return nil
	}

	effect, err := loadEffect(cfg, lib)
	if err != nil {
		return err
	}

	if cfg.DumpYAML {
		data, err := vfx.MarshalEffect(&effect)
		if err != nil {
			return err
		}
		if _, err := out.Write(data); err != nil {
			return fmt.Errorf("dump yaml: %w", err)
		}
	}

	fx, err := vfx.NewEffectInstance(effect, vfx.InstanceConfig{
		Seed:       uint32(cfg.Seed),
		Dispatcher: vfx.NewDispatcher(vfx.DispatchConfig{Lanes: cfg.Lanes}),
	})
	if err != nil {
		return err
	}

	if cfg.DumpWords {
		for _, em := range fx.Emitters() {
			b := em.Block()
			fmt.Fprintf(out, "# %s: mask %#x, %d modules\n", em.Name(), uint32(b.Uniforms.Mask), len(b.Modules))
			for i, w := range b.Words() {
				fmt.Fprintf(out, "%4d %08x\n", i, w)
			}
		}
	}

	dt := float32(cfg.DT)
	var elapsed float32
	for frame := 1; frame <= cfg.Frames; frame++ {
		elapsed += dt
		if err := fx.Tick(ctx, dt, emitterPath(cfg.Orbit, elapsed, dt)); err != nil {
			return err
		}
		if cfg.LogEvery > 0 && frame%cfg.LogEvery == 0 || frame == cfg.Frames {
			logCounts(logger, frame, fx)
		}
		if fx.Done() {
			logger.Printf("%s finished after %d ticks", effect.Name, frame)
			break
		}
	}

	if cfg.SaveApp != "" {
		if cfg.File != "" {
			if err := lib.Register(effect); err != nil {
				return err
			}
		}
		st, err := store.Open(cfg.SaveApp)
		if err != nil {
			return err
		}
		if err := st.Save(lib); err != nil {
			return err
		}
		logger.Printf("saved %d effects to %q", lib.Len(), cfg.SaveApp)
	}
	return nil
}

func loadEffect(cfg Config, lib *vfx.Library) (vfx.Effect, error) {
	if cfg.File == "" {
		return lib.Lookup(cfg.Preset)
	}
	data, err := os.ReadFile(cfg.File)
	if err != nil {
		return vfx.Effect{}, err
	}
	return vfx.UnmarshalEffect(data)
}

// emitterPath moves the emitter on a horizontal circle of the given radius,
// one revolution every two seconds.
func emitterPath(radius float64, t, dt float32) vfx.EmitterInputs {
	if radius <= 0 {
		return vfx.EmitterInputs{}
	}
	const omega = math.Pi
	at := func(t float32) mgl32.Vec3 {
		a := omega * float64(t)
		return mgl32.Vec3{float32(radius * math.Cos(a)), 0, float32(radius * math.Sin(a))}
	}
	pos := at(t)
	delta := pos.Sub(at(t - dt))
	return vfx.EmitterInputs{
		Position:      pos,
		Velocity:      delta.Mul(1 / dt),
		DistanceDelta: delta.Len(),
	}
}

func logCounts(logger *log.Logger, frame int, fx *vfx.EffectInstance) {
	logger.Printf("tick %d t=%.2fs alive=%d", frame, fx.Elapsed(), fx.AliveCount())
	for _, em := range fx.Emitters() {
		logger.Printf("  %-14s spawned=%d requested=%d alive=%d", em.Name(), em.Spawned(), em.Requested(), em.AliveCount())
	}
}
