package vfx

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ErrPipelineMismatch is returned by Dispatch when the pipeline was selected
// for a different variant mask than the block it is asked to run.
var ErrPipelineMismatch = errors.New("vfx: pipeline does not match parameter block")

// DispatchConfig controls how the tick pass is spread over worker lanes.
type DispatchConfig struct {
	// Lanes is the maximum number of concurrent lanes. Zero uses GOMAXPROCS,
	// capped at 8.
	Lanes int
	// MinSlotsPerLane is the smallest chunk worth its own lane. Zero means 256.
	MinSlotsPerLane int
}

// Dispatcher runs the tick pass of a Pipeline over particle slots. Each lane
// owns a contiguous chunk of slots and writes nothing else, so lanes need no
// locking.
type Dispatcher struct {
	lanes    int
	minSlots int
}

// NewDispatcher creates a Dispatcher from cfg.
func NewDispatcher(cfg DispatchConfig) *Dispatcher {
	lanes := cfg.Lanes
	if lanes <= 0 {
		lanes = min(runtime.GOMAXPROCS(0), 8)
	}
	minSlots := cfg.MinSlotsPerLane
	if minSlots <= 0 {
		minSlots = 256
	}
	return &Dispatcher{lanes: lanes, minSlots: minSlots}
}

// Lanes returns how many lanes n slots are split across.
func (d *Dispatcher) Lanes(n int) int {
	lanes := min(d.lanes, n/d.minSlots)
	return max(lanes, 1)
}

// Dispatch steps every particle in slots by dt. The block must not be
// modified until Dispatch returns. Cancellation is checked once before any
// lane starts, so a canceled Dispatch steps nothing and a started one steps
// every slot.
func (d *Dispatcher) Dispatch(ctx context.Context, pl *Pipeline, b *ParameterBlock, slots []Particle, dt float32) error {
	if pl.Mask != b.Uniforms.Mask {
		return fmt.Errorf("%w: pipeline %#x, block %#x", ErrPipelineMismatch, uint32(pl.Mask), uint32(b.Uniforms.Mask))
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	n := len(slots)
	lanes := d.Lanes(n)
	if lanes == 1 {
		for i := range slots {
			pl.Step(b, &slots[i], dt)
		}
		return nil
	}

	var g errgroup.Group
	chunk := (n + lanes - 1) / lanes
	for lo := 0; lo < n; lo += chunk {
		part := slots[lo:min(lo+chunk, n)]
		g.Go(func() error {
			for i := range part {
				pl.Step(b, &part[i], dt)
			}
			return nil
		})
	}
	return g.Wait()
}
