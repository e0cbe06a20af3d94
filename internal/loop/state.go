package loop

import (
	"math/rand"
	"time"

	"github.com/tomz197/lander/internal/config"
	"github.com/tomz197/lander/internal/draw"
	"github.com/tomz197/lander/internal/object"
)

// World holds one lander game: the terrain, the ship, its instruments and
// any short-lived objects such as exhaust particles.
type World struct {
	Terrain  *object.Terrain
	Ship     *object.Ship
	Compass  *object.Compass
	HUD      *object.HUD
	Objects  []object.Object // Short-lived objects, drawn between terrain and ship
	Controls object.Controls
	Ticks    int // Ticks simulated so far

	toSpawn []object.Object // Objects to add after the current tick
	rng     *rand.Rand
}

// NewWorld creates a world whose terrain and effects derive from seed.
func NewWorld(seed int64) *World {
	rng := rand.New(rand.NewSource(seed))
	terrain := object.NewTerrain(rng)
	return NewWorldWithTerrain(terrain, rng)
}

// NewWorldWithTerrain creates a world over an existing terrain.
func NewWorldWithTerrain(terrain *object.Terrain, rng *rand.Rand) *World {
	ship := object.NewShip()
	return &World{
		Terrain:  terrain,
		Ship:     ship,
		Compass:  object.NewCompass(ship),
		HUD:      &object.HUD{Ship: ship, Terrain: terrain},
		Controls: object.DefaultControls,
		rng:      rng,
	}
}

// Spawn queues an object to be added after the current tick.
// Implements object.Spawner interface.
func (w *World) Spawn(obj object.Object) {
	w.toSpawn = append(w.toSpawn, obj)
}

// FlushSpawned adds all queued objects to the world and clears the queue.
func (w *World) FlushSpawned() {
	w.Objects = append(w.Objects, w.toSpawn...)
	w.toSpawn = w.toSpawn[:0]
}

// scene returns the long-lived objects in update order.
func (w *World) scene() []object.Object {
	return []object.Object{w.Terrain, w.Ship, w.Compass, w.HUD}
}

// updateContext creates an UpdateContext for one tick.
func (w *World) updateContext(keys object.KeyState) object.UpdateContext {
	return object.UpdateContext{
		Delta:    config.TickInterval,
		Keys:     keys,
		Controls: w.Controls,
		Terrain:  w.Terrain,
		Spawner:  w,
		Rand:     w.rng,
	}
}

// Tick advances the world by one fixed step.
func (w *World) Tick(keys object.KeyState) error {
	ctx := w.updateContext(keys)

	for _, obj := range w.scene() {
		if _, err := obj.Update(ctx); err != nil {
			return err
		}
	}

	// Update short-lived objects and collect ones to keep
	kept := w.Objects[:0] // reuse backing array
	for _, obj := range w.Objects {
		remove, err := obj.Update(ctx)
		if err != nil {
			return err
		}
		if remove {
			object.ReleaseObject(obj)
			continue
		}
		kept = append(kept, obj)
	}
	clear(w.Objects[len(kept):])
	w.Objects = kept

	w.FlushSpawned()
	w.Ticks++
	return nil
}

// Elapsed returns the simulated time.
func (w *World) Elapsed() time.Duration {
	return time.Duration(w.Ticks) * config.TickInterval
}

// Draw clears the surface and draws the whole world onto it.
func (w *World) Draw(surf *draw.Surface) error {
	surf.Clear(draw.Black)

	ctx := object.DrawContext{
		Surface: surf,
		View:    object.NewView(surf.Width(), surf.Height(), w.Ship),
	}

	if err := w.Terrain.Draw(ctx); err != nil {
		return err
	}
	for _, obj := range w.Objects {
		if err := obj.Draw(ctx); err != nil {
			return err
		}
	}
	for _, obj := range []object.Object{w.Ship, w.Compass, w.HUD} {
		if err := obj.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}
