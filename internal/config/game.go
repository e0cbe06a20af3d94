package config

import (
	"errors"
	"time"
)

// Game holds the per-game settings read from the environment.
type Game struct {
	Width  int
	Height int
	Scale  float64 // 0 means auto-fit
	Seed   int64
}

// LoadGame reads LANDER_WIDTH, LANDER_HEIGHT, LANDER_SCALE and LANDER_SEED.
// An unset seed is taken from the clock.
func LoadGame(defaultWidth, defaultHeight int) (Game, error) {
	w, errW := GetEnvInt("LANDER_WIDTH", defaultWidth)
	h, errH := GetEnvInt("LANDER_HEIGHT", defaultHeight)
	scale, errS := GetEnvScale("LANDER_SCALE", "auto")
	seed, errSeed := GetEnvInt("LANDER_SEED", 0)
	if err := errors.Join(errW, errH, errS, errSeed); err != nil {
		return Game{}, err
	}
	if seed == 0 {
		seed = int(time.Now().UnixNano())
	}
	return Game{Width: w, Height: h, Scale: scale, Seed: int64(seed)}, nil
}
