package tetris

import (
	"fmt"
	"slices"
)

type State int

const (
	SpawnShape State = iota
	ShapeMoving
	ClearingRows
	Paused
	GameOver
)

var stateNames = [...]string{"spawn_shape", "shape_moving", "clearing_rows", "paused", "game_over"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// transitions lists every allowed state change. Leaving Paused goes back to
// the state the game was paused in.
var transitions = map[State][]State{
	SpawnShape:   {ShapeMoving, GameOver, Paused},
	ShapeMoving:  {ClearingRows, Paused},
	ClearingRows: {SpawnShape, Paused},
	Paused:       {SpawnShape, ShapeMoving, ClearingRows},
	GameOver:     {SpawnShape},
}

func canTransition(from, to State) bool {
	return slices.Contains(transitions[from], to)
}
