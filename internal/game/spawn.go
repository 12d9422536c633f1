package game

import "math/rand"

//go:generate go tool mockgen -destination=./mocks/spawner_mock.go -package=mocks . Spawner

// Spawner decides where the next dragon appears and which way it travels.
type Spawner interface {
	Spawn(gridSize int) (Position, Direction)
}

// Edge is a side of the board.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeBottom
	EdgeLeft
	EdgeRight
)

// SpawnAt places a dragon on edge at the given offset along it. The
// travel direction always points into the board.
func SpawnAt(edge Edge, offset, gridSize int) (Position, Direction) {
	last := gridSize - 1
	switch edge {
	case EdgeTop:
		return Position{X: offset, Y: 0}, DirDown
	case EdgeBottom:
		return Position{X: offset, Y: last}, DirUp
	case EdgeLeft:
		return Position{X: 0, Y: offset}, DirRight
	default:
		return Position{X: last, Y: offset}, DirLeft
	}
}

// RandomSpawner picks an edge and an offset uniformly at random.
type RandomSpawner struct {
	rng *rand.Rand
}

// NewRandomSpawner creates a spawner with a deterministic source.
func NewRandomSpawner(seed int64) *RandomSpawner {
	return &RandomSpawner{rng: rand.New(rand.NewSource(seed))}
}

// Spawn implements Spawner.
func (r *RandomSpawner) Spawn(gridSize int) (Position, Direction) {
	edge := Edge(r.rng.Intn(4))
	offset := r.rng.Intn(gridSize)
	return SpawnAt(edge, offset, gridSize)
}

// Spawn is one scripted dragon placement.
type Spawn struct {
	Position  Position
	Direction Direction
}

// ScriptedSpawner replays a fixed sequence of placements. It is used for
// journal replay and deterministic tests. Once the script runs out the
// last placement repeats.
type ScriptedSpawner struct {
	spawns []Spawn
	next   int
}

// NewScriptedSpawner creates a spawner that returns spawns in order.
func NewScriptedSpawner(spawns ...Spawn) *ScriptedSpawner {
	return &ScriptedSpawner{spawns: spawns}
}

// Spawn implements Spawner.
func (s *ScriptedSpawner) Spawn(gridSize int) (Position, Direction) {
	if len(s.spawns) == 0 {
		return SpawnAt(EdgeTop, 0, gridSize)
	}
	i := min(s.next, len(s.spawns)-1)
	s.next++
	return s.spawns[i].Position, s.spawns[i].Direction
}

// Remaining returns how many scripted placements are left.
func (s *ScriptedSpawner) Remaining() int {
	return max(len(s.spawns)-s.next, 0)
}
