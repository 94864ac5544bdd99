package jobs

type Kind string

const (
	KindMine Kind = "MINE"
	KindHaul Kind = "HAUL"
)

// DefaultPriority is assigned to jobs created by designation conversion and
// the auto-haul generator. Higher priorities dispatch first.
const DefaultPriority = 0

type Job struct {
	ID       string
	Kind     Kind
	Priority int

	// MINE
	Target Vec2i

	// HAUL
	Source Vec2i
	Dest   Vec2i

	// AssignedTo is the worker holding this job, empty while it sits on
	// the board. It is written only by the world's paired transitions.
	AssignedTo string

	CreatedTick uint64
}

// Vec2i is duplicated here to avoid import cycles (jobs is used by world).
type Vec2i struct{ X, Y int }
