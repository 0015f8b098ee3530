package world

import "fmt"

type Outcome string

const (
	Success Outcome = "SUCCESS"
	Failure Outcome = "FAILURE"
)

type ActionResult struct {
	Outcome Outcome `json:"outcome"`
	Action  Action  `json:"action"`
}

func NewActionResult(outcome Outcome, action Action) ActionResult {
	return ActionResult{Outcome: outcome, Action: action}
}

func (r ActionResult) Succeeded() bool {
	return r.Outcome == Success
}

type Message struct {
	SenderID   string   `json:"sender_id"`
	Recipients []string `json:"recipients,omitempty"`
	Content    string   `json:"content"`
}

// Observation is what an actor perceives. Center is the observer's own
// coordinate at the time the observation was taken.
type Observation struct {
	Center    Coord                `json:"center"`
	Locations []LocationAppearance `json:"locations"`
	Results   []ActionResult       `json:"results"`
}

// At returns the perceived location at c, if visible.
func (o Observation) At(c Coord) (LocationAppearance, bool) {
	for _, l := range o.Locations {
		if l.Coord == c {
			return l, true
		}
	}
	return LocationAppearance{}, false
}

// Self returns the observer as it appears at Center.
func (o Observation) Self() (ActorAppearance, bool) {
	l, ok := o.At(o.Center)
	if !ok || l.Actor == nil {
		return ActorAppearance{}, false
	}
	return *l.Actor, true
}

// MergeObservations folds the observations sourced in one cycle. One is
// passed through; with two, the second one's locations win and the results
// are concatenated in order. Any other count is an error.
func MergeObservations(observations []Observation) (Observation, error) {
	switch len(observations) {
	case 0:
		return Observation{}, ErrNoObservations
	case 1:
		return observations[0], nil
	case 2:
		results := make([]ActionResult, 0, len(observations[0].Results)+len(observations[1].Results))
		results = append(results, observations[0].Results...)
		results = append(results, observations[1].Results...)
		return Observation{Center: observations[1].Center, Locations: observations[1].Locations, Results: results}, nil
	default:
		return Observation{}, fmt.Errorf("%w: got %d, at most 2 allowed", ErrTooManyObservations, len(observations))
	}
}
