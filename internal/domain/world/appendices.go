package world

import "fmt"

// Sensor is the perception side of an actor: the environment sinks
// perceptions into it and the actor sources them during its cycle.
type Sensor[P any] interface {
	Sink(p P)
	SinkAll(ps []P)
	Source() (P, bool)
	SourceAll() []P
}

// Actuator is the action side of an actor: the actor sinks actions into it
// and the environment sources them for execution.
type Actuator interface {
	Sink(a Action) error
	SinkAll(as []Action) error
	Source() (Action, bool)
	SourceAll() []Action
}

type queue[T any] struct {
	items []T
}

func (q *queue[T]) push(v T) {
	q.items = append(q.items, v)
}

func (q *queue[T]) pop() (T, bool) {
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	v := q.items[0]
	q.items = q.items[1:]
	return v, true
}

func (q *queue[T]) drain() []T {
	out := q.items
	q.items = nil
	if out == nil {
		out = []T{}
	}
	return out
}

func (q *queue[T]) Len() int {
	return len(q.items)
}

type ObservationSensor struct {
	q queue[Observation]
}

func NewObservationSensor() *ObservationSensor { return &ObservationSensor{} }

func (s *ObservationSensor) Sink(o Observation) { s.q.push(o) }

func (s *ObservationSensor) SinkAll(os []Observation) {
	for _, o := range os {
		s.q.push(o)
	}
}

func (s *ObservationSensor) Source() (Observation, bool) { return s.q.pop() }

func (s *ObservationSensor) SourceAll() []Observation { return s.q.drain() }

func (s *ObservationSensor) Pending() int { return s.q.Len() }

type ListeningSensor struct {
	q queue[Message]
}

func NewListeningSensor() *ListeningSensor { return &ListeningSensor{} }

func (s *ListeningSensor) Sink(m Message) { s.q.push(m) }

func (s *ListeningSensor) SinkAll(ms []Message) {
	for _, m := range ms {
		s.q.push(m)
	}
}

func (s *ListeningSensor) Source() (Message, bool) { return s.q.pop() }

func (s *ListeningSensor) SourceAll() []Message { return s.q.drain() }

type PhysicalActuator struct {
	q queue[Action]
}

func NewPhysicalActuator() *PhysicalActuator { return &PhysicalActuator{} }

func (p *PhysicalActuator) Sink(a Action) error {
	if !a.Kind.IsPhysical() {
		return fmt.Errorf("%w: %q is not a physical action", ErrUnsupportedAction, a.Kind)
	}
	p.q.push(a)
	return nil
}

func (p *PhysicalActuator) SinkAll(as []Action) error {
	for _, a := range as {
		if err := p.Sink(a); err != nil {
			return err
		}
	}
	return nil
}

func (p *PhysicalActuator) Source() (Action, bool) { return p.q.pop() }

func (p *PhysicalActuator) SourceAll() []Action { return p.q.drain() }

type CommunicativeActuator struct {
	q queue[Action]
}

func NewCommunicativeActuator() *CommunicativeActuator { return &CommunicativeActuator{} }

func (c *CommunicativeActuator) Sink(a Action) error {
	if !a.Kind.IsCommunicative() {
		return fmt.Errorf("%w: %q is not a communicative action", ErrUnsupportedAction, a.Kind)
	}
	c.q.push(a)
	return nil
}

func (c *CommunicativeActuator) SinkAll(as []Action) error {
	for _, a := range as {
		if err := c.Sink(a); err != nil {
			return err
		}
	}
	return nil
}

func (c *CommunicativeActuator) Source() (Action, bool) { return c.q.pop() }

func (c *CommunicativeActuator) SourceAll() []Action { return c.q.drain() }

var (
	_ Sensor[Observation] = (*ObservationSensor)(nil)
	_ Sensor[Message]     = (*ListeningSensor)(nil)
	_ Actuator            = (*PhysicalActuator)(nil)
	_ Actuator            = (*CommunicativeActuator)(nil)
)
