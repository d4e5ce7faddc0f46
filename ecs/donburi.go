package ecs

import (
	"github.com/google/uuid"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/awesomemap"
)

// Interaction is the Donburi form of an InteractionEvent. It is a plain value
// so systems can keep it past the frame it was published in.
type Interaction struct {
	ID          uuid.UUID
	Type        awesomemap.EventType
	Position    awesomemap.Point
	HasPosition bool
	DeltaX      float64
	DeltaY      float64
	Scale       float64
	Simulated   bool
}

// TransformDone is published when a transformation completed.
type TransformDone struct {
	EventID uuid.UUID
	Type    awesomemap.EventType
	State   awesomemap.TransformState
}

// InteractionEventType carries interactions that passed the interceptors
// registered before the bridge.
var InteractionEventType = events.NewEventType[Interaction]()

// TransformFinishedEventType carries completed transformations.
var TransformFinishedEventType = events.NewEventType[TransformDone]()

// Viewport is the component holding the committed transform of a map.
var Viewport = donburi.NewComponentType[awesomemap.TransformState]()

// EventBridge publishes a map's interactions into a Donburi world.
type EventBridge struct {
	awesomemap.Base
	world  donburi.World
	entity donburi.Entity
}

// NewEventBridge creates a bridge publishing into world. The viewport entity
// is created immediately with the identity state.
func NewEventBridge(world donburi.World) *EventBridge {
	e := world.Create(Viewport)
	Viewport.SetValue(world.Entry(e), awesomemap.IdentityState())
	return &EventBridge{world: world, entity: e}
}

// Entity returns the viewport entity.
func (b *EventBridge) Entity() donburi.Entity {
	return b.entity
}

// HandleInteraction implements awesomemap.InteractionHandler. It never vetoes.
func (b *EventBridge) HandleInteraction(ev *awesomemap.InteractionEvent) awesomemap.Propagation {
	pos, ok := ev.Position()
	InteractionEventType.Publish(b.world, Interaction{
		ID:          ev.ID,
		Type:        ev.Type,
		Position:    pos,
		HasPosition: ok,
		DeltaX:      ev.Iterative.DeltaX,
		DeltaY:      ev.Iterative.DeltaY,
		Scale:       ev.Iterative.Scale,
		Simulated:   ev.Simulated,
	})
	return awesomemap.Continue
}

// HandleTransformFinished implements awesomemap.TransformFinishedHandler.
func (b *EventBridge) HandleTransformFinished(ev *awesomemap.InteractionEvent, s awesomemap.TransformState) {
	if b.world.Valid(b.entity) {
		Viewport.SetValue(b.world.Entry(b.entity), s)
	}
	TransformFinishedEventType.Publish(b.world, TransformDone{EventID: ev.ID, Type: ev.Type, State: s})
}
