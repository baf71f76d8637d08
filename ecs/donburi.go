package ecs

import (
	"github.com/phanxgames/lectern"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SlideEventType is the Donburi event type for lectern slide events.
var SlideEventType = events.NewEventType[lectern.SlideEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// published to SlideEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) lectern.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitSlideEvent(event lectern.SlideEvent) {
	SlideEventType.Publish(s.world, event)
}
