// Package ecs provides ECS adapters for lectern's presentation events.
//
// The primary adapter is [NewDonburiSink], which bridges slide lifecycle
// events (entered, revealed, settled, section shown, scale and fullscreen
// changes) into a [Donburi] world as typed events. Subscribe to
// [SlideEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	p := lectern.NewPresenter(scene, deck, lectern.WithEventSink(sink))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
