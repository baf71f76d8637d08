package ecs

import (
	"testing"

	"github.com/phanxgames/lectern"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	if NewDonburiSink(world) == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitSlideEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []lectern.SlideEvent
	SlideEventType.Subscribe(world, func(w donburi.World, e lectern.SlideEvent) {
		received = append(received, e)
	})

	sink.EmitSlideEvent(lectern.SlideEvent{Type: lectern.EventSlideEntered, Seq: 1, From: 0, To: 3})
	sink.EmitSlideEvent(lectern.SlideEvent{Type: lectern.EventSectionShown, Section: 2})

	if len(received) != 0 {
		t.Fatalf("events delivered before ProcessEvents: %d", len(received))
	}
	SlideEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.Type != lectern.EventSlideEntered || e.To != 3 || e.Seq != 1 {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.Type != lectern.EventSectionShown || e.Section != 2 {
		t.Errorf("event 1: %+v", e)
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	SlideEventType.Subscribe(world, func(w donburi.World, e lectern.SlideEvent) { count1++ })
	SlideEventType.Subscribe(world, func(w donburi.World, e lectern.SlideEvent) { count2++ })

	sink.EmitSlideEvent(lectern.SlideEvent{Type: lectern.EventSlideSettled})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestDonburiSink_WithPresenter(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var types []lectern.SlideEventType
	SlideEventType.Subscribe(world, func(w donburi.World, e lectern.SlideEvent) {
		types = append(types, e.Type)
	})

	deck := &lectern.Deck{Slides: []lectern.Slide{{Title: "one"}, {Title: "two"}}}
	scene := lectern.NewScene()
	p := lectern.NewPresenter(scene, deck, lectern.WithEventSink(sink))
	if !p.Next() {
		t.Fatal("Next rejected")
	}
	for range 60 {
		scene.Advance(lectern.DefaultTimings().Settle / 30)
	}
	SlideEventType.ProcessEvents(world)

	want := []lectern.SlideEventType{lectern.EventSlideEntered, lectern.EventSlideRevealed, lectern.EventSlideSettled}
	var got []lectern.SlideEventType
	for _, tp := range types {
		if tp == lectern.EventSlideEntered || tp == lectern.EventSlideRevealed || tp == lectern.EventSlideSettled {
			got = append(got, tp)
		}
	}
	if len(got) != len(want) {
		t.Fatalf("lifecycle events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
}
