// Package lectern is a slide presentation controller for [Ebitengine].
//
// A presentation is a fixed 1920x1080 surface of slide panels. lectern
// advances between the panels, keeps a uniform scaling transform of the
// surface in step with the window, and drives small per-slide animations:
// counters, a progress ring, a section banner and auto-hiding navigation.
//
// # Quick start
//
// Build a [Deck], hand it to [NewPresenter], and open a window with [Run]:
//
//	scene := lectern.NewScene()
//	lectern.NewPresenter(scene, deck, lectern.WithWindow(lectern.EbitenWindow{}))
//	lectern.Run(scene, lectern.RunConfig{Title: "Talk", Width: 1280, Height: 720})
//
// The lectern command loads decks from YAML files with markdown bodies and
// is usually the easier way in.
//
// # Controllers
//
// [SlideDeck] owns the current index and the Idle/Transitioning lock.
// Requests made while a transition is in flight are dropped. Requesting the
// current slide is a refresh and restarts its animations.
//
// [ScaleController] fits the surface to the viewport with a size-dependent
// margin, debounces resizes and corrects overflow on the following frame.
//
// [SlideAnimator], [SectionIndicatorController] and
// [NavigationVisibilityController] react to the deck's phases and to window
// changes. All of them schedule work on the scene's [Scheduler], a virtual
// clock advanced once per tick, so tests drive time with [Scene.Advance]
// instead of sleeping.
//
// # Scene graph
//
// Slides are drawn from a retained tree of [Node] values. Children inherit
// their parent's transform and alpha. Tweens come from [gween].
//
// # Events
//
// Pass an [EventSink] with [WithEventSink] to observe slide lifecycle,
// section, scale and fullscreen events. The ecs package forwards them into a
// [Donburi] world.
//
// # Scripted input
//
// [LoadTestScript] reads a YAML or JSON list of key, click, swipe, wait and
// screenshot steps. Attach it with [Scene.SetTestRunner] for automated
// visual checks.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package lectern
