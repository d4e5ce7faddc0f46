// Package awesomemap is a pan and zoom viewport engine for [Ebitengine].
//
// A [Map] owns a transformation plane (any [RenderTarget], typically a
// [Plane]) and moves it in response to gestures. Raw pointer input is
// classified into [InteractionEvent]s by a [Recognizer], filtered and
// adjusted by interceptors, and turned into [Transformation]s that a
// [TransformationQueue] runs strictly one at a time.
//
// # Quick start
//
//	plane := awesomemap.NewPlane(awesomemap.Rect{Width: 800, Height: 600})
//	m := awesomemap.NewMap(plane)
//	m.SetContentSize(awesomemap.Size{Width: 2400, Height: 1600})
//	m.AddInterceptor(&awesomemap.ScaleLimit{})
//	m.AddInterceptor(&awesomemap.Boundary{Elastic: true})
//
//	rec := awesomemap.NewRecognizer(m, plane, m.Config().Input)
//	m.AttachInput(awesomemap.NewEbitenInput(rec, m.Scheduler().(*awesomemap.FrameScheduler).Now))
//
// Then, from an [ebiten.Game]:
//
//	func (g *Game) Update() error        { g.m.Update(time.Second / 60); return nil }
//	func (g *Game) Draw(s *ebiten.Image) { g.plane.Draw(s, g.content) }
//
// # Pipeline
//
//   - A [GestureTracker] folds raw samples into cumulative [Gesture]s. The
//     iterative gesture of an event is its cumulative gesture minus the
//     previous one, with pinch jitter under two pixels ignored.
//   - Interceptors run in registration order. An [InteractionHandler] may
//     veto an event; a [TransformStartedHandler] may rewrite the state the
//     event derived with [FromEvent].
//   - The queue starts the next transformation only when the current one
//     completed or was cancelled, so committed states never interleave.
//   - A transformation completes exactly once: when its animation ends, when
//     the target reports the end of its transition, when a fallback timer
//     fires, or when it is cancelled.
//
// Programmatic moves ([Map.TranslateBy], [Map.ZoomBy], [Map.TransformTo]) go
// through the same pipeline as simulated events.
//
// [Ebitengine]: https://ebitengine.org
package awesomemap
