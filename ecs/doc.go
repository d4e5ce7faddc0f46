// Package ecs bridges a map's interaction pipeline into a [Donburi] world.
//
// [EventBridge] is an interceptor that publishes every interaction that
// reaches it as an [Interaction] event and every completed transformation as
// a [TransformDone] event. It also keeps a viewport entity whose [Viewport]
// component mirrors the map's committed state, so ECS systems can read the
// camera without holding the map.
//
// Usage:
//
//	bridge := ecs.NewEventBridge(world)
//	m.AddInterceptor(bridge)
//	// in a system:
//	ecs.InteractionEventType.Subscribe(world, onInteraction)
//	events.ProcessAllEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
