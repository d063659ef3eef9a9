// Package ecs provides ECS adapters for quill's batch cache.
//
// [NewDonburiSink] bridges quill cache events (rebuilt, dirty-all,
// modifier added) into a [Donburi] world as typed events. Subscribe to
// [CacheEventType] in your ECS systems to receive them. Entities created
// with [Spawn] carry a quill object, so [DirtyAll] and [PopulateAll] can
// walk the whole world.
//
// Usage:
//
//	scene.SetEventSink(ecs.NewDonburiSink(world))
//	ecs.Spawn(world, obj)
//	ecs.DirtyAll(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
