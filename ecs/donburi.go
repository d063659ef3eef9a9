package ecs

import (
	"github.com/phanxgames/quill"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// CacheEventType is the Donburi event type for quill cache events.
// Subscribe to this in your ECS systems to react to rebuilds and
// invalidation.
var CacheEventType = events.NewEventType[quill.CacheEvent]()

// ObjectData is the component payload linking an entity to a quill object.
type ObjectData struct {
	Object *quill.Object
}

// Object is the component type holding an entity's quill object.
var Object = donburi.NewComponentType[ObjectData]()

var objectQuery = donburi.NewQuery(filter.Contains(Object))

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Cache events are published to CacheEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) quill.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event quill.CacheEvent) {
	CacheEventType.Publish(s.world, event)
}

// Spawn creates an entity carrying o.
func Spawn(world donburi.World, o *quill.Object) donburi.Entity {
	e := world.Create(Object)
	Object.SetValue(world.Entry(e), ObjectData{Object: o})
	return e
}

// DirtyAll flags the datablock of every object in the world dirty and
// publishes one EventDirtyAll. It returns the number of datablocks marked.
func DirtyAll(world donburi.World) int {
	n := 0
	objectQuery.Each(world, func(entry *donburi.Entry) {
		if o := Object.Get(entry).Object; o != nil && o.Data != nil {
			o.Data.MarkDirty()
			n++
		}
	})
	CacheEventType.Publish(world, quill.CacheEvent{Type: quill.EventDirtyAll})
	return n
}

// PopulateAll populates every object in the world through scene and returns
// the number of caches visited.
func PopulateAll(world donburi.World, scene *quill.Scene) int {
	n := 0
	objectQuery.Each(world, func(entry *donburi.Entry) {
		if o := Object.Get(entry).Object; o != nil && scene.Populate(o) != nil {
			n++
		}
	})
	return n
}
