package ecs

import "strconv"

// Entity is a generational handle: the slot index sits in the low 32 bits
// and the slot's generation in the high 32. Destroying an entity bumps the
// generation, so stale handles held by the parallax adapter stop resolving.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID { return entityID(uint32(e)) }

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

// String prints the packed value, which is what log lines carry.
func (e Entity) String() string {
	return strconv.FormatUint(uint64(e), 10)
}
