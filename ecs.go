package helio

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"reflect"
	"slices"
	"sync"
)

type EntityId uint64
type componentId uint32
type archetypeId uint64

// componentKey is the sorted, deduplicated list of component ids that
// identifies an archetype. The archetypeId is an fnv hash of the key.
type componentKey []componentId

type row int

// Ecs stores entities grouped by archetype: every entity carrying the same
// set of component types lives in the same archetype, with each component
// type held in a dense typed slice indexed by row.
type Ecs struct {
	archetypes  map[archetypeId]*archetype
	entityIndex map[EntityId]archetypeId

	mu           sync.Mutex
	nextEntity   EntityId
	nextCompId   componentId
	typeToCompId map[reflect.Type]componentId
	compIdToType map[componentId]reflect.Type
}

type archetype struct {
	id       archetypeId
	key      componentKey
	entities map[EntityId]row
	columns  map[componentId]any // typed slices, one per component type
	freeRows []row
}

func MakeEcs() Ecs {
	return Ecs{
		archetypes:   make(map[archetypeId]*archetype),
		entityIndex:  make(map[EntityId]archetypeId),
		typeToCompId: make(map[reflect.Type]componentId),
		compIdToType: make(map[componentId]reflect.Type),
	}
}

func (ecs *Ecs) addEntity(components ...any) EntityId {
	return ecs.insertEntity(ecs.reserveEntityId(), components...)
}

func (ecs *Ecs) insertEntity(entityId EntityId, components ...any) EntityId {
	arch := ecs.archetypeFor(ecs.keyOf(components...))
	r := arch.reserveRow(ecs)
	arch.entities[entityId] = r
	for _, component := range components {
		ecs.writeComponent(arch, r, component)
	}
	ecs.entityIndex[entityId] = arch.id
	return entityId
}

func (ecs *Ecs) removeEntity(entityId EntityId) {
	ecs.releaseRow(entityId)
}

func (ecs *Ecs) addComponents(entityId EntityId, components ...any) {
	srcArch := ecs.archetypes[ecs.entityIndex[entityId]]
	srcRow := srcArch.entities[entityId]

	dstKey := mergeKeys(srcArch.key, ecs.keyOf(components...))
	dstArch := ecs.archetypeFor(dstKey)
	dstRow := dstArch.reserveRow(ecs)

	copyRow(srcArch, srcRow, dstArch, dstRow)
	for _, component := range components {
		ecs.writeComponent(dstArch, dstRow, component)
	}

	ecs.releaseRow(entityId)
	dstArch.entities[entityId] = dstRow
	ecs.entityIndex[entityId] = dstArch.id
}

func (ecs *Ecs) removeComponents(entityId EntityId, components ...any) {
	srcArch := ecs.archetypes[ecs.entityIndex[entityId]]
	srcRow := srcArch.entities[entityId]

	drop := make(map[componentId]struct{})
	for _, c := range components {
		drop[ecs.componentIdOf(componentTypeOf(c))] = struct{}{}
	}

	var dstKey componentKey
	for _, compId := range srcArch.key {
		if _, dropped := drop[compId]; !dropped {
			dstKey = append(dstKey, compId)
		}
	}

	dstArch := ecs.archetypeFor(dstKey)
	dstRow := dstArch.reserveRow(ecs)

	copyRow(srcArch, srcRow, dstArch, dstRow)
	ecs.releaseRow(entityId)
	dstArch.entities[entityId] = dstRow
	ecs.entityIndex[entityId] = dstArch.id
}

// copyRow copies the components shared by both archetypes. The shorter key is
// always the subset, both on component addition and removal.
func copyRow(src *archetype, srcRow row, dst *archetype, dstRow row) {
	key := src.key
	if len(dst.key) < len(key) {
		key = dst.key
	}
	for _, compId := range key {
		val := reflect.ValueOf(src.columns[compId]).Index(int(srcRow))
		reflect.ValueOf(dst.columns[compId]).Index(int(dstRow)).Set(val)
	}
}

func (ecs *Ecs) writeComponent(arch *archetype, r row, component any) {
	val := reflect.ValueOf(component)
	if val.Kind() == reflect.Pointer {
		val = val.Elem()
	}
	compId := ecs.componentIdOf(componentTypeOf(component))
	reflect.ValueOf(arch.columns[compId]).Index(int(r)).Set(val)
}

// releaseRow detaches an entity from its archetype and marks the row
// reusable. The component data itself is left in place until overwritten.
func (ecs *Ecs) releaseRow(entityId EntityId) {
	arch := ecs.archetypes[ecs.entityIndex[entityId]]
	arch.freeRows = append(arch.freeRows, arch.entities[entityId])
	delete(arch.entities, entityId)
	delete(ecs.entityIndex, entityId)
}

func (ecs *Ecs) archetypeFor(key componentKey) *archetype {
	id := hashKey(key)
	if arch, ok := ecs.archetypes[id]; ok {
		return arch
	}

	arch := &archetype{
		id:       id,
		key:      key,
		entities: make(map[EntityId]row),
		columns:  make(map[componentId]any),
	}
	for _, compId := range key {
		elem := ecs.compIdToType[compId]
		arch.columns[compId] = reflect.MakeSlice(reflect.SliceOf(elem), 0, 1).Interface()
	}
	ecs.archetypes[id] = arch
	return arch
}

func (arch *archetype) reserveRow(ecs *Ecs) row {
	if n := len(arch.freeRows); n > 0 {
		r := arch.freeRows[n-1]
		arch.freeRows = arch.freeRows[:n-1]
		return r
	}

	r := row(len(arch.entities))
	for _, compId := range arch.key {
		zero := reflect.Zero(ecs.compIdToType[compId])
		arch.columns[compId] = reflect.Append(reflect.ValueOf(arch.columns[compId]), zero).Interface()
	}
	return r
}

func componentTypeOf(component any) reflect.Type {
	t := reflect.TypeOf(component)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("component must be a struct or pointer to struct, got %s", t.Kind()))
	}
	return t
}

func (ecs *Ecs) keyOf(components ...any) componentKey {
	var key componentKey
	for _, component := range components {
		key = append(key, ecs.componentIdOf(componentTypeOf(component)))
	}
	return normalizeKey(key)
}

func mergeKeys(a componentKey, b componentKey) componentKey {
	return normalizeKey(append(slices.Clone(a), b...))
}

func normalizeKey(key componentKey) componentKey {
	slices.Sort(key)
	return slices.Compact(key)
}

func hashKey(key componentKey) archetypeId {
	h := fnv.New64a()
	var b [8]byte
	for _, compId := range key {
		binary.LittleEndian.PutUint64(b[:], uint64(compId))
		h.Write(b[:])
	}
	return archetypeId(h.Sum64())
}

func (ecs *Ecs) reserveEntityId() EntityId {
	ecs.mu.Lock()
	defer ecs.mu.Unlock()

	id := ecs.nextEntity
	ecs.nextEntity++
	return id
}

func (ecs *Ecs) componentIdOf(componentType reflect.Type) componentId {
	ecs.mu.Lock()
	defer ecs.mu.Unlock()

	if id, ok := ecs.typeToCompId[componentType]; ok {
		return id
	}
	id := ecs.nextCompId
	ecs.nextCompId++
	ecs.typeToCompId[componentType] = id
	ecs.compIdToType[id] = componentType
	return id
}

func (ecs *Ecs) componentTypeFor(compId componentId) reflect.Type {
	ecs.mu.Lock()
	defer ecs.mu.Unlock()

	if t, ok := ecs.compIdToType[compId]; ok {
		return t
	}
	panic("component id not registered")
}
