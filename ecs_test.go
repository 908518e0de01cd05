package helio

import (
	"testing"
)

type posComp struct {
	x, y float32
}

type velComp struct {
	dx, dy float32
}

type tagComp struct {
	name string
}

func TestEcs_MakeEcs(t *testing.T) {
	ecs := MakeEcs()

	if len(ecs.archetypes) != 0 {
		t.Errorf("Expected archetypes to be empty, got %v", ecs.archetypes)
	}
	if len(ecs.entityIndex) != 0 {
		t.Errorf("Expected entityIndex to be empty, got %v", ecs.entityIndex)
	}
	if ecs.nextEntity != 0 {
		t.Errorf("Expected nextEntity to be 0, got %v", ecs.nextEntity)
	}
}

func TestEcs_AddEntity(t *testing.T) {
	ecs := MakeEcs()

	entityId := ecs.addEntity()
	if _, ok := ecs.entityIndex[entityId]; !ok {
		t.Errorf("Expected entityId %v to be in entityIndex", entityId)
	}

	entityId2 := ecs.addEntity(posComp{x: 1, y: 2})
	if _, ok := ecs.entityIndex[entityId2]; !ok {
		t.Errorf("Expected entityId %v to be in entityIndex", entityId2)
	}

	if ecs.entityIndex[entityId] == ecs.entityIndex[entityId2] {
		t.Errorf("Entities with different components ended up in the same archetype")
	}
}

func TestEcs_SameComponentsSameArchetype(t *testing.T) {
	ecs := MakeEcs()

	a := ecs.addEntity(posComp{}, velComp{})
	b := ecs.addEntity(velComp{}, posComp{}) // order must not matter

	if ecs.entityIndex[a] != ecs.entityIndex[b] {
		t.Errorf("Entities with the same component set ended up in different archetypes")
	}
}

func TestEcs_AddComponents(t *testing.T) {
	ecs := MakeEcs()

	eid := ecs.addEntity(posComp{x: 3, y: 4})
	before := ecs.entityIndex[eid]

	ecs.addComponents(eid, velComp{dx: 1})
	after := ecs.entityIndex[eid]
	if before == after {
		t.Errorf("Adding a component must move the entity to a new archetype")
	}

	// The original component must survive the move.
	arch := ecs.archetypes[after]
	r := arch.entities[eid]
	posId := ecs.componentIdOf(componentTypeOf(posComp{}))
	pos := arch.columns[posId].([]posComp)[r]
	if pos.x != 3 || pos.y != 4 {
		t.Errorf("Expected position (3, 4) after archetype move, got %v", pos)
	}
}

func TestEcs_RemoveComponents(t *testing.T) {
	ecs := MakeEcs()

	eid := ecs.addEntity(posComp{x: 1}, velComp{dx: 2})
	ecs.removeComponents(eid, velComp{})

	arch := ecs.archetypes[ecs.entityIndex[eid]]
	if len(arch.key) != 1 {
		t.Fatalf("Expected one remaining component, got key %v", arch.key)
	}

	posId := ecs.componentIdOf(componentTypeOf(posComp{}))
	pos := arch.columns[posId].([]posComp)[arch.entities[eid]]
	if pos.x != 1 {
		t.Errorf("Expected surviving position x=1, got %v", pos)
	}
}

func TestEcs_RemoveEntity(t *testing.T) {
	ecs := MakeEcs()

	eid := ecs.addEntity(posComp{})
	ecs.removeEntity(eid)

	if _, ok := ecs.entityIndex[eid]; ok {
		t.Errorf("Expected entity %v to be gone from entityIndex", eid)
	}
}

func TestEcs_RowRecycling(t *testing.T) {
	ecs := MakeEcs()

	a := ecs.addEntity(tagComp{name: "a"})
	arch := ecs.archetypes[ecs.entityIndex[a]]
	rowA := arch.entities[a]
	ecs.removeEntity(a)

	b := ecs.addEntity(tagComp{name: "b"})
	if arch.entities[b] != rowA {
		t.Errorf("Expected freed row %v to be reused, got %v", rowA, arch.entities[b])
	}

	tagId := ecs.componentIdOf(componentTypeOf(tagComp{}))
	got := arch.columns[tagId].([]tagComp)[arch.entities[b]]
	if got.name != "b" {
		t.Errorf("Expected recycled row to hold the new data, got %v", got)
	}
}

func TestEcs_NonStructComponentPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Expected panic for a non-struct component")
		}
	}()
	componentTypeOf(42)
}
