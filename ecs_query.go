package helio

import (
	"reflect"
)

// Typed queries over the ECS. A query visits every entity whose archetype
// contains all requested component types and hands out pointers into the
// archetype's dense columns, so mutations land directly in storage.
type Query1[A any] struct{ ecs *Ecs }
type Query2[A, B any] struct{ ecs *Ecs }
type Query3[A, B, C any] struct{ ecs *Ecs }

func MakeQuery1[A any](cmd *Commands) Query1[A] { return Query1[A]{ecs: cmd.app.ecs} }
func MakeQuery2[A, B any](cmd *Commands) Query2[A, B] {
	return Query2[A, B]{ecs: cmd.app.ecs}
}
func MakeQuery3[A, B, C any](cmd *Commands) Query3[A, B, C] {
	return Query3[A, B, C]{ecs: cmd.app.ecs}
}

func queryColumn[T any](ecs *Ecs, arch *archetype) ([]T, bool) {
	var zero T
	compId := ecs.componentIdOf(reflect.TypeOf(zero))
	data, ok := arch.columns[compId]
	if !ok {
		return nil, false
	}
	return data.([]T), true
}

// Map calls m for each matching entity until m returns false.
func (q Query1[A]) Map(m func(EntityId, *A) bool) {
	for _, arch := range q.ecs.archetypes {
		colA, ok := queryColumn[A](q.ecs, arch)
		if !ok {
			continue
		}
		for entityId, r := range arch.entities {
			if !m(entityId, &colA[r]) {
				return
			}
		}
	}
}

func (q Query2[A, B]) Map(m func(EntityId, *A, *B) bool) {
	for _, arch := range q.ecs.archetypes {
		colA, ok := queryColumn[A](q.ecs, arch)
		if !ok {
			continue
		}
		colB, ok := queryColumn[B](q.ecs, arch)
		if !ok {
			continue
		}
		for entityId, r := range arch.entities {
			if !m(entityId, &colA[r], &colB[r]) {
				return
			}
		}
	}
}

func (q Query3[A, B, C]) Map(m func(EntityId, *A, *B, *C) bool) {
	for _, arch := range q.ecs.archetypes {
		colA, ok := queryColumn[A](q.ecs, arch)
		if !ok {
			continue
		}
		colB, ok := queryColumn[B](q.ecs, arch)
		if !ok {
			continue
		}
		colC, ok := queryColumn[C](q.ecs, arch)
		if !ok {
			continue
		}
		for entityId, r := range arch.entities {
			if !m(entityId, &colA[r], &colB[r], &colC[r]) {
				return
			}
		}
	}
}
