package helio

import "reflect"

// Commands is the handle systems use to mutate the app: structural entity
// changes are buffered until the next FlushCommands, resource additions are
// immediate.
type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

func (cmd *Commands) AddEntity(components ...any) EntityId {
	eid := cmd.app.ecs.reserveEntityId()
	cmd.app.pendingAdditions = append(cmd.app.pendingAdditions, pendingAdd{
		eid:        eid,
		components: components,
	})
	return eid
}

func (cmd *Commands) AddComponents(entityId EntityId, components ...any) {
	cmd.app.pendingCompAdds = append(cmd.app.pendingCompAdds, pendingCompAdd{
		eid:        entityId,
		components: components,
	})
}

func (cmd *Commands) RemoveEntity(entityId EntityId) {
	cmd.app.pendingRemovals = append(cmd.app.pendingRemovals, entityId)
}

// Quit stops the app's Run loop after the current tick.
func (cmd *Commands) Quit() {
	cmd.app.Stop()
}

// GetAllComponents returns a snapshot of every component value on an entity.
func (cmd *Commands) GetAllComponents(entityId EntityId) []any {
	ecs := cmd.app.ecs
	arch := ecs.archetypes[ecs.entityIndex[entityId]]
	r := arch.entities[entityId]

	var res []any
	for _, compId := range arch.key {
		val := reflect.ValueOf(arch.columns[compId]).Index(int(r))
		res = append(res, val.Interface())
	}
	return res
}
