package helio

import (
	"fmt"
	"reflect"
	"runtime"
)

type systemFn any

// Module wires resources and systems into an App during construction.
type Module interface {
	Install(app *App, cmd *Commands)
}

// App owns the ECS, the resource map and the per-tick stage pipeline. A tick
// runs every stage's systems in order and flushes buffered entity commands
// between stages; Run repeats ticks until Stop is called. All of it happens
// on one goroutine, so systems own the scene exclusively between ticks.
type App struct {
	modules []Module
	built   bool
	stopped bool

	stages  []Stage
	systems map[string][]systemFn

	resources map[reflect.Type]any
	ecs       *Ecs

	// Deferred structural changes, applied between stages.
	pendingAdditions []pendingAdd
	pendingRemovals  []EntityId
	pendingCompAdds  []pendingCompAdd

	shutdownHooks []func()
}

type pendingAdd struct {
	eid        EntityId
	components []any
}

type pendingCompAdd struct {
	eid        EntityId
	components []any
}

func NewApp() *App {
	ecs := MakeEcs()
	app := &App{
		stages:    defaultStages(),
		systems:   make(map[string][]systemFn),
		resources: make(map[reflect.Type]any),
		ecs:       &ecs,
	}
	for _, stage := range app.stages {
		app.systems[stage.Name] = make([]systemFn, 0)
	}
	return app
}

func (app *App) Commands() *Commands {
	return &Commands{app: app}
}

// UseModules queues modules for installation on build.
func (app *App) UseModules(modules ...Module) *App {
	app.modules = append(app.modules, modules...)
	return app
}

func (app *App) build() {
	if app.built {
		return
	}
	app.built = true

	cmd := app.Commands()
	for _, module := range app.modules {
		module.Install(app, cmd)
	}
	app.FlushCommands()
}

// Run executes ticks until Stop is called (window close, Escape, or an
// explicit Stop from a system). Shutdown hooks run after the last tick, so
// teardown never races a pending frame.
func (app *App) Run() {
	app.build()

	for !app.stopped {
		app.Tick()
	}

	for i := len(app.shutdownHooks) - 1; i >= 0; i-- {
		app.shutdownHooks[i]()
	}
}

// Tick runs one full pass over the stage pipeline.
func (app *App) Tick() {
	for _, stage := range app.stages {
		for _, system := range app.systems[stage.Name] {
			app.callSystem(system)
		}
		app.FlushCommands()
	}
}

// Stop ends the Run loop after the current tick completes.
func (app *App) Stop() {
	app.stopped = true
}

// OnShutdown registers a hook run after the last tick, in reverse
// registration order.
func (app *App) OnShutdown(hook func()) {
	app.shutdownHooks = append(app.shutdownHooks, hook)
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if resourceType.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("resource must be a pointer, got %s", resourceType))
		}
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}
		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// GetResource returns the resource of type T, or nil if none is installed.
func GetResource[T any](app *App) *T {
	var zero T
	if res, ok := app.resources[reflect.TypeOf(zero)]; ok {
		return res.(*T)
	}
	return nil
}

var typeOfCommands = reflect.TypeOf(Commands{})

// callSystem invokes a system function, resolving each pointer parameter to
// either a fresh Commands or an installed resource.
func (app *App) callSystem(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())
	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		underlyingType := argType.Elem()

		if underlyingType == typeOfCommands {
			args[i] = reflect.ValueOf(&Commands{app: app})
		} else if resource, ok := app.resources[underlyingType]; ok {
			args[i] = reflect.ValueOf(resource)
		} else {
			panic(fmt.Sprintf("unable to resolve system dependency.\nSystem: %s\nDependency: %s",
				runtime.FuncForPC(systemValue.Pointer()).Name(),
				argType,
			))
		}
	}
	systemValue.Call(args)
}

// FlushCommands applies buffered structural changes: removals first so
// additions never target dead entities.
func (app *App) FlushCommands() {
	if len(app.pendingAdditions) == 0 && len(app.pendingRemovals) == 0 && len(app.pendingCompAdds) == 0 {
		return
	}

	for _, eid := range app.pendingRemovals {
		app.ecs.removeEntity(eid)
	}
	app.pendingRemovals = app.pendingRemovals[:0]

	for _, add := range app.pendingAdditions {
		app.ecs.insertEntity(add.eid, add.components...)
	}
	app.pendingAdditions = app.pendingAdditions[:0]

	for _, add := range app.pendingCompAdds {
		app.ecs.addComponents(add.eid, add.components...)
	}
	app.pendingCompAdds = app.pendingCompAdds[:0]
}
