package explorer

import (
	"fmt"
	"reflect"
	"runtime"
	"time"
)

type systemFn any

// Module installs resources and systems into an App.
type Module interface {
	Install(app *App, cmd *Commands)
}

// App is the per-scene container for resources and per-tick systems. It has no
// loop or timer of its own: the host drives it through Tick.
type App struct {
	modules   []Module
	stages    []Stage
	systems   map[string][]*boundSystem
	pending   []systemScheduleBuilder
	resources map[reflect.Type]any
	teardown  []func()
	built     bool
	closed    bool
	frame     uint64
}

type boundSystem struct {
	fn    systemFn
	value reflect.Value
	args  []reflect.Value
}

func NewApp() *App {
	app := &App{
		systems:   make(map[string][]*boundSystem),
		resources: make(map[reflect.Type]any),
	}
	for _, stage := range defaultStages {
		app.stages = append(app.stages, stage)
		app.systems[stage.Name] = make([]*boundSystem, 0)
	}
	return app
}

func (app *App) Commands() *Commands {
	return &Commands{
		app: app,
	}
}

// Tick runs every stage once with the given frame delta.
func (app *App) Tick(dt time.Duration) {
	if app.closed || !app.built {
		return
	}
	if t, ok := app.resources[reflect.TypeOf(Time{})].(*Time); ok {
		t.advance(dt)
	}
	for _, stage := range app.stages {
		for _, system := range app.systems[stage.Name] {
			system.value.Call(system.args)
		}
	}
	app.frame++
}

// Frame returns the number of completed ticks.
func (app *App) Frame() uint64 {
	return app.frame
}

// Close runs the registered teardown funcs in reverse registration order.
// Every func runs even if an earlier one panics; calling Close again is a no-op.
func (app *App) Close() {
	if app.closed {
		return
	}
	app.closed = true

	fns := app.teardown
	app.teardown = nil
	for i := len(fns) - 1; i >= 0; i-- {
		app.runTeardown(fns[i])
	}
}

func (app *App) runTeardown(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			app.Logger().Errorf("teardown panicked: %v", r)
		}
	}()
	fn()
}

func (app *App) Closed() bool {
	return app.closed
}

func (app *App) onTeardown(fn func()) {
	if app.closed {
		fn()
		return
	}
	app.teardown = append(app.teardown, fn)
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if resourceType.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("%s is not a pointer resource", resourceType))
		}
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// Resource returns the resource of type T, if installed.
func Resource[T any](app *App) (*T, bool) {
	r, ok := app.resources[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil, false
	}
	typed, ok := r.(*T)
	return typed, ok
}

var typeOfCommands = reflect.TypeOf(Commands{})

// bind resolves the system's pointer arguments against the installed resources.
// Resolution happens once when the app is built, never per tick.
func (app *App) bind(system systemFn) (*boundSystem, error) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)
	if systemType == nil || systemType.Kind() != reflect.Func {
		return nil, fmt.Errorf("system %T is not a func", system)
	}

	args := make([]reflect.Value, systemType.NumIn())

	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		if argType.Kind() != reflect.Pointer {
			return nil, fmt.Errorf("system %s: argument %d (%s) must be a pointer",
				runtime.FuncForPC(systemValue.Pointer()).Name(), i, argType)
		}
		underlyingType := argType.Elem()

		if underlyingType == typeOfCommands {
			args[i] = reflect.ValueOf(&Commands{app: app})
		} else if resource, argIsResource := app.resources[underlyingType]; argIsResource {
			args[i] = reflect.ValueOf(resource)
		} else {
			return nil, fmt.Errorf("%w: system %s needs %s",
				ErrUnresolvedDependency,
				runtime.FuncForPC(systemValue.Pointer()).Name(),
				argType,
			)
		}
	}

	return &boundSystem{fn: system, value: systemValue, args: args}, nil
}
