package explorer

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

type options struct {
	logger     Logger
	source     EventSource
	locker     PointerLocker
	sink       CameraSink
	onMove     func(mgl32.Vec3)
	onFootstep func(mgl32.Vec3)
	zones      *ZoneTracker
}

type Option func(*options)

func WithLogger(logger Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithEventSource subscribes the explorer to src for its lifetime. Without
// one, events go through Explorer.HandleEvent.
func WithEventSource(src EventSource) Option {
	return func(o *options) { o.source = src }
}

func WithPointerLocker(locker PointerLocker) Option {
	return func(o *options) { o.locker = locker }
}

func WithCameraSink(sink CameraSink) Option {
	return func(o *options) { o.sink = sink }
}

func WithOnMove(fn func(pos mgl32.Vec3)) Option {
	return func(o *options) { o.onMove = fn }
}

func WithOnFootstep(fn func(pos mgl32.Vec3)) Option {
	return func(o *options) { o.onFootstep = fn }
}

func WithZones(zones *ZoneTracker) Option {
	return func(o *options) { o.zones = zones }
}

// Explorer is one first-person scene. It owns its pose, input and collision
// registry; nothing is shared between instances. It is not safe for
// concurrent use: the host calls it from its frame loop.
type Explorer struct {
	app    *App
	cfg    Config
	logger Logger

	player *Player
	input  *Input
	world  *CollisionWorld
	zones  *ZoneTracker
}

func New(cfg Config, opts ...Option) (*Explorer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	zones := o.zones
	if zones == nil {
		zones = NewZoneTracker(Zone{Name: "outdoor"})
	}

	app, err := NewAppBuilder().
		UseModule(
			LoggingModule{Logger: o.logger, Prefix: cfg.Name},
			TimeModule{MaxDt: cfg.Motion.MaxDt},
			InputModule{Source: o.source, Sensitivity: cfg.Look.Sensitivity},
			BoundaryModule{Boundary: cfg.Boundary},
			CollisionModule{Config: cfg.Collision},
			MotionModule{Config: cfg},
			LookModule{Config: cfg.Look, Locker: o.locker},
			MovementEventsModule{
				OnMove:     o.onMove,
				OnFootstep: o.onFootstep,
				Interval:   cfg.FootstepInterval,
			},
			ZoneModule{Tracker: zones},
			CameraSyncModule{Sink: o.sink},
		).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build scene %q: %w", cfg.Name, err)
	}

	e := &Explorer{
		app:    app,
		cfg:    cfg,
		logger: app.Logger(),
		zones:  zones,
	}
	e.player, _ = Resource[Player](app)
	e.input, _ = Resource[Input](app)
	e.world, _ = Resource[CollisionWorld](app)

	e.logger.Infof("scene %q ready at %v (%s locomotion)", cfg.Name, e.player.Pose.Position, cfg.Motion.Locomotion)
	return e, nil
}

// NewScene builds an explorer for a monument preset and registers its props.
// The monument model itself arrives later through RegisterMesh.
func NewScene(scene Scene, opts ...Option) (*Explorer, error) {
	opts = append([]Option{WithZones(scene.Zones())}, opts...)
	e, err := New(scene.Config, opts...)
	if err != nil {
		return nil, err
	}
	for _, m := range scene.Props() {
		if _, err := e.RegisterMesh(m); err != nil {
			e.Close()
			return nil, err
		}
	}
	return e, nil
}

// Session runs fn with a fresh explorer and closes it on every exit path,
// including a panic in fn.
func Session(cfg Config, fn func(e *Explorer) error, opts ...Option) error {
	e, err := New(cfg, opts...)
	if err != nil {
		return err
	}
	defer e.Close()
	return fn(e)
}

// Tick advances the scene by one host frame.
func (e *Explorer) Tick(dt time.Duration) {
	e.app.Tick(dt)
}

// Close releases every listener. Safe to call more than once.
func (e *Explorer) Close() {
	if e.app.Closed() {
		return
	}
	e.app.Close()
	e.logger.Infof("scene %q closed after %d frames", e.cfg.Name, e.app.Frame())
}

func (e *Explorer) Closed() bool {
	return e.app.Closed()
}

// HandleEvent feeds one raw input event to the scene.
func (e *Explorer) HandleEvent(ev Event) {
	if e.app.Closed() {
		return
	}
	e.input.HandleEvent(ev)
}

// Click queues a pointer lock request for the next tick.
func (e *Explorer) Click() {
	e.HandleEvent(Event{Kind: EventClick})
}

func (e *Explorer) RegisterMesh(m Mesh) (ColliderId, error) {
	return e.world.Register(m)
}

func (e *Explorer) Pose() CameraPose {
	return e.player.Pose
}

func (e *Explorer) Velocity() mgl32.Vec3 {
	return e.player.Velocity
}

func (e *Explorer) Airborne() bool {
	return e.player.Airborne
}

func (e *Explorer) EyeHeight() float32 {
	return e.player.EyeHeight
}

func (e *Explorer) LastMove() MoveResult {
	return e.player.LastMove
}

func (e *Explorer) Input() *Input {
	return e.input
}

func (e *Explorer) World() *CollisionWorld {
	return e.world
}

func (e *Explorer) Zone() Zone {
	return e.zones.Current()
}

func (e *Explorer) Config() Config {
	return e.cfg
}

func (e *Explorer) Frame() uint64 {
	return e.app.Frame()
}
