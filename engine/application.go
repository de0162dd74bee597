package engine

import (
	"fmt"

	"github.com/atelier3d/atelier/engine/assets"
	"github.com/atelier3d/atelier/engine/config"
	"github.com/atelier3d/atelier/engine/core"
	"github.com/atelier3d/atelier/engine/platform"
	"github.com/atelier3d/atelier/engine/renderer"
	"github.com/atelier3d/atelier/engine/resources"
	"github.com/atelier3d/atelier/engine/scene"
)

type Stage uint8

const (
	// Application is in an uninitialized state
	StageUninitialized Stage = iota
	// Application is currently initializing
	StageInitializing
	// Application initialization is complete
	StageInitialized
	// Application is currently running
	StageRunning
	// Application is in the process of shutting down
	StageShuttingDown
)

// Viewport is the drawable region of the window, in pixels.
type Viewport struct {
	X      uint32
	Y      uint32
	Width  uint32
	Height uint32
}

// Application ties the subsystems together: the window, the asset catalog
// and loader, the resource tables and the scene graph. One instance per
// process.
type Application struct {
	currentStage Stage
	isRunning    bool
	isSuspended  bool

	cfg      *config.ApplicationConfig
	platform *platform.Platform
	backend  renderer.Backend

	catalog  *assets.Catalog
	registry *resources.HandleRegistry
	loader   *assets.AssetLoader
	tables   *resources.Tables

	Scenes *scene.SceneGraph

	viewport Viewport
	clock    *core.Clock
	lastTime float64
}

// New wires up an application from its config. The backend decides where
// draws go; pass a NullBackend for headless runs.
func New(cfg *config.ApplicationConfig, backend renderer.Backend) (*Application, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if backend == nil {
		backend = renderer.NewNullBackend()
	}

	p, err := platform.New()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	catalog, err := assets.NewCatalog()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	registry := resources.NewHandleRegistry()
	loader := assets.NewAssetLoader(registry, assets.LoaderConfig{
		RequestQueueSize: cfg.Assets.RequestQueueSize,
		ResultQueueSize:  cfg.Assets.ResultQueueSize,
		HistorySize:      cfg.Assets.HistorySize,
	})

	return &Application{
		currentStage: StageUninitialized,
		cfg:          cfg,
		platform:     p,
		backend:      backend,
		catalog:      catalog,
		registry:     registry,
		loader:       loader,
		tables:       resources.NewTables(),
		Scenes:       scene.NewSceneGraph(),
		clock:        core.NewClock(),
		viewport:     Viewport{Width: cfg.StartWidth, Height: cfg.StartHeight},
		isRunning:    true,
	}, nil
}

func (a *Application) Initialize() error {
	a.currentStage = StageInitializing

	core.LogSetLevel(a.cfg.LogLevel)

	if !core.EventInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}

	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, a, a.onQuit)
	core.EventRegister(core.EVENT_CODE_RESIZED, a, a.onResized)
	core.EventRegister(core.EVENT_CODE_ASSET_LOADED, a, a.onAssetLoaded)

	if err := a.platform.Startup(a.cfg.Name,
		a.cfg.StartPosX,
		a.cfg.StartPosY,
		a.cfg.StartWidth,
		a.cfg.StartHeight); err != nil {
		return err
	}

	if err := core.MetricsInitialize(); err != nil {
		return err
	}

	if err := a.catalog.Initialize(a.cfg.Assets.RootDir); err != nil {
		return err
	}

	a.currentStage = StageInitialized
	return nil
}

// Loader exposes the asset pipeline so editor code can request loads.
func (a *Application) Loader() *assets.AssetLoader {
	return a.loader
}

func (a *Application) Catalog() *assets.Catalog {
	return a.catalog
}

func (a *Application) Tables() *resources.Tables {
	return a.tables
}

func (a *Application) Registry() *resources.HandleRegistry {
	return a.registry
}

func (a *Application) Backend() renderer.Backend {
	return a.backend
}

func (a *Application) Viewport() Viewport {
	return a.viewport
}

func (a *Application) Run() error {
	a.currentStage = StageRunning

	a.clock.Start()
	a.clock.Update()
	a.lastTime = a.clock.Elapsed()

	for a.isRunning {
		if !a.platform.PumpMessages() {
			a.isRunning = false
		}

		if a.isSuspended {
			continue
		}

		a.clock.Update()
		currentTime := a.clock.Elapsed()
		delta := currentTime - a.lastTime

		a.integrateLoaded()

		if err := a.backend.BeginFrame(); err != nil {
			core.LogError("begin frame failed: %s", err)
			a.isRunning = false
			break
		}

		a.Scenes.Render(a.backend)

		if err := a.backend.EndFrame(); err != nil {
			core.LogError("end frame failed: %s", err)
			a.isRunning = false
			break
		}

		core.MetricsUpdate(delta)
		a.lastTime = currentTime
	}

	return a.Shutdown()
}

// integrateLoaded drains finished loads into the resource tables and
// announces each one.
func (a *Application) integrateLoaded() {
	for _, result := range a.loader.PollLoaded() {
		a.tables.Integrate(result.Handle, result.Asset)

		var data core.EventContext
		data.Data.U64[0] = result.Handle.ID
		data.Data.U32[0] = uint32(result.Handle.Kind)
		data.Data.C[0] = result.Asset.Name()
		core.EventFire(core.EVENT_CODE_ASSET_LOADED, a, data)

		core.LogInfo("asset ready: %s %q (handle %d)",
			result.Handle.Kind, result.Asset.Name(), result.Handle.ID)
	}
}

func (a *Application) Shutdown() error {
	if a.currentStage == StageShuttingDown {
		return nil
	}
	a.currentStage = StageShuttingDown
	a.isRunning = false

	a.loader.Close()
	// Drain anything the worker finished before the queue closed.
	a.integrateLoaded()

	a.Scenes.Destroy(a.backend)
	a.backend.Shutdown()
	a.catalog.Close()

	if err := core.EventShutdown(); err != nil {
		return err
	}
	return a.platform.Shutdown()
}

func (a *Application) onQuit(code core.SystemEventCode, sender interface{}, listenerInst interface{}, data core.EventContext) bool {
	core.LogInfo("quit requested")
	a.isRunning = false
	return true
}

func (a *Application) onResized(code core.SystemEventCode, sender interface{}, listenerInst interface{}, data core.EventContext) bool {
	width := data.Data.U32[0]
	height := data.Data.U32[1]
	a.viewport.Width = width
	a.viewport.Height = height

	// Window minimized; stop rendering until it comes back.
	a.isSuspended = width == 0 || height == 0

	if s := a.Scenes.CurrentScene(); s != nil && height > 0 {
		if cam := s.Camera(); cam != nil {
			cam.SetAspect(float32(width) / float32(height))
		}
	}

	a.backend.Resized(width, height)
	return false
}

func (a *Application) onAssetLoaded(code core.SystemEventCode, sender interface{}, listenerInst interface{}, data core.EventContext) bool {
	return false
}
