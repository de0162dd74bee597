package assets

import (
	"sync"
	"time"

	"github.com/atelier3d/atelier/engine/assets/gltf"
	"github.com/atelier3d/atelier/engine/containers"
	"github.com/atelier3d/atelier/engine/core"
	"github.com/atelier3d/atelier/engine/resources"
)

// LoadResult pairs a freshly minted handle with its decoded payload. The
// handle is never published before the payload is fully constructed.
type LoadResult struct {
	Handle resources.AssetHandle
	Asset  resources.Asset
}

// LoadRecord is a completed-load entry kept for the editor's history panel.
type LoadRecord struct {
	Handle     resources.AssetHandle
	Name       string
	Path       string
	FinishedAt time.Time
}

// LoaderConfig sizes the loader's queues.
type LoaderConfig struct {
	RequestQueueSize int
	ResultQueueSize  int
	HistorySize      int
}

func DefaultLoaderConfig() LoaderConfig {
	return LoaderConfig{
		RequestQueueSize: 64,
		ResultQueueSize:  64,
		HistorySize:      32,
	}
}

// AssetLoader decodes assets off the main goroutine. Requests go in through a
// buffered channel, one worker goroutine decodes them strictly one at a time,
// and completed (handle, asset) pairs come back through a result channel the
// main goroutine drains once per frame with PollLoaded. No method blocks the
// caller. Decode failures are logged and dropped; the caller is never
// notified synchronously and no handle is consumed for a failed load.
type AssetLoader struct {
	requests chan resources.LoadRequest
	results  chan LoadResult

	// Results pulled out of the channel by Close while it waits for the
	// worker. PollLoaded returns these ahead of anything still buffered.
	pending      []LoadResult
	pendingMutex sync.Mutex

	registry *resources.HandleRegistry

	history      *containers.RingQueue
	historyMutex sync.Mutex

	wg        sync.WaitGroup
	closeOnce sync.Once
	closeMu   sync.RWMutex
	isClosed  bool
}

// NewAssetLoader starts the worker goroutine. The registry is shared: other
// issuers may mint handles from it concurrently.
func NewAssetLoader(registry *resources.HandleRegistry, config LoaderConfig) *AssetLoader {
	l := &AssetLoader{
		requests: make(chan resources.LoadRequest, config.RequestQueueSize),
		results:  make(chan LoadResult, config.ResultQueueSize),
		registry: registry,
		history:  containers.NewRingQueue(config.HistorySize),
	}

	l.wg.Add(1)
	go l.worker()

	return l
}

// RequestTexture enqueues an image decode. Non-blocking: if the loader is
// closed or the queue is full the request is logged, dropped and false is
// returned so the caller can retry on a later frame.
func (l *AssetLoader) RequestTexture(path, name string) bool {
	return l.submit(resources.LoadRequest{Kind: resources.AssetKindTexture, Path: path, Name: name})
}

// RequestMesh enqueues a model decode. Same non-blocking semantics as
// RequestTexture.
func (l *AssetLoader) RequestMesh(path, name string) bool {
	return l.submit(resources.LoadRequest{Kind: resources.AssetKindMesh, Path: path, Name: name})
}

func (l *AssetLoader) submit(req resources.LoadRequest) bool {
	l.closeMu.RLock()
	defer l.closeMu.RUnlock()
	if l.isClosed {
		core.LogError("asset loader: dropping %s request for %s, loader is closed", req.Kind, req.Path)
		return false
	}
	select {
	case l.requests <- req:
		return true
	default:
		core.LogError("asset loader: dropping %s request for %s, request queue full", req.Kind, req.Path)
		return false
	}
}

// PollLoaded drains every currently available completed result without
// blocking. Safe to call every frame; returns nil when nothing is ready.
// Results appear in the order the worker finished them.
func (l *AssetLoader) PollLoaded() []LoadResult {
	l.pendingMutex.Lock()
	loaded := l.pending
	l.pending = nil
	l.pendingMutex.Unlock()
	for {
		select {
		case result := <-l.results:
			loaded = append(loaded, result)
		default:
			return loaded
		}
	}
}

// History returns the most recent completed loads, oldest first.
func (l *AssetLoader) History() []LoadRecord {
	l.historyMutex.Lock()
	defer l.historyMutex.Unlock()

	items := l.history.Items()
	records := make([]LoadRecord, 0, len(items))
	for _, item := range items {
		records = append(records, item.(LoadRecord))
	}
	return records
}

// Close stops accepting requests, waits for the worker to finish whatever is
// queued and returns once it has exited. Results already published remain
// drainable afterwards.
func (l *AssetLoader) Close() {
	l.closeOnce.Do(func() {
		l.closeMu.Lock()
		l.isClosed = true
		l.closeMu.Unlock()

		close(l.requests)

		// The worker may be blocked publishing into a full result buffer,
		// in which case it would never observe the request channel closing.
		// Drain completed results into the pending list until it exits.
		workerDone := make(chan struct{})
		go func() {
			l.wg.Wait()
			close(workerDone)
		}()
		for {
			select {
			case result := <-l.results:
				l.pendingMutex.Lock()
				l.pending = append(l.pending, result)
				l.pendingMutex.Unlock()
			case <-workerDone:
				return
			}
		}
	})
}

// worker processes requests strictly one at a time for the loader's lifetime
// and exits when the request channel is closed.
func (l *AssetLoader) worker() {
	defer l.wg.Done()

	for request := range l.requests {
		switch request.Kind {
		case resources.AssetKindTexture:
			l.loadTexture(request)
		case resources.AssetKindMesh:
			l.loadMesh(request)
		default:
			core.LogError("asset loader: unknown request kind %d for %s", request.Kind, request.Path)
		}
	}
}

func (l *AssetLoader) loadTexture(request resources.LoadRequest) {
	core.LogDebug("asset loader: loading texture %s", request.Path)

	texture, err := DecodeTexture(request.Path, request.Name)
	if err != nil {
		core.LogError("asset loader: failed to load texture %s: %s", request.Path, err.Error())
		return
	}

	handle := l.registry.Next(resources.AssetKindTexture)
	l.publish(request, LoadResult{
		Handle: handle,
		Asset:  resources.NewTextureAsset(texture),
	})
}

func (l *AssetLoader) loadMesh(request resources.LoadRequest) {
	core.LogDebug("asset loader: loading mesh %s", request.Path)

	mesh, err := gltf.DecodeMesh(request.Path)
	if err != nil {
		core.LogError("asset loader: failed to load mesh %s: %s", request.Path, err.Error())
		return
	}
	mesh.Name = request.Name

	handle := l.registry.Next(resources.AssetKindMesh)
	l.publish(request, LoadResult{
		Handle: handle,
		Asset:  resources.NewMeshAsset(mesh),
	})
}

func (l *AssetLoader) publish(request resources.LoadRequest, result LoadResult) {
	l.results <- result

	l.historyMutex.Lock()
	l.history.EnqueueEvict(LoadRecord{
		Handle:     result.Handle,
		Name:       request.Name,
		Path:       request.Path,
		FinishedAt: time.Now(),
	})
	l.historyMutex.Unlock()
}
