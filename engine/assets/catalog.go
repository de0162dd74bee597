package assets

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/atelier3d/atelier/engine/core"
	"github.com/atelier3d/atelier/engine/resources"
)

// CatalogEntry is one loadable file known to the catalog.
type CatalogEntry struct {
	Path     string
	Kind     resources.AssetKind
	LastSeen time.Time
}

// Catalog is an index of loadable asset files under a watched root directory.
// The editor lists entries from it to offer textures and meshes for loading;
// fsnotify keeps the index current while the editor runs.
type Catalog struct {
	entries map[string]CatalogEntry

	mutex sync.RWMutex

	done     chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
}

func NewCatalog() (*Catalog, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Catalog{
		entries:  make(map[string]CatalogEntry),
		fsnotify: fsWatch,
		done:     make(chan struct{}),
	}, nil
}

// Initialize indexes the asset root and starts watching it for changes.
func (c *Catalog) Initialize(rootDir string) error {
	go c.start()

	return c.addRecursive(rootDir)
}

// addRecursive starts watching the named directory and all sub-directories.
func (c *Catalog) addRecursive(name string) error {
	if c.isClosed {
		return errors.New("catalog already closed")
	}
	return c.watchRecursive(name, false)
}

func (c *Catalog) start() {
	for {
		select {
		case e, ok := <-c.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					c.watchRecursive(e.Name, false)
				}
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				c.handleFileEvent(e.Name)
			}
			// A deleted directory can't be stat'ed; remove unconditionally.
			if e.Op&fsnotify.Remove != 0 {
				c.removeEntry(e.Name)
				c.fsnotify.Remove(e.Name)
			}

		case e, ok := <-c.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("catalog watcher: %s", e.Error())

		case <-c.done:
			c.fsnotify.Close()
			return
		}
	}
}

// watchRecursive adds all directories under the given one to the watch list
// and indexes the files it passes.
func (c *Catalog) watchRecursive(path string, unWatch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if unWatch {
				return c.fsnotify.Remove(walkPath)
			}
			return c.fsnotify.Add(walkPath)
		}
		c.handleFileEvent(walkPath)
		return nil
	})
}

// handleFileEvent indexes a created or modified file.
func (c *Catalog) handleFileEvent(path string) {
	kind, known := determineAssetKind(path)
	if !known {
		return
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.entries[path] = CatalogEntry{
		Path:     path,
		Kind:     kind,
		LastSeen: time.Now(),
	}
}

func (c *Catalog) removeEntry(path string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.entries, path)
}

// Paths returns the sorted paths of every known file of the given kind.
func (c *Catalog) Paths(kind resources.AssetKind) []string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	var paths []string
	for _, entry := range c.entries {
		if entry.Kind == kind {
			paths = append(paths, entry.Path)
		}
	}
	sort.Strings(paths)
	return paths
}

// KindOf reports the asset kind the catalog indexed for a path.
func (c *Catalog) KindOf(path string) (resources.AssetKind, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	entry, ok := c.entries[path]
	return entry.Kind, ok
}

// Close stops the watcher. Safe to call once.
func (c *Catalog) Close() {
	if c.isClosed {
		return
	}
	c.isClosed = true
	close(c.done)
}

func determineAssetKind(path string) (resources.AssetKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".bmp", ".tga", ".tiff", ".webp", ".gif":
		return resources.AssetKindTexture, true
	case ".gltf", ".glb":
		return resources.AssetKindMesh, true
	default:
		return 0, false
	}
}
