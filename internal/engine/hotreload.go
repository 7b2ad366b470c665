package engine

import (
	"path/filepath"
	"sync"

	"AsylumOcean/internal/logger"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ShaderWatcher watches shader source files and remembers which shaders
// need a rebuild. The watch goroutine only records names; the rebuild itself
// happens on the render thread through Pending.
type ShaderWatcher struct {
	watcher *fsnotify.Watcher
	files   map[string][]string // cleaned file path -> shader names

	mu      sync.Mutex
	pending map[string]struct{}
	done    chan struct{}
}

// NewShaderWatcher watches the files of each named shader. Directories are
// watched rather than files so editors that save by rename are seen.
func NewShaderWatcher(shaders map[string][]string) (*ShaderWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	sw := &ShaderWatcher{
		watcher: fw,
		files:   make(map[string][]string),
		pending: make(map[string]struct{}),
		done:    make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for name, paths := range shaders {
		for _, path := range paths {
			abs, err := filepath.Abs(path)
			if err != nil {
				fw.Close()
				return nil, err
			}
			sw.files[abs] = append(sw.files[abs], name)
			dirs[filepath.Dir(abs)] = true
		}
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, err
		}
	}

	go sw.run()
	logger.Log.Info("Watching shaders for changes", zap.Int("files", len(sw.files)))
	return sw, nil
}

func (sw *ShaderWatcher) run() {
	defer close(sw.done)
	for {
		select {
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			names, ok := sw.files[abs]
			if !ok {
				continue
			}
			sw.mu.Lock()
			for _, name := range names {
				sw.pending[name] = struct{}{}
			}
			sw.mu.Unlock()
			logger.Log.Debug("Shader source changed", zap.String("file", abs))
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			logger.Log.Warn("Shader watcher error", zap.Error(err))
		}
	}
}

// Pending returns and clears the shaders changed since the last call. It
// never blocks.
func (sw *ShaderWatcher) Pending() []string {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if len(sw.pending) == 0 {
		return nil
	}
	names := make([]string, 0, len(sw.pending))
	for name := range sw.pending {
		names = append(names, name)
	}
	sw.pending = make(map[string]struct{})
	return names
}

func (sw *ShaderWatcher) Close() error {
	err := sw.watcher.Close()
	<-sw.done
	return err
}
