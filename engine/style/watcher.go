package style

import (
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
	logxi "github.com/mgutz/logxi/v1"

	"github.com/Carmen-Shannon/lumo-go/engine/context"
)

var logger = logxi.New("lumo.style")

// Watcher reloads style sheets when their files change on disk. Every
// successful reload bumps the render context's live definition generation so
// animators rebuild their definitions on the next Init.
type Watcher interface {
	// Close stops watching and releases the underlying notifier.
	Close() error
}

type watcher struct {
	fsw  *fsnotify.Watcher
	done chan struct{}
}

var _ Watcher = &watcher{}

// Watch observes a directory of YAML style sheets. onLoad fires once per
// sheet already present when watching starts and again after every change
// that parses cleanly; sheets that fail to parse are logged and skipped,
// keeping the last good definition live.
//
// Parameters:
//   - cx: the render context whose live generation is bumped on reload
//   - dir: the directory holding *.yaml / *.yml sheets
//   - onLoad: callback receiving each loaded sheet and its path
//
// Returns:
//   - Watcher: the running watcher
//   - errors.Error: nil on success
func Watch(cx context.Context, dir string, onLoad func(path string, s Sheet)) (Watcher, errors.Error) {
	fsw, errGo := fsnotify.NewWatcher()
	if errGo != nil {
		return nil, errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}
	if errGo = fsw.Add(dir); errGo != nil {
		fsw.Close()
		return nil, errors.Wrap(errGo).With("dir", dir).With("stack", stack.Trace().TrimRuntime())
	}

	matches, errGo := filepath.Glob(filepath.Join(dir, "*.y*ml"))
	if errGo != nil {
		fsw.Close()
		return nil, errors.Wrap(errGo).With("dir", dir).With("stack", stack.Trace().TrimRuntime())
	}
	for _, path := range matches {
		if !isSheet(path) {
			continue
		}
		s, err := Load(path)
		if err != nil {
			logger.Warn("skipping style sheet", "file", path, "error", err.Error())
			continue
		}
		onLoad(path, s)
	}

	w := &watcher{
		fsw:  fsw,
		done: make(chan struct{}),
	}
	go w.run(cx, onLoad)
	return w, nil
}

func (w *watcher) run(cx context.Context, onLoad func(path string, s Sheet)) {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			if !isSheet(event.Name) {
				continue
			}
			s, err := Load(event.Name)
			if err != nil {
				logger.Warn("style sheet reload failed", "file", event.Name, "error", err.Error())
				continue
			}
			cx.BumpLiveGeneration()
			logger.Info("style sheet reloaded", "file", event.Name)
			onLoad(event.Name, s)
		case errGo, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("style watcher error", "error", errGo.Error())
		}
	}
}

func (w *watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func isSheet(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
