package sensor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/penwyp/go-step-monitor/internal/util"
)

// FileSource reads the step counter from a text file. Whenever the file is
// written or replaced its last non-empty line is parsed and delivered.
type FileSource struct {
	path     string
	clock    util.Clock
	watcher  *fsnotify.Watcher
	readings chan Reading
	stop     chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

// NewFileSource starts watching path. The parent directory must exist; the
// file itself may appear later. An existing file is read once immediately.
func NewFileSource(path string, clock util.Clock) (*FileSource, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve sensor path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Watch the directory so editors and atomic renames are seen
	dir := filepath.Dir(absPath)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch sensor directory %s: %w", dir, err)
	}

	fs := &FileSource{
		path:     absPath,
		clock:    clock,
		watcher:  watcher,
		readings: make(chan Reading, 16),
		stop:     make(chan struct{}),
	}

	fs.wg.Add(1)
	go fs.processEvents()

	util.LogInfo("Watching step sensor file", util.F("path", absPath))
	return fs, nil
}

func (fs *FileSource) processEvents() {
	defer fs.wg.Done()
	defer close(fs.readings)

	if _, err := os.Stat(fs.path); err == nil {
		fs.read()
	}

	for {
		select {
		case <-fs.stop:
			return

		case event, ok := <-fs.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != fs.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				fs.read()
			}

		case err, ok := <-fs.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("Sensor watcher error: " + err.Error())
		}
	}
}

func (fs *FileSource) read() {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		util.LogWarn("Failed to read sensor file", util.F("path", fs.path), util.F("error", err.Error()))
		return
	}

	value, err := ParseReading(data)
	if err != nil {
		// A writer truncates before writing; the empty state is not an error
		if !errors.Is(err, ErrNoReading) {
			util.LogWarn("Skipping sensor reading", util.F("error", err.Error()))
		}
		return
	}

	select {
	case fs.readings <- Reading{Value: value, At: fs.clock.Now()}:
	case <-fs.stop:
	}
}

// Path returns the watched file
func (fs *FileSource) Path() string {
	return fs.path
}

func (fs *FileSource) Readings() <-chan Reading {
	return fs.readings
}

// Close stops watching and closes the readings channel
func (fs *FileSource) Close() error {
	var err error
	fs.once.Do(func() {
		close(fs.stop)
		err = fs.watcher.Close()
		fs.wg.Wait()
	})
	return err
}
