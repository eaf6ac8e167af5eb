// Package watcher ingests log files dropped into an inbox directory. A file
// is processed once it has stopped changing for the settle delay, and the
// processing removes it from the inbox.
package watcher

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	logginghelper "github.com/Egor213/LogiStat/internal/controller/common/logging"
	"github.com/Egor213/LogiStat/internal/controller/validators"
	"github.com/Egor213/LogiStat/internal/domain"
	errorsUtils "github.com/Egor213/LogiStat/pkg/errors"
	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

const (
	source        = "inbox"
	defaultSettle = 2 * time.Second
)

type Processor interface {
	ProcessUpload(ctx context.Context, in domain.UploadInput) (domain.UploadResult, error)
}

type Watcher struct {
	dir       string
	settle    time.Duration
	rules     validators.UploadRules
	processor Processor

	fsw    *fsnotify.Watcher
	ready  chan string
	mu     sync.Mutex
	timers map[string]*time.Timer
}

func New(dir string, settle time.Duration, rules validators.UploadRules, p Processor) (*Watcher, error) {
	if settle <= 0 {
		settle = defaultSettle
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, errorsUtils.WrapPathErr(err)
	}

	return &Watcher{
		dir:       dir,
		settle:    settle,
		rules:     rules,
		processor: p,
		fsw:       fsw,
		ready:     make(chan string, 64),
		timers:    map[string]*time.Timer{},
	}, nil
}

// Run blocks until ctx is cancelled. Files already in the inbox are
// scheduled first.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()
	defer w.stopTimers()

	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return errorsUtils.WrapPathErr(err)
	}
	for _, e := range entries {
		if e.Type().IsRegular() {
			w.schedule(ctx, filepath.Join(w.dir, e.Name()))
		}
	}

	log.WithField("dir", w.dir).Info("Watching inbox")

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			switch {
			case ev.Op.Has(fsnotify.Create), ev.Op.Has(fsnotify.Write):
				w.schedule(ctx, ev.Name)
			case ev.Op.Has(fsnotify.Remove), ev.Op.Has(fsnotify.Rename):
				w.cancel(ev.Name)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.Warnf("Inbox watcher error: %v", err)
		case name := <-w.ready:
			w.process(ctx, name)
		}
	}
}

// schedule (re)starts the settle timer for name.
func (w *Watcher) schedule(ctx context.Context, name string) {
	if !w.rules.AllowedName(name) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[name]; ok {
		t.Reset(w.settle)
		return
	}
	w.timers[name] = time.AfterFunc(w.settle, func() {
		select {
		case w.ready <- name:
		case <-ctx.Done():
		}
	})
}

func (w *Watcher) cancel(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[name]; ok {
		t.Stop()
		delete(w.timers, name)
	}
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for name, t := range w.timers {
		t.Stop()
		delete(w.timers, name)
	}
}

func (w *Watcher) process(ctx context.Context, name string) {
	w.cancel(name)

	info, err := os.Stat(name)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.WithField("path", name).Warnf("Cannot stat inbox file: %v", err)
		}
		return
	}
	if !info.Mode().IsRegular() {
		return
	}

	filename := filepath.Base(name)
	logginghelper.LogUploadReceived(source, filename, info.Size())

	if err := w.rules.ValidateFile(filename, info.Size()); err != nil {
		logginghelper.LogUploadFailed(source, filename, err)
		return
	}

	head, err := readHead(name)
	if err != nil {
		logginghelper.LogUploadFailed(source, filename, err)
		return
	}
	if err := validators.ValidateContent(head); err != nil {
		logginghelper.LogUploadFailed(source, filename, err)
		return
	}

	res, err := w.processor.ProcessUpload(ctx, domain.UploadInput{
		Filename:    filename,
		StagingPath: name,
	})
	if err != nil {
		logginghelper.LogUploadFailed(source, filename, err)
		return
	}

	logginghelper.LogUploadProcessed(source, res)
}

// readHead returns up to validators.SniffLen leading bytes of the file.
func readHead(name string) ([]byte, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	defer f.Close()

	head := make([]byte, validators.SniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, errorsUtils.WrapPathErr(err)
	}
	return head[:n], nil
}
