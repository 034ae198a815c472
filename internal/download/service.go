package download

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tubefetch/tubefetch/internal/model"
	"github.com/tubefetch/tubefetch/internal/platform"
	"github.com/tubefetch/tubefetch/internal/ytdlp"
)

// updateQueueSize bounds the buffered update channel; a slow callback
// backpressures the worker instead of dropping updates
const updateQueueSize = 256

// Service handles download tasks. Only one yt-dlp subprocess runs at a time;
// further tasks wait in queue order.
type Service struct {
	mu       sync.RWMutex
	tasks    map[string]*model.DownloadTask
	order    []string
	requests map[string]Request
	cancels  map[string]context.CancelFunc
	active   bool

	invoker  Invoker
	build    OptionsBuilder
	onUpdate func(*model.DownloadTask)
	updates  chan model.DownloadTask
}

// NewService creates a download service around the given invoker
func NewService(invoker Invoker, build OptionsBuilder) *Service {
	s := &Service{
		tasks:    make(map[string]*model.DownloadTask),
		requests: make(map[string]Request),
		cancels:  make(map[string]context.CancelFunc),
		invoker:  invoker,
		build:    build,
		updates:  make(chan model.DownloadTask, updateQueueSize),
	}
	go s.dispatchUpdates()
	return s
}

// SetUpdateCallback sets the callback invoked on every task change.
// Callbacks are delivered one at a time, in publication order, from a single
// dispatch goroutine; UI front-ends must still marshal to their own thread.
func (s *Service) SetUpdateCallback(callback func(*model.DownloadTask)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUpdate = callback
}

// Enqueue adds a new download task and starts it if no other download is
// running
func (s *Service) Enqueue(req Request) (*model.DownloadTask, error) {
	if req.URL == "" {
		return nil, errors.New("url must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, task := range s.tasks {
		if task.URL == req.URL && !task.Status.IsFinished() {
			return nil, fmt.Errorf("a task for this URL is already queued: %s", req.URL)
		}
	}

	task := &model.DownloadTask{
		ID:         uuid.NewString(),
		URL:        req.URL,
		Format:     req.Format,
		OutputDir:  req.OutputDir,
		Status:     model.TaskStatusPending,
		IsPlaylist: req.Playlist,
		StartedAt:  time.Now(),
	}

	s.tasks[task.ID] = task
	s.order = append(s.order, task.ID)
	s.requests[task.ID] = req

	if !s.active {
		s.active = true
		go s.runTask(task.ID)
	}

	return task, nil
}

// Get returns a task by ID
func (s *Service) Get(id string) (*model.DownloadTask, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasks[id]
	return task, ok
}

// All returns all tasks in enqueue order
func (s *Service) All() []*model.DownloadTask {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]*model.DownloadTask, 0, len(s.order))
	for _, id := range s.order {
		tasks = append(tasks, s.tasks[id])
	}
	return tasks
}

// Stop requests termination of a task. A pending task is marked stopped
// immediately; a running one gets its process group terminated.
func (s *Service) Stop(id string) error {
	s.mu.Lock()

	task, ok := s.tasks[id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("task not found: %s", id)
	}

	switch {
	case task.Status == model.TaskStatusPending:
		task.Status = model.TaskStatusStopped
		task.FinishedAt = time.Now()
		snapshot := *task
		s.mu.Unlock()
		s.publish(snapshot)
		return nil
	case task.Status.IsActive():
		task.Status = model.TaskStatusStopping
		snapshot := *task
		cancel := s.cancels[id]
		s.mu.Unlock()
		s.publish(snapshot)
		if cancel != nil {
			cancel()
		}
		return nil
	default:
		status := task.Status
		s.mu.Unlock()
		return fmt.Errorf("task is not active: %s", status)
	}
}

// StopAll stops every unfinished task; used on application shutdown
func (s *Service) StopAll() {
	for _, task := range s.All() {
		if !task.Status.IsFinished() {
			if err := s.Stop(task.ID); err != nil {
				slog.Warn("failed to stop task on shutdown", "id", task.ID, "err", err)
			}
		}
	}
}

func (s *Service) runTask(id string) {
	s.mu.Lock()
	task, ok := s.tasks[id]
	if !ok || task.Status != model.TaskStatusPending {
		// Stopped while pending; move on
		s.mu.Unlock()
		s.finishAndStartNext()
		return
	}
	req := s.requests[id]

	ctx, cancel := context.WithCancel(context.Background())
	s.cancels[id] = cancel

	task.Status = model.TaskStatusStarting
	snapshot := *task
	s.mu.Unlock()
	s.publish(snapshot)

	defer func() {
		cancel()
		s.mu.Lock()
		delete(s.cancels, id)
		s.mu.Unlock()
		s.finishAndStartNext()
	}()

	opts := s.build(req)
	err := s.invoker.Run(ctx, opts, func(ev ytdlp.Event) {
		s.applyEvent(task, ev)
	})

	s.mu.Lock()
	task.FinishedAt = time.Now()
	stopped := ctx.Err() != nil
	switch {
	case stopped:
		task.Status = model.TaskStatusStopped
	case err != nil:
		task.Status = model.TaskStatusError
		task.LastError = ytdlp.FriendlyMessage(err.Error())
		slog.Error("download failed", "id", id, "url", task.URL, "err", err)
	default:
		task.Status = model.TaskStatusCompleted
		task.Percent = 100
		if task.OutputPath != "" {
			if info, err := os.Stat(task.OutputPath); err == nil {
				task.FileSize = info.Size()
			}
		}
	}
	snapshot = *task
	s.mu.Unlock()

	// The filesystem sweep must not run under the lock
	if stopped {
		sweepPartials(req.OutputDir)
	}
	s.publish(snapshot)
}

// applyEvent folds one parsed yt-dlp event into the task
func (s *Service) applyEvent(task *model.DownloadTask, ev ytdlp.Event) {
	s.mu.Lock()

	// A stopping task keeps its status until the process actually exits
	stopping := task.Status == model.TaskStatusStopping

	switch ev.Kind {
	case ytdlp.EventProgress:
		if !stopping {
			task.Status = model.TaskStatusDownloading
		}
		task.Percent = ev.Percent
		if ev.Speed != "" {
			task.Speed = ev.Speed
		}
		task.ETA = ev.ETA
	case ytdlp.EventDestination:
		task.OutputPath = ev.Path
		if !stopping {
			task.Status = model.TaskStatusDownloading
		}
	case ytdlp.EventProcessing:
		if !stopping {
			task.Status = model.TaskStatusProcessing
		}
		task.Speed = ""
		task.ETA = ""
	case ytdlp.EventAlreadyDownloaded:
		task.Percent = 100
	}

	snapshot := *task
	s.mu.Unlock()
	s.publish(snapshot)
}

// sweepPartials removes fresh download remnants after an aborted task
func sweepPartials(outputDir string) {
	leftovers := platform.CollectIncompleteFiles(outputDir)
	if len(leftovers) == 0 {
		return
	}
	removed := platform.RemoveFiles(leftovers)
	slog.Info("cleaned up incomplete files after stop", "dir", outputDir, "removed", removed)
}

func (s *Service) finishAndStartNext() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.order {
		task := s.tasks[id]
		if task.Status == model.TaskStatusPending {
			go s.runTask(id)
			return
		}
	}
	s.active = false
}

// publish hands one task snapshot to the dispatch goroutine. Callers must
// not hold s.mu: a full queue blocks until the callback catches up.
func (s *Service) publish(task model.DownloadTask) {
	s.updates <- task
}

// dispatchUpdates serializes callback delivery so front-end callbacks never
// run concurrently and observe updates in publication order
func (s *Service) dispatchUpdates() {
	for task := range s.updates {
		s.mu.RLock()
		callback := s.onUpdate
		s.mu.RUnlock()

		if callback != nil {
			snapshot := task
			callback(&snapshot)
		}
	}
}
