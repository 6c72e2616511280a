// Package store holds the ordered task list and writes it through to the
// key-value backend on every mutation.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/sandeepkv93/taskcal/internal/logging"
	"github.com/sandeepkv93/taskcal/internal/model"
	"github.com/sandeepkv93/taskcal/internal/storage"
)

// Key is the fixed storage key holding the serialized task list.
const Key = "tasks"

type NewTask struct {
	Title    string
	Date     string
	Time     string
	HasAlarm bool
	Color    string
}

type Store struct {
	mu     sync.RWMutex
	kv     storage.KV
	tasks  []model.Task
	ids    map[string]bool
	now    func() time.Time
	logger log.FieldLogger
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(l log.FieldLogger) Option {
	return func(s *Store) { s.logger = l }
}

// Open reads the task list from kv. Missing or malformed data yields an
// empty list; the failure is logged, never returned.
func Open(ctx context.Context, kv storage.KV, opts ...Option) *Store {
	s := &Store{kv: kv, ids: make(map[string]bool), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	s.tasks = s.load(ctx)
	for _, t := range s.tasks {
		s.ids[t.ID] = true
	}
	return s
}

func (s *Store) load(ctx context.Context) []model.Task {
	if s.kv == nil {
		return []model.Task{}
	}
	raw, err := s.kv.Get(ctx, Key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.WithError(err).Warn("task storage read failed, starting empty")
		}
		return []model.Task{}
	}
	tasks, err := Decode(raw)
	if err != nil {
		s.logger.WithError(err).Warn("task storage is malformed, starting empty")
		return []model.Task{}
	}
	return tasks
}

// Add appends a new incomplete task. The task is kept in memory even when the
// write-through fails; the returned error only reports persistence.
func (s *Store) Add(ctx context.Context, in NewTask) (model.Task, error) {
	s.mu.Lock()
	task := model.Task{
		ID:       s.nextID(),
		Title:    in.Title,
		Date:     in.Date,
		Time:     in.Time,
		HasAlarm: in.HasAlarm,
		Color:    in.Color,
	}
	s.tasks = append(s.tasks, task)
	s.ids[task.ID] = true
	err := s.persistLocked(ctx)
	s.mu.Unlock()
	return task, err
}

// Toggle flips the completed flag. Unknown ids are a no-op.
func (s *Store) Toggle(ctx context.Context, id string) (model.Task, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Completed = !s.tasks[i].Completed
			return s.tasks[i], true, s.persistLocked(ctx)
		}
	}
	return model.Task{}, false, nil
}

// Remove deletes the task with id. Unknown ids are a no-op.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			delete(s.ids, id)
			return true, s.persistLocked(ctx)
		}
	}
	return false, nil
}

// Clear drops every task and writes the empty list.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = []model.Task{}
	s.ids = make(map[string]bool)
	return s.persistLocked(ctx)
}

// List returns a copy of every task in insertion order.
func (s *Store) List() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// OnDate returns the tasks whose date is the calendar day of d.
func (s *Store) OnDate(d time.Time) []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Task, 0)
	for _, t := range s.tasks {
		if t.OnDate(d) {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) Get(id string) (model.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// Reload re-reads the list from storage, replacing the in-memory copy. The
// headless watcher uses it to pick up edits made by a running TUI.
func (s *Store) Reload(ctx context.Context) {
	tasks := s.load(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = tasks
	s.ids = make(map[string]bool, len(tasks))
	for _, t := range tasks {
		s.ids[t.ID] = true
	}
}

func (s *Store) persistLocked(ctx context.Context) error {
	if s.kv == nil {
		return nil
	}
	raw, err := Encode(s.tasks)
	if err != nil {
		return err
	}
	if err := s.kv.Put(ctx, Key, raw); err != nil {
		s.logger.WithError(err).Error("task storage write failed")
		return fmt.Errorf("store: persist tasks: %w", err)
	}
	return nil
}

// nextID derives the id from the creation time in unix milliseconds, moving
// forward one millisecond at a time until it is unused.
func (s *Store) nextID() string {
	ms := s.now().UnixMilli()
	for {
		id := strconv.FormatInt(ms, 10)
		if !s.ids[id] {
			return id
		}
		ms++
	}
}

func Encode(tasks []model.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	return json.Marshal(tasks)
}

func Decode(raw []byte) ([]model.Task, error) {
	if strings.TrimSpace(string(raw)) == "" {
		return []model.Task{}, nil
	}
	var tasks []model.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}
