package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/taskcal/internal/model"
	"github.com/sandeepkv93/taskcal/internal/storage"
)

type memKV struct {
	data   map[string][]byte
	putErr error
	getErr error
	puts   int
}

func newMemKV() *memKV { return &memKV{data: make(map[string][]byte)} }

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return v, nil
}

func (m *memKV) Put(_ context.Context, key string, value []byte) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.puts++
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	if _, ok := m.data[key]; !ok {
		return storage.ErrNotFound
	}
	delete(m.data, key)
	return nil
}

func (m *memKV) Close() error { return nil }

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func TestAddThenListIncludesExactlyOneTask(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	s := Open(ctx, kv, WithClock(fixedClock(time.UnixMilli(1760000000000))))

	existing, err := s.Add(ctx, NewTask{Title: "早餐", Date: "2026-10-18"})
	require.NoError(t, err)

	added, err := s.Add(ctx, NewTask{Title: "开会", Date: "2026-10-19", Time: "15:00", HasAlarm: true})
	require.NoError(t, err)
	assert.NotEqual(t, existing.ID, added.ID, "ids must be unique even within one millisecond")
	assert.False(t, added.Completed)

	matches := 0
	for _, task := range s.List() {
		if task.ID == added.ID {
			matches++
			assert.Equal(t, "开会", task.Title)
			assert.Equal(t, "2026-10-19", task.Date)
			assert.Equal(t, "15:00", task.Time)
			assert.True(t, task.HasAlarm)
		}
	}
	assert.Equal(t, 1, matches)
	assert.Equal(t, added, s.List()[len(s.List())-1], "new tasks append at the end")
	assert.Equal(t, 2, kv.puts, "every mutation writes through")
}

func TestRemoveLeavesOthersUnchanged(t *testing.T) {
	ctx := context.Background()
	clock := time.UnixMilli(1760000000000)
	s := Open(ctx, newMemKV(), WithClock(func() time.Time {
		clock = clock.Add(time.Millisecond)
		return clock
	}))

	a, _ := s.Add(ctx, NewTask{Title: "a", Date: "2026-10-18"})
	b, _ := s.Add(ctx, NewTask{Title: "b", Date: "2026-10-18"})
	c, _ := s.Add(ctx, NewTask{Title: "c", Date: "2026-10-19"})

	removed, err := s.Remove(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, []model.Task{a, c}, s.List())

	removed, err = s.Remove(ctx, "does-not-exist")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, []model.Task{a, c}, s.List())
}

func TestToggleFlipsCompleted(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	s := Open(ctx, kv)
	task, _ := s.Add(ctx, NewTask{Title: "x", Date: "2026-10-18"})

	got, found, err := s.Toggle(ctx, task.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, got.Completed)

	reloaded := Open(ctx, kv)
	stored, ok := reloaded.Get(task.ID)
	require.True(t, ok)
	assert.True(t, stored.Completed)

	_, found, err = s.Toggle(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestOnDateUsesCalendarDayEquality(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, newMemKV(), WithClock(fixedClock(time.UnixMilli(1))))
	_, _ = s.Add(ctx, NewTask{Title: "late", Date: "2026-10-18", Time: "23:59"})
	_, _ = s.Add(ctx, NewTask{Title: "other", Date: "2026-10-19"})
	_, _ = s.Add(ctx, NewTask{Title: "early", Date: "2026-10-18"})

	got := s.OnDate(time.Date(2026, 10, 18, 8, 0, 0, 0, time.Local))
	require.Len(t, got, 2)
	assert.Equal(t, "late", got[0].Title)
	assert.Equal(t, "early", got[1].Title)
}

func TestRoundTripThroughStorage(t *testing.T) {
	for _, n := range []int{0, 1, 10, 100} {
		t.Run(fmt.Sprintf("%d tasks", n), func(t *testing.T) {
			ctx := context.Background()
			kv := newMemKV()
			clock := time.UnixMilli(1760000000000)
			s := Open(ctx, kv, WithClock(func() time.Time { return clock }))
			for i := 0; i < n; i++ {
				in := NewTask{Title: fmt.Sprintf("task %d", i), Date: "2026-10-18"}
				if i%2 == 0 {
					in.Time = fmt.Sprintf("%02d:%02d", i%24, i%60)
					in.HasAlarm = i%4 == 0
				}
				if i%3 == 0 {
					in.Color = "teal"
				}
				task, err := s.Add(ctx, in)
				require.NoError(t, err)
				if i%5 == 0 {
					_, _, err = s.Toggle(ctx, task.ID)
					require.NoError(t, err)
				}
			}
			if n == 0 {
				require.NoError(t, s.Clear(ctx))
			}

			reloaded := Open(ctx, kv)
			assert.Equal(t, s.List(), reloaded.List())
			assert.Equal(t, n, reloaded.Len())
		})
	}
}

func TestMalformedStorageYieldsEmptyList(t *testing.T) {
	for _, raw := range []string{"{not json", `{"id":"1"}`, `"tasks"`, `[{"id":1}]`} {
		kv := newMemKV()
		kv.data[Key] = []byte(raw)
		s := Open(context.Background(), kv)
		assert.Empty(t, s.List(), "payload %q", raw)
		assert.NotNil(t, s.List())
	}
}

func TestStorageReadErrorYieldsEmptyList(t *testing.T) {
	kv := newMemKV()
	kv.getErr = errors.New("disk on fire")
	s := Open(context.Background(), kv)
	assert.Empty(t, s.List())
}

func TestAddKeepsTaskWhenPersistFails(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	kv.putErr = errors.New("read-only filesystem")
	s := Open(ctx, kv)

	task, err := s.Add(ctx, NewTask{Title: "x", Date: "2026-10-18"})
	require.Error(t, err)
	assert.ErrorIs(t, err, kv.putErr)
	got, ok := s.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, "x", got.Title)
}

func TestClearWritesEmptyList(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	s := Open(ctx, kv)
	_, _ = s.Add(ctx, NewTask{Title: "x", Date: "2026-10-18"})
	require.NoError(t, s.Clear(ctx))
	assert.Equal(t, "[]", string(kv.data[Key]))
	assert.Zero(t, Open(ctx, kv).Len())
}

func TestReloadPicksUpExternalWrites(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	watcher := Open(ctx, kv)
	editor := Open(ctx, kv)
	_, _ = editor.Add(ctx, NewTask{Title: "from tui", Date: "2026-10-18"})

	assert.Zero(t, watcher.Len())
	watcher.Reload(ctx)
	assert.Equal(t, 1, watcher.Len())
}

func TestEncodeUsesCamelCaseFieldNames(t *testing.T) {
	raw, err := Encode([]model.Task{{ID: "1", Title: "t", Date: "2026-10-18", HasAlarm: true}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1","title":"t","date":"2026-10-18","completed":false,"hasAlarm":true}]`, string(raw))

	raw, err = Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}
