package collect

import (
	"context"
	"errors"
	"freeroom/lib/freeroom"
	"freeroom/lib/telemetry"
	"freeroom/lib/timezone"
	"freeroom/services/dataset"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakePortal struct {
	lock     *sync.Mutex
	loggedIn bool
	password string
	failSlot freeroom.SlotId
	queries  *[]string
}

func (p *fakePortal) Login(ctx context.Context, username, password string) error {
	if password != p.password {
		return errors.New("bad password")
	}
	p.loggedIn = true
	return nil
}

func (p *fakePortal) QueryFreeRooms(ctx context.Context, date time.Time, slot freeroom.SlotId) ([]freeroom.RawRecord, error) {
	if !p.loggedIn {
		return nil, errors.New("not logged in")
	}
	p.lock.Lock()
	*p.queries = append(*p.queries, timezone.QueryDate(date)+" "+string(slot))
	p.lock.Unlock()

	switch slot {
	case p.failSlot:
		return nil, errors.New("portal timeout")
	case freeroom.Slot11_12:
		return nil, nil
	}
	return []freeroom.RawRecord{
		{Slot: slot, Fields: map[string]string{"教学楼": "工学馆", "名称": "工学馆101"}},
	}, nil
}

func TestCollect(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:services/collect")
	defer cleanup()

	dataDir := t.TempDir()
	// left over from a previous run, 11-12 is empty this time
	stale := filepath.Join(dataset.DayDir(dataDir, 0), dataset.RawFileName(freeroom.Slot11_12))
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0777))
	require.NoError(t, os.WriteFile(stale, []byte(`[{"名称": "stale"}]`), 0644))

	var lock sync.Mutex
	var queries []string
	sessions := 0
	newPortal := func(ctx context.Context) (Portal, error) {
		sessions++
		return &fakePortal{lock: &lock, password: "p", failSlot: freeroom.Slot5_6, queries: &queries}, nil
	}

	now := time.Date(2024, time.October, 8, 12, 0, 0, 0, timezone.Location)
	results, err := Collect(context.Background(), newPortal, Options{
		DataDir:  dataDir,
		Username: "u",
		Password: "p",
		Days:     2,
		Now:      now,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, 2, sessions)

	require.Len(t, queries, 14)
	require.Equal(t, "2024-10-08 1-2", queries[0])
	require.Equal(t, "2024-10-08 1-8", queries[4])
	require.Equal(t, "2024-10-09 11-12", queries[13])

	for _, slot := range results[0].Slots {
		if slot.Slot == freeroom.Slot5_6 {
			require.Error(t, slot.Error)
		}
	}

	records, err := dataset.ReadRawDay(dataset.DayDir(dataDir, 1))
	require.NoError(t, err)
	// 7 slots minus the failed one and the empty one
	require.Len(t, records, 5)

	_, err = os.Stat(stale)
	require.True(t, os.IsNotExist(err))
}

func TestCollectLoginFailure(t *testing.T) {
	var lock sync.Mutex
	var queries []string
	newPortal := func(ctx context.Context) (Portal, error) {
		return &fakePortal{lock: &lock, password: "right", queries: &queries}, nil
	}

	results, err := Collect(context.Background(), newPortal, Options{
		DataDir:  t.TempDir(),
		Password: "wrong",
	})
	require.Error(t, err)
	require.Empty(t, results)
	require.Empty(t, queries)
}

func TestCollectCancelled(t *testing.T) {
	var lock sync.Mutex
	var queries []string
	newPortal := func(ctx context.Context) (Portal, error) {
		return &fakePortal{lock: &lock, password: "p", queries: &queries}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Collect(ctx, newPortal, Options{
		DataDir:  t.TempDir(),
		Password: "p",
		Delay:    time.Hour,
	})
	require.ErrorIs(t, err, context.Canceled)
}
