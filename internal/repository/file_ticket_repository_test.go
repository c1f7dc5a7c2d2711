package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/ticket-core/internal/domain"
	"github.com/spec-kit/ticket-core/internal/events"
	"github.com/spec-kit/ticket-core/internal/observability"
	"github.com/spec-kit/ticket-core/internal/persistence"
	"github.com/spec-kit/ticket-core/pkg/util"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestStore(t *testing.T, deps FileRepositoryDeps) (TicketRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tickets.json")
	deps.File = persistence.NewJSONFile(path, zap.NewNop())
	return NewFileTicketRepository(deps), path
}

func readRawRecords(t *testing.T, path string) []TicketRecord {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var records []TicketRecord
	require.NoError(t, json.Unmarshal(data, &records))
	return records
}

func TestSaveAndFindByID(t *testing.T) {
	store, _ := newTestStore(t, FileRepositoryDeps{})
	ctx := context.Background()

	ticket := newTicket(t, "Persist me")
	require.NoError(t, store.Save(ctx, ticket))

	found, err := store.FindByID(ctx, ticket.ID())
	require.NoError(t, err)
	assert.Equal(t, ticket.ID(), found.ID())
	assert.Equal(t, ticket.Title(), found.Title())
	assert.True(t, ticket.UpdatedAt().Equal(found.UpdatedAt()))
}

func TestSaveIsIdempotent(t *testing.T) {
	store, path := newTestStore(t, FileRepositoryDeps{})
	ctx := context.Background()

	ticket := newTicket(t, "Once only")
	require.NoError(t, store.Save(ctx, ticket))
	require.NoError(t, store.Save(ctx, ticket))
	require.NoError(t, store.Save(ctx, ticket))

	records := readRawRecords(t, path)
	require.Len(t, records, 1)
	assert.Equal(t, ticket.ID().String(), records[0].ID)
}

func TestSaveUpsertsByID(t *testing.T) {
	store, _ := newTestStore(t, FileRepositoryDeps{})
	ctx := context.Background()

	ticket := newTicket(t, "Original")
	require.NoError(t, store.Save(ctx, ticket))
	require.NoError(t, ticket.UpdateTitle("Renamed"))
	require.NoError(t, store.Save(ctx, ticket))

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, domain.Title("Renamed"), all[0].Title())
}

func TestFindByIDNotFound(t *testing.T) {
	store, _ := newTestStore(t, FileRepositoryDeps{})

	_, err := store.FindByID(context.Background(), domain.TicketID("deadbeef"))
	require.Error(t, err)
	assert.True(t, util.IsNotFound(err))
}

func TestMissingFileIsEmptyCollection(t *testing.T) {
	store, path := newTestStore(t, FileRepositoryDeps{})
	ctx := context.Background()

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	// first-use bootstrap must not create the file on read
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestDeleteRemovesRecord(t *testing.T) {
	store, _ := newTestStore(t, FileRepositoryDeps{})
	ctx := context.Background()

	keep := newTicket(t, "Keep")
	drop := newTicket(t, "Drop")
	require.NoError(t, store.Save(ctx, keep))
	require.NoError(t, store.Save(ctx, drop))

	require.NoError(t, store.Delete(ctx, drop.ID()))

	_, err := store.FindByID(ctx, drop.ID())
	assert.True(t, util.IsNotFound(err))

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, keep.ID(), all[0].ID())
}

func TestDeleteUnknownIDLeavesFileUntouched(t *testing.T) {
	store, path := newTestStore(t, FileRepositoryDeps{})
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, newTicket(t, "Survivor")))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	err = store.Delete(ctx, domain.TicketID("deadbeef"))
	require.Error(t, err)
	assert.True(t, util.IsNotFound(err))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "file content must be byte-for-byte unchanged")
}

func TestCorruptedFileLoadsAsEmpty(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"invalid json", "{not json at all"},
		{"object instead of array", `{"id":"a1b2c3d4"}`},
		{"array of wrong shape", `[42, true]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, path := newTestStore(t, FileRepositoryDeps{})
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o644))

			all, err := store.FindAll(context.Background())
			require.NoError(t, err)
			assert.Empty(t, all)

			stats, err := store.Statistics(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 0, stats.Total)
		})
	}
}

func TestSaveResetsCorruptedFile(t *testing.T) {
	store, path := newTestStore(t, FileRepositoryDeps{})
	ctx := context.Background()
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	ticket := newTicket(t, "Fresh start")
	require.NoError(t, store.Save(ctx, ticket))

	records := readRawRecords(t, path)
	require.Len(t, records, 1)
	assert.Equal(t, ticket.ID().String(), records[0].ID)
}

func TestMalformedRecordsAreSkippedOnLoad(t *testing.T) {
	store, path := newTestStore(t, FileRepositoryDeps{})
	ctx := context.Background()

	good := ToRecord(newTicket(t, "Good"))
	bad := good
	bad.ID = "11112222"
	bad.Status = "resolved"
	data, err := json.Marshal([]TicketRecord{good, bad})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, good.ID, all[0].ID().String())
}

func TestFindByIDQuarantinedRecordReadsAsNotFound(t *testing.T) {
	store, path := newTestStore(t, FileRepositoryDeps{})
	ctx := context.Background()

	bad := ToRecord(newTicket(t, "Broken on disk"))
	bad.Status = "resolved"
	data, err := json.Marshal([]TicketRecord{bad})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err = store.FindByID(ctx, domain.TicketID(bad.ID))
	require.Error(t, err)
	assert.True(t, util.IsNotFound(err), "a quarantined record must read as not-found")
}

func TestConcurrentSavesLoseNothing(t *testing.T) {
	store, _ := newTestStore(t, FileRepositoryDeps{})
	ctx := context.Background()

	const writers = 25
	tickets := make([]*domain.Ticket, writers)
	for i := range tickets {
		tickets[i] = newTicket(t, fmt.Sprintf("Ticket %d", i))
	}

	var group errgroup.Group
	for _, ticket := range tickets {
		ticket := ticket
		group.Go(func() error {
			return store.Save(ctx, ticket)
		})
	}
	require.NoError(t, group.Wait())

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, writers, "no save may be lost or duplicated")

	seen := map[domain.TicketID]bool{}
	for _, ticket := range all {
		require.False(t, seen[ticket.ID()])
		seen[ticket.ID()] = true
	}
}

func TestStatistics(t *testing.T) {
	store, _ := newTestStore(t, FileRepositoryDeps{})
	ctx := context.Background()

	empty, err := store.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, &Statistics{}, empty, "empty store must report all-zero counts")

	pending := newTicket(t, "Pending one")

	inProgress := newTicket(t, "In progress one")
	require.NoError(t, inProgress.StartProgress())

	completed := newTicket(t, "Completed one")
	require.NoError(t, completed.StartProgress())
	require.NoError(t, completed.Complete())

	archived := newTicket(t, "Archived one")
	require.NoError(t, archived.Archive())

	for _, ticket := range []*domain.Ticket{pending, inProgress, completed, archived} {
		require.NoError(t, store.Save(ctx, ticket))
	}

	stats, err := store.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.InProgress)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 1, stats.Archived)
	assert.Equal(t, stats.Total, stats.Pending+stats.InProgress+stats.Completed+stats.Archived)

	// newTicket fixes priority=high, type=bug
	assert.Equal(t, PriorityBreakdown{High: 4}, stats.ByPriority)
	assert.Equal(t, TypeBreakdown{Bug: 4}, stats.ByType)
}

func TestStoreParentDirectoriesCreatedOnFirstWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "tickets.json")
	store := NewFileTicketRepository(FileRepositoryDeps{
		File: persistence.NewJSONFile(path, zap.NewNop()),
	})

	require.NoError(t, store.Save(context.Background(), newTicket(t, "Nested")))

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestMutationsPublishEvents(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	var saved, deleted []events.Event
	dispatcher.Subscribe(events.EventTicketSaved, func(_ context.Context, e events.Event) error {
		saved = append(saved, e)
		return nil
	})
	dispatcher.Subscribe(events.EventTicketDeleted, func(_ context.Context, e events.Event) error {
		deleted = append(deleted, e)
		return nil
	})

	store, _ := newTestStore(t, FileRepositoryDeps{Dispatcher: dispatcher})
	ctx := context.Background()

	ticket := newTicket(t, "Observed")
	require.NoError(t, store.Save(ctx, ticket))
	require.NoError(t, store.Delete(ctx, ticket.ID()))

	require.Len(t, saved, 1)
	assert.Equal(t, ticket.ID().String(), saved[0].TicketID)
	assert.NotEmpty(t, saved[0].ID)
	require.Len(t, deleted, 1)

	// failed mutations publish nothing
	require.Error(t, store.Delete(ctx, ticket.ID()))
	assert.Len(t, deleted, 1)
}

func TestStoreRecordsMetrics(t *testing.T) {
	metrics := observability.NewMetrics()
	store, _ := newTestStore(t, FileRepositoryDeps{Metrics: metrics})
	ctx := context.Background()

	ticket := newTicket(t, "Counted")
	require.NoError(t, store.Save(ctx, ticket))
	_, err := store.FindAll(ctx)
	require.NoError(t, err)
	require.Error(t, store.Delete(ctx, domain.TicketID("deadbeef")))

	assert.Equal(t, int64(1), metrics.OperationCount("save"))
	assert.Equal(t, int64(0), metrics.ErrorCount("save"))
	assert.Equal(t, int64(1), metrics.OperationCount("find_all"))
	assert.Equal(t, int64(1), metrics.OperationCount("delete"))
	assert.Equal(t, int64(1), metrics.ErrorCount("delete"))
}
