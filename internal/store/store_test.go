package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/bibloom-cli/internal/parser"
	"github.com/KaramelBytes/bibloom-cli/internal/store"
)

const bib = "@article{b2020,\n  year = {2020},\n  title = {Second}\n}\n" +
	"@book{a2019,\r\n  year = {2019}\r\n}\r\n"

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "bibloom.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	recs, err := parser.ParseString(bib, parser.Options{})
	require.NoError(t, err)
	require.Len(t, recs, 2)

	id, err := s.SaveSnapshot(ctx, "full", "refs.bib", recs)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := s.LoadSnapshot(ctx, id)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range recs {
		assert.Equal(t, recs[i].Raw, got[i].Raw)
		assert.Equal(t, recs[i].Key, got[i].Key)
		assert.Equal(t, recs[i].EntryType, got[i].EntryType)
		assert.Equal(t, recs[i].Fields, got[i].Fields)
	}

	snap, err := s.GetSnapshot(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "full", snap.Name)
	assert.Equal(t, "refs.bib", snap.Source)
	assert.Equal(t, 2, snap.Records)
	assert.False(t, snap.CreatedAt.IsZero())
}

func TestSnapshot_RestrictedRecordsKeepOrderValue(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	recs, err := parser.ParseString(bib, parser.Options{OrderField: "year"})
	require.NoError(t, err)

	id, err := s.SaveSnapshot(ctx, "sorted", "", recs)
	require.NoError(t, err)
	got, err := s.LoadSnapshot(ctx, id)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Nil(t, got[0].Fields)
	assert.True(t, got[0].Restricted())
	assert.Equal(t, "2020", got[0].Field("year"))
}

func TestListAndDelete(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	id1, err := s.SaveSnapshot(ctx, "one", "", nil)
	require.NoError(t, err)
	id2, err := s.SaveSnapshot(ctx, "two", "", nil)
	require.NoError(t, err)

	list, err := s.ListSnapshots(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	empty, err := s.LoadSnapshot(ctx, id1)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, s.DeleteSnapshot(ctx, id1))
	_, err = s.LoadSnapshot(ctx, id1)
	assert.ErrorIs(t, err, store.ErrSnapshotNotFound)
	assert.ErrorIs(t, s.DeleteSnapshot(ctx, id1), store.ErrSnapshotNotFound)

	list, err = s.ListSnapshots(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id2, list[0].ID)
}
