package docstore

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(sqlx.NewDb(db, "sqlmock"), nil), mock
}

func docColumns() []string {
	return []string{"collection_path", "collection_id", "doc_id", "fields", "created_at", "updated_at"}
}

func TestStoreCreate(t *testing.T) {
	store, mock := newMockStore(t)
	col := Root("salons").Doc("s1").Collection("products")

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO documents")).
		WithArgs("salons/s1/products", "products", sqlmock.AnyArg(), []byte(`{"name":"Serum"}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := store.Create(context.Background(), col, map[string]interface{}{"name": "Serum"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreGetMissingReturnsNilNil(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT collection_path, collection_id, doc_id, fields, created_at, updated_at")).
		WithArgs("salons", "nope").
		WillReturnRows(sqlmock.NewRows(docColumns()))

	doc, err := store.Get(context.Background(), Root("salons"), "nope")
	assert.NoError(t, err)
	assert.Nil(t, doc)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreQueryBuildsPredicatesAndSort(t *testing.T) {
	store, mock := newMockStore(t)
	col := Root("salons").Doc("s1").Collection("stylists")
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(
		"WHERE collection_path = $1 AND fields->>'status' = $2 ORDER BY fields->>'name' ASC, created_at ASC")).
		WithArgs("salons/s1/stylists", "Active").
		WillReturnRows(sqlmock.NewRows(docColumns()).
			AddRow("salons/s1/stylists", "stylists", "a", []byte(`{"name":"Maya","status":"Active"}`), now, now))

	docs, err := store.Query(context.Background(), col,
		[]Filter{Eq("status", "Active")}, &Sort{Field: "name"})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, "Maya", docs[0].Fields["name"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreQueryGroupScansByLeaf(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE collection_id = $1 ORDER BY created_at ASC")).
		WithArgs("sales").
		WillReturnRows(sqlmock.NewRows(docColumns()).
			AddRow("salons/a/sales", "sales", "s1", []byte(`{}`), now, now).
			AddRow("salons/b/sales", "sales", "s2", []byte(`{}`), now, now))

	docs, err := store.QueryGroup(context.Background(), Group("sales"), nil, nil)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreUpdateMergesViaUpsert(t *testing.T) {
	store, mock := newMockStore(t)
	col := Root("salons")

	mock.ExpectExec(regexp.QuoteMeta("fields = documents.fields || EXCLUDED.fields")).
		WithArgs("salons", "salons", "s1", []byte(`{"name":"Renamed"}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Update(context.Background(), col, "s1", map[string]interface{}{"name": "Renamed"})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreDeleteGroupBatches(t *testing.T) {
	store, mock := newMockStore(t)

	// Two full batches then a short one ends the loop.
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM documents WHERE ctid IN")).
		WithArgs("sales", 2).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM documents WHERE ctid IN")).
		WithArgs("sales", 2).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM documents WHERE ctid IN")).
		WithArgs("sales", 2).WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := store.DeleteGroup(context.Background(), Group("sales"), 2)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreListCollections(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT collection_path FROM documents ORDER BY collection_path")).
		WillReturnRows(sqlmock.NewRows([]string{"collection_path"}).
			AddRow("salons").
			AddRow("salons/a/products"))

	paths, err := store.ListCollections(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"salons", "salons/a/products"}, paths)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreRejectsInvalidSortField(t *testing.T) {
	store, _ := newMockStore(t)

	_, err := store.Query(context.Background(), Root("salons"), nil, &Sort{Field: "name'; DROP TABLE documents; --"})
	assert.Error(t, err)
}
