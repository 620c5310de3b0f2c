package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Store is the PostgreSQL Backend. Documents live in a single `documents`
// table keyed by (collection_path, doc_id); the leaf collection name is
// duplicated into collection_id for collection-group scans.
type Store struct {
	db       *sqlx.DB
	notifier Notifier
}

// NewStore creates a Store. notifier may be nil when change fanout is not
// needed (one-shot CLI use).
func NewStore(db *sqlx.DB, notifier Notifier) *Store {
	return &Store{db: db, notifier: notifier}
}

type docRow struct {
	CollectionPath string    `db:"collection_path"`
	CollectionID   string    `db:"collection_id"`
	DocID          string    `db:"doc_id"`
	Fields         []byte    `db:"fields"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (r *docRow) toDocument() (Document, error) {
	var fields map[string]interface{}
	if err := json.Unmarshal(r.Fields, &fields); err != nil {
		return Document{}, fmt.Errorf("corrupt document %s/%s: %w", r.CollectionPath, r.DocID, err)
	}
	return Document{
		ID:        r.DocID,
		Path:      r.CollectionPath,
		Fields:    fields,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

// Create inserts a new document with a generated id; both timestamps are
// stamped by the database at write time.
func (s *Store) Create(ctx context.Context, col CollectionRef, fields map[string]interface{}) (string, error) {
	id := uuid.New().String()
	raw, err := json.Marshal(fields)
	if err != nil {
		return "", err
	}

	const q = `
        INSERT INTO documents (collection_path, collection_id, doc_id, fields, created_at, updated_at)
        VALUES ($1, $2, $3, $4, now(), now())`
	if _, err := s.db.ExecContext(ctx, q, col.Path(), col.Leaf(), id, raw); err != nil {
		return "", err
	}

	s.publish(ctx, ChangeEvent{Path: col.Path(), Group: col.Leaf(), DocID: id, Kind: ChangeCreated})
	return id, nil
}

// Put writes a document under a fixed id, replacing existing fields wholesale.
func (s *Store) Put(ctx context.Context, col CollectionRef, id string, fields map[string]interface{}) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return err
	}

	const q = `
        INSERT INTO documents (collection_path, collection_id, doc_id, fields, created_at, updated_at)
        VALUES ($1, $2, $3, $4, now(), now())
        ON CONFLICT (collection_path, doc_id) DO UPDATE SET
            fields = EXCLUDED.fields,
            updated_at = now()`
	if _, err := s.db.ExecContext(ctx, q, col.Path(), col.Leaf(), id, raw); err != nil {
		return err
	}

	s.publish(ctx, ChangeEvent{Path: col.Path(), Group: col.Leaf(), DocID: id, Kind: ChangeUpdated})
	return nil
}

// Update merges partial fields into the document and advances updated_at.
// A missing document is created from the patch (merge-write upsert).
func (s *Store) Update(ctx context.Context, col CollectionRef, id string, fields map[string]interface{}) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return err
	}

	const q = `
        INSERT INTO documents (collection_path, collection_id, doc_id, fields, created_at, updated_at)
        VALUES ($1, $2, $3, $4, now(), now())
        ON CONFLICT (collection_path, doc_id) DO UPDATE SET
            fields = documents.fields || EXCLUDED.fields,
            updated_at = now()`
	if _, err := s.db.ExecContext(ctx, q, col.Path(), col.Leaf(), id, raw); err != nil {
		return err
	}

	s.publish(ctx, ChangeEvent{Path: col.Path(), Group: col.Leaf(), DocID: id, Kind: ChangeUpdated})
	return nil
}

// Delete removes a single document. Deleting a missing document is a no-op.
func (s *Store) Delete(ctx context.Context, col CollectionRef, id string) error {
	const q = `DELETE FROM documents WHERE collection_path = $1 AND doc_id = $2`
	if _, err := s.db.ExecContext(ctx, q, col.Path(), id); err != nil {
		return err
	}

	s.publish(ctx, ChangeEvent{Path: col.Path(), Group: col.Leaf(), DocID: id, Kind: ChangeDeleted})
	return nil
}

// Get returns one document, or (nil, nil) when not found.
func (s *Store) Get(ctx context.Context, col CollectionRef, id string) (*Document, error) {
	const q = `
        SELECT collection_path, collection_id, doc_id, fields, created_at, updated_at
        FROM documents WHERE collection_path = $1 AND doc_id = $2 LIMIT 1`

	var row docRow
	if err := s.db.GetContext(ctx, &row, q, col.Path(), id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	doc, err := row.toDocument()
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Query returns the documents of one collection matching every filter.
func (s *Store) Query(ctx context.Context, col CollectionRef, filters []Filter, sort *Sort) ([]Document, error) {
	where := []string{"collection_path = $1"}
	args := []interface{}{col.Path()}
	return s.query(ctx, where, args, filters, sort)
}

// QueryGroup scans every collection with the group's leaf name.
func (s *Store) QueryGroup(ctx context.Context, group GroupRef, filters []Filter, sort *Sort) ([]Document, error) {
	where := []string{"collection_id = $1"}
	args := []interface{}{group.Name()}
	return s.query(ctx, where, args, filters, sort)
}

func (s *Store) query(ctx context.Context, where []string, args []interface{}, filters []Filter, sort *Sort) ([]Document, error) {
	for _, f := range filters {
		pred, arg, err := compileFilter(f, len(args)+1)
		if err != nil {
			return nil, err
		}
		where = append(where, pred)
		if arg != nil {
			args = append(args, arg)
		}
	}

	q := `SELECT collection_path, collection_id, doc_id, fields, created_at, updated_at
        FROM documents WHERE ` + strings.Join(where, " AND ")
	if sort != nil {
		if err := validFieldName(sort.Field); err != nil {
			return nil, fmt.Errorf("invalid sort field: %w", err)
		}
		dir := "ASC"
		if sort.Desc {
			dir = "DESC"
		}
		q += fmt.Sprintf(" ORDER BY fields->>'%s' %s, created_at ASC", sort.Field, dir)
	} else {
		q += " ORDER BY created_at ASC"
	}

	var rows []docRow
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(rows))
	for i := range rows {
		doc, err := rows[i].toDocument()
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// DeleteGroup removes every document in a collection group, batchSize rows at
// a time. Each batch is atomic; a failure between batches leaves the group
// partially deleted.
func (s *Store) DeleteGroup(ctx context.Context, group GroupRef, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = 200
	}

	const q = `
        DELETE FROM documents WHERE ctid IN (
            SELECT ctid FROM documents WHERE collection_id = $1 LIMIT $2)`

	total := 0
	for {
		res, err := s.db.ExecContext(ctx, q, group.Name(), batchSize)
		if err != nil {
			return total, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return total, err
		}
		total += int(n)
		if int(n) < batchSize {
			break
		}
	}

	if total > 0 {
		s.publish(ctx, ChangeEvent{Group: group.Name(), Kind: ChangeDeleted})
	}
	return total, nil
}

// ListCollections returns the distinct collection paths currently populated.
func (s *Store) ListCollections(ctx context.Context) ([]string, error) {
	const q = `SELECT DISTINCT collection_path FROM documents ORDER BY collection_path`
	var paths []string
	if err := s.db.SelectContext(ctx, &paths, q); err != nil {
		return nil, err
	}
	return paths, nil
}

func (s *Store) publish(ctx context.Context, ev ChangeEvent) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Publish(ctx, ev); err != nil {
		log.Warn().Err(err).Str("path", ev.Path).Str("doc_id", ev.DocID).Msg("change event publish failed")
	}
}
