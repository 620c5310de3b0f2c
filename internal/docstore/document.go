package docstore

import (
	"context"
	"encoding/json"
	"time"
)

// Document is one stored record: an id plus free-form fields, with write
// timestamps stamped by the store (never by the caller).
type Document struct {
	ID        string
	Path      string
	Fields    map[string]interface{}
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Snapshot merges the id, fields, and timestamps into a single flat map, the
// shape delivered to subscribers and exported by the export engine.
func (d *Document) Snapshot() map[string]interface{} {
	out := make(map[string]interface{}, len(d.Fields)+3)
	for k, v := range d.Fields {
		out[k] = v
	}
	out["id"] = d.ID
	out["createdAt"] = d.CreatedAt.UTC().Format(time.RFC3339Nano)
	out["updatedAt"] = d.UpdatedAt.UTC().Format(time.RFC3339Nano)
	return out
}

// Decode unmarshals the snapshot into a typed struct. The target's json tags
// pick up id/createdAt/updatedAt alongside the stored fields.
func (d *Document) Decode(v interface{}) error {
	raw, err := json.Marshal(d.Snapshot())
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

// FieldsOf converts a typed struct into the stored field map. The id and
// timestamp keys are stripped: ids travel in the path, timestamps belong to
// the store.
func FieldsOf(v interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	delete(fields, "id")
	delete(fields, "createdAt")
	delete(fields, "updatedAt")
	return fields, nil
}

// Backend is the store contract shared by the PostgreSQL implementation and
// the in-memory one used by tests and local development.
type Backend interface {
	// Create inserts a new document with a generated id and stamps both
	// timestamps at write time.
	Create(ctx context.Context, col CollectionRef, fields map[string]interface{}) (string, error)

	// Put writes a document under a caller-chosen id, replacing any existing
	// fields wholesale. Used by the seeder, which replays fixed fixture ids.
	Put(ctx context.Context, col CollectionRef, id string, fields map[string]interface{}) error

	// Update merges the partial fields into an existing document and advances
	// updatedAt. A missing document is created (merge-write upsert), matching
	// the store's native merge semantics.
	Update(ctx context.Context, col CollectionRef, id string, fields map[string]interface{}) error

	// Delete removes a single document unconditionally. Dependent nested
	// collections are NOT cascaded.
	Delete(ctx context.Context, col CollectionRef, id string) error

	// Get returns a document, or (nil, nil) when it does not exist.
	Get(ctx context.Context, col CollectionRef, id string) (*Document, error)

	// Query returns the documents of one collection matching every filter,
	// ordered by sort (insertion order when nil).
	Query(ctx context.Context, col CollectionRef, filters []Filter, sort *Sort) ([]Document, error)

	// QueryGroup scans every collection with the group's leaf name across all
	// tenants.
	QueryGroup(ctx context.Context, group GroupRef, filters []Filter, sort *Sort) ([]Document, error)

	// DeleteGroup removes every document in a collection group in batches of
	// batchSize, returning the number deleted. Each batch is atomic; the whole
	// group is not.
	DeleteGroup(ctx context.Context, group GroupRef, batchSize int) (int, error)

	// ListCollections returns the distinct collection paths currently holding
	// documents.
	ListCollections(ctx context.Context) ([]string, error)
}
