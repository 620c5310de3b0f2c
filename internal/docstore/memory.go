package docstore

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-memory Backend with the same contract as Store. It backs
// the test suites and local development without a database.
type Memory struct {
	mu       sync.RWMutex
	byPath   map[string]map[string]*Document
	notifier Notifier
}

// NewMemory creates an empty in-memory backend.
func NewMemory(notifier Notifier) *Memory {
	return &Memory{
		byPath:   make(map[string]map[string]*Document),
		notifier: notifier,
	}
}

func (m *Memory) Create(ctx context.Context, col CollectionRef, fields map[string]interface{}) (string, error) {
	id := uuid.New().String()
	now := time.Now()

	m.mu.Lock()
	m.putLocked(col.Path(), &Document{
		ID:        id,
		Path:      col.Path(),
		Fields:    cloneFields(fields),
		CreatedAt: now,
		UpdatedAt: now,
	})
	m.mu.Unlock()

	m.publish(ctx, ChangeEvent{Path: col.Path(), Group: col.Leaf(), DocID: id, Kind: ChangeCreated})
	return id, nil
}

func (m *Memory) Put(ctx context.Context, col CollectionRef, id string, fields map[string]interface{}) error {
	now := time.Now()

	m.mu.Lock()
	created := now
	if existing := m.getLocked(col.Path(), id); existing != nil {
		created = existing.CreatedAt
		now = advance(existing.UpdatedAt, now)
	}
	m.putLocked(col.Path(), &Document{
		ID:        id,
		Path:      col.Path(),
		Fields:    cloneFields(fields),
		CreatedAt: created,
		UpdatedAt: now,
	})
	m.mu.Unlock()

	m.publish(ctx, ChangeEvent{Path: col.Path(), Group: col.Leaf(), DocID: id, Kind: ChangeUpdated})
	return nil
}

func (m *Memory) Update(ctx context.Context, col CollectionRef, id string, fields map[string]interface{}) error {
	now := time.Now()

	m.mu.Lock()
	merged := cloneFields(fields)
	created := now
	if existing := m.getLocked(col.Path(), id); existing != nil {
		base := cloneFields(existing.Fields)
		for k, v := range merged {
			base[k] = v
		}
		merged = base
		created = existing.CreatedAt
		now = advance(existing.UpdatedAt, now)
	}
	m.putLocked(col.Path(), &Document{
		ID:        id,
		Path:      col.Path(),
		Fields:    merged,
		CreatedAt: created,
		UpdatedAt: now,
	})
	m.mu.Unlock()

	m.publish(ctx, ChangeEvent{Path: col.Path(), Group: col.Leaf(), DocID: id, Kind: ChangeUpdated})
	return nil
}

func (m *Memory) Delete(ctx context.Context, col CollectionRef, id string) error {
	m.mu.Lock()
	if docs, ok := m.byPath[col.Path()]; ok {
		delete(docs, id)
		if len(docs) == 0 {
			delete(m.byPath, col.Path())
		}
	}
	m.mu.Unlock()

	m.publish(ctx, ChangeEvent{Path: col.Path(), Group: col.Leaf(), DocID: id, Kind: ChangeDeleted})
	return nil
}

func (m *Memory) Get(_ context.Context, col CollectionRef, id string) (*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc := m.getLocked(col.Path(), id)
	if doc == nil {
		return nil, nil
	}
	clone := cloneDocument(doc)
	return &clone, nil
}

func (m *Memory) Query(_ context.Context, col CollectionRef, filters []Filter, s *Sort) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collect(func(path string) bool { return path == col.Path() }, filters, s), nil
}

func (m *Memory) QueryGroup(_ context.Context, group GroupRef, filters []Filter, s *Sort) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collect(func(path string) bool { return leafOf(path) == group.Name() }, filters, s), nil
}

func (m *Memory) DeleteGroup(ctx context.Context, group GroupRef, _ int) (int, error) {
	m.mu.Lock()
	total := 0
	for path, docs := range m.byPath {
		if leafOf(path) != group.Name() {
			continue
		}
		total += len(docs)
		delete(m.byPath, path)
	}
	m.mu.Unlock()

	if total > 0 {
		m.publish(ctx, ChangeEvent{Group: group.Name(), Kind: ChangeDeleted})
	}
	return total, nil
}

func (m *Memory) ListCollections(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	paths := make([]string, 0, len(m.byPath))
	for path := range m.byPath {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths, nil
}

func (m *Memory) collect(match func(path string) bool, filters []Filter, s *Sort) []Document {
	var out []Document
	for path, docs := range m.byPath {
		if !match(path) {
			continue
		}
	next:
		for _, doc := range docs {
			for _, f := range filters {
				if !f.matches(doc.Fields) {
					continue next
				}
			}
			out = append(out, cloneDocument(doc))
		}
	}

	if s != nil {
		field := s.Field
		desc := s.Desc
		sort.SliceStable(out, func(i, j int) bool {
			less := lessValue(out[i].Fields[field], out[j].Fields[field])
			if desc {
				return !less && !equalValue(out[i].Fields[field], out[j].Fields[field])
			}
			return less
		})
	} else {
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	}
	return out
}

func (m *Memory) getLocked(path, id string) *Document {
	docs, ok := m.byPath[path]
	if !ok {
		return nil
	}
	return docs[id]
}

func (m *Memory) putLocked(path string, doc *Document) {
	docs, ok := m.byPath[path]
	if !ok {
		docs = make(map[string]*Document)
		m.byPath[path] = docs
	}
	docs[doc.ID] = doc
}

func (m *Memory) publish(ctx context.Context, ev ChangeEvent) {
	if m.notifier == nil {
		return
	}
	_ = m.notifier.Publish(ctx, ev)
}

// advance guarantees updatedAt strictly moves forward even when the clock
// returns the same instant twice.
func advance(prev, now time.Time) time.Time {
	if now.After(prev) {
		return now
	}
	return prev.Add(time.Microsecond)
}

func leafOf(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

func cloneDocument(d *Document) Document {
	return Document{
		ID:        d.ID,
		Path:      d.Path,
		Fields:    cloneFields(d.Fields),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// cloneFields deep-copies via a JSON round trip so callers can never mutate
// stored state through a returned snapshot.
func cloneFields(fields map[string]interface{}) map[string]interface{} {
	if fields == nil {
		return map[string]interface{}{}
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		out := make(map[string]interface{}, len(fields))
		for k, v := range fields {
			out[k] = v
		}
		return out
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		out = map[string]interface{}{}
	}
	return out
}

func lessValue(a, b interface{}) bool {
	if an, ok := asNumber(a); ok {
		if bn, ok := asNumber(b); ok {
			return an < bn
		}
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return as < bs
	}
	return false
}

func equalValue(a, b interface{}) bool {
	if an, ok := asNumber(a); ok {
		if bn, ok := asNumber(b); ok {
			return an == bn
		}
	}
	return a == b
}
