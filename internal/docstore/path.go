package docstore

import (
	"fmt"
	"strings"
)

// CollectionRef identifies one collection by its full nesting path, e.g.
// salons/{salonID}/stylists. Refs are built through typed constructors so an
// invalid nesting is a construction-time error instead of a runtime string bug.
type CollectionRef struct {
	segments []string
}

// DocRef identifies a single document inside a collection.
type DocRef struct {
	col CollectionRef
	id  string
}

// GroupRef addresses every collection with the given leaf name at any nesting
// depth, across all tenants (a collection-group scan).
type GroupRef struct {
	name string
}

// Root returns a ref to a top-level collection. Panics on an invalid name:
// refs are assembled from compile-time constants, so a bad name is a
// programming error, not an input error.
func Root(name string) CollectionRef {
	mustValidSegment(name)
	return CollectionRef{segments: []string{name}}
}

// Doc returns a ref to a document in this collection.
func (c CollectionRef) Doc(id string) DocRef {
	mustValidSegment(id)
	return DocRef{col: c, id: id}
}

// Collection returns a ref to a subcollection nested under this document.
func (d DocRef) Collection(name string) CollectionRef {
	mustValidSegment(name)
	segs := make([]string, 0, len(d.col.segments)+2)
	segs = append(segs, d.col.segments...)
	segs = append(segs, d.id, name)
	return CollectionRef{segments: segs}
}

// Path returns the slash-joined collection path.
func (c CollectionRef) Path() string {
	return strings.Join(c.segments, "/")
}

// Leaf returns the collection name (last segment), which is also the
// collection-group this collection belongs to.
func (c CollectionRef) Leaf() string {
	if len(c.segments) == 0 {
		return ""
	}
	return c.segments[len(c.segments)-1]
}

// IsZero reports whether the ref was never initialized.
func (c CollectionRef) IsZero() bool { return len(c.segments) == 0 }

// ID returns the document id.
func (d DocRef) ID() string { return d.id }

// Parent returns the collection containing this document.
func (d DocRef) Parent() CollectionRef { return d.col }

// Group returns a collection-group ref for the given leaf collection name.
func Group(name string) GroupRef {
	mustValidSegment(name)
	return GroupRef{name: name}
}

// Name returns the leaf collection name this group addresses.
func (g GroupRef) Name() string { return g.name }

// ParseCollectionPath validates a slash-separated collection path coming from
// an external caller. A collection path has an odd number of non-empty
// segments (collection / doc / collection / ...).
func ParseCollectionPath(path string) (CollectionRef, error) {
	segs := strings.Split(path, "/")
	if len(segs)%2 == 0 {
		return CollectionRef{}, fmt.Errorf("invalid collection path %q: even number of segments", path)
	}
	for _, s := range segs {
		if err := validSegment(s); err != nil {
			return CollectionRef{}, fmt.Errorf("invalid collection path %q: %w", path, err)
		}
	}
	return CollectionRef{segments: segs}, nil
}

func validSegment(s string) error {
	if s == "" {
		return fmt.Errorf("empty path segment")
	}
	if strings.Contains(s, "/") {
		return fmt.Errorf("path segment %q contains '/'", s)
	}
	return nil
}

func mustValidSegment(s string) {
	if err := validSegment(s); err != nil {
		panic("docstore: " + err.Error())
	}
}
