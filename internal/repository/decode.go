package repository

import "github.com/strandshq/strands-api/internal/docstore"

// decodeAll materializes a document list into typed models. Always returns an
// empty slice instead of nil so list responses serialize to [].
func decodeAll[T any](docs []docstore.Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for i := range docs {
		var v T
		if err := docs[i].Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// decodeOne materializes a single optional document; (nil, nil) passes through.
func decodeOne[T any](doc *docstore.Document) (*T, error) {
	if doc == nil {
		return nil, nil
	}
	var v T
	if err := doc.Decode(&v); err != nil {
		return nil, err
	}
	return &v, nil
}
