package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/strandshq/strands-api/internal/docstore"
	"github.com/strandshq/strands-api/internal/repository"
	"github.com/strandshq/strands-api/internal/utils"
)

// exportTarget names one exported dataset: either a root collection or a
// cross-tenant collection group.
type exportTarget struct {
	Name  string
	Group bool
}

// exportTargets lists every dataset included in a full export, in output
// order.
var exportTargets = []exportTarget{
	{Name: repository.ColSalons},
	{Name: repository.ColManagers},
	{Name: repository.ColProducts, Group: true},
	{Name: repository.ColSales, Group: true},
	{Name: repository.ColStylists, Group: true},
	{Name: repository.ColClients, Group: true},
	{Name: repository.ColRecommendations, Group: true},
}

// ExportService reads whole collections (including cross-tenant group scans)
// and serializes them to portable formats.
type ExportService struct {
	store docstore.Backend
}

// NewExportService creates a new ExportService.
func NewExportService(store docstore.Backend) *ExportService {
	return &ExportService{store: store}
}

// TargetNames returns the exportable dataset names in output order.
func (s *ExportService) TargetNames() []string {
	names := make([]string, 0, len(exportTargets))
	for _, t := range exportTargets {
		names = append(names, t.Name)
	}
	return names
}

// read materializes one target as {id, ...fields} snapshots.
func (s *ExportService) read(ctx context.Context, t exportTarget) ([]map[string]interface{}, error) {
	var docs []docstore.Document
	var err error
	if t.Group {
		docs, err = s.store.QueryGroup(ctx, docstore.Group(t.Name), nil, nil)
	} else {
		docs, err = s.store.Query(ctx, docstore.Root(t.Name), nil, nil)
	}
	if err != nil {
		return nil, err
	}
	out := make([]map[string]interface{}, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].Snapshot())
	}
	return out, nil
}

// ExportJSON bundles every target into one pretty-printed JSON object keyed
// by collection name.
func (s *ExportService) ExportJSON(ctx context.Context) ([]byte, error) {
	bundle := make(map[string][]map[string]interface{}, len(exportTargets))
	for _, t := range exportTargets {
		rows, err := s.read(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", t.Name, err)
		}
		bundle[t.Name] = rows
	}
	return json.MarshalIndent(bundle, "", "  ")
}

// ExportCSV serializes one named target as CSV. Only scalar top-level fields
// are emitted; nested objects and arrays are dropped rather than flattened.
func (s *ExportService) ExportCSV(ctx context.Context, name string) ([]byte, error) {
	t, ok := findTarget(name)
	if !ok {
		return nil, utils.ErrUnknownCollection
	}
	rows, err := s.read(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", t.Name, err)
	}

	header := scalarHeader(rows)
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range rows {
		record := make([]string, len(header))
		for i, key := range header {
			if v, ok := row[key]; ok && isScalar(v) {
				record[i] = fmt.Sprintf("%v", v)
			}
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportXLSX builds a workbook with one sheet per target.
func (s *ExportService) ExportXLSX(ctx context.Context) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for _, t := range exportTargets {
		rows, err := s.read(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", t.Name, err)
		}
		if _, err := f.NewSheet(t.Name); err != nil {
			return nil, err
		}
		header := scalarHeader(rows)
		for i, key := range header {
			cell, err := excelize.CoordinatesToCellName(i+1, 1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(t.Name, cell, key); err != nil {
				return nil, err
			}
		}
		for r, row := range rows {
			for i, key := range header {
				v, ok := row[key]
				if !ok || !isScalar(v) {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(i+1, r+2)
				if err != nil {
					return nil, err
				}
				if err := f.SetCellValue(t.Name, cell, v); err != nil {
					return nil, err
				}
			}
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func findTarget(name string) (exportTarget, bool) {
	for _, t := range exportTargets {
		if t.Name == name {
			return t, true
		}
	}
	return exportTarget{}, false
}

// scalarHeader collects the union of scalar field names across the rows,
// sorted with id first for stable output.
func scalarHeader(rows []map[string]interface{}) []string {
	seen := make(map[string]bool)
	for _, row := range rows {
		for k, v := range row {
			if isScalar(v) {
				seen[k] = true
			}
		}
	}
	header := make([]string, 0, len(seen))
	for k := range seen {
		if k != "id" {
			header = append(header, k)
		}
	}
	sort.Strings(header)
	if seen["id"] {
		header = append([]string{"id"}, header...)
	}
	return header
}

// isScalar reports whether a decoded JSON value is a flat cell value.
func isScalar(v interface{}) bool {
	switch v.(type) {
	case nil, string, bool, float64, int, int64, json.Number:
		return true
	default:
		return false
	}
}
