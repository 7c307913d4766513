package serve

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"nms-extractor/feature/extract"
	"nms-extractor/feature/smoke"
)

// ErrUnknownCatalog marks requests for names outside the expected catalog
// set.
var ErrUnknownCatalog = fmt.Errorf("unknown catalog")

// CatalogInfo summarizes one catalog file on disk.
type CatalogInfo struct {
	Name  string `json:"name"`
	File  string `json:"file"`
	Items int    `json:"items"`
	Bytes int64  `json:"bytes"`
}

// Service reads generated catalogs off disk for the HTTP surface. Files
// are reread per request; the extractor replaces them atomically, so a
// read never observes a half-written catalog.
type Service struct {
	dir    string
	logger *zap.Logger
}

// NewService builds a catalog read service over the output directory.
func NewService(dir string, logger *zap.Logger) *Service {
	return &Service{dir: dir, logger: logger}
}

// ListCatalogs reports every expected catalog with its on-disk state.
// Missing files appear with a zero item count.
func (s *Service) ListCatalogs() ([]CatalogInfo, error) {
	infos := make([]CatalogInfo, 0, len(smoke.ExpectedFiles()))
	for _, file := range smoke.ExpectedFiles() {
		info := CatalogInfo{
			Name: file[:len(file)-len(".json")],
			File: file,
		}
		data, err := os.ReadFile(filepath.Join(s.dir, file))
		if err == nil {
			var items []json.RawMessage
			if err := json.Unmarshal(data, &items); err == nil {
				info.Items = len(items)
			}
			info.Bytes = int64(len(data))
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// GetCatalog returns a catalog's raw JSON document by catalog name.
func (s *Service) GetCatalog(name string) (json.RawMessage, error) {
	if !validCatalog(name) {
		return nil, ErrUnknownCatalog
	}
	data, err := os.ReadFile(filepath.Join(s.dir, name+".json"))
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", name, err)
	}
	return data, nil
}

// GetLocalization returns the flat localization table document.
func (s *Service) GetLocalization() (json.RawMessage, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, extract.LocalizationFile))
	if err != nil {
		return nil, fmt.Errorf("read localization table: %w", err)
	}
	return data, nil
}

func validCatalog(name string) bool {
	for _, catalog := range extract.CatalogOrder {
		if catalog == name {
			return true
		}
	}
	return false
}
