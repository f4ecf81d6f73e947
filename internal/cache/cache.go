// Package cache keeps one pretty printed JSON file per collection.
package cache

import (
	"errors"
	"os"
	"path/filepath"

	"shop_pos/internal/common"
	"shop_pos/internal/models"
	"shop_pos/internal/utility"
)

// Cache reads and writes <dir>/<kind>.json
type Cache struct {
	dir string
}

// New returns a cache rooted at dir; the directory is created on first write
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

// Dir returns the cache directory
func (c *Cache) Dir() string {
	return c.dir
}

// Path returns the file holding kind
func (c *Cache) Path(kind models.Kind) string {
	return filepath.Join(c.dir, string(kind)+".json")
}

// Exists reports whether the cache file of kind exists
func (c *Cache) Exists(kind models.Kind) bool {
	info, err := os.Stat(c.Path(kind))
	return err == nil && !info.IsDir()
}

// Read returns the records stored for kind. The file must hold a JSON array of objects.
func (c *Cache) Read(kind models.Kind) ([]models.Record, error) {
	path := c.Path(kind)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, common.NewFileError(common.ErrCodeFileRead, path, err)
	}

	var raw []map[string]interface{}
	if err := utility.DecodeJSON(data, &raw); err != nil {
		return nil, common.NewFileError(common.ErrCodeFileRead, path, err)
	}
	return models.NormalizeRecords(raw), nil
}

// Write replaces the cache file of kind with records. Whole floats keep their
// decimal point so they read back as floats.
// The file is written next to its final name and renamed, so readers never see half a file.
func (c *Cache) Write(kind models.Kind, records []models.Record) error {
	path := c.Path(kind)
	rows := make([]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, utility.KeepFloats(map[string]interface{}(models.NormalizeRecord(r))))
	}
	data, err := utility.PrettyJSON(rows)
	if err != nil {
		return common.NewFileError(common.ErrCodeFileWrite, path, err)
	}
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return common.NewFileError(common.ErrCodeFileWrite, path, err)
	}

	tmp, err := os.CreateTemp(c.dir, string(kind)+".*.tmp")
	if err != nil {
		return common.NewFileError(common.ErrCodeFileWrite, path, err)
	}
	tmpName := tmp.Name()
	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if err := errors.Join(werr, cerr); err != nil {
		_ = os.Remove(tmpName)
		return common.NewFileError(common.ErrCodeFileWrite, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return common.NewFileError(common.ErrCodeFileWrite, path, err)
	}
	return nil
}
