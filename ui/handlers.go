package ui

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"datascope/adapters/excel"
	"datascope/domain/core"
	"datascope/domain/table"
	"datascope/internal/errors"
	"datascope/internal/profile"
)

// handleUpload ingests a delimited-text or spreadsheet upload and responds
// with the new dataset's identity and a short preview. A failed parse issues
// no dataset identifier.
func (s *Server) handleUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		s.renderError(c, errors.ValidationError("no file provided"))
		return
	}
	if fileHeader.Filename == "" {
		s.renderError(c, errors.ValidationError("no file selected"))
		return
	}
	if fileHeader.Size > s.cfg.Server.MaxUploadBytes {
		s.renderError(c, errors.ValidationErrorf(
			"file size %d exceeds the %d byte limit", fileHeader.Size, s.cfg.Server.MaxUploadBytes))
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	switch ext {
	case ".csv", ".txt", ".tsv", ".xlsx":
	default:
		s.renderError(c, errors.ValidationError("file type not allowed; use CSV, TSV, TXT or XLSX files"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		s.renderError(c, errors.Wrap(err, "failed to open upload"))
		return
	}
	defer f.Close()

	var raw []byte
	if ext == ".xlsx" {
		raw, err = excel.ReadAsCSV(f)
	} else {
		raw, err = io.ReadAll(f)
	}
	if err != nil {
		s.renderError(c, err)
		return
	}

	ds, err := s.store.Ingest(fileHeader.Filename, raw)
	if err != nil {
		s.renderError(c, err)
		return
	}
	s.log.Info("ingested dataset %s: %s (%d rows, %d columns)",
		ds.ID, ds.Filename, ds.RowCount, ds.ColumnCount())

	preview := profile.Page(ds, 1, s.cfg.Analysis.PreviewRows, s.cfg.Analysis.PreviewRows)

	columnTypes := make(map[string]string, ds.ColumnCount())
	for i := range ds.Columns {
		columnTypes[ds.Columns[i].Name] = ds.Columns[i].DType
	}

	c.JSON(http.StatusOK, gin.H{
		"dataset_id":   ds.ID,
		"filename":     ds.Filename,
		"rows":         ds.RowCount,
		"columns":      ds.ColumnCount(),
		"column_names": ds.ColumnNames(),
		"column_types": columnTypes,
		"preview":      preview.Rows,
		"memory_usage": fmt.Sprintf("%.2f KB", float64(ds.SizeBytes)/1024),
	})
}

// handleListDatasets reports resident datasets, most recently used first.
func (s *Server) handleListDatasets(c *gin.Context) {
	metas := s.store.List()
	c.JSON(http.StatusOK, gin.H{
		"datasets": metas,
		"count":    len(metas),
	})
}

// handleEvictDataset removes one dataset from the store.
func (s *Server) handleEvictDataset(c *gin.Context) {
	id, err := core.ParseDatasetID(c.Param("id"))
	if err != nil {
		s.renderError(c, errors.ValidationError(err.Error()))
		return
	}
	if !s.store.Evict(id) {
		s.renderError(c, errors.NotFound("dataset", id.String()))
		return
	}
	c.Status(http.StatusNoContent)
}

// handleColumns reports per-column typing and null counts.
func (s *Server) handleColumns(c *gin.Context) {
	ds, ok := s.lookupDataset(c)
	if !ok {
		return
	}

	columns := make([]gin.H, 0, ds.ColumnCount())
	for i := range ds.Columns {
		col := &ds.Columns[i]
		nulls := col.MissingCount()
		columns = append(columns, gin.H{
			"name":           col.Name,
			"dtype":          col.DType,
			"is_numeric":     col.IsNumeric(),
			"non_null_count": ds.RowCount - nulls,
			"null_count":     nulls,
		})
	}
	c.JSON(http.StatusOK, gin.H{"columns": columns})
}

// handleDataPreview pages through already-loaded rows. Out-of-range pages
// clamp to the nearest valid page.
func (s *Server) handleDataPreview(c *gin.Context) {
	ds, ok := s.lookupDataset(c)
	if !ok {
		return
	}

	page := queryInt(c, "page", 1)
	perPage := queryInt(c, "per_page", s.cfg.Analysis.PreviewPerPage)

	result := profile.Page(ds, page, perPage, s.cfg.Analysis.PreviewPerPage)
	c.JSON(http.StatusOK, result)
}

// lookupDataset resolves the :id path parameter, rendering the error itself
// when the dataset is unknown.
func (s *Server) lookupDataset(c *gin.Context) (*table.Dataset, bool) {
	id, err := core.ParseDatasetID(c.Param("id"))
	if err != nil {
		s.renderError(c, errors.ValidationError(err.Error()))
		return nil, false
	}
	ds, err := s.store.Lookup(id)
	if err != nil {
		s.renderError(c, err)
		return nil, false
	}
	return ds, true
}

// lookupColumn resolves a column by name on an already-resolved dataset.
func (s *Server) lookupColumn(c *gin.Context, ds *table.Dataset, name string) (*table.Column, bool) {
	if strings.TrimSpace(name) == "" {
		s.renderError(c, errors.ValidationError("column selection is required"))
		return nil, false
	}
	col, ok := ds.Column(name)
	if !ok {
		s.renderError(c, errors.NotFound("column", name))
		return nil, false
	}
	return col, true
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if v := c.Query(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
