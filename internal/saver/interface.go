package saver

import (
	"strings"
)

// Record is a summary row that knows its own CSV column layout.
type Record interface {
	Header() []string
	Record() []string
}

// TableSaver là abstraction cho lưu summary table.
// High-level (collector) inject implementation; low-level chỉ phụ thuộc interface — DIP.
type TableSaver[Row Record] interface {
	Save(rows []Row, path string) error
	Extension() string
}

// NewTableSaver creates implementation by format (csv, parquet, json).
// Returns nil if format not supported.
func NewTableSaver[Row Record](format string) TableSaver[Row] {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return CSVSaver[Row]{}
	case "parquet":
		return ParquetSaver[Row]{}
	case "json":
		return JSONSaver[Row]{}
	default:
		return nil
	}
}
