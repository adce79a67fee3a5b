package saver

import (
	"github.com/parquet-go/parquet-go"
)

// ParquetSaver lưu summary table dưới dạng Parquet.
type ParquetSaver[Row Record] struct{}

func (ParquetSaver[Row]) Extension() string { return "parquet" }

func (ParquetSaver[Row]) Save(rows []Row, path string) error {
	return parquet.WriteFile(path, rows)
}
