package saver

import (
	"encoding/csv"
	"os"
)

// CSVSaver lưu summary table dưới dạng CSV (header từ Record).
type CSVSaver[Row Record] struct{}

func (CSVSaver[Row]) Extension() string { return "csv" }

func (CSVSaver[Row]) Save(rows []Row, path string) error {
	if len(rows) == 0 {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(rows[0].Header()); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write(r.Record()); err != nil {
			return err
		}
	}
	return nil
}
