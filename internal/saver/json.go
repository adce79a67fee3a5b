package saver

// JSONSaver lưu summary table dưới dạng JSON (array, indent).
type JSONSaver[Row Record] struct{}

func (JSONSaver[Row]) Extension() string { return "json" }

func (JSONSaver[Row]) Save(rows []Row, path string) error {
	return WriteJSON(path, rows)
}
