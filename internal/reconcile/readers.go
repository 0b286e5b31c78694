package reconcile

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/tealeg/xlsx/v3"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

// ReadDelimited reads a delimited-text file into header-keyed rows. Files that
// are not valid UTF-8 are retried as Latin-1 before giving up.
func ReadDelimited(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Chain(
		Attempt[[]map[string]any]{
			Name: "utf-8",
			Run: func() ([]map[string]any, error) {
				if !utf8.Valid(data) {
					return nil, fmt.Errorf("%s: not valid UTF-8", path)
				}
				return parseDelimited(data)
			},
		},
		Attempt[[]map[string]any]{
			Name: "latin-1",
			Run: func() ([]map[string]any, error) {
				decoded, err := io.ReadAll(charmap.ISO8859_1.NewDecoder().Reader(bytes.NewReader(data)))
				if err != nil {
					return nil, err
				}
				return parseDelimited(decoded)
			},
		},
	)
}

func parseDelimited(data []byte) ([]map[string]any, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var rows []map[string]any
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, zipRow(header, record))
	}
	return rows, nil
}

// ReadSpreadsheet reads the first sheet of a workbook into header-keyed rows,
// trying each parsing backend in sequence.
func ReadSpreadsheet(path string) ([]map[string]any, error) {
	return Chain(
		Attempt[[]map[string]any]{Name: "excelize", Run: func() ([]map[string]any, error) {
			return readWithExcelize(path)
		}},
		Attempt[[]map[string]any]{Name: "tealeg", Run: func() ([]map[string]any, error) {
			return readWithTealeg(path)
		}},
	)
}

func readWithExcelize(path string) ([]map[string]any, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets", path)
	}

	cells, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("%s: sheet %q is empty", path, sheets[0])
	}

	header := cells[0]
	var rows []map[string]any
	for _, record := range cells[1:] {
		rows = append(rows, zipRow(header, record))
	}
	return rows, nil
}

func readWithTealeg(path string) ([]map[string]any, error) {
	workbook, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, err
	}
	if len(workbook.Sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets", path)
	}
	sheet := workbook.Sheets[0]

	var header []string
	var rows []map[string]any
	err = sheet.ForEachRow(func(row *xlsx.Row) error {
		var record []string
		cellErr := row.ForEachCell(func(cell *xlsx.Cell) error {
			record = append(record, cell.String())
			return nil
		})
		if cellErr != nil {
			return cellErr
		}
		if header == nil {
			header = record
			return nil
		}
		rows = append(rows, zipRow(header, record))
		return nil
	})
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, fmt.Errorf("%s: first sheet is empty", path)
	}
	return rows, nil
}

// zipRow pairs header names with cell values. Short rows leave trailing
// columns absent rather than empty.
func zipRow(header, record []string) map[string]any {
	row := make(map[string]any, len(header))
	for i, name := range header {
		if i >= len(record) {
			break
		}
		row[name] = record[i]
	}
	return row
}
