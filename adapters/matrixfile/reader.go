package matrixfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopbo/domain/backtest"
	"gopbo/internal"

	"github.com/xuri/excelize/v2"
)

// MatrixFile is a returns matrix loaded from disk: a header row naming
// each configuration followed by one numeric row per time period.
type MatrixFile struct {
	Configs []string
	Matrix  *backtest.PerformanceMatrix
}

// Reader loads a performance matrix from an .xlsx or .csv file.
type Reader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	logger   *internal.Logger
}

// NewReader creates a reader for the given file, dispatching on extension.
func NewReader(filePath string) *Reader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &Reader{
		filePath: filePath,
		fileType: fileType,
		logger:   internal.NewDefaultLogger("matrixfile"),
	}
}

// Read loads the file into a validated PerformanceMatrix.
func (r *Reader) Read() (*MatrixFile, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var (
		rows [][]string
		err  error
	)
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}

	return r.parseRows(rows)
}

// readExcelRows reads Sheet1 of an Excel workbook.
func (r *Reader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, fmt.Errorf("failed to read Sheet1: %w", err)
	}
	r.logger.Debug("read %d rows from %s", len(rows), r.filePath)
	return rows, nil
}

// readCSVRows reads all records of a CSV file.
func (r *Reader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	r.logger.Debug("read %d rows from %s", len(rows), r.filePath)
	return rows, nil
}

// parseRows converts the header + numeric rows into a matrix.
func (r *Reader) parseRows(rows [][]string) (*MatrixFile, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("matrix file must have a header row and at least one data row")
	}

	configs := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		configs[i] = strings.TrimSpace(h)
	}

	data := make([][]float64, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) != len(configs) {
			return nil, fmt.Errorf("row %d has %d cells, expected %d", i+2, len(row), len(configs))
		}
		parsed := make([]float64, len(row))
		for j, cell := range row {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %q: not a number: %q", i+2, configs[j], cell)
			}
			parsed[j] = v
		}
		data = append(data, parsed)
	}

	matrix, err := backtest.NewPerformanceMatrix(data)
	if err != nil {
		return nil, err
	}
	r.logger.Info("loaded %dx%d performance matrix from %s", matrix.Rows(), matrix.Configs(), r.filePath)
	return &MatrixFile{Configs: configs, Matrix: matrix}, nil
}
