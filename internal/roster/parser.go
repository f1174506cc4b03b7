package roster

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/shangobashi/NoteSquared-C/pkg/errors"
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(ctx context.Context, data []byte) ([]Row, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.ErrInvalidFileFormat
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	if len(rows) < 2 { // Header + at least one data row
		return nil, errors.ErrInvalidFileFormat
	}

	header := rows[0]
	columnMap := make(map[string]int)
	for i, col := range header {
		columnMap[strings.ToLower(strings.TrimSpace(col))] = i
	}

	requiredColumns := []string{"full_name", "instrument"}
	for _, col := range requiredColumns {
		if _, exists := columnMap[col]; !exists {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	var parsed []Row
	for i, row := range rows[1:] { // Skip header
		if isEmptyRow(row) {
			continue
		}

		entry, err := p.parseRow(row, columnMap)
		if err != nil {
			return nil, fmt.Errorf("error parsing row %d: %w", i+2, err)
		}

		parsed = append(parsed, *entry)
	}

	return parsed, nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func (p *Parser) parseRow(row []string, columnMap map[string]int) (*Row, error) {
	getValue := func(colName string) string {
		if idx, exists := columnMap[colName]; exists && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	fullName := getValue("full_name")
	if fullName == "" {
		return nil, fmt.Errorf("full_name is required")
	}

	instrument := getValue("instrument")
	if instrument == "" {
		return nil, fmt.Errorf("instrument is required")
	}

	return &Row{
		FullName:    fullName,
		Instrument:  instrument,
		Level:       strings.ToUpper(getValue("level")),
		ParentEmail: getValue("parent_email"),
		ParentName:  getValue("parent_name"),
		Notes:       getValue("notes"),
	}, nil
}
