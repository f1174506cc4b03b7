package roster

import "context"

// Row is one student parsed from an uploaded roster spreadsheet.
type Row struct {
	FullName    string
	Instrument  string
	Level       string
	ParentEmail string
	ParentName  string
	Notes       string
}

type ParsingStrategy interface {
	Parse(ctx context.Context, data []byte) ([]Row, error)
	Validate(ctx context.Context, rows []Row) error
}

type ExcelStrategy struct {
	parser    *Parser
	validator *Validator
}

func NewExcelStrategy() ParsingStrategy {
	return &ExcelStrategy{
		parser:    NewParser(),
		validator: NewValidator(),
	}
}

func (s *ExcelStrategy) Parse(ctx context.Context, data []byte) ([]Row, error) {
	return s.parser.Parse(ctx, data)
}

func (s *ExcelStrategy) Validate(ctx context.Context, rows []Row) error {
	return s.validator.Validate(ctx, rows)
}
