package outwriter

import (
	"io"

	"github.com/huangsam/testaudit/internal/contract"
	"github.com/huangsam/testaudit/schema"
)

// Persisted comparison files are overwritten on every run and always carry a header.
// Percentages keep the two decimals they were rounded to.

// SaveCoverageComparison writes the coverage comparison CSV to path.
func SaveCoverageComparison(path string, rows []schema.CoverageComparisonRow) error {
	fmtFloat, _ := createFormatters(contract.DefaultPrecision)
	return saveCSV(path, func(w io.Writer) error {
		return writeCoverageComparisonCSV(w, rows, fmtFloat)
	}, "Coverage comparison saved")
}

// SaveMutationComparison writes the mutation comparison CSV to path.
func SaveMutationComparison(path string, rows []schema.MutationComparisonRow) error {
	return saveCSV(path, func(w io.Writer) error {
		return writeMutationComparisonCSV(w, rows)
	}, "Mutation coverage comparison saved")
}

// SaveViolationComparison writes the rule violation comparison CSV to path.
func SaveViolationComparison(path string, rows []schema.ViolationComparisonRow) error {
	return saveCSV(path, func(w io.Writer) error {
		return writeViolationComparisonCSV(w, rows)
	}, "Rule violation comparison saved")
}

// SaveComplianceRecords writes the per file compliance scores of one suite to path.
func SaveComplianceRecords(path string, records []schema.ComplianceRecord, standards []schema.Standard) error {
	return saveCSV(path, func(w io.Writer) error {
		return writeComplianceRecordsCSV(w, records, standards)
	}, "Compliance results saved")
}

// SaveComplianceComparison writes the per standard compliance comparison CSV to path.
func SaveComplianceComparison(path string, rows []schema.ComplianceComparisonRow) error {
	fmtFloat, _ := createFormatters(contract.DefaultPrecision)
	return saveCSV(path, func(w io.Writer) error {
		return writeComplianceComparisonCSV(w, rows, fmtFloat)
	}, "Compliance comparison saved")
}

// saveCSV writes to a file. An empty path disables persistence rather than selecting stdout.
func saveCSV(path string, writer func(io.Writer) error, successMsg string) error {
	if path == "" {
		return nil
	}
	return writeWithFile(path, writer, successMsg)
}
