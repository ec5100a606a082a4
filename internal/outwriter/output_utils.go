package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/huangsam/testaudit/internal/contract"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// createFormatters creates the common formatter closures used across multiple output types.
func createFormatters(precision int) (fmtFloat func(float64) string, intFmt string) {
	numFmt := "%.*f"
	intFmt = "%d"
	fmtFloat = func(v float64) string {
		return fmt.Sprintf(numFmt, precision, v)
	}
	return fmtFloat, intFmt
}

// rawFloat formats a value with the shortest representation that round-trips.
func rawFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// deltaFormatter formats signed AI - Manual differences with a direction marker.
// When higherIsBetter is false, a positive difference is colored as a regression.
type deltaFormatter struct {
	precision      int
	higherIsBetter bool
	good, bad, eq  func(...any) string
}

func newDeltaFormatter(cfg *contract.Config, higherIsBetter bool) deltaFormatter {
	f := deltaFormatter{precision: cfg.Precision, higherIsBetter: higherIsBetter}
	if cfg.UseColors {
		f.good = color.New(color.FgGreen).SprintFunc()
		f.bad = color.New(color.FgRed).SprintFunc()
		f.eq = color.New(color.FgYellow).SprintFunc()
	} else {
		f.good = fmt.Sprint
		f.bad = fmt.Sprint
		f.eq = fmt.Sprint
	}
	return f
}

// Float formats a floating point difference.
func (f deltaFormatter) Float(delta float64) string {
	switch {
	case delta > 0:
		return f.up()(fmt.Sprintf("+%.*f ▲", f.precision, delta))
	case delta < 0:
		return f.down()(fmt.Sprintf("%.*f ▼", f.precision, delta))
	default:
		return f.eq(fmt.Sprintf("%.*f", f.precision, 0.0))
	}
}

// Int formats an integral difference.
func (f deltaFormatter) Int(delta int) string {
	switch {
	case delta > 0:
		return f.up()(fmt.Sprintf("+%d ▲", delta))
	case delta < 0:
		return f.down()(fmt.Sprintf("%d ▼", delta))
	default:
		return f.eq("0")
	}
}

func (f deltaFormatter) up() func(...any) string {
	if f.higherIsBetter {
		return f.good
	}
	return f.bad
}

func (f deltaFormatter) down() func(...any) string {
	if f.higherIsBetter {
		return f.bad
	}
	return f.good
}
