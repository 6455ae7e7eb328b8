package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"capital-engine/internal/simulation"
)

// WriteCSV writes one section per trajectory: a "Simulation N" title row,
// a Month,Capital header, one row per month (both 1-based month numbers and
// capital rounded to cents), and a blank separator line.
func WriteCSV(w io.Writer, ens simulation.Ensemble) error {
	cw := csv.NewWriter(w)
	for i, path := range ens {
		if err := cw.Write([]string{fmt.Sprintf("Simulation %d", i+1)}); err != nil {
			return fmt.Errorf("write trajectory %d title: %w", i+1, err)
		}
		if err := cw.Write([]string{"Month", "Capital"}); err != nil {
			return fmt.Errorf("write trajectory %d header: %w", i+1, err)
		}
		for m, capital := range path {
			row := []string{strconv.Itoa(m + 1), strconv.FormatFloat(capital, 'f', 2, 64)}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write trajectory %d month %d: %w", i+1, m+1, err)
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return fmt.Errorf("flush trajectory %d: %w", i+1, err)
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return fmt.Errorf("write separator: %w", err)
		}
	}
	return nil
}
