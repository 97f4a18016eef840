package reports

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/odyssey-erp/inventory-web/internal/backend"
)

// WriteCSV serialises a report series as label,value rows.
func WriteCSV(w io.Writer, series backend.ReportSeries) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"Label", "Value"}); err != nil {
		return err
	}
	for i, label := range series.Labels {
		if err := writer.Write([]string{label, strconv.FormatFloat(series.Data[i], 'f', -1, 64)}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
