package comtrade

// TableWriter receives a record as a table, one row per sample and one
// column per channel after the leading time column. Implementations
// write CSV files, spreadsheets or whatever tabular sink they wrap.
type TableWriter interface {
	// WriteHeader receives the column names once, before any row.
	WriteHeader(columns []string) error

	// WriteRow receives one sample. The analog and status slices are
	// reused between calls; implementations must copy what they keep.
	WriteRow(time float64, analog []float64, status []int32) error

	// Flush finishes the table after the last row.
	Flush() error
}

// Export streams the record through w: a header with "time" and the
// channel names in file order, then one row per sample. Missing analog
// samples stay NaN; the writer decides their representation.
func (r *Record) Export(w TableWriter) error {
	columns := make([]string, 0, 1+r.ChannelCount())
	columns = append(columns, "time")
	for _, ch := range r.conf.AnalogChannels {
		columns = append(columns, ch.Name)
	}
	for _, ch := range r.conf.StatusChannels {
		columns = append(columns, ch.Name)
	}
	if err := w.WriteHeader(columns); err != nil {
		return err
	}

	analog := make([]float64, len(r.samples.Analog))
	status := make([]int32, len(r.samples.Status))
	for i, t := range r.samples.Time {
		for c := range r.samples.Analog {
			analog[c] = r.samples.Analog[c][i]
		}
		for c := range r.samples.Status {
			status[c] = r.samples.Status[c][i]
		}
		if err := w.WriteRow(t, analog, status); err != nil {
			return err
		}
	}
	return w.Flush()
}
