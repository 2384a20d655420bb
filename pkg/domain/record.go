package domain

// Record is one row of upstream data: a flat key -> value mapping. The
// engine does not interpret values beyond what filters need.
type Record map[string]any

// Clone returns a shallow-per-key copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// CloneRecords copies a record slice so callers can't mutate cached data.
func CloneRecords(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}
