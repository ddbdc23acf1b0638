package domain

// ImportError describes one rejected row of an import. Row numbers count the
// header as row 1; row 0 marks a failure to read the input at all.
type ImportError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult is the outcome of an import. It is always returned, never an
// error: every failure is reported row by row.
type ImportResult struct {
	SuccessCount int           `json:"successCount"`
	Errors       []ImportError `json:"errors"`
}

// Failed reports whether nothing was imported.
func (r ImportResult) Failed() bool {
	return r.SuccessCount == 0 && len(r.Errors) > 0
}
