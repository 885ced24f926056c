// internal/app/features/admissions/csv.go
package admissions

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/dalemusser/clubhub/internal/app/system/apperr"
)

// Upload size and row limits for CSV imports.
const (
	MaxUploadSize = 5 << 20 // 5 MB
	MaxRows       = 20000
)

// ParseEmailsCSV reads a CSV with a header row containing an "Email"
// column and returns the non-empty values of that column, trimmed.
// A missing header or Email column is InvalidInput; the import is
// rejected before any mail is sent.
func ParseEmailsCSV(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are fine; we only read one column
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, apperr.New(apperr.InvalidInput, "CSV file is empty")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.InvalidInput, "CSV header could not be read", err)
	}

	emailCol := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), "email") {
			emailCol = i
			break
		}
	}
	if emailCol < 0 {
		return nil, apperr.New(apperr.InvalidInput, "CSV file has no Email column")
	}

	var emails []string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperr.Wrap(apperr.InvalidInput, "CSV row could not be read", err)
		}
		if len(emails) >= MaxRows {
			return nil, apperr.Newf(apperr.InvalidInput, "CSV file exceeds %d rows", MaxRows)
		}
		if emailCol >= len(row) {
			continue
		}
		if email := strings.TrimSpace(row[emailCol]); email != "" {
			emails = append(emails, email)
		}
	}

	return emails, nil
}
