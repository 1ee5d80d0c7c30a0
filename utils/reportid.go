package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// GenerateReportCode produces a public report code of the form
// PREFIX-YYYYMMDD-XXXXXXXX, where the date is the UTC submission date
// and the tail is 8 uppercase hex characters from a CSPRNG. Uniqueness
// is ultimately guaranteed by the database constraint; callers retry on
// a duplicate-key insert.
func GenerateReportCode(prefix string) (string, error) {
	random := make([]byte, 4)
	if _, err := rand.Read(random); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	date := time.Now().UTC().Format("20060102")
	return fmt.Sprintf("%s-%s-%s", prefix, date, strings.ToUpper(hex.EncodeToString(random))), nil
}
