package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"outlay/internal/core"
)

// parseFilter extracts the category/month filter from query parameters.
// A malformed month is ignored rather than rejected.
func parseFilter(r *http.Request) core.Filter {
	var f core.Filter

	if v := sanitizeInput(r.URL.Query().Get("category")); v != "" && v != "All" {
		f.Category = v
	}
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" && v != "All" {
		if _, err := time.Parse("2006-01", v); err == nil {
			f.Month = v
		}
	}

	return f
}

// formatEuros formats cents as a Euro currency string (e.g. "€12,34").
func formatEuros(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	euros := cents / 100
	rem := cents % 100
	s := strconv.FormatInt(euros, 10) + "," + fmt.Sprintf("%02d", rem)
	if neg {
		return "-€" + s
	}
	return "€" + s
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
