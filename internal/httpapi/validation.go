package httpapi

import (
	"net/http"
	"strconv"
	"strings"
)

// pathID parses the {id} wildcard as a positive int64.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func writeBadID(w http.ResponseWriter) {
	WriteError(w, http.StatusBadRequest, "bad_id", "invalid id")
}
