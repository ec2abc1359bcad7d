package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// maxJSONBodyBytes bounds JSON request bodies. Uploads go through
// multipart handling with their own limit.
const maxJSONBodyBytes = 1 << 20

// ParseJSON decodes a JSON request body into dest. The body is size-capped
// so w can answer with a proper 413 when the cap is exceeded.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}
