package api

import (
	"encoding/json"
	"net/http"
)

// decodeBody decodes the request body into v. A failure here means the
// caller sent malformed JSON and gets a 400, not a 500.
func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
