// Package pagination formats the Content-Range header used by list
// endpoints: "<resource> <start>-<end>/<total>". The API does not limit
// result sets server-side, so the range always spans the full set.
package pagination

import (
	"fmt"
	"net/http"
)

// Header is the response header carrying range metadata.
const Header = "Content-Range"

// ContentRange renders the header value for a full, unfiltered result set.
// An empty set is reported as "<resource> 0-0/0".
func ContentRange(resource string, total int) string {
	if total <= 0 {
		return fmt.Sprintf("%s 0-0/0", resource)
	}
	return fmt.Sprintf("%s 0-%d/%d", resource, total-1, total)
}

// SetContentRange writes the header on the response and exposes it for
// cross-origin readers.
func SetContentRange(w http.ResponseWriter, resource string, total int) {
	w.Header().Set(Header, ContentRange(resource, total))
	w.Header().Set("Access-Control-Expose-Headers", Header)
}
