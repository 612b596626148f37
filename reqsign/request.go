package reqsign

import (
	"bytes"
	"io"
	"net/http"
)

// requestPath returns the request path covered by a signature: the URL
// path, defaulting to "/" when empty, with "?" and the raw query appended
// when a query string is present.
func requestPath(r *http.Request) string {
	path := r.URL.Path
	if path == "" {
		path = "/"
	}

	if r.URL.RawQuery != "" {
		path += "?" + r.URL.RawQuery
	}

	return path
}

// requestBody returns the full request body without consuming it. A nil
// or http.NoBody body yields nil. GetBody is preferred when set; otherwise
// the body is read and replaced with an equivalent reader.
func requestBody(r *http.Request) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}

	if r.GetBody != nil {
		rc, err := r.GetBody()
		if err != nil {
			return nil, err
		}
		defer rc.Close()

		return io.ReadAll(rc)
	}

	b, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(b))

	return b, nil
}
