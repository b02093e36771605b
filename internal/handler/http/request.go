package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
)

// decodeOptionalBody decodes a JSON body, treating an empty body as {}.
func decodeOptionalBody(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// queryInt returns 0 when the parameter is absent or not a number.
func queryInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}

// pathInt returns -1 when the parameter is not a number, which every
// period validator rejects.
func pathInt(value string) int {
	v, err := strconv.Atoi(value)
	if err != nil {
		return -1
	}
	return v
}
