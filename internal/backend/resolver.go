package backend

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Candidate is one known historical variant of an endpoint. Paths may carry
// {placeholder} segments filled from the operation params.
type Candidate struct {
	Method string
	Path   string
}

// Build produces the full request URL and body for this candidate. Params
// fill path placeholders first. What is left over becomes the query string
// for GET and DELETE, or the JSON body for POST and PUT. A placeholder with
// no matching param fails the candidate.
func (c Candidate) Build(baseURL string, params map[string]any) (string, []byte, error) {
	remaining := make(map[string]any, len(params))
	for k, v := range params {
		remaining[k] = v
	}

	path := c.Path
	for strings.Contains(path, "{") {
		open := strings.Index(path, "{")
		end := strings.Index(path, "}")
		if end < open {
			return "", nil, fmt.Errorf("malformed path template %q", c.Path)
		}
		name := path[open+1 : end]
		value, ok := remaining[name]
		if !ok {
			return "", nil, fmt.Errorf("path template %q: no value for {%s}", c.Path, name)
		}
		path = path[:open] + url.PathEscape(paramString(value)) + path[end+1:]
		delete(remaining, name)
	}

	fullURL := baseURL + path

	switch c.Method {
	case http.MethodPost, http.MethodPut:
		if len(remaining) == 0 {
			return fullURL, nil, nil
		}
		body, err := json.Marshal(remaining)
		if err != nil {
			return "", nil, fmt.Errorf("marshal request body: %w", err)
		}
		return fullURL, body, nil
	default:
		if len(remaining) > 0 {
			fullURL += "?" + queryString(remaining)
		}
		return fullURL, nil, nil
	}
}

// queryString renders leftover params sorted by key, so a given operation
// always produces the same URL and GET caching stays effective.
func queryString(params map[string]any) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := url.Values{}
	for _, k := range keys {
		values.Set(k, paramString(params[k]))
	}
	return values.Encode()
}

func paramString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
