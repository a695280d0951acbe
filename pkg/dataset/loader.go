package dataset

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"os"
	"path/filepath"
)

// Fetch retrieves the dataset from url, keeping a local copy at cachePath so
// later runs skip the network entirely. An empty cachePath disables caching.
// Any fetch or decode failure is returned to the caller; an empty dataset is
// a valid result and renders nothing.
func Fetch(ctx context.Context, url, cachePath string) (Collection, error) {
	if cachePath != "" {
		if data, err := os.ReadFile(cachePath); err == nil {
			c, err := Decode(bytes.NewReader(data))
			if err == nil {
				return c, nil
			}
			log.Printf("Ignoring corrupt dataset cache %s: %v", cachePath, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching dataset: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("Error closing response body: %v", err)
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching dataset: bad status: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	c, err := Decode(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	if cachePath != "" {
		if err := writeFileAtomic(cachePath, body); err != nil {
			log.Printf("Failed to cache dataset to %s: %v", cachePath, err)
		}
	}
	return c, nil
}

// LoadFile reads the dataset from a local file.
func LoadFile(path string) (Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(bufio.NewReader(f))
}

// Decode parses the dataset JSON. Two shapes appear in the wild: a top-level
// array of [label, samples] tuples, or an object whose keys are ignored and
// whose values are the same tuples, taken in document order.
func Decode(r io.Reader) (Collection, error) {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decoding dataset: %w", err)
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return nil, fmt.Errorf("decoding dataset: top-level value is not an array or object")
	}

	var c Collection
	switch delim {
	case '[':
		for dec.More() {
			var t seriesTuple
			if err := dec.Decode(&t); err != nil {
				return nil, fmt.Errorf("decoding dataset entry %d: %w", len(c), err)
			}
			c = append(c, Series(t))
		}
	case '{':
		for dec.More() {
			if _, err := dec.Token(); err != nil { // key, ignored
				return nil, fmt.Errorf("decoding dataset: %w", err)
			}
			var t seriesTuple
			if err := dec.Decode(&t); err != nil {
				return nil, fmt.Errorf("decoding dataset entry %d: %w", len(c), err)
			}
			c = append(c, Series(t))
		}
	default:
		return nil, fmt.Errorf("decoding dataset: unexpected delimiter %q", delim)
	}
	return c, nil
}

// seriesTuple decodes the wire form of one decade: a 2-element array of
// [label, samples]. Non-numeric sample values (null and friends) become NaN
// so the parser can skip the affected triple without shifting the layout.
type seriesTuple Series

func (t *seriesTuple) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) < 2 {
		return fmt.Errorf("series tuple has %d elements, want 2", len(raw))
	}
	if err := json.Unmarshal(raw[0], &t.Label); err != nil {
		return fmt.Errorf("series label: %w", err)
	}
	var values []any
	if err := json.Unmarshal(raw[1], &values); err != nil {
		return fmt.Errorf("series samples: %w", err)
	}
	t.Samples = make([]float64, len(values))
	for i, v := range values {
		if n, ok := v.(float64); ok {
			t.Samples[i] = n
		} else {
			t.Samples[i] = math.NaN()
		}
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err := os.Remove(tmpName); err != nil && !os.IsNotExist(err) {
			log.Printf("Error removing temp file %s: %v", tmpName, err)
		}
	}()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
