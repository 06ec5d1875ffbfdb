package dataset

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrMalformed wraps every decode failure of a dataset file.
var ErrMalformed = errors.New("malformed dataset file")

// Format is a supported dataset encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// FormatFor picks the format from the file extension. Anything but .json is read as CSV.
func FormatFor(filename string) Format {
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		return FormatJSON
	}
	return FormatCSV
}

// ReadFile parses the dataset at path.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f, FormatFor(path))
}

// Parse decodes r as the given format. A file with a header and no rows
// parses to an empty table; callers decide whether that is an error.
func Parse(r io.Reader, format Format) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: content is not valid UTF-8", ErrMalformed)
	}

	var table *Table
	switch format {
	case FormatJSON:
		table, err = parseJSON(data)
	default:
		table, err = parseCSV(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return table, nil
}

func parseCSV(data []byte) (*Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("no columns to parse from file")
	}
	if err != nil {
		return nil, err
	}

	table := &Table{Columns: header}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("line %d: expected %d fields, saw %d", line, len(header), len(record))
		}
		// short rows are padded like missing values
		for len(record) < len(header) {
			record = append(record, "")
		}
		table.Rows = append(table.Rows, record)
	}

	return table, nil
}

// parseJSON reads an array of flat objects. Columns follow first-seen key order.
func parseJSON(data []byte) (*Table, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}

	table := &Table{}
	index := map[string]int{}
	var objects []map[string]string

	for dec.More() {
		if err := expectDelim(dec, '{'); err != nil {
			return nil, err
		}

		obj := map[string]string{}
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := tok.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key %v", tok)
			}

			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return nil, err
			}

			if _, seen := index[key]; !seen {
				index[key] = len(table.Columns)
				table.Columns = append(table.Columns, key)
			}
			obj[key] = rawToString(raw)
		}

		if err := expectDelim(dec, '}'); err != nil {
			return nil, err
		}
		objects = append(objects, obj)
	}

	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after top-level array")
	}

	for _, obj := range objects {
		row := make([]string, len(table.Columns))
		for key, value := range obj {
			row[index[key]] = value
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != want {
		return fmt.Errorf("expected %q, saw %v", want, tok)
	}
	return nil
}

func rawToString(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		return ""
	case len(trimmed) > 0 && trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err != nil {
		return string(trimmed)
	}
	return compact.String()
}
