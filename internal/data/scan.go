package data

import "encoding/json"

// Sort directions shared by repository list queries.
const (
	sortDirAsc  = "ASC"
	sortDirDesc = "DESC"
)

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

// encodeJSONText serializes a value for storage in a TEXT column.
func encodeJSONText(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// encodeTags serializes tags as a JSON array, never null, for the TEXT column.
func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	return encodeJSONText(tags)
}
