package catalog

import (
	"encoding/json"

	"anidex.org/internal/apperrors"
)

// Titles and list references live inside relational columns as serialized
// text blobs. This is the only place that knows the blob format.

// EncodeTitles serializes a title list for storage.
func EncodeTitles(titles []Title) (string, error) {
	data, err := json.Marshal(titles)
	if err != nil {
		return "", apperrors.Unknown(err)
	}
	return string(data), nil
}

// DecodeTitles parses a stored title blob.
func DecodeTitles(blob string) ([]Title, error) {
	var titles []Title
	if err := json.Unmarshal([]byte(blob), &titles); err != nil {
		return nil, apperrors.Unknown(err)
	}
	return titles, nil
}

// EncodeListRefs serializes a list-reference list for storage.
func EncodeListRefs(refs []ListRef) (string, error) {
	data, err := json.Marshal(refs)
	if err != nil {
		return "", apperrors.Unknown(err)
	}
	return string(data), nil
}

// DecodeListRefs parses a stored list-reference blob.
func DecodeListRefs(blob string) ([]ListRef, error) {
	var refs []ListRef
	if err := json.Unmarshal([]byte(blob), &refs); err != nil {
		return nil, apperrors.Unknown(err)
	}
	return refs, nil
}
