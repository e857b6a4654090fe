package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/golang/snappy"

	"github.com/avaliafor/avaliafor/internal/docstore"
	apperrors "github.com/avaliafor/avaliafor/internal/errors"
)

// timestampKey holds the snapshot time next to the collection keys.
const timestampKey = "timestamp"

// CompressedExt is appended to compressed backup file names.
const CompressedExt = ".sz"

// MarshalJSON writes one top-level key per collection plus "timestamp".
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(s.Collections)+1)
	for name, docs := range s.Collections {
		if docs == nil {
			docs = []docstore.Document{}
		}
		out[name] = docs
	}
	out[timestampKey] = s.Timestamp
	return json.Marshal(out)
}

// UnmarshalJSON validates the whole document before accepting it: every key
// other than "timestamp" must be an array of objects.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return invalid("not a JSON object: %v", err)
	}

	snap := Snapshot{Collections: make(map[string][]docstore.Document)}
	for key, value := range raw {
		if key == timestampKey {
			if err := json.Unmarshal(value, &snap.Timestamp); err != nil {
				return invalid("timestamp must be a string")
			}
			continue
		}
		if strings.TrimSpace(key) == "" || strings.ContainsAny(key, "$.") {
			return invalid("invalid collection name %q", key)
		}
		dec := json.NewDecoder(bytes.NewReader(value))
		dec.UseNumber()
		var docs []map[string]interface{}
		if err := dec.Decode(&docs); err != nil {
			return invalid("collection %s must be an array of objects: %v", key, err)
		}
		out := make([]docstore.Document, len(docs))
		for i, d := range docs {
			if d == nil {
				return invalid("collection %s has a null document at %d", key, i)
			}
			out[i] = docstore.StripID(docstore.Document(d))
		}
		snap.Collections[key] = out
	}
	if len(snap.Collections) == 0 {
		return invalid("backup has no collections")
	}
	*s = snap
	return nil
}

// Encode writes snap as indented JSON.
func Encode(w io.Writer, snap *Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(snap)
}

// Decode reads a JSON snapshot.
func Decode(r io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		if apperrors.GetCategory(err) != "" {
			return nil, err
		}
		return nil, invalid("%v", err)
	}
	return &snap, nil
}

// EncodeCompressed writes snap as snappy-compressed JSON.
func EncodeCompressed(w io.Writer, snap *Snapshot) error {
	var buf bytes.Buffer
	if err := Encode(&buf, snap); err != nil {
		return err
	}
	_, err := w.Write(snappy.Encode(nil, buf.Bytes()))
	return err
}

// DecodeCompressed reads a snapshot written by EncodeCompressed.
func DecodeCompressed(r io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}
	raw, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, invalid("snappy: %v", err)
	}
	return Decode(bytes.NewReader(raw))
}

// DecodeNamed picks the codec from the file name extension.
func DecodeNamed(name string, r io.Reader) (*Snapshot, error) {
	if strings.HasSuffix(name, CompressedExt) {
		return DecodeCompressed(r)
	}
	return Decode(r)
}

func invalid(format string, args ...interface{}) error {
	return apperrors.NewValidationError(apperrors.CodeInvalidBackup, fmt.Sprintf(format, args...))
}
