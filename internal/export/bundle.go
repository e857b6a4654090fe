package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/klauspost/compress/zip"

	"github.com/avaliafor/avaliafor/pkg/types"
)

// Entry is one file inside a bundle.
type Entry struct {
	Name string
	Data []byte
}

// Bundle prefixes used by SubmissionBundle.
const (
	PrefixFiltered       = "avaliacoes_filtradas"
	PrefixSupplies       = "todas_suprimentos"
	PrefixAdministration = "todas_administracao"
	PrefixAll            = "todas_avaliacoes"
)

// BundleTimeLayout stamps bundle and backup file names.
const BundleTimeLayout = "20060102_150405"

// WriteBundle writes entries as a deflated ZIP archive to w.
func WriteBundle(ctx context.Context, w io.Writer, entries []Entry) error {
	zw := zip.NewWriter(w)
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			zw.Close()
			return err
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     e.Name,
			Method:   zip.Deflate,
			Modified: time.Now(),
		})
		if err != nil {
			zw.Close()
			return fmt.Errorf("zip entry %s: %w", e.Name, err)
		}
		if _, err := fw.Write(e.Data); err != nil {
			zw.Close()
			return fmt.Errorf("zip entry %s: %w", e.Name, err)
		}
	}
	return zw.Close()
}

// Bundle returns entries as an in-memory ZIP archive.
func Bundle(ctx context.Context, entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteBundle(ctx, &buf, entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BundleResult is a generated per-submission archive.
type BundleResult struct {
	Name  string
	Data  []byte
	Files []string
}

// SubmissionBundle encodes one artifact per (supplier, unit, period, origin)
// found in records and packs them into a ZIP named
// <prefix>_individuais_<YYYYMMDD_HHMMSS>.zip. Records must carry Origin.
func SubmissionBundle(ctx context.Context, records []types.Record, enc Encoder, prefix string, now time.Time) (*BundleResult, error) {
	groups := make(map[types.SubmissionKey][]types.Record)
	for _, r := range records {
		k := r.Key()
		r.Origin = ""
		groups[k] = append(groups[k], r)
	}
	keys := make([]types.SubmissionKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

	res := &BundleResult{Name: fmt.Sprintf("%s_individuais_%s.zip", prefix, now.Format(BundleTimeLayout))}
	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		name, err := NameFor(k)
		if err != nil {
			return nil, err
		}
		data, err := enc.Encode(groups[k])
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", name, err)
		}
		entries = append(entries, Entry{Name: name, Data: data})
		res.Files = append(res.Files, name)
	}

	data, err := Bundle(ctx, entries)
	if err != nil {
		return nil, err
	}
	res.Data = data
	return res, nil
}

// PrefixFor picks the bundle prefix for an origin scope. A nil origin means
// both workflows.
func PrefixFor(origin *types.Origin, filtered bool) string {
	switch {
	case filtered:
		return PrefixFiltered
	case origin == nil:
		return PrefixAll
	case *origin == types.OriginSupplies:
		return PrefixSupplies
	default:
		return PrefixAdministration
	}
}
