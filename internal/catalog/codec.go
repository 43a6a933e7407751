package catalog

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/hammamikhairi/ottocraft/internal/domain"
)

// maxItemSize caps the decompressed size of a serialized item.
const maxItemSize = 64 << 10

// wireItem is the CBOR layout of a serialized item. Integer keys keep the
// encoding compact and stable across field renames.
type wireItem struct {
	Type   string    `cbor:"1,keyasint"`
	Amount int       `cbor:"2,keyasint"`
	Meta   *wireMeta `cbor:"3,keyasint,omitempty"`
}

type wireMeta struct {
	DisplayName     string            `cbor:"1,keyasint,omitempty"`
	Lore            []string          `cbor:"2,keyasint,omitempty"`
	CustomModelData int               `cbor:"3,keyasint,omitempty"`
	Data            map[string]string `cbor:"4,keyasint,omitempty"`
}

var encMode = func() cbor.EncMode {
	// Canonical mode sorts map keys so equal items encode identically.
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

// EncodeItem serializes an item as base64(gzip(cbor(item))).
func EncodeItem(item *domain.Item) (string, error) {
	if item == nil {
		return "", fmt.Errorf("%w: nil item", domain.ErrInvalidItem)
	}
	w := wireItem{Type: string(item.Type), Amount: item.Amount}
	if !item.Meta.IsZero() {
		w.Meta = &wireMeta{
			DisplayName:     item.Meta.DisplayName,
			Lore:            item.Meta.Lore,
			CustomModelData: item.Meta.CustomModelData,
			Data:            item.Meta.Data,
		}
	}

	raw, err := encMode.Marshal(w)
	if err != nil {
		return "", fmt.Errorf("encoding item: %w", err)
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return "", fmt.Errorf("compressing item: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("compressing item: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeItem reverses EncodeItem.
func DecodeItem(data string) (*domain.Item, error) {
	compressed, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("%w: not valid base64: %v", domain.ErrInvalidItem, err)
	}
	zr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("%w: corrupted: %v", domain.ErrInvalidItem, err)
	}
	defer zr.Close()
	raw, err := io.ReadAll(io.LimitReader(zr, maxItemSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: corrupted: %v", domain.ErrInvalidItem, err)
	}
	if len(raw) > maxItemSize {
		return nil, fmt.Errorf("%w: expands past %d bytes", domain.ErrInvalidItem, maxItemSize)
	}

	var w wireItem
	if err := cbor.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidItem, err)
	}

	item := &domain.Item{Type: domain.NormalizeMaterial(w.Type), Amount: w.Amount}
	if w.Meta != nil {
		item.Meta = &domain.ItemMeta{
			DisplayName:     w.Meta.DisplayName,
			Lore:            w.Meta.Lore,
			CustomModelData: w.Meta.CustomModelData,
			Data:            w.Meta.Data,
		}
	}
	return item, nil
}
