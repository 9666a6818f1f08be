package catalog

import "anidex.org/internal/apperrors"

// SourceKind is a bit set describing how a source presents its material
// (raw, dubbed, subtitled, per language).
type SourceKind uint64

const (
	SourceRaw SourceKind = 1 << iota
	SourceEnglishDub
	SourcePortugueseDub
	SourceEnglishSub
	SourcePortugueseSub
	SourceSpanishSub
	SourceSpanishDub

	SourceKindNone SourceKind = 0
)

const sourceKindAll = SourceSpanishDub<<1 - 1

// SourceKindFromBits decodes a raw bit set, rejecting unknown bits.
func SourceKindFromBits(bits uint64) (SourceKind, error) {
	if bits&^uint64(sourceKindAll) != 0 {
		return SourceKindNone, apperrors.Newf(apperrors.KindInvalidData, "source kind %d contains unknown bits", bits)
	}
	return SourceKind(bits), nil
}

// Bits returns the raw bit representation for storage and the wire.
func (k SourceKind) Bits() uint64 { return uint64(k) }
