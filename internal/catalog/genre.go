// Package catalog holds the media entity model and the lifecycle services
// that orchestrate validation, authorization and persistence for it.
package catalog

import "anidex.org/internal/apperrors"

// Genre is a bit set over the fixed genre vocabulary. The zero value means
// "unknown/none".
type Genre uint64

const (
	GenreAction Genre = 1 << iota
	GenreComedy
	GenreHorror
	GenreSports
	GenreAdventure
	GenreDrama
	GenreMystery
	GenreSupernatural
	GenreAvantGarde
	GenreFantasy
	GenreRomance
	GenreSuspense
	GenreAwardWinning
	GenreGirlsLove
	GenreSciFi
	GenreBoysLove
	GenreGourmet
	GenreSliceOfLife
	GenreEcchi
	GenreErotica
	GenreHentai

	GenreNone Genre = 0
)

// genreAll is the mask of every known genre bit.
const genreAll = GenreHentai<<1 - 1

// GenreFromBits decodes a raw bit set, rejecting any bit outside the known
// vocabulary. Unknown bits are never masked away silently.
func GenreFromBits(bits uint64) (Genre, error) {
	if bits&^uint64(genreAll) != 0 {
		return GenreNone, apperrors.Newf(apperrors.KindInvalidData, "genre %d contains unknown bits", bits)
	}
	return Genre(bits), nil
}

// Bits returns the raw bit representation for storage and the wire.
func (g Genre) Bits() uint64 { return uint64(g) }

// Has reports whether every bit of other is set.
func (g Genre) Has(other Genre) bool { return g&other == other }
