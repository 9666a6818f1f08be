package catalog

import (
	"strings"
	"unicode/utf8"

	"anidex.org/internal/apperrors"
)

// TitleType is the language/script a title is written in. Ordinals are
// persisted inside the titles blob and carried on the wire.
type TitleType uint8

const (
	TitleTypeRomaji TitleType = iota
	TitleTypeEnglish
	TitleTypePortuguese
	TitleTypeNative
)

// TitleTypeFromInt decodes a wire ordinal.
func TitleTypeFromInt(v int32) (TitleType, error) {
	if v < 0 || v > int32(TitleTypeNative) {
		return TitleTypeRomaji, apperrors.Newf(apperrors.KindInvalidData, "title type %d is invalid", v)
	}
	return TitleType(v), nil
}

// Title is one of the names a series is known by. Exactly the titles
// marked main are eligible for display headings.
type Title struct {
	Name   string    `json:"name"`
	Type   TitleType `json:"title_type"`
	IsMain bool      `json:"is_main"`
}

// TitleDraft is the caller-supplied form of a title before enum decoding.
type TitleDraft struct {
	Name   string
	Type   int32
	IsMain bool
}

func titlesFromDrafts(drafts []TitleDraft) ([]Title, error) {
	titles := make([]Title, 0, len(drafts))
	for _, d := range drafts {
		titleType, err := TitleTypeFromInt(d.Type)
		if err != nil {
			return nil, err
		}
		titles = append(titles, Title{Name: d.Name, Type: titleType, IsMain: d.IsMain})
	}
	return titles, nil
}

// validateTitles records the list-level invariants: at least one element,
// at least one main title, and per-title name bounds.
func validateTitles(titles []Title, v *apperrors.Violations) {
	if len(titles) == 0 {
		v.Add("titles cannot be empty")
		return
	}
	main := false
	for i, t := range titles {
		if n := utf8.RuneCountInString(t.Name); n < 1 || n > 1024 {
			v.Addf("titles[%d].name must be between 1 and 1024 characters", i)
		}
		if t.IsMain {
			main = true
		}
	}
	if !main {
		v.Add("at least one title must be main")
	}
}

// titleSearch derives the flat search index for a title list.
func titleSearch(titles []Title) string {
	names := make([]string, 0, len(titles))
	for _, t := range titles {
		names = append(names, t.Name)
	}
	return strings.Join(names, "_")
}
