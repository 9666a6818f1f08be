package catalog

import (
	"unicode/utf8"

	"anidex.org/internal/apperrors"
)

// ListProvider identifies an external tracking list a series is cross
// referenced on.
type ListProvider uint8

const (
	ListMyAnimeList ListProvider = iota
	ListAniList
)

// ListProviderFromInt decodes a wire ordinal.
func ListProviderFromInt(v int32) (ListProvider, error) {
	if v < 0 || v > int32(ListAniList) {
		return ListMyAnimeList, apperrors.Newf(apperrors.KindInvalidData, "list provider %d is invalid", v)
	}
	return ListProvider(v), nil
}

// ListRef cross references a series on an external tracking list.
type ListRef struct {
	Provider   ListProvider `json:"list"`
	ExternalID string       `json:"id_in_list"`
}

// ListRefDraft is the caller-supplied form before enum decoding.
type ListRefDraft struct {
	Provider   int32
	ExternalID string
}

func listRefsFromDrafts(drafts []ListRefDraft) ([]ListRef, error) {
	refs := make([]ListRef, 0, len(drafts))
	for _, d := range drafts {
		provider, err := ListProviderFromInt(d.Provider)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ListRef{Provider: provider, ExternalID: d.ExternalID})
	}
	return refs, nil
}

func validateListRefs(refs []ListRef, v *apperrors.Violations) {
	if len(refs) == 0 {
		v.Add("list references cannot be empty")
		return
	}
	for i, r := range refs {
		if n := utf8.RuneCountInString(r.ExternalID); n < 1 || n > 100 {
			v.Addf("lists[%d].external_id must be between 1 and 100 characters", i)
		}
	}
}
