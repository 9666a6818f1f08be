package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"anidex.org/internal/catalog"
)

// Filter parsing for the search endpoints. Absent query params leave the
// filter field nil; present ones must parse.

func seriesFilterFromQuery(r *http.Request) (catalog.SeriesFilter, error) {
	var filter catalog.SeriesFilter
	q := r.URL.Query()

	if v := q.Get("title"); v != "" {
		filter.Title = &v
	}
	if v := q.Get("synopsis"); v != "" {
		filter.Synopsis = &v
	}
	if q.Has("is_nsfw") {
		b, err := strconv.ParseBool(q.Get("is_nsfw"))
		if err != nil {
			return catalog.SeriesFilter{}, fmt.Errorf("is_nsfw must be a boolean")
		}
		filter.IsNSFW = &b
	}
	if q.Has("genre") {
		bits, err := strconv.ParseUint(q.Get("genre"), 10, 64)
		if err != nil {
			return catalog.SeriesFilter{}, fmt.Errorf("genre must be an unsigned integer")
		}
		filter.GenreBits = &bits
	}
	if q.Has("start_release_date") {
		sec, err := strconv.ParseInt(q.Get("start_release_date"), 10, 64)
		if err != nil {
			return catalog.SeriesFilter{}, fmt.Errorf("start_release_date must be epoch seconds")
		}
		filter.StartReleaseEpoch = &sec
	}
	if q.Has("end_release_date") {
		sec, err := strconv.ParseInt(q.Get("end_release_date"), 10, 64)
		if err != nil {
			return catalog.SeriesFilter{}, fmt.Errorf("end_release_date must be epoch seconds")
		}
		filter.EndReleaseEpoch = &sec
	}
	return filter, nil
}

func sourceFilterFromQuery(r *http.Request) (catalog.SourceFilter, error) {
	var filter catalog.SourceFilter
	q := r.URL.Query()

	if v := q.Get("name"); v != "" {
		filter.Name = &v
	}
	if q.Has("source_type") {
		bits, err := strconv.ParseUint(q.Get("source_type"), 10, 64)
		if err != nil {
			return catalog.SourceFilter{}, fmt.Errorf("source_type must be an unsigned integer")
		}
		filter.KindBits = &bits
	}
	if q.Has("priority") {
		p, err := strconv.ParseInt(q.Get("priority"), 10, 32)
		if err != nil {
			return catalog.SourceFilter{}, fmt.Errorf("priority must be an integer")
		}
		p32 := int32(p)
		filter.Priority = &p32
	}
	return filter, nil
}

func queryInt64(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return v, nil
}
