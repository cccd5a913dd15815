package timeline

import (
	"github.com/google/uuid"
)

// FilterInfo describes a filter type that can be instantiated and
// attached to a clip.
type FilterInfo struct {
	Name string
	// Multipart filters expand to several engine filters attached and
	// detached as a unit.
	Multipart bool
	PartCount int
	// Default property values applied at creation.
	Defaults map[string]string
}

// Filter is an effect instance attached to a clip. The clip's Filters
// list and the engine's attachment list are mutated together by the
// edit operations; neither is touched directly elsewhere.
type Filter struct {
	ID    uuid.UUID
	Info  FilterInfo
	Props map[string]string

	// Parts holds the per-part engine filters of a multipart filter.
	// Nil for plain filters.
	Parts []*Filter
}

// Set assigns a filter property.
func (f *Filter) Set(key, value string) {
	if f.Props == nil {
		f.Props = make(map[string]string)
	}
	f.Props[key] = value
}

// Get returns a filter property value.
func (f *Filter) Get(key string) string {
	return f.Props[key]
}

// muteFilterName identifies the zero-gain volume filter used by the
// mute and audio splice operations.
const muteFilterName = "volume"

// IsMute reports whether the filter is a zero-gain volume filter.
func (f *Filter) IsMute() bool {
	return f.Info.Name == muteFilterName && f.Get("gain") == "0"
}
