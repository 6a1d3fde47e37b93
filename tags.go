package shp2ch

import (
	"sort"
	"strconv"
	"strings"

	"github.com/paulmach/osm"
)

// KeyFilter decides whether attribute should be kept as edge metadata
type KeyFilter func(key string) bool

// UsefulKeys returns filter keeping only given keys. Empty list keeps everything.
func UsefulKeys(keys ...string) KeyFilter {
	if len(keys) == 0 {
		return keepAllKeys
	}
	useful := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		useful[key] = struct{}{}
	}
	return func(key string) bool {
		_, ok := useful[key]
		return ok
	}
}

func keepAllKeys(key string) bool {
	return true
}

// filterTags returns new set of tags accepted by filter
func filterTags(tags osm.Tags, filter KeyFilter) osm.Tags {
	if filter == nil {
		filter = keepAllKeys
	}
	filtered := make(osm.Tags, 0, len(tags))
	for _, tag := range tags {
		if filter(tag.Key) {
			filtered = append(filtered, tag)
		}
	}
	return filtered
}

// TagsFromRow converts attributes of the row into tags. Order of tags follows the source schema.
func TagsFromRow(columns []string, row Row) osm.Tags {
	tags := make(osm.Tags, 0, len(columns))
	for _, column := range columns {
		value, _ := row.Value(column)
		tags = append(tags, osm.Tag{Key: column, Value: attributeString(value)})
	}
	return tags
}

// attributeString returns culture-invariant string representation of attribute value
func attributeString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case interface{ String() string }:
		return v.String()
	}
	return ""
}

// lookupTag returns value for the key and whether key is present at all
func lookupTag(tags osm.Tags, key string) (string, bool) {
	for _, tag := range tags {
		if tag.Key == key {
			return tag.Value, true
		}
	}
	return "", false
}

// TagsIndex stores unique sets of tags. Identical sets share single identifier.
type TagsIndex struct {
	ids  map[string]uint32
	sets []osm.Tags
}

// NewTagsIndex returns empty index
func NewTagsIndex() *TagsIndex {
	return &TagsIndex{
		ids:  make(map[string]uint32),
		sets: make([]osm.Tags, 0),
	}
}

// Add returns identifier of given set of tags, inserting it if it hasn't been seen yet.
// Order of tags doesn't matter.
func (index *TagsIndex) Add(tags osm.Tags) uint32 {
	sorted := make(osm.Tags, len(tags))
	copy(sorted, tags)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Key != sorted[j].Key {
			return sorted[i].Key < sorted[j].Key
		}
		return sorted[i].Value < sorted[j].Value
	})
	key := tagsKey(sorted)
	if id, ok := index.ids[key]; ok {
		return id
	}
	id := uint32(len(index.sets))
	index.ids[key] = id
	index.sets = append(index.sets, sorted)
	return id
}

// Get returns set of tags by its identifier
func (index *TagsIndex) Get(id uint32) (osm.Tags, bool) {
	if int(id) >= len(index.sets) {
		return nil, false
	}
	return index.sets[id], true
}

// Len returns number of unique sets
func (index *TagsIndex) Len() int {
	return len(index.sets)
}

func tagsKey(sorted osm.Tags) string {
	var sb strings.Builder
	for _, tag := range sorted {
		sb.WriteString(tag.Key)
		sb.WriteByte(0)
		sb.WriteString(tag.Value)
		sb.WriteByte(0)
	}
	return sb.String()
}
