package counters

// VersionTag is the key of the tag injected into every event.
const VersionTag = "version"

// Tag is a key/value annotation on a counter event.
type Tag struct {
	Key   string
	Value string
}

// Tags is the caller side mapping of tags. Order is irrelevant.
type Tags map[string]string

// MergeTags returns the tags of the mapping (in map iteration order) followed
// by the fixed tags. Nothing is deduplicated: a key in both ends up twice.
func MergeTags(tags Tags, fixed ...Tag) []Tag {
	merged := make([]Tag, 0, len(tags)+len(fixed))
	for k, v := range tags {
		merged = append(merged, Tag{Key: k, Value: v})
	}
	return append(merged, fixed...)
}
