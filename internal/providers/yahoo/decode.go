package yahoo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// decodeLeague splits the league array into its meta head and a map of the
// named sections that follow it (scoreboard, standings, draft_results, ...).
func decodeLeague(raw json.RawMessage) (rawLeagueMeta, objectMap, error) {
	var meta rawLeagueMeta
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return meta, nil, fmt.Errorf("league is not an array: %w", err)
	}
	if len(elems) == 0 {
		return meta, nil, fmt.Errorf("league array is empty")
	}
	if err := json.Unmarshal(elems[0], &meta); err != nil {
		return meta, nil, fmt.Errorf("decoding league meta: %w", err)
	}

	sections := objectMap{}
	for _, elem := range elems[1:] {
		var part objectMap
		if err := json.Unmarshal(elem, &part); err != nil {
			continue
		}
		for k, v := range part {
			sections[k] = v
		}
	}
	return meta, sections, nil
}

// decodeFragments flattens a resource's fragment array (possibly with nested
// arrays and empty-array placeholders) into a single object map. Later
// fragments win on key collision, matching the feed's own layering.
func decodeFragments(raw json.RawMessage) objectMap {
	out := objectMap{}
	mergeFragments(raw, out)
	return out
}

func mergeFragments(raw json.RawMessage, out objectMap) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return
	}
	switch trimmed[0] {
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(trimmed, &elems); err != nil {
			return
		}
		for _, elem := range elems {
			mergeFragments(elem, out)
		}
	case '{':
		var part objectMap
		if err := json.Unmarshal(trimmed, &part); err != nil {
			return
		}
		for k, v := range part {
			out[k] = v
		}
	}
}

// eachIndexed iterates a {"0": ..., "1": ..., "count": N} collection in
// index order, calling fn with the index and the raw element.
func eachIndexed(raw json.RawMessage, fn func(idx int, elem json.RawMessage)) error {
	var coll objectMap
	if err := json.Unmarshal(raw, &coll); err != nil {
		return fmt.Errorf("collection is not an object: %w", err)
	}
	var count flexInt
	if c, ok := coll["count"]; ok {
		if err := count.UnmarshalJSON(c); err != nil {
			return fmt.Errorf("decoding collection count: %w", err)
		}
	}
	for i := 0; i < int(count); i++ {
		elem, ok := coll[strconv.Itoa(i)]
		if !ok {
			continue
		}
		fn(i, elem)
	}
	return nil
}

// stringField decodes a string-valued key from an object map.
func stringField(m objectMap, key string) string {
	raw, ok := m[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// firstArrayElement unwraps sections that arrive as single-element arrays
// (the standings section does this). Non-arrays pass through unchanged.
func firstArrayElement(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return raw
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil || len(elems) == 0 {
		return raw
	}
	return elems[0]
}
