package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Update is a partial change to a user document. Keys are dotted paths such
// as "profile.reality.expenses". Set replaces the value at each path; Push
// appends to the sequence at each path.
type Update struct {
	Set  map[string]any
	Push map[string]any
}

// Empty reports whether the update changes nothing.
func (u Update) Empty() bool {
	return len(u.Set) == 0 && len(u.Push) == 0
}

// ApplyUpdate patches doc in place. Missing intermediate objects are created
// and a push onto an absent path creates the sequence. Set is applied before
// Push and keys are visited in sorted order. Values are normalized to their
// JSON shape first, so structs become nested maps.
func ApplyUpdate(doc map[string]any, update Update) error {
	for _, path := range sortedKeys(update.Set) {
		value, err := normalize(update.Set[path])
		if err != nil {
			return fmt.Errorf("set %s: %w", path, err)
		}
		node, leaf, err := walk(doc, path)
		if err != nil {
			return fmt.Errorf("set %s: %w", path, err)
		}
		node[leaf] = value
	}

	for _, path := range sortedKeys(update.Push) {
		value, err := normalize(update.Push[path])
		if err != nil {
			return fmt.Errorf("push %s: %w", path, err)
		}
		node, leaf, err := walk(doc, path)
		if err != nil {
			return fmt.Errorf("push %s: %w", path, err)
		}
		switch existing := node[leaf].(type) {
		case nil:
			node[leaf] = []any{value}
		case []any:
			node[leaf] = append(existing, value)
		default:
			return fmt.Errorf("push %s: existing value is %T, not a sequence", path, existing)
		}
	}

	return nil
}

// walk returns the object holding the last path segment, creating the
// objects along the way.
func walk(doc map[string]any, path string) (map[string]any, string, error) {
	keys := strings.Split(path, ".")
	for _, key := range keys {
		if key == "" {
			return nil, "", fmt.Errorf("invalid path %q", path)
		}
	}

	node := doc
	for _, key := range keys[:len(keys)-1] {
		next, ok := node[key]
		if !ok || next == nil {
			child := map[string]any{}
			node[key] = child
			node = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return nil, "", fmt.Errorf("%q is %T, not an object", key, next)
		}
		node = child
	}
	return node, keys[len(keys)-1], nil
}

func normalize(value any) (any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func cloneDocument(doc map[string]any) (map[string]any, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
