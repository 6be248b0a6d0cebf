package document

import "reflect"

// Merge recursively merges src into dst and returns the result.
// Values in src override values in dst. Objects are merged key by key;
// every other kind in src replaces the dst value wholesale.
func Merge(dst, src Document) Document {
	if src.kind != KindObject || dst.kind != KindObject {
		if src.kind == KindNull && dst.kind == KindObject {
			return dst
		}
		return src
	}

	out := make(map[string]Document, len(dst.obj)+len(src.obj))
	for k, v := range dst.obj {
		out[k] = v
	}
	for k, srcVal := range src.obj {
		dstVal, exists := out[k]
		if exists && srcVal.kind == KindObject && dstVal.kind == KindObject {
			out[k] = Merge(dstVal, srcVal)
			continue
		}
		out[k] = srcVal
	}
	return Document{kind: KindObject, obj: out}
}

// Flatten flattens nested objects into a single-level map keyed by
// dot-separated paths. Arrays and scalars are leaves.
func Flatten(d Document) map[string]Document {
	result := make(map[string]Document)
	flattenRecursive(d, "", result)
	return result
}

func flattenRecursive(d Document, prefix string, result map[string]Document) {
	if d.kind != KindObject {
		if prefix != "" {
			result[prefix] = d
		}
		return
	}
	for key, val := range d.obj {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		if val.kind == KindObject && val.Len() > 0 {
			flattenRecursive(val, fullKey, result)
		} else {
			result[fullKey] = val
		}
	}
}

// Diff returns the flattened paths that were added, modified or removed
// going from old to new.
func Diff(old, new Document) (added, modified, removed []string) {
	oldFlat := Flatten(old)
	newFlat := Flatten(new)

	for path, newVal := range newFlat {
		if oldVal, exists := oldFlat[path]; exists {
			if !Equal(oldVal, newVal) {
				modified = append(modified, path)
			}
		} else {
			added = append(added, path)
		}
	}

	for path := range oldFlat {
		if _, exists := newFlat[path]; !exists {
			removed = append(removed, path)
		}
	}

	return added, modified, removed
}

// Equal reports whether two documents are structurally identical.
func Equal(a, b Document) bool {
	if a.kind != b.kind {
		return false
	}
	return reflect.DeepEqual(a.Value(), b.Value())
}
