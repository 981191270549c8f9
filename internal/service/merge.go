package service

// MergeData shallow-merges new fields into a stored data document. New
// values win on key collision; stored fields absent from the new payload are
// preserved. Neither input is mutated.
func MergeData(stored, incoming map[string]any) map[string]any {
	merged := make(map[string]any, len(stored)+len(incoming))
	for k, v := range stored {
		merged[k] = v
	}
	for k, v := range incoming {
		merged[k] = v
	}
	return merged
}
