package bytecode

import (
	"bytes"
	"sort"
	"strings"
)

// buildStringTable deduplicates lits, sorts by length descending, and
// reuses the tail of an already-placed longer entry whenever a shorter
// literal is one of its suffixes, appending only what can't be reused.
// Each placed entry is NUL-terminated in the returned bytes. The returned
// map gives each distinct literal its byte offset within the table.
//
// Processing strictly longest-first means a newly-seen literal can only
// ever be a suffix of something already placed, never the other way
// around, so there is no case where placing a literal requires rewriting
// an earlier, shorter entry.
func buildStringTable(lits []string) ([]byte, map[string]uint32) {
	seen := make(map[string]bool, len(lits))
	unique := make([]string, 0, len(lits))
	for _, s := range lits {
		if !seen[s] {
			seen[s] = true
			unique = append(unique, s)
		}
	}
	sort.SliceStable(unique, func(i, j int) bool { return len(unique[i]) > len(unique[j]) })

	type placed struct {
		text   string
		offset uint32
	}
	var table []placed
	offsets := make(map[string]uint32, len(unique))
	var buf bytes.Buffer

	for _, s := range unique {
		reused := false
		for _, p := range table {
			if strings.HasSuffix(p.text, s) {
				offsets[s] = p.offset + uint32(len(p.text)-len(s))
				reused = true
				break
			}
		}
		if reused {
			continue
		}
		offsets[s] = uint32(buf.Len())
		buf.WriteString(s)
		buf.WriteByte(0)
		table = append(table, placed{text: s, offset: offsets[s]})
	}
	return buf.Bytes(), offsets
}
