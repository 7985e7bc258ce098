// SPDX-License-Identifier: MPL-2.0

package props

import (
	"encoding/csv"
	"strings"
)

// SplitList splits a comma-separated property value. Double-quoted segments
// may contain commas; entries are trimmed and empty entries dropped.
//
//	src/main/java, "src/gen,v2" ,, src/extra  ->  [src/main/java src/gen,v2 src/extra]
func SplitList(value string) []string {
	r := csv.NewReader(strings.NewReader(value))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		// malformed quoting: fall back to a plain split
		records = [][]string{strings.Split(value, ",")}
	}

	var out []string
	for _, record := range records {
		for _, field := range record {
			if field = strings.TrimSpace(field); field != "" {
				out = append(out, field)
			}
		}
	}
	return out
}

// JoinList joins entries with commas, quoting any entry that contains one.
func JoinList(entries []string) string {
	quoted := make([]string, len(entries))
	for i, e := range entries {
		if strings.ContainsAny(e, ",\"") {
			e = `"` + strings.ReplaceAll(e, `"`, `""`) + `"`
		}
		quoted[i] = e
	}
	return strings.Join(quoted, ",")
}
