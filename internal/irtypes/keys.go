package irtypes

import (
	"fmt"
	"slices"
	"strings"
)

// cloneTypeArgs returns an independent copy of a TypeID slice, or nil for an
// empty input, so stored payloads never alias a caller's backing array.
func cloneTypeArgs(ids []TypeID) []TypeID {
	if len(ids) == 0 {
		return nil
	}
	return slices.Clone(ids)
}

// idsKey builds a dedup key for a slice of TypeIDs.
func idsKey(ids []TypeID) string {
	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", id)
	}
	return b.String()
}
