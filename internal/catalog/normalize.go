package catalog

import "strings"

// Column alternates accepted for each canonical field, in priority order.
// Matching is case-insensitive; the first alternate present in the row wins.
var (
	nameColumns        = []string{"Item Name", "name"}
	regionColumns      = []string{"Region", "region"}
	loreColumns        = []string{"Lore", "lore"}
	descriptionColumns = []string{"DescriptionLore", "descriptionLore"}
	imageColumns       = []string{"ImageURL", "image"}
)

// Normalize maps one raw tabular row into the canonical record shape. It is
// a total function: every missing field resolves to its documented default,
// and no input can make it fail.
//
// Only region is transformed (title case); all other fields pass through
// verbatim. The record id is derived deterministically from the batch and
// row index, so re-ingesting the same source produces the same ids.
func Normalize(raw map[string]string, sourceID string, rowIndex int) Record {
	return Record{
		ID:              CSVRecordID(sourceID, rowIndex),
		Name:            pick(raw, nameColumns, UnknownName),
		Region:          TitleCase(pick(raw, regionColumns, UnknownRegion)),
		Lore:            pick(raw, loreColumns, ""),
		DescriptionLore: pick(raw, descriptionColumns, ""),
		Image:           pick(raw, imageColumns, ""),
		SourceID:        sourceID,
		Origin:          OriginCSV,
	}
}

// pick returns the value of the first alternate present and non-empty in the
// row, comparing column names case-insensitively.
func pick(raw map[string]string, alternates []string, fallback string) string {
	for _, alt := range alternates {
		for key, val := range raw {
			if strings.EqualFold(key, alt) && val != "" {
				return val
			}
		}
	}
	return fallback
}

// TitleCase capitalizes the first letter of each space-delimited word,
// leaving the rest of the word untouched. Applying it twice is a no-op,
// which keeps region normalization idempotent.
func TitleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.Join(words, " ")
}
