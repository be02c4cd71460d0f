package extract

// Record is one output row: segment metadata, one item and the source filename.
type Record map[string]string

// Assemble merges the segment metadata into each item. Absent metadata
// becomes "". Order follows items; duplicates are kept.
func Assemble(meta Metadata, items []Item, filename string) []Record {
	records := make([]Record, 0, len(items))
	for _, item := range items {
		rec := make(Record, len(meta)+len(item)+1)
		for k := range meta {
			rec[k] = meta.Get(k)
		}
		for k, v := range item {
			rec[k] = v
		}
		rec[FilenameField] = filename
		records = append(records, rec)
	}
	return records
}

// Row returns the record's values in column order.
func (r Record) Row(columns []string) []string {
	row := make([]string, len(columns))
	for i, c := range columns {
		row[i] = r[c]
	}
	return row
}

// ParseText runs segmentation, extraction and assembly over a whole text dump.
func ParseText(family Family, filename, text string) []Record {
	reg := family.Registry()
	var records []Record
	for _, seg := range Segment(text, reg.Delimiter) {
		meta := ExtractMetadata(seg, reg)
		records = append(records, Assemble(meta, family.ExtractItems(seg), filename)...)
	}
	return records
}
