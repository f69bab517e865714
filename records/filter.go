package records

// Filter returns the records with a non-blank value in the second column, in their
// original order. Records with fewer than two columns are discarded.
func Filter(records []Record) []Record {
	filtered := []Record{}

	for _, record := range records {
		if len(record.keys) < 2 {
			continue
		}

		if v := record.values[record.keys[1]]; clean(v) != "" {
			filtered = append(filtered, record)
		}
	}

	return filtered
}
