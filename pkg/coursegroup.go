package pkg

// groupKey derives the course-group key shared by cross-listed or
// equivalently-numbered courses: prefix plus the first digit and last
// two characters of the course number, e.g. "CS 1FA3" and "CS 1PA3"
// (same level, same suffix, differing only in the section letter)
// both produce "CS_1A3".
func groupKey(prefix, number string) string {
	if len(number) < 2 {
		return prefix + "_" + number
	}
	return prefix + "_" + number[0:1] + number[len(number)-2:]
}

// GroupKey returns c's course-group key.
func (c Course) GroupKey() string {
	return groupKey(c.Prefix, c.Number)
}
