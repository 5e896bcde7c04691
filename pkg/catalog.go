package pkg

// Catalog model: a course and its three requirement trees, as delivered
// by whatever external catalog source populated the database.

// CourseID is the stable external identifier a catalog source assigns
// to a course. class_reference fields in a RequirementCollection refer
// to courses by this id.
type CourseID int64

// Course is a single catalog entry, identified by "PREFIX NUMBER".
type Course struct {
	ID     CourseID
	Prefix string
	Number string
}

// Name returns the course's human name, e.g. "CS 1337".
func (c Course) Name() string {
	return c.Prefix + " " + c.Number
}

// RequirementKind discriminates the two RequirementCollection variants.
type RequirementKind string

const (
	KindCollection RequirementKind = "collection"
	KindCourse     RequirementKind = "course"
)

// RequirementCollection is the recursive, tagged tree a catalog source
// uses to describe a requirement. Any Kind other than KindCollection or
// KindCourse, or a course leaf missing ClassReference, is treated by the
// builder as "no constraint" rather than as an error. A collection
// missing Required is built as a 0-of-n requirement: it is satisfied as
// soon as any one of its options fires, so the course it gates still
// waits for one of them.
type RequirementCollection struct {
	Type           RequirementKind          `json:"type"`
	Required       *int                     `json:"required,omitempty"`
	Options        []RequirementCollection  `json:"options,omitempty"`
	ClassReference *CourseID                `json:"class_reference,omitempty"`
}

// CatalogCourse is one record as delivered by a CatalogSource: a course
// plus its three requirement trees. CoOrPrerequisites is folded into
// corequisite edges by the graph builder — a deliberate policy, not an
// oversight (spec.md §4.4, §9).
type CatalogCourse struct {
	Course
	Prerequisites     RequirementCollection
	Corequisites      RequirementCollection
	CoOrPrerequisites RequirementCollection
}
