package pkg

// newToyGraph builds the four-course catalog from the testable
// properties: B.prereq = A; C.coreq = A; D.prereq = 2-of-{A, B, C}.
func newToyGraph(t testingT) *Graph {
	t.Helper()

	required2 := 2

	courses := []CatalogCourse{
		{Course: Course{ID: 1, Prefix: "A", Number: "1000"}},
		{
			Course: Course{ID: 2, Prefix: "B", Number: "1000"},
			Prerequisites: RequirementCollection{
				Type: KindCourse, ClassReference: idPtr(1),
			},
		},
		{
			Course: Course{ID: 3, Prefix: "C", Number: "1000"},
			Corequisites: RequirementCollection{
				Type: KindCourse, ClassReference: idPtr(1),
			},
		},
		{
			Course: Course{ID: 4, Prefix: "D", Number: "1000"},
			Prerequisites: RequirementCollection{
				Type:     KindCollection,
				Required: &required2,
				Options: []RequirementCollection{
					{Type: KindCourse, ClassReference: idPtr(1)},
					{Type: KindCourse, ClassReference: idPtr(2)},
					{Type: KindCourse, ClassReference: idPtr(3)},
				},
			},
		},
	}

	g, err := Build(courses)
	if err != nil {
		t.Fatalf("build toy graph: %v", err)
	}
	return g
}

func idPtr(id int64) *CourseID {
	c := CourseID(id)
	return &c
}

// testingT is the slice of *testing.T this package's test helpers
// need, so helpers_test.go doesn't have to import "testing" just to
// declare parameter types used only by other _test.go files.
type testingT interface {
	Helper()
	Fatalf(format string, args ...interface{})
}
