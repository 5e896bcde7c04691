package pkg

import "testing"

func TestBuild_ToyGraph_Succeeds(t *testing.T) {
	g := newToyGraph(t)
	if g.NumNodes() == 0 {
		t.Fatalf("expected a non-empty graph")
	}
}

func TestBuild_FindCourseByName(t *testing.T) {
	g := newToyGraph(t)
	for _, name := range []string{"A 1000", "B 1000", "C 1000", "D 1000"} {
		if _, ok := g.FindCourseByName(name); !ok {
			t.Errorf("expected to find course %q", name)
		}
	}
	if _, ok := g.FindCourseByName("Z 9999"); ok {
		t.Errorf("did not expect to find unknown course")
	}
}

func TestBuild_BEdgeIsPrerequisite(t *testing.T) {
	g := newToyGraph(t)
	b, _ := g.FindCourseByName("B 1000")
	if g.NodeKind(b) != NodeCourse {
		t.Fatalf("expected B to be a course node")
	}
	if g.InitIndegree(b) != 1 {
		t.Fatalf("expected B to have indegree 1 (one requirement gating it), got %d", g.InitIndegree(b))
	}
	for i := 0; i < g.NumNodes(); i++ {
		for _, e := range g.OutEdges(i) {
			if e.To == b && e.Type != EdgePrerequisite {
				t.Fatalf("expected the edge into B to be a Prerequisite edge, got type %d", e.Type)
			}
		}
	}
}

func TestBuild_DRequiresTwoOfThree(t *testing.T) {
	g := newToyGraph(t)
	d, _ := g.FindCourseByName("D 1000")
	if g.InitIndegree(d) != 1 {
		t.Fatalf("expected D to be gated by a single requirement node, got indegree %d", g.InitIndegree(d))
	}
	for i := 0; i < g.NumNodes(); i++ {
		for _, e := range g.OutEdges(i) {
			if e.To != d {
				continue
			}
			if g.InitIndegree(i) != 3 {
				t.Fatalf("expected D's requirement to have 3 options, got %d", g.InitIndegree(i))
			}
			if g.RequirementSatisfied(i, 2) {
				t.Fatalf("expected D's requirement to be unsatisfied with 1 of 3 fired")
			}
			if !g.RequirementSatisfied(i, 1) {
				t.Fatalf("expected D's requirement to be satisfied with 2 of 3 fired")
			}
		}
	}
}

func TestBuild_DetectsCycle(t *testing.T) {
	// Two courses whose co-or-prerequisites point at each other: the
	// course reference is outside each other's own group key, so
	// self-exclusion doesn't break it, but the DAG property does.
	x := CourseID(1)
	y := CourseID(2)
	courses := []CatalogCourse{
		{
			Course:            Course{ID: x, Prefix: "X", Number: "1000"},
			CoOrPrerequisites: RequirementCollection{Type: KindCourse, ClassReference: &y},
		},
		{
			Course:            Course{ID: y, Prefix: "Y", Number: "1000"},
			CoOrPrerequisites: RequirementCollection{Type: KindCourse, ClassReference: &x},
		},
	}
	if _, err := Build(courses); err == nil {
		t.Fatalf("expected a cycle error")
	}
}

func TestBuild_SelfExclusion(t *testing.T) {
	// A course that (incorrectly) lists a cross-listing of itself as a
	// prerequisite: the self-referencing option must be dropped, not
	// wired into a self-loop.
	id := CourseID(1)
	courses := []CatalogCourse{
		{
			Course:        Course{ID: id, Prefix: "CS", Number: "1XA3"},
			Prerequisites: RequirementCollection{Type: KindCourse, ClassReference: &id},
		},
	}
	g, err := Build(courses)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	node, _ := g.FindCourseByName("CS 1XA3")
	if g.InitIndegree(node) != 0 {
		t.Fatalf("expected self-reference to be excluded, got indegree %d", g.InitIndegree(node))
	}
}

func TestBuild_BareTopLevelCourseReferenceIsWrapped(t *testing.T) {
	// B's prerequisite tree in the toy catalog is a bare course
	// reference (not wrapped in a collection); the builder must still
	// preserve the bipartite invariant.
	g := newToyGraph(t)
	b, _ := g.FindCourseByName("B 1000")
	for i := 0; i < g.NumNodes(); i++ {
		for _, e := range g.OutEdges(i) {
			if e.To == b && (e.Type == EdgePrerequisite || e.Type == EdgeCorequisite) {
				if g.NodeKind(i) != NodeRequirement {
					t.Fatalf("edge into a course via Prerequisite/Corequisite must originate from a requirement node")
				}
			}
		}
	}
}

func TestCourseGroupSatisfied_SingletonGroupAlwaysSatisfied(t *testing.T) {
	g := newToyGraph(t)
	a, _ := g.FindCourseByName("A 1000")
	if !g.CourseGroupSatisfied(a, map[string]bool{}) {
		t.Fatalf("a course with no group siblings should always be group-satisfied")
	}
}
