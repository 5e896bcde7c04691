package pkg

import "testing"

// Literal scenarios 1-6 from the testable-properties catalog (7 and 8
// are in seminar_test.go): B.prereq = A; C.coreq = A;
// D.prereq = 2-of-{A, B, C}.

func TestValidate_Scenario1_SingleCourseNoRequirements(t *testing.T) {
	g := newToyGraph(t)
	v := NewValidator(g)
	if err := v.Validate([][]string{{"A 1000"}}, nil); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
}

func TestValidate_Scenario2_MissingPrereq(t *testing.T) {
	g := newToyGraph(t)
	v := NewValidator(g)
	err := v.Validate([][]string{{"B 1000"}}, nil)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	want := "Found course with unfulfilled pre/corequisites: B 1000 (Need 1 more requirement(s))"
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
}

func TestValidate_Scenario3_PrereqInEarlierSemester(t *testing.T) {
	g := newToyGraph(t)
	v := NewValidator(g)
	if err := v.Validate([][]string{{"A 1000"}, {"B 1000"}}, nil); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
}

func TestValidate_Scenario4_CoreqSameSemester(t *testing.T) {
	g := newToyGraph(t)
	v := NewValidator(g)
	if err := v.Validate([][]string{{"A 1000", "C 1000"}}, nil); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
}

func TestValidate_Scenario5_TwoOfThreeRequirement(t *testing.T) {
	g := newToyGraph(t)
	v := NewValidator(g)
	if err := v.Validate([][]string{{"A 1000", "B 1000"}, {"D 1000"}}, nil); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
}

func TestValidate_Scenario6_UnknownCourse(t *testing.T) {
	g := newToyGraph(t)
	v := NewValidator(g)
	err := v.Validate([][]string{{"Z 9999"}}, nil)
	if err == nil || err.Error() != "Invalid course found: Z 9999" {
		t.Fatalf("got %v, want Invalid course found: Z 9999", err)
	}
}

func TestValidate_OrderSensitivity(t *testing.T) {
	g := newToyGraph(t)
	v := NewValidator(g)
	if err := v.Validate([][]string{{"A 1000"}, {"B 1000"}}, nil); err != nil {
		t.Fatalf("A then B expected ok, got %v", err)
	}
	if err := v.Validate([][]string{{"B 1000"}, {"A 1000"}}, nil); err == nil {
		t.Fatalf("B then A expected an error")
	}
}

func TestValidate_EmptyPlanIsOk(t *testing.T) {
	g := newToyGraph(t)
	v := NewValidator(g)
	if err := v.Validate([][]string{{}}, nil); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
}

func TestValidate_Monotonicity(t *testing.T) {
	g := newToyGraph(t)
	v := NewValidator(g)
	if err := v.Validate([][]string{{"A 1000"}, {"B 1000"}}, nil); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := v.Validate([][]string{{"A 1000"}, {"B 1000"}}, []string{"C 1000"}); err != nil {
		t.Fatalf("adding a bypass should not break validity, got %v", err)
	}
}

func TestValidate_Idempotent(t *testing.T) {
	g := newToyGraph(t)
	v := NewValidator(g)
	semesters := [][]string{{"A 1000", "B 1000"}, {"D 1000"}}
	err1 := v.Validate(semesters, nil)
	err2 := v.Validate(semesters, nil)
	if (err1 == nil) != (err2 == nil) {
		t.Fatalf("expected identical results across calls, got %v then %v", err1, err2)
	}
}
