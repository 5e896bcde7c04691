package pkg

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func TestValidateHandler_Scenario1_SingleCourse(t *testing.T) {
	g := newToyGraph(t)
	v := NewValidator(g)
	seminar := DefaultSeminarPolicy()

	body, _ := json.Marshal(validateRequest{Semesters: [][]string{{"A 1000"}}})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/validate", bytes.NewReader(body))
	ValidateHandler(v, seminar).ServeHTTP(rr, req)

	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp validateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.IsValid {
		t.Fatalf("expected is_valid=true, got reason %q", resp.InvalidReason)
	}
}

func TestValidateHandler_Scenario2_UnfulfilledPrereq(t *testing.T) {
	g := newToyGraph(t)
	v := NewValidator(g)
	seminar := DefaultSeminarPolicy()

	body, _ := json.Marshal(validateRequest{Semesters: [][]string{{"B 1000"}}})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/validate", bytes.NewReader(body))
	ValidateHandler(v, seminar).ServeHTTP(rr, req)

	if rr.Code != 200 {
		t.Fatalf("validate always responds 200, got %d", rr.Code)
	}
	var resp validateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.IsValid {
		t.Fatalf("expected is_valid=false")
	}
	want := "Found course with unfulfilled pre/corequisites: B 1000 (Need 1 more requirement(s))"
	if resp.InvalidReason != want {
		t.Fatalf("got reason %q, want %q", resp.InvalidReason, want)
	}
}

func TestValidateHandler_RejectsNonPost(t *testing.T) {
	g := newToyGraph(t)
	v := NewValidator(g)
	seminar := DefaultSeminarPolicy()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/validate", nil)
	ValidateHandler(v, seminar).ServeHTTP(rr, req)

	if rr.Code != 405 {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
}

func TestValidateHandler_RejectsMalformedBody(t *testing.T) {
	g := newToyGraph(t)
	v := NewValidator(g)
	seminar := DefaultSeminarPolicy()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/validate", bytes.NewReader([]byte("not json")))
	ValidateHandler(v, seminar).ServeHTTP(rr, req)

	if rr.Code != 400 {
		t.Fatalf("expected 400 for malformed body, got %d", rr.Code)
	}
}

func TestCoursesHandler_SearchAndPaginate(t *testing.T) {
	repo := newTestRepository(t)
	defer repo.Close()

	for i, number := range []string{"1000", "1001"} {
		if err := repo.UpsertCourse(CatalogCourse{Course: Course{ID: CourseID(i + 1), Prefix: "CS", Number: number}}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/courses?q=CS", nil)
	CoursesHandler(repo).ServeHTTP(rr, req)

	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Courses []Course `json:"courses"`
		Total   int      `json:"total"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 2 {
		t.Fatalf("expected 2 total matches, got %d", resp.Total)
	}
}

func TestCourseHandler_NotFound(t *testing.T) {
	repo := newTestRepository(t)
	defer repo.Close()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/courses/999", nil)
	CourseHandler(repo).ServeHTTP(rr, req)

	if rr.Code != 404 {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}
