package pkg

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------------
// ValidateHandler — POST /validate
// Body: {"semesters": [["CS 1337"], ["CS 2337", "CS 2305"]], "bypasses": ["MATH 1337"]}
// Responds 200 with {"is_valid": bool, "invalid_reason": string} for every
// well-formed POST; a non-POST method (405) and a malformed body (400) are
// the only non-200 responses.
// ---------------------------------------------------------------------------
type validateRequest struct {
	Semesters [][]string `json:"semesters"`
	Bypasses  []string   `json:"bypasses"`
}

type validateResponse struct {
	IsValid       bool   `json:"is_valid"`
	InvalidReason string `json:"invalid_reason"`
}

func ValidateHandler(v *Validator, seminar SeminarPolicy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req validateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		resp := validateResponse{IsValid: true}
		if reduced, err := seminar.Strip(req.Semesters); err != nil {
			resp.IsValid = false
			resp.InvalidReason = err.Error()
		} else if err := v.Validate(reduced, req.Bypasses); err != nil {
			resp.IsValid = false
			resp.InvalidReason = err.Error()
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

// ---------------------------------------------------------------------------
// CoursesHandler — GET /api/courses?q=&limit=&offset=
// ---------------------------------------------------------------------------
func CoursesHandler(source CatalogSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		q := r.URL.Query().Get("q")
		limit := 50
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}
		offset := 0
		if v := r.URL.Query().Get("offset"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				offset = n
			}
		}

		courses, total, err := source.SearchCourses(q, limit, offset)
		if err != nil {
			http.Error(w, "failed to search courses", http.StatusInternalServerError)
			return
		}
		if courses == nil {
			courses = []Course{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(struct {
			Courses []Course `json:"courses"`
			Total   int      `json:"total"`
		}{courses, total})
	}
}

// ---------------------------------------------------------------------------
// CourseHandler — GET /api/courses/{id}
// ---------------------------------------------------------------------------
func CourseHandler(source CatalogSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		idStr := strings.TrimPrefix(r.URL.Path, "/api/courses/")
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			http.Error(w, "invalid course id", http.StatusBadRequest)
			return
		}

		course, err := source.GetCourseByID(CourseID(id))
		if err != nil {
			http.Error(w, "failed to fetch course", http.StatusInternalServerError)
			return
		}
		if course == nil {
			http.Error(w, "course not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(course)
	}
}
