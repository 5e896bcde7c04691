package main

import (
	"log"
	"net/http"
	"time"

	"github.com/mcmaster-devtools/gradpath/pkg"
)

func main() {
	cfg := pkg.LoadConfig()

	source, err := cfg.OpenCatalogSource()
	if err != nil {
		log.Fatalf("failed to open catalog source: %v", err)
	}
	defer source.Close()

	courses, err := source.LoadCourses()
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}

	graph, err := pkg.Build(courses)
	if err != nil {
		log.Fatalf("failed to build requirement graph: %v", err)
	}

	validator := pkg.NewValidator(graph)
	seminar := pkg.DefaultSeminarPolicy()

	// --- Validation route ---
	http.HandleFunc("/validate", pkg.ValidateHandler(validator, seminar))

	// --- Course routes (public) ---
	http.HandleFunc("/api/courses", pkg.CoursesHandler(source))
	http.HandleFunc("/api/courses/", pkg.CourseHandler(source))

	srv := &http.Server{
		Addr:         cfg.Addr,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("starting server on %s (catalog=%d courses, driver=%s)", cfg.Addr, len(courses), cfg.DatabaseDriver)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
