package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/mcmaster-devtools/gradpath/pkg"
)

const (
	dbPath  = "database/courses.db"
	srcPath = "scraped_requirements.json"
)

type scrapedCourse struct {
	CourseID          pkg.CourseID              `json:"course_id"`
	Prerequisites     pkg.RequirementCollection `json:"prerequisites"`
	Corequisites      pkg.RequirementCollection `json:"corequisites"`
	CoOrPrerequisites pkg.RequirementCollection `json:"co_or_prerequisites"`
}

func main() {
	repo, err := pkg.NewRepository(dbPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer repo.Close()

	data, err := os.ReadFile(srcPath)
	if err != nil {
		log.Fatalf("read %s: %v", srcPath, err)
	}

	var scraped []scrapedCourse
	if err := json.Unmarshal(data, &scraped); err != nil {
		log.Fatalf("parse %s: %v", srcPath, err)
	}

	successCount := 0
	for _, sc := range scraped {
		course, err := repo.GetCourseByID(sc.CourseID)
		if err != nil {
			log.Printf("lookup course %d: %v — skipping", sc.CourseID, err)
			continue
		}
		if course == nil {
			log.Printf("course %d not found — skipping", sc.CourseID)
			continue
		}

		cc := pkg.CatalogCourse{
			Course:            *course,
			Prerequisites:     sc.Prerequisites,
			Corequisites:      sc.Corequisites,
			CoOrPrerequisites: sc.CoOrPrerequisites,
		}
		if err := repo.UpsertCourse(cc); err != nil {
			log.Printf("upsert course %d: %v — skipping", sc.CourseID, err)
			continue
		}
		successCount++
	}

	log.Printf("successfully loaded %d course requirement trees into the database", successCount)
}
