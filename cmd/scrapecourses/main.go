package main

import (
	"fmt"
	"log"
	"regexp"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/mcmaster-devtools/gradpath/pkg"
)

const (
	baseURL      = "https://academiccalendars.romcmaster.ca"
	catoid       = "58"
	indexNavoid  = "12628"
	dbPath       = "database/courses.db"
	requestDelay = 500 * time.Millisecond
)

// reCourseCode matches patterns like "COMPSCI 2C03", "ART 1HS0".
var reCourseCode = regexp.MustCompile(`([A-Z][A-Z/]+)\s+([0-9][A-Z0-9]+)`)

func main() {
	repo, err := pkg.NewRepository(dbPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer repo.Close()

	log.Println("fetching course index...")
	codes, err := scrapeIndex()
	if err != nil {
		log.Fatalf("scrape index: %v", err)
	}
	log.Printf("found %d course codes", len(codes))

	nextID := pkg.CourseID(1)
	inserted := 0
	for _, code := range codes {
		cc := pkg.CatalogCourse{Course: pkg.Course{ID: nextID, Prefix: code.prefix, Number: code.number}}
		if err := repo.UpsertCourse(cc); err != nil {
			log.Printf("  insert %s %s: %v — skipping", code.prefix, code.number, err)
			continue
		}
		nextID++
		inserted++
		time.Sleep(requestDelay)
	}

	log.Printf("done. inserted %d bare course rows", inserted)
}

type courseCode struct {
	prefix string
	number string
}

func scrapeIndex() ([]courseCode, error) {
	url := fmt.Sprintf("%s/content.php?catoid=%s&navoid=%s", baseURL, catoid, indexNavoid)
	doc, err := goquery.NewDocument(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	seen := map[string]bool{}
	var out []courseCode
	doc.Find(".courseblocktitle, .coursename").Each(func(i int, sel *goquery.Selection) {
		text := sel.Text()
		m := reCourseCode.FindStringSubmatch(text)
		if m == nil {
			return
		}
		key := m[1] + " " + m[2]
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, courseCode{prefix: m[1], number: m[2]})
	})
	return out, nil
}
