package main

import (
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/mcmaster-devtools/gradpath/pkg"
)

const (
	baseURL      = "https://academiccalendars.romcmaster.ca"
	catoid       = "58"
	dbPath       = "database/courses.db"
	requestDelay = 400 * time.Millisecond
)

// reCoid extracts the numeric coid from a preview_course.php URL, e.g.
// "preview_course.php?catoid=58&coid=123456" -> "123456".
var reCoid = regexp.MustCompile(`[?&]coid=(\d+)`)

// course_coids maps our internal CourseID to the calendar site's own
// coid, which cmd/scraperequisites needs to fetch a course's detail
// page. It is a side table rather than a column on courses because
// not every CatalogSource needs it — only the scrape pipeline does.
const coidSchema = `
CREATE TABLE IF NOT EXISTS course_coids (
	course_id INTEGER PRIMARY KEY REFERENCES courses(id),
	coid      INTEGER NOT NULL
);
`

func main() {
	repo, err := pkg.NewRepository(dbPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer repo.Close()

	if _, err := repo.DB.Exec(coidSchema); err != nil {
		log.Fatalf("create course_coids table: %v", err)
	}

	rows, err := repo.DB.Query(`
		SELECT c.id, c.prefix, c.number
		FROM courses c
		LEFT JOIN course_coids cc ON cc.course_id = c.id
		WHERE cc.course_id IS NULL
		ORDER BY c.prefix, c.number`)
	if err != nil {
		log.Fatalf("query courses: %v", err)
	}

	type entry struct {
		id     int64
		prefix string
		number string
	}
	var entries []entry
	for rows.Next() {
		var e entry
		if err := rows.Scan(&e.id, &e.prefix, &e.number); err != nil {
			log.Fatalf("scan course: %v", err)
		}
		entries = append(entries, e)
	}
	rows.Close()

	log.Printf("resolving coids for %d courses", len(entries))
	resolved := 0
	for i, e := range entries {
		log.Printf("[%d/%d] %s %s", i+1, len(entries), e.prefix, e.number)

		coid, err := searchCoid(e.prefix, e.number)
		if err != nil {
			log.Printf("  search error: %v — skipping", err)
			continue
		}
		if coid == "" {
			log.Printf("  no match found — skipping")
			continue
		}

		if _, err := repo.DB.Exec(
			"INSERT OR REPLACE INTO course_coids (course_id, coid) VALUES (?, ?)",
			e.id, coid); err != nil {
			log.Printf("  store coid: %v — skipping", err)
			continue
		}
		resolved++
		time.Sleep(requestDelay)
	}

	log.Printf("done. resolved %d/%d coids", resolved, len(entries))
}

func searchCoid(prefix, number string) (string, error) {
	query := url.QueryEscape(prefix + " " + number)
	searchURL := fmt.Sprintf("%s/search_advanced.php?catoid=%s&search_database=Search&cpage_nr=1&filter[keyword]=%s",
		baseURL, catoid, query)

	doc, err := goquery.NewDocument(searchURL)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", searchURL, err)
	}

	var coid string
	doc.Find("a[href*='preview_course.php']").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		href, ok := sel.Attr("href")
		if !ok {
			return true
		}
		if !strings.Contains(sel.Text(), prefix+" "+number) {
			return true
		}
		if m := reCoid.FindStringSubmatch(href); m != nil {
			coid = m[1]
			return false
		}
		return true
	})
	return coid, nil
}
