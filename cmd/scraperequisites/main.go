package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
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
	outPath      = "scraped_requirements.json"
	requestDelay = 300 * time.Millisecond
)

var reCourseCode = regexp.MustCompile(`([A-Z][A-Z/]+)\s+([0-9][A-Z0-9]+)`)
var reVariantSuffix = regexp.MustCompile(`([0-9])\s*(?:[A-Z]/)+[A-Z]`)

// scrapedCourse is one entry of scraped_requirements.json — the shape
// cmd/loadrequisites reads back in.
type scrapedCourse struct {
	CourseID          pkg.CourseID               `json:"course_id"`
	Prerequisites     pkg.RequirementCollection  `json:"prerequisites"`
	Corequisites      pkg.RequirementCollection  `json:"corequisites"`
	CoOrPrerequisites pkg.RequirementCollection  `json:"co_or_prerequisites"`
}

func main() {
	repo, err := pkg.NewRepository(dbPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer repo.Close()

	// Build a name -> id index so requisite course codes found in page
	// text can be turned into class_reference ids.
	nameToID, err := loadNameIndex(repo)
	if err != nil {
		log.Fatalf("load course index: %v", err)
	}

	rows, err := repo.DB.Query(`
		SELECT c.id, c.prefix, c.number, cc.coid
		FROM courses c
		JOIN course_coids cc ON cc.course_id = c.id
		ORDER BY c.prefix, c.number`)
	if err != nil {
		log.Fatalf("query courses: %v", err)
	}

	type entry struct {
		id     pkg.CourseID
		prefix string
		number string
		coid   int
	}
	var entries []entry
	for rows.Next() {
		var e entry
		if err := rows.Scan(&e.id, &e.prefix, &e.number, &e.coid); err != nil {
			log.Fatalf("scan: %v", err)
		}
		entries = append(entries, e)
	}
	rows.Close()

	log.Printf("scraping requisites for %d courses", len(entries))

	var out []scrapedCourse
	for i, e := range entries {
		log.Printf("[%d/%d] coid=%d %s %s", i+1, len(entries), e.coid, e.prefix, e.number)

		prereqCodes, coreqCodes, err := scrapeCourseRequisites(e.coid)
		if err != nil {
			log.Printf("  scrape error: %v — skipping", err)
			continue
		}

		sc := scrapedCourse{CourseID: e.id}
		sc.Prerequisites = collectionFromCodes(prereqCodes, nameToID)
		sc.Corequisites = collectionFromCodes(coreqCodes, nameToID)
		out = append(out, sc)

		time.Sleep(requestDelay)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Fatalf("marshal output: %v", err)
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		log.Fatalf("write %s: %v", outPath, err)
	}

	log.Printf("done. wrote %d courses to %s", len(out), outPath)
}

func loadNameIndex(repo *pkg.Repository) (map[string]pkg.CourseID, error) {
	rows, err := repo.DB.Query("SELECT id, prefix, number FROM courses")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	idx := map[string]pkg.CourseID{}
	for rows.Next() {
		var id pkg.CourseID
		var prefix, number string
		if err := rows.Scan(&id, &prefix, &number); err != nil {
			return nil, err
		}
		idx[prefix+" "+number] = id
	}
	return idx, rows.Err()
}

// collectionFromCodes wraps every resolvable course code as an
// AND-required collection: McMaster lists requisites comma/and
// separated, meaning all listed courses are required together.
// Unresolvable codes (not yet in the courses table) are silently
// dropped, matching the builder's own policy for unknown references.
func collectionFromCodes(codes []string, nameToID map[string]pkg.CourseID) pkg.RequirementCollection {
	var options []pkg.RequirementCollection
	for _, code := range codes {
		id, ok := nameToID[code]
		if !ok {
			continue
		}
		ref := id
		options = append(options, pkg.RequirementCollection{
			Type:           pkg.KindCourse,
			ClassReference: &ref,
		})
	}
	if len(options) == 0 {
		return pkg.RequirementCollection{}
	}
	required := len(options)
	return pkg.RequirementCollection{
		Type:     pkg.KindCollection,
		Required: &required,
		Options:  options,
	}
}

// scrapeCourseRequisites fetches the detail page for coid and returns
// the raw "PREFIX NUMBER" codes found in its Prerequisite(s) and
// Corequisite(s) blocks. Antirequisite(s) blocks are read only to
// truncate at their boundary — antirequisites have no analog in the
// RequirementCollection model and are discarded.
func scrapeCourseRequisites(coid int) (prereqs, coreqs []string, err error) {
	url := fmt.Sprintf("%s/preview_course.php?catoid=%s&coid=%d", baseURL, catoid, coid)
	doc, err := goquery.NewDocument(url)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	doc.Find("strong").Each(func(_ int, s *goquery.Selection) {
		label := strings.TrimSpace(s.Text())

		var isPrereq, isCoreq bool
		switch {
		case strings.HasPrefix(strings.ToLower(label), "prerequisite"):
			isPrereq = true
		case strings.HasPrefix(strings.ToLower(label), "corequisite"):
			isCoreq = true
		default:
			return
		}

		parentText := strings.TrimSpace(s.Parent().Text())
		labelIdx := strings.Index(parentText, label)
		if labelIdx < 0 {
			return
		}
		reqText := strings.TrimSpace(parentText[labelIdx+len(label):])
		if reqText == "" {
			return
		}

		for _, stopWord := range []string{
			"Prerequisite(s):", "Corequisite(s):", "Antirequisite(s):",
			"Prerequisite:", "Corequisite:", "Antirequisite:",
		} {
			if strings.EqualFold(stopWord, label) {
				continue
			}
			if idx := strings.Index(reqText, stopWord); idx >= 0 {
				reqText = reqText[:idx]
			}
		}

		reqText = reVariantSuffix.ReplaceAllStringFunc(reqText, func(match string) string {
			return string(match[0])
		})

		codes := reCourseCode.FindAllStringSubmatch(reqText, -1)
		for _, m := range codes {
			code := m[1] + " " + m[2]
			if isPrereq {
				prereqs = append(prereqs, code)
			} else if isCoreq {
				coreqs = append(coreqs, code)
			}
		}
	})

	return prereqs, coreqs, nil
}
