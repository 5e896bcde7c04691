package pkg

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// CatalogSource is whatever the validator's catalog is loaded from. Two
// implementations exist: Repository (SQLite, local/dev) and
// PostgresRepository (production). Both read the same two-table shape:
// a courses table and a course_requirements table carrying the three
// RequirementCollection trees as JSON.
type CatalogSource interface {
	LoadCourses() ([]CatalogCourse, error)
	SearchCourses(q string, limit, offset int) ([]Course, int, error)
	GetCourseByID(id CourseID) (*Course, error)
	Close() error
}

// Repository is the SQLite-backed CatalogSource, used for local
// development and for the scrape/load pipeline that populates a
// catalog from the McMaster calendar.
type Repository struct {
	DB *sql.DB
}

// courseSchema creates the two tables a CatalogSource reads from, if
// they do not already exist. cmd/loadrequisites runs this against a
// fresh database file before inserting scraped data.
const courseSchema = `
CREATE TABLE IF NOT EXISTS courses (
	id     INTEGER PRIMARY KEY,
	prefix TEXT NOT NULL,
	number TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS course_requirements (
	course_id            INTEGER PRIMARY KEY REFERENCES courses(id),
	prerequisites        TEXT NOT NULL DEFAULT '{}',
	corequisites         TEXT NOT NULL DEFAULT '{}',
	co_or_prerequisites  TEXT NOT NULL DEFAULT '{}'
);
`

// NewRepository opens (or creates) the sqlite file at dbPath and
// ensures the catalog schema exists.
func NewRepository(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot connect to db: %w", err)
	}
	if _, err := db.Exec(courseSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot create schema: %w", err)
	}
	return &Repository{DB: db}, nil
}

func (r *Repository) Close() error {
	return r.DB.Close()
}

// LoadCourses reads every course and its requirement trees, for
// Build to assemble into a Graph at startup.
func (r *Repository) LoadCourses() ([]CatalogCourse, error) {
	rows, err := r.DB.Query(`
		SELECT c.id, c.prefix, c.number,
		       COALESCE(cr.prerequisites, '{}'),
		       COALESCE(cr.corequisites, '{}'),
		       COALESCE(cr.co_or_prerequisites, '{}')
		FROM courses c
		LEFT JOIN course_requirements cr ON cr.course_id = c.id
		ORDER BY c.id`)
	if err != nil {
		return nil, fmt.Errorf("load courses: %w", err)
	}
	defer rows.Close()

	var out []CatalogCourse
	for rows.Next() {
		var cc CatalogCourse
		var prereq, coreq, coOrPrereq string
		if err := rows.Scan(&cc.ID, &cc.Prefix, &cc.Number, &prereq, &coreq, &coOrPrereq); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(prereq), &cc.Prerequisites); err != nil {
			return nil, fmt.Errorf("course %d: decode prerequisites: %w", cc.ID, err)
		}
		if err := json.Unmarshal([]byte(coreq), &cc.Corequisites); err != nil {
			return nil, fmt.Errorf("course %d: decode corequisites: %w", cc.ID, err)
		}
		if err := json.Unmarshal([]byte(coOrPrereq), &cc.CoOrPrerequisites); err != nil {
			return nil, fmt.Errorf("course %d: decode co_or_prerequisites: %w", cc.ID, err)
		}
		out = append(out, cc)
	}
	return out, rows.Err()
}

// SearchCourses filters on prefix/number, one AND'd LIKE per token, and
// returns a page of results plus the total match count for pagination.
func (r *Repository) SearchCourses(q string, limit, offset int) ([]Course, int, error) {
	tokens := strings.Fields(strings.TrimSpace(q))

	var whereParts []string
	var args []interface{}
	for _, tok := range tokens {
		pat := "%" + tok + "%"
		whereParts = append(whereParts, "(prefix LIKE ? OR number LIKE ?)")
		args = append(args, pat, pat)
	}

	where := ""
	if len(whereParts) > 0 {
		where = "WHERE " + strings.Join(whereParts, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM courses %s", where)
	var total int
	if err := r.DB.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}

	pageArgs := append([]interface{}{}, args...)
	pageQuery := fmt.Sprintf(
		"SELECT id, prefix, number FROM courses %s ORDER BY prefix, number", where)
	if limit > 0 {
		pageQuery += " LIMIT ? OFFSET ?"
		pageArgs = append(pageArgs, limit, offset)
	}

	rows, err := r.DB.Query(pageQuery, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("search courses: %w", err)
	}
	defer rows.Close()

	out := []Course{}
	for rows.Next() {
		var c Course
		if err := rows.Scan(&c.ID, &c.Prefix, &c.Number); err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

// GetCourseByID returns nil, nil when no such course exists.
func (r *Repository) GetCourseByID(id CourseID) (*Course, error) {
	var c Course
	err := r.DB.QueryRow("SELECT id, prefix, number FROM courses WHERE id = ?", id).
		Scan(&c.ID, &c.Prefix, &c.Number)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpsertCourse inserts or replaces a course's catalog row, for the
// load pipeline (cmd/loadrequisites).
func (r *Repository) UpsertCourse(cc CatalogCourse) error {
	if _, err := r.DB.Exec(
		"INSERT OR REPLACE INTO courses (id, prefix, number) VALUES (?, ?, ?)",
		cc.ID, cc.Prefix, cc.Number); err != nil {
		return fmt.Errorf("upsert course %d: %w", cc.ID, err)
	}

	prereq, err := json.Marshal(cc.Prerequisites)
	if err != nil {
		return err
	}
	coreq, err := json.Marshal(cc.Corequisites)
	if err != nil {
		return err
	}
	coOrPrereq, err := json.Marshal(cc.CoOrPrerequisites)
	if err != nil {
		return err
	}

	_, err = r.DB.Exec(`
		INSERT OR REPLACE INTO course_requirements
			(course_id, prerequisites, corequisites, co_or_prerequisites)
		VALUES (?, ?, ?, ?)`,
		cc.ID, string(prereq), string(coreq), string(coOrPrereq))
	if err != nil {
		return fmt.Errorf("upsert course_requirements %d: %w", cc.ID, err)
	}
	return nil
}
