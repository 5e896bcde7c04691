package pkg

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is the production CatalogSource, backed by a
// pgxpool connection pool. It implements the same CatalogSource
// interface as Repository with the same query shapes, translated to
// pgx's positional ($1, $2, ...) placeholder style.
type PostgresRepository struct {
	Pool *pgxpool.Pool
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS courses (
	id     BIGINT PRIMARY KEY,
	prefix TEXT NOT NULL,
	number TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS course_requirements (
	course_id           BIGINT PRIMARY KEY REFERENCES courses(id),
	prerequisites       JSONB NOT NULL DEFAULT '{}',
	corequisites        JSONB NOT NULL DEFAULT '{}',
	co_or_prerequisites JSONB NOT NULL DEFAULT '{}'
);
`

// NewPostgresRepository connects to connString and ensures the catalog
// schema exists.
func NewPostgresRepository(ctx context.Context, connString string) (*PostgresRepository, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("cannot ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("cannot create schema: %w", err)
	}
	return &PostgresRepository{Pool: pool}, nil
}

func (r *PostgresRepository) Close() error {
	r.Pool.Close()
	return nil
}

func (r *PostgresRepository) LoadCourses() ([]CatalogCourse, error) {
	ctx := context.Background()
	rows, err := r.Pool.Query(ctx, `
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
		var prereq, coreq, coOrPrereq []byte
		if err := rows.Scan(&cc.ID, &cc.Prefix, &cc.Number, &prereq, &coreq, &coOrPrereq); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(prereq, &cc.Prerequisites); err != nil {
			return nil, fmt.Errorf("course %d: decode prerequisites: %w", cc.ID, err)
		}
		if err := json.Unmarshal(coreq, &cc.Corequisites); err != nil {
			return nil, fmt.Errorf("course %d: decode corequisites: %w", cc.ID, err)
		}
		if err := json.Unmarshal(coOrPrereq, &cc.CoOrPrerequisites); err != nil {
			return nil, fmt.Errorf("course %d: decode co_or_prerequisites: %w", cc.ID, err)
		}
		out = append(out, cc)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) SearchCourses(q string, limit, offset int) ([]Course, int, error) {
	ctx := context.Background()
	tokens := strings.Fields(strings.TrimSpace(q))

	var whereParts []string
	var args []interface{}
	for _, tok := range tokens {
		pat := "%" + tok + "%"
		args = append(args, pat)
		whereParts = append(whereParts,
			fmt.Sprintf("(prefix ILIKE $%d OR number ILIKE $%d)", len(args), len(args)))
	}

	where := ""
	if len(whereParts) > 0 {
		where = "WHERE " + strings.Join(whereParts, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM courses %s", where)
	var total int
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}

	pageArgs := append([]interface{}{}, args...)
	pageQuery := fmt.Sprintf("SELECT id, prefix, number FROM courses %s ORDER BY prefix, number", where)
	if limit > 0 {
		pageArgs = append(pageArgs, limit, offset)
		pageQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(pageArgs)-1, len(pageArgs))
	}

	rows, err := r.Pool.Query(ctx, pageQuery, pageArgs...)
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

func (r *PostgresRepository) GetCourseByID(id CourseID) (*Course, error) {
	ctx := context.Background()
	var c Course
	err := r.Pool.QueryRow(ctx, "SELECT id, prefix, number FROM courses WHERE id = $1", id).
		Scan(&c.ID, &c.Prefix, &c.Number)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpsertCourse inserts or replaces a course's catalog row, for the
// load pipeline when it targets a production database.
func (r *PostgresRepository) UpsertCourse(cc CatalogCourse) error {
	ctx := context.Background()
	if _, err := r.Pool.Exec(ctx,
		`INSERT INTO courses (id, prefix, number) VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET prefix = EXCLUDED.prefix, number = EXCLUDED.number`,
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

	_, err = r.Pool.Exec(ctx, `
		INSERT INTO course_requirements (course_id, prerequisites, corequisites, co_or_prerequisites)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (course_id) DO UPDATE SET
			prerequisites = EXCLUDED.prerequisites,
			corequisites = EXCLUDED.corequisites,
			co_or_prerequisites = EXCLUDED.co_or_prerequisites`,
		cc.ID, prereq, coreq, coOrPrereq)
	if err != nil {
		return fmt.Errorf("upsert course_requirements %d: %w", cc.ID, err)
	}
	return nil
}
