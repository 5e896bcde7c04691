package pkg

// seminarCourse is the first-year seminar every undergraduate degree
// carries, and universityCompanions is the fixed whitelist of courses
// that can stand in as its corequisite — a required pairing the
// requirement graph itself cannot express, since the pairing is a
// fact about the seminar course rather than about anything in its own
// catalog entry.
const seminarCourse = "UNIV 1010"

var universityCompanions = map[string]bool{
	"ARHM 1100": true,
	"ATCM 1100": true,
	"BBSU 1100": true,
	"BCOM 1300": true,
	"BIS 1100":  true,
	"ECS 1100":  true,
	"EPPS 1110": true,
	"NATS 1101": true,
	"NATS 1142": true,
	"UNIV 1100": true,
}

// SeminarPolicy pre-filters a semester plan for the seminar pairing
// rule before the plan ever reaches the propagation validator: that
// validator reasons about the requirement graph alone and has no way
// to express "this course requires at least one of these specific
// companions, scheduled in the same semester."
type SeminarPolicy struct {
	seminar    string
	companions map[string]bool
}

// DefaultSeminarPolicy returns the standard seminar/companion pairing.
func DefaultSeminarPolicy() SeminarPolicy {
	return SeminarPolicy{seminar: seminarCourse, companions: universityCompanions}
}

// Strip reports an error if some semester schedules the seminar course
// without a companion course present in that same semester, or
// schedules a companion course without the seminar present — either
// side appearing alone is a violation, the pairing is symmetric.
// Otherwise it returns the semesters with the seminar and its
// companion stripped out, since neither is a real catalog course the
// graph validator can resolve.
func (p SeminarPolicy) Strip(semesters [][]string) ([][]string, error) {
	reduced := make([][]string, len(semesters))
	for i, semester := range semesters {
		hasSeminar := false
		companionCount := 0
		for _, name := range semester {
			if name == p.seminar {
				hasSeminar = true
			}
			if p.companions[name] {
				companionCount++
			}
		}
		if hasSeminar != (companionCount > 0) {
			return nil, errSeminarUnsatisfied()
		}

		var kept []string
		for _, name := range semester {
			if name == p.seminar || p.companions[name] {
				continue
			}
			kept = append(kept, name)
		}
		reduced[i] = kept
	}
	return reduced, nil
}
