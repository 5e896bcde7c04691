package pkg

import "fmt"

// The error taxonomy is a closed set of user errors: the validator
// never panics on well-formed input, and every failure is reported as
// one of these stable, human-readable strings (spec.md §6, §7).

func errInvalidCourse(name string) error {
	return fmt.Errorf("Invalid course found: %s", name)
}

func errSeminarUnsatisfied() error {
	return fmt.Errorf("Missing corequisite for seminar requirement")
}

func errGroupUnsatisfied(name string) error {
	return fmt.Errorf("Found course with unsatisfied group: %s", name)
}

func errUnfulfilledRequirement(name string, remaining int) error {
	return fmt.Errorf("Found course with unfulfilled pre/corequisites: %s (Need %d more requirement(s))", name, remaining)
}
