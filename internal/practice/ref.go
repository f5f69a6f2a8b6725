package practice

import (
	"strconv"
	"strings"

	"github.com/lshigami/lawdesk/internal/apperror"
)

const (
	// Prefix marks a test id as a synthetic practice test.
	Prefix        = "mock-"
	AttemptPrefix = "mock-attempt-"
)

// TestRef is a test id resolved at the HTTP boundary. It is either a
// PersistedRef or a PracticeRef.
type TestRef interface {
	isTestRef()
}

// PersistedRef addresses a test row in the store.
type PersistedRef struct {
	ID uint
}

// PracticeRef addresses a catalog test. It never touches the store.
type PracticeRef struct {
	Test *Test
}

func (PersistedRef) isTestRef() {}
func (PracticeRef) isTestRef()  {}

// Resolve turns a raw path id into a TestRef. Ids that are neither numeric
// nor a known practice slug are reported as a missing test.
func (c *Catalog) Resolve(raw string) (TestRef, error) {
	if slug, ok := strings.CutPrefix(raw, Prefix); ok {
		t, found := c.Get(slug)
		if !found {
			return nil, apperror.NotFound("Test")
		}
		return PracticeRef{Test: t}, nil
	}

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return nil, apperror.NotFound("Test")
	}
	return PersistedRef{ID: uint(id)}, nil
}
