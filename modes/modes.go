package modes

import (
	"testing"

	"github.com/reusee/dscope"
)

// Mode tells providers whether they serve the command or a test.
// In development mode nets bypasses proxies.
type Mode uint8

const (
	ModeProduction Mode = iota + 1
	ModeDevelopment
)

func (m Mode) String() string {
	switch m {
	case ModeProduction:
		return "production"
	case ModeDevelopment:
		return "development"
	}
	return "unknown"
}

type Production struct {
	dscope.Module
}

func ForProduction() Production {
	return Production{}
}

func (Production) Mode() Mode {
	return ModeProduction
}

func (Production) T() *testing.T {
	return nil
}

type Test struct {
	dscope.Module
	t *testing.T
}

func ForTest(t *testing.T) Test {
	return Test{
		t: t,
	}
}

func (m Test) Mode() Mode {
	return ModeDevelopment
}

func (m Test) T() *testing.T {
	return m.t
}
