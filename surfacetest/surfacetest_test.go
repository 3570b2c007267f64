package surfacetest

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almartin82/sdschooldata/internal/surface"
)

// recorder captures failures instead of failing the enclosing test.
type recorder struct {
	name     string
	fatals   []string
	errors   []string
	subtests []*recorder
}

func (r *recorder) Helper() {}

func (r *recorder) Fatalf(format string, args ...any) {
	r.fatals = append(r.fatals, fmt.Sprintf(format, args...))
}

func (r *recorder) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recorder) Run(name string, f func(reporter)) bool {
	sub := &recorder{name: name}
	r.subtests = append(r.subtests, sub)
	f(sub)
	return len(sub.errors) == 0 && len(sub.fatals) == 0
}

type noModule struct{}

func (noModule) Name() string { return "none" }

func (noModule) Load(context.Context, string) (surface.Module, error) {
	return nil, errors.New("no module named pysdschooldata")
}

var wrapperDescriptors = []surface.Descriptor{
	surface.Func("fetch_enr"),
	surface.Func("get_available_years"),
	surface.Value("__version__", surface.IsString),
}

func Test_run_subtestPerDescriptor(t *testing.T) {
	reg := surface.NewRegistry()
	reg.Register("pysdschooldata", map[string]any{
		"fetch_enr":   func(int) error { return nil },
		"__version__": "1.2.0",
	})
	rec := &recorder{}

	report := run(context.Background(), rec, reg, "pysdschooldata", wrapperDescriptors)

	assert.False(t, report.Passed())
	assert.Empty(t, rec.fatals)
	require.Len(t, rec.subtests, 3)
	assert.Equal(t, "fetch_enr", rec.subtests[0].name)
	assert.Empty(t, rec.subtests[0].errors)
	require.Len(t, rec.subtests[1].errors, 1)
	assert.Contains(t, rec.subtests[1].errors[0], `"get_available_years" not found`)
	assert.Empty(t, rec.subtests[2].errors)
}

func Test_run_loadFailureReportedOnce(t *testing.T) {
	rec := &recorder{}

	report := run(context.Background(), rec, noModule{}, "pysdschooldata", wrapperDescriptors)

	require.NotNil(t, report.LoadErr)
	require.Len(t, rec.fatals, 1)
	assert.Contains(t, rec.fatals[0], "no module named pysdschooldata")
	assert.Empty(t, rec.subtests)
}

func Test_Run_registry(t *testing.T) {
	reg := surface.NewRegistry()
	reg.Register("pysdschooldata", map[string]any{
		"fetch_enr":           func(int) error { return nil },
		"get_available_years": func() []int { return nil },
		"__version__":         "1.2.0",
	})

	report := Run(t, reg, "pysdschooldata", wrapperDescriptors)

	assert.True(t, report.Passed())
}
