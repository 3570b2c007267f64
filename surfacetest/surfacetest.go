// Package surfacetest runs surface contracts under go test.
//
//	func TestSurface(t *testing.T) {
//		surfacetest.RunContract(t, "testdata/sdschooldata.yaml", contract.LoaderPackages)
//	}
//
// Every descriptor becomes a subtest. If the module cannot be loaded the
// test fails once with the load error and no subtests run.
package surfacetest

import (
	"context"
	"testing"

	"github.com/almartin82/sdschooldata/internal/contract"
	"github.com/almartin82/sdschooldata/internal/logger"
	"github.com/almartin82/sdschooldata/internal/surface"
)

// reporter is the part of *testing.T the runner needs.
type reporter interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Run(name string, f func(reporter)) bool
}

type tReporter struct {
	*testing.T
}

func (r tReporter) Run(name string, f func(reporter)) bool {
	return r.T.Run(name, func(t *testing.T) { f(tReporter{t}) })
}

// Run verifies ref with loader.
func Run(t *testing.T, loader surface.Loader, ref string, descs []surface.Descriptor) *surface.Report {
	t.Helper()
	return run(t.Context(), tReporter{t}, loader, ref, descs)
}

// RunContract loads a contract file and verifies it. defaultLoader applies
// when the contract does not name one.
func RunContract(t *testing.T, path, defaultLoader string) *surface.Report {
	t.Helper()
	c, err := contract.Load(path)
	if err != nil {
		t.Fatalf("%v", err)
	}
	job, err := c.Job(defaultLoader)
	if err != nil {
		t.Fatalf("contract %s: %v", path, err)
	}
	return Run(t, job.Loader, job.Ref, job.Descriptors)
}

func run(ctx context.Context, r reporter, loader surface.Loader, ref string, descs []surface.Descriptor) *surface.Report {
	r.Helper()
	report := surface.NewVerifier(loader, logger.GetLogger()).Verify(ctx, ref, descs)
	if report.LoadErr != nil {
		r.Fatalf("%v", report.LoadErr)
		return report
	}
	for _, res := range report.Results {
		r.Run(res.Descriptor.Name, func(r reporter) {
			if res.Err != nil {
				r.Errorf("%v", res.Err)
			}
		})
	}
	return report
}
