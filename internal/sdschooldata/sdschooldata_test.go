package sdschooldata

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/almartin82/sdschooldata/internal/contract"
	"github.com/almartin82/sdschooldata/internal/surface"
	"github.com/almartin82/sdschooldata/surfacetest"
)

func TestWrapperSurface(t *testing.T) {
	report := surfacetest.Run(t, &surface.ASTLoader{Root: "testdata"}, "wrapper", Descriptors())

	assert.True(t, report.Passed())
}

func TestWrapperSurfaceContract(t *testing.T) {
	report := surfacetest.RunContract(t, "testdata/sdschooldata.yaml", contract.LoaderPackages)

	assert.Equal(t, "ast", report.Loader)
	assert.Len(t, report.Results, 3)
}

func TestWrapperSurfaceTypeChecked(t *testing.T) {
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go toolchain not available")
	}

	report := surfacetest.Run(t, &surface.PackagesLoader{Dir: "testdata/wrapper"}, ".", Descriptors())

	assert.Equal(t, "packages", report.Loader)
	version := report.Results[2].Symbol
	if assert.NotNil(t, version) {
		assert.True(t, surface.SemVer.Apply(*version))
	}
}

func TestBindingSurface(t *testing.T) {
	reg := surface.NewRegistry()
	reg.Register("pysdschooldata", map[string]any{
		"fetch_enr":           func(endYear int, tidy, useCache bool) ([]map[string]any, error) { return nil, nil },
		"get_available_years": func() ([]int, error) { return nil, nil },
		"__version__":         "0.1.0",
	})

	surfacetest.Run(t, reg, "pysdschooldata", BindingDescriptors())
}
