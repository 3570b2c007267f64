package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almartin82/sdschooldata/internal/surface"
	"github.com/almartin82/sdschooldata/internal/workspace"
)

const sdschooldataContract = `module: ./wrapper
loader: ast
symbols:
  - name: FetchEnr
    kind: function
  - name: GetAvailableYears
    kind: function
  - name: Version
    kind: value
    predicate: string
`

func Test_Parse(t *testing.T) {
	c, err := Parse([]byte(sdschooldataContract))
	require.NoError(t, err)

	assert.Equal(t, "./wrapper", c.Module)
	assert.Equal(t, LoaderAST, c.Loader)
	require.Len(t, c.Symbols, 3)

	descs, err := c.Descriptors()
	require.NoError(t, err)
	assert.Equal(t, surface.Func("FetchEnr"), descs[0])
	assert.Equal(t, surface.KindFunction, descs[1].Kind)
	assert.Equal(t, surface.Value("Version", surface.IsString), descs[2])
}

func Test_Parse_validation(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		contains []string
	}{
		{
			name:     "missing module and symbols",
			doc:      "loader: ast\n",
			contains: []string{"module is required", "at least one symbol"},
		},
		{
			name:     "unknown loader",
			doc:      "module: x\nloader: python\nsymbols:\n  - {name: A, kind: value}\n",
			contains: []string{`unknown loader "python"`},
		},
		{
			name:     "bad kind and predicate",
			doc:      "module: x\nsymbols:\n  - {name: A, kind: class}\n  - {name: C, kind: const}\n  - {name: B, kind: value, predicate: callable}\n",
			contains: []string{`unknown symbol kind "class"`, `unknown symbol kind "const"`, `unknown predicate "callable"`, "known: bool, int"},
		},
		{
			name:     "duplicate and empty names",
			doc:      "module: x\nsymbols:\n  - {name: A, kind: value}\n  - {name: A, kind: value}\n  - {name: '', kind: value}\n",
			contains: []string{`duplicate symbol "A"`, "symbols[2]: name is required"},
		},
		{
			name:     "not yaml",
			doc:      "module: [unterminated",
			contains: []string{"yaml"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func Test_Load_resolvesDirAgainstFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "contracts", "sdschooldata.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(sdschooldataContract+"dir: ..\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, root, c.Dir)
	assert.Equal(t, path, c.Source)

	_, err = Load(filepath.Join(root, "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read contract file")
}

func Test_LoadFrom_workspace(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "surface.yaml"), []byte(sdschooldataContract), 0o644))

	c, err := LoadFrom(workspace.NewFSReader(root), root, "surface.yaml")
	require.NoError(t, err)
	assert.Equal(t, root, c.Dir)

	_, err = LoadFrom(workspace.NewFSReader(root), root, "../elsewhere.yaml")
	assert.ErrorContains(t, err, "outside project root")
}

func Test_Contract_Job(t *testing.T) {
	c, err := Parse([]byte(sdschooldataContract))
	require.NoError(t, err)
	c.Dir = "/src"

	job, err := c.Job(LoaderPackages)
	require.NoError(t, err)
	assert.Equal(t, "./wrapper", job.Ref)
	assert.Len(t, job.Descriptors, 3)
	assert.Equal(t, &surface.ASTLoader{Root: "/src"}, job.Loader)

	c.Loader = ""
	job, err = c.Job(LoaderPackages)
	require.NoError(t, err)
	assert.Equal(t, &surface.PackagesLoader{Dir: "/src"}, job.Loader)

	_, err = NewLoader("python", "/src")
	assert.Error(t, err)
}
