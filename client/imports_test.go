package client

import (
	"go/parser"
	"go/token"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The companion binary links this package, so it must stay clear of the
// server-side packages and their database drivers.
func TestClientStaysOffServerPackages(t *testing.T) {
	files, err := filepath.Glob("*.go")
	require.NoError(t, err)

	fset := token.NewFileSet()
	for _, name := range files {
		if strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, name, nil, parser.ImportsOnly)
		require.NoError(t, err)
		for _, imp := range f.Imports {
			path, err := strconv.Unquote(imp.Path.Value)
			require.NoError(t, err)
			for _, banned := range []string{
				"uzazi-salama-backend/service",
				"uzazi-salama-backend/repository",
				"uzazi-salama-backend/handlers",
				"github.com/jackc/pgx/v5",
				"github.com/go-redis/redis/v8",
			} {
				assert.False(t, strings.HasPrefix(path, banned), "%s imports %s", name, path)
			}
		}
	}
}
