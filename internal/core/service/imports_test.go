package service

import (
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// The core packages depend on nothing outside internal/core and internal/pkg.
func TestCoreImportsStayInward(t *testing.T) {
	const module = "github.com/Harsha6202/personalized-news-sentiment/"
	root := filepath.Join("..")
	fset := token.NewFileSet()

	checked := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".go") {
			return err
		}
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		checked++
		for _, imp := range f.Imports {
			p, _ := strconv.Unquote(imp.Path.Value)
			if !strings.HasPrefix(p, module) {
				continue
			}
			rel := strings.TrimPrefix(p, module)
			if !strings.HasPrefix(rel, "internal/core/") && !strings.HasPrefix(rel, "internal/pkg/") {
				t.Errorf("%s imports %s", path, p)
			}
		}
		return nil
	})
	require.NoError(t, err)
	require.NotZero(t, checked)
}
