package gen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBackend renders a fixed file set so generator plumbing can be tested
// without the real emitters.
type stubBackend struct {
	name    string
	out     string
	support string
	statics []string
	files   []File
	err     error
}

func (b *stubBackend) Name() string           { return b.name }
func (b *stubBackend) OutDir() string         { return b.out }
func (b *stubBackend) SupportDir() string     { return b.support }
func (b *stubBackend) SupportFiles() []string { return b.statics }
func (b *stubBackend) Files(*Graph) ([]File, error) {
	return b.files, b.err
}

func fullConfig(t *testing.T, javaOut, cppOut string) *Config {
	t.Helper()
	cfg, err := NewConfig(
		WithJavaOut(javaOut),
		WithCppOut(cppOut),
		WithJavaPackage("org.voltdb.catalog"),
	)
	require.NoError(t, err)
	return cfg
}

func TestGenerateWritesRenderedTree(t *testing.T) {
	require := require.New(t)
	root := t.TempDir()
	out := filepath.Join(root, "javasrc")

	support := filepath.Join(root, "support")
	require.NoError(os.MkdirAll(support, 0o755))
	require.NoError(os.WriteFile(filepath.Join(support, "CatalogType.java"), []byte("base type"), 0o644))

	g, err := NewGraph(tableColumnModel())
	require.NoError(err)

	b := &stubBackend{
		name:    "java",
		out:     out,
		support: support,
		statics: []string{"CatalogType.java"},
		files: []File{
			{Name: "Table.java", Body: []byte("class Table {}")},
			{Name: "Column.java", Body: []byte("class Column {}")},
		},
	}
	cfg := fullConfig(t, out, filepath.Join(root, "cppsrc"))
	require.NoError(NewGenerator(cfg, g).AddBackend(b).Generate(context.Background()))

	data, err := os.ReadFile(filepath.Join(out, "Table.java"))
	require.NoError(err)
	require.Equal("class Table {}", string(data))

	data, err = os.ReadFile(filepath.Join(out, "CatalogType.java"))
	require.NoError(err)
	require.Equal("base type", string(data))
}

func TestGenerateClearsStaleFiles(t *testing.T) {
	require := require.New(t)
	root := t.TempDir()
	out := filepath.Join(root, "javasrc")
	require.NoError(os.MkdirAll(out, 0o755))
	require.NoError(os.WriteFile(filepath.Join(out, "Dropped.java"), []byte("stale"), 0o644))

	g, err := NewGraph(tableColumnModel())
	require.NoError(err)

	b := &stubBackend{
		name:  "java",
		out:   out,
		files: []File{{Name: "Table.java", Body: []byte("class Table {}")}},
	}
	cfg := fullConfig(t, out, filepath.Join(root, "cppsrc"))
	require.NoError(NewGenerator(cfg, g).AddBackend(b).Generate(context.Background()))

	_, err = os.Stat(filepath.Join(out, "Dropped.java"))
	require.True(os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(out, "Table.java"))
	require.NoError(err)
}

func TestGenerateRendersBeforeWriting(t *testing.T) {
	require := require.New(t)
	root := t.TempDir()
	out := filepath.Join(root, "javasrc")
	require.NoError(os.MkdirAll(out, 0o755))
	require.NoError(os.WriteFile(filepath.Join(out, "Table.java"), []byte("previous"), 0o644))

	g, err := NewGraph(tableColumnModel())
	require.NoError(err)

	ok := &stubBackend{
		name:  "java",
		out:   out,
		files: []File{{Name: "Table.java", Body: []byte("next")}},
	}
	failing := &stubBackend{
		name: "cpp",
		out:  filepath.Join(root, "cppsrc"),
		err:  errors.New("render failed"),
	}
	cfg := fullConfig(t, out, failing.out)
	err = NewGenerator(cfg, g).AddBackend(ok).AddBackend(failing).Generate(context.Background())
	require.Error(err)

	// The failure surfaced before either root was touched.
	data, err := os.ReadFile(filepath.Join(out, "Table.java"))
	require.NoError(err)
	require.Equal("previous", string(data))
}

func TestGenerateMissingConfig(t *testing.T) {
	g, err := NewGraph(tableColumnModel())
	require.NoError(t, err)

	cfg, err := NewConfig(WithJavaOut("out/java"), WithCppOut("out/cpp"))
	require.NoError(t, err)

	b := &stubBackend{name: "java", out: "out/java"}
	err = NewGenerator(cfg, g).AddBackend(b).Generate(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingConfig)
}

func TestGenerateNoBackends(t *testing.T) {
	g, err := NewGraph(tableColumnModel())
	require.NoError(t, err)

	cfg := fullConfig(t, "out/java", "out/cpp")
	err = NewGenerator(cfg, g).Generate(context.Background())
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
	assert.Contains(t, err.Error(), "no backend registered")
}

func TestGenerateMissingSupportFile(t *testing.T) {
	require := require.New(t)
	root := t.TempDir()
	out := filepath.Join(root, "javasrc")

	g, err := NewGraph(tableColumnModel())
	require.NoError(err)

	b := &stubBackend{
		name:    "java",
		out:     out,
		support: filepath.Join(root, "missing"),
		statics: []string{"CatalogType.java"},
	}
	cfg := fullConfig(t, out, filepath.Join(root, "cppsrc"))
	err = NewGenerator(cfg, g).AddBackend(b).Generate(context.Background())
	require.Error(err)
	require.True(IsGenerationError(err))
	require.ErrorIs(err, ErrGenerationFailed)
}

func TestGenerateCancelledContext(t *testing.T) {
	require := require.New(t)
	root := t.TempDir()
	out := filepath.Join(root, "javasrc")

	g, err := NewGraph(tableColumnModel())
	require.NoError(err)

	b := &stubBackend{
		name:  "java",
		out:   out,
		files: []File{{Name: "Table.java", Body: []byte("class Table {}")}},
	}
	cfg := fullConfig(t, out, filepath.Join(root, "cppsrc"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = NewGenerator(cfg, g).AddBackend(b).Generate(ctx)
	require.ErrorIs(err, context.Canceled)
}
