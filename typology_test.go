package typology

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jamesainslie/go-typology/dataset"
	"github.com/jamesainslie/go-typology/domain"
	"github.com/jamesainslie/go-typology/internal/manifest"
	"github.com/jamesainslie/go-typology/split"
	"github.com/jamesainslie/go-typology/wals"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const tableHeader = "confidence,description,domainelement_pk,frequency,id,jsondata,markup_description,name,pk,valueset_pk\n"

func row(code, id string) string {
	return "high,," + code + ",100," + id + ",,,,1,1\n"
}

// syntheticTables covers two complete languages (aab, abk) and one language
// (xyz) whose object-verb code is unmapped.
func syntheticTables() fstest.MapFS {
	return fstest.MapFS{
		"wals-3A.csv":  {Data: []byte(tableHeader + row("9", "3A-aab") + row("12", "3A-abk") + row("11", "3A-xyz"))},
		"wals-51A.csv": {Data: []byte(tableHeader + row("254", "51A-aab") + row("262", "51A-abk") + row("255", "51A-xyz"))},
		"wals-83A.csv": {Data: []byte(tableHeader + row("393", "83A-aab") + row("394", "83A-abk") + row("395", "83A-xyz"))},
		"wals-86A.csv": {Data: []byte(tableHeader + row("407", "86A-aab") + row("408", "86A-abk") + row("407", "86A-xyz"))},
		"wals-87A.csv": {Data: []byte(tableHeader + row("410", "87A-aab") + row("411", "87A-abk") + row("410", "87A-xyz"))},
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func memory(fsys fstest.MapFS) Source {
	return wals.FS(fsys, "memory")
}

func newTestGenerator(t *testing.T, src Source, opts ...Option) *Generator {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	g, err := New(src, opts...)
	require.NoError(t, err)
	return g
}

func TestNew(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNoSource)

	_, err = New(wals.Embedded(), WithRatios(split.Ratios{Train: 1, Valid: 1, Test: 1}))
	assert.ErrorIs(t, err, ErrInvalidRatios)

	g, err := New(wals.Embedded())
	require.NoError(t, err)
	assert.Equal(t, DefaultFileNames, g.cfg.files)
	assert.Equal(t, split.DefaultRatios, g.cfg.ratios)
}

func TestBuild_Synthetic(t *testing.T) {
	g := newTestGenerator(t, memory(syntheticTables()), WithSeed(1))

	ds, err := g.Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, ds.Languages)
	require.Len(t, ds.Profiles, 2)
	assert.Equal(t, "aab", ds.Profiles[0].Name)
	assert.Equal(t, "abk", ds.Profiles[1].Name)
	assert.Equal(t, 2, ds.Split.Len())

	abk := ds.Profiles[1]
	assert.Equal(t, domain.HighCVR, abk.Get(domain.ConsonantVowelRatio))
	assert.Equal(t, domain.NoCase, abk.Get(domain.Case))
	assert.Equal(t, domain.VerbObjectOOV, abk.Get(domain.ObjectVerb))
	assert.Equal(t, domain.NounGenitiveOGN, abk.Get(domain.GenitiveNoun))
	assert.Equal(t, domain.NounAdjectiveOAN, abk.Get(domain.AdjectiveNoun))
}

func TestWrite_Synthetic(t *testing.T) {
	dir := t.TempDir()
	g := newTestGenerator(t, memory(syntheticTables()), WithSeed(1))

	res, err := g.Write(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, res.Files, 3)
	assert.Empty(t, res.Manifest)

	names := []string{"usertrain.txt", "uservalid.txt", "userunseen.txt"}
	dataRows := 0
	for i, f := range res.Files {
		assert.Equal(t, filepath.Join(dir, names[i]), f.Path)

		data, err := os.ReadFile(f.Path)
		require.NoError(t, err)
		assert.Equal(t, f.Bytes, len(data))
		assert.False(t, bytes.HasSuffix(data, []byte("\r\n")))

		lines := strings.Split(string(data), "\r\n")
		require.GreaterOrEqual(t, len(lines), 4)
		assert.Equal(t, "17 12 %.2f %.2f %.4f", lines[0])
		assert.Len(t, strings.Fields(lines[1]), 29)
		assert.Equal(t, strings.Repeat("0 ", 28)+"0", lines[2])
		assert.Equal(t, strings.Repeat("1 ", 28)+"1", lines[3])

		rows := lines[4:]
		assert.Len(t, rows, f.Rows)
		assert.Equal(t, f.Profiles*dataset.RowsPerProfile, f.Rows)
		dataRows += len(rows)
	}
	assert.Equal(t, 2*6, dataRows)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3, "no temp files or extra outputs left behind")
}

func TestWrite_MaskedRowsOnlyTouchInputs(t *testing.T) {
	dir := t.TempDir()
	g := newTestGenerator(t, wals.Embedded(), WithSeed(99))

	res, err := g.Write(context.Background(), dir)
	require.NoError(t, err)

	data, err := os.ReadFile(res.Files[0].Path)
	require.NoError(t, err)
	rows := strings.Split(string(data), "\r\n")[4:]
	require.Equal(t, 0, len(rows)%dataset.RowsPerProfile)

	in := domain.InputWidth()
	for start := 0; start < len(rows); start += dataset.RowsPerProfile {
		complete := strings.Fields(rows[start])
		for k := 1; k < dataset.RowsPerProfile; k++ {
			masked := strings.Fields(rows[start+k])
			assert.Equal(t, complete[in:], masked[in:], "output identical across a profile's rows")

			diff := 0
			for j := range in {
				if complete[j] != masked[j] {
					diff++
				}
			}
			assert.Equal(t, 2, diff, "masking moves exactly one hot bit within one domain")
		}
	}
}

func TestWrite_Deterministic(t *testing.T) {
	ctx := context.Background()
	read := func(dir string) [][]byte {
		var out [][]byte
		for _, name := range []string{"usertrain.txt", "uservalid.txt", "userunseen.txt"} {
			data, err := os.ReadFile(filepath.Join(dir, name))
			require.NoError(t, err)
			out = append(out, data)
		}
		return out
	}
	write := func(seed uint64) (string, *Result) {
		dir := t.TempDir()
		g, err := New(wals.Embedded(), WithSeed(seed), WithLogger(quietLogger()))
		require.NoError(t, err)
		res, err := g.Write(ctx, dir)
		require.NoError(t, err)
		return dir, res
	}

	dirA, resA := write(42)
	dirB, _ := write(42)
	assert.Equal(t, read(dirA), read(dirB))

	dirC, resC := write(43)
	assert.NotEqual(t, read(dirA), read(dirC))
	for i := range resA.Files {
		assert.Equal(t, resA.Files[i].Profiles, resC.Files[i].Profiles, "sizes stay invariant")
	}
}

func TestWrite_SeededGeneratorIsRepeatable(t *testing.T) {
	g := newTestGenerator(t, wals.Embedded(), WithSeed(5))

	a, err := g.Build(context.Background())
	require.NoError(t, err)
	b, err := g.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, a.Split, b.Split)
}

func TestWrite_WithRand(t *testing.T) {
	g := newTestGenerator(t, memory(syntheticTables()), WithRand(split.NewRand(3)))
	ds, err := g.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Split.Len())
}

func TestWrite_FileNamesAndManifest(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	g := newTestGenerator(t, memory(syntheticTables()),
		WithSeed(11),
		WithFileNames(FileNames{Train: "train.txt", Test: "test.txt"}),
		WithManifest("manifest.json"))

	res, err := g.Write(context.Background(), dir)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "train.txt"))
	assert.FileExists(t, filepath.Join(dir, "uservalid.txt"))
	assert.FileExists(t, filepath.Join(dir, "test.txt"))
	require.Equal(t, filepath.Join(dir, "manifest.json"), res.Manifest)

	data, err := os.ReadFile(res.Manifest)
	require.NoError(t, err)
	run, err := manifest.Unmarshal(data)
	require.NoError(t, err)

	require.NotNil(t, run.Seed)
	assert.Equal(t, uint64(11), *run.Seed)
	assert.Equal(t, "memory", run.Source)
	assert.Equal(t, 3, run.Languages)
	assert.Equal(t, 2, run.Profiles)
	require.Len(t, run.Subsets, 3)
	assert.Equal(t, "train.txt", run.Subsets[0].File)
	total := 0
	for _, s := range run.Subsets {
		total += s.Rows
	}
	assert.Equal(t, 12, total)
}

func TestBuild_MalformedRow(t *testing.T) {
	fsys := syntheticTables()
	fsys["wals-86A.csv"] = &fstest.MapFile{Data: []byte(tableHeader + row("407", "86A-aab") + "high,,408\n")}
	g := newTestGenerator(t, memory(fsys))

	_, err := g.Build(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedRow))
	assert.Contains(t, err.Error(), "wals-86A.csv line 3")
}

func TestBuild_MalformedIdentifier(t *testing.T) {
	fsys := syntheticTables()
	fsys["wals-3A.csv"] = &fstest.MapFile{Data: []byte(tableHeader + row("9", "ab"))}
	g := newTestGenerator(t, memory(fsys))

	_, err := g.Build(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedIdentifier)
	assert.Contains(t, err.Error(), "wals-3A.csv line 2")
}

func TestBuild_MissingTable(t *testing.T) {
	fsys := syntheticTables()
	delete(fsys, "wals-87A.csv")
	g := newTestGenerator(t, memory(fsys))

	_, err := g.Build(context.Background())
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestBuild_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := newTestGenerator(t, memory(syntheticTables()))
	_, err := g.Build(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWrite_OutputFailure(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	g := newTestGenerator(t, memory(syntheticTables()), WithSeed(1))
	_, err := g.Write(context.Background(), filepath.Join(blocker, "out"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOutputWrite)
}

func TestWriteFileAtomic_ReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usertrain.txt")
	require.NoError(t, os.WriteFile(path, []byte("old contents"), 0o644))

	require.NoError(t, writeFileAtomic(path, []byte("new")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}
