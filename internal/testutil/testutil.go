// Package testutil provides shared helpers for package tests.
package testutil

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/tomate-app/tomate/internal/osutil"
	"github.com/tomate-app/tomate/store"
)

type GoldenTest interface {
	Output() ([]byte, string)
}

// CompareGoldenFile verifies that the output of an operation matches
// the expected output.
func CompareGoldenFile(t *testing.T, tc GoldenTest) {
	t.Helper()

	if runtime.GOOS == osutil.Windows {
		t.Skip("skipping golden file test in Windows")
	}

	g := goldie.New(
		t,
		goldie.WithFixtureDir("testdata"),
	)

	compareOutput := func(output []byte, goldenFileName string) {
		if output != nil {
			g.Assert(t, goldenFileName, output)
		} else {
			f := filepath.Join("testdata", goldenFileName+".golden")
			if _, err := os.Stat(f); err == nil || errors.Is(err, os.ErrExist) {
				t.Fatalf("expected no output, but golden file exists: %s", f)
			}
		}
	}

	snap, golden := tc.Output()

	compareOutput(snap, golden)
}

// NewStore opens a throwaway Bolt store in a temporary directory that is
// removed when the test ends.
func NewStore(t *testing.T) *store.Client {
	t.Helper()

	client, err := store.NewClient(filepath.Join(t.TempDir(), "tomate.db"))
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}
