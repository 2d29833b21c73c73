package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rocrate-convert/internal/app"
	"rocrate-convert/tests/testutil"
)

// TestGoldenConvert runs full conversions over the sample fixtures and
// compares the written documents against committed golden files. If a
// golden file does not exist yet (first run), it is written so it can
// be committed.
//
// To update golden files after an intentional change, delete the
// testdata/golden/ directory and re-run the test.
func TestGoldenConvert(t *testing.T) {
	root := testutil.RepoRoot(t)
	goldenDir := filepath.Join(root, "tests", "integration", "testdata", "golden")

	cases := []struct {
		name    string
		input   string
		mapping string
	}{
		{
			name:    "arc-dataverse.json",
			input:   filepath.Join(root, "fixtures", "sample-arc.json"),
			mapping: filepath.Join(root, "config", "dataverse.yaml"),
		},
		{
			name:    "arc-fairagro.json",
			input:   filepath.Join(root, "fixtures", "sample-arc.json"),
			mapping: filepath.Join(root, "config", "fairagro.yaml"),
		},
		{
			name:    "flat-fairagro.json",
			input:   filepath.Join(root, "fixtures", "sample-flat.json"),
			mapping: filepath.Join(root, "config", "fairagro.yaml"),
		},
	}

	service := app.NewService()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			outputPath := filepath.Join(t.TempDir(), tc.name)
			result, err := service.Convert(t.Context(), app.ConvertRequest{
				InputPath:   tc.input,
				MappingPath: tc.mapping,
				OutputPath:  outputPath,
			})
			require.NoError(t, err)
			require.Equal(t, outputPath, result.OutputPath)

			actual, err := os.ReadFile(outputPath)
			require.NoError(t, err)

			goldenPath := filepath.Join(goldenDir, tc.name)
			if _, statErr := os.Stat(goldenPath); os.IsNotExist(statErr) {
				// Golden file doesn't exist yet -- write it.
				require.NoError(t, os.MkdirAll(goldenDir, 0o755))
				require.NoError(t, os.WriteFile(goldenPath, actual, 0o644))
				t.Logf("golden file written: %s (commit it)", goldenPath)
				return
			}

			expected, err := os.ReadFile(goldenPath)
			require.NoError(t, err)
			assert.Equal(t, string(expected), string(actual))
		})
	}
}

// TestConvertRepeatable converts the same input twice and requires
// byte-identical output.
func TestConvertRepeatable(t *testing.T) {
	root := testutil.RepoRoot(t)
	service := app.NewService()

	paths := make([]string, 2)
	for i := range paths {
		paths[i] = filepath.Join(t.TempDir(), "out.json")
		_, err := service.Convert(t.Context(), app.ConvertRequest{
			InputPath:   filepath.Join(root, "fixtures", "sample-arc.json"),
			MappingPath: filepath.Join(root, "config", "dataverse.yaml"),
			OutputPath:  paths[i],
		})
		require.NoError(t, err)
	}

	first, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	second, err := os.ReadFile(paths[1])
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}
