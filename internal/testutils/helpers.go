// Package testutils holds helpers shared by package tests.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SalesFlow is a small two-step flow document with one test-mode item.
const SalesFlow = `
botName: "Manu da {empresa}"
contextData:
  empresa: ACME
steps:
  step:
    - stepId: abertura
      stepName: Abertura
      nextStepId: vendas
    - stepId: vendas
      stepName: Fechamento
items:
  - {}
  - outputMode: test
    testStepId: abrtura
`

// WriteFlow writes content to name inside a fresh temp dir and returns the
// absolute path of the file. It fails the test immediately on error.
func WriteFlow(t *testing.T, name, content string) string {
	t.Helper()
	return WriteTree(t, map[string]string{name: content})[name]
}

// WriteTree writes every file of files into a fresh temp dir. It returns the
// absolute path of each file keyed by name, plus the directory under "".
func WriteTree(t *testing.T, files map[string]string) map[string]string {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	paths := map[string]string{"": absPath}
	for name, content := range files {
		path := filepath.Join(absPath, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "Failed to write %s", name)
		paths[name] = path
	}
	return paths
}
