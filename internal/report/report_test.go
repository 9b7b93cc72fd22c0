package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SinomthaMzamo/vuka-coach/internal/api"
)

func sampleReport() *api.Report {
	return &api.Report{
		OverallScore: 75,
		Metrics: map[string]float64{
			"structure": 8.0,
			"clarity":   7.0,
			"relevance": 7.5,
		},
		Summary:             "Clear answers with room for tighter structure.",
		Strengths:           []string{"Concrete examples", "Calm delivery"},
		AreasForImprovement: []string{"Quantify outcomes"},
	}
}

func TestRenderNilReportIsEmpty(t *testing.T) {
	require.Empty(t, Render(nil))
	require.Empty(t, Plain(nil))
}

func TestPlainContainsAllSections(t *testing.T) {
	out := Plain(sampleReport())

	require.Contains(t, out, "Overall score: 75.0 / 100")
	require.Contains(t, out, "clarity: 7.0")
	require.Contains(t, out, "Clear answers with room for tighter structure.")
	require.Contains(t, out, "- Concrete examples")
	require.Contains(t, out, "- Quantify outcomes")
}

func TestScoreScalesMatchServer(t *testing.T) {
	// The overall score arrives on a 0-100 scale; per-metric values
	// are 0-10.
	r := &api.Report{
		OverallScore: 75,
		Metrics:      map[string]float64{"clarity": 7.0},
	}

	plain := Plain(r)
	require.Contains(t, plain, "Overall score: 75.0 / 100")
	require.NotContains(t, plain, "75.0 / 10\n")
	require.Contains(t, plain, "clarity: 7.0")

	require.Contains(t, Render(r), "75.0 / 100")
}

func TestPlainMetricsAreSortedByName(t *testing.T) {
	out := Plain(sampleReport())

	clarity := indexOf(t, out, "clarity")
	relevance := indexOf(t, out, "relevance")
	structure := indexOf(t, out, "structure")
	require.Less(t, clarity, relevance)
	require.Less(t, relevance, structure)
}

func TestRenderContainsScoreAndSections(t *testing.T) {
	out := Render(sampleReport())

	require.Contains(t, out, "Interview Report")
	require.Contains(t, out, "75.0 / 100")
	require.Contains(t, out, "Strengths")
	require.Contains(t, out, "Areas for improvement")
}

func TestWritePDFCreatesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")

	path, err := WritePDF(sampleReport(), dir)
	require.NoError(t, err)
	require.Contains(t, filepath.Base(path), "interview-report-")

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestWritePDFNilReportFails(t *testing.T) {
	_, err := WritePDF(nil, t.TempDir())
	require.Error(t, err)
}

func indexOf(t *testing.T, haystack, needle string) int {
	t.Helper()
	idx := strings.Index(haystack, needle)
	require.GreaterOrEqual(t, idx, 0, "missing %q", needle)
	return idx
}
