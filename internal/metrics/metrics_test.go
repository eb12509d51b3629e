package metrics_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/codesync/internal/metrics"
	"github.com/agentstation/codesync/pkg/errors"
	"github.com/agentstation/codesync/pkg/tally"
)

func TestObserve(t *testing.T) {
	r := metrics.NewRecorder()
	r.Observe(tally.Tally{AlreadyExists: 3, WrongDisplay: 1, NotInThesaurus: 2, NewCode: 5}, 42, 1000)
	r.SetSuccess(true)

	families, err := r.Registry().Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName()
			for _, l := range m.GetLabel() {
				name += "/" + l.GetValue()
			}
			values[name] = m.GetGauge().GetValue()
		}
	}

	assert.Equal(t, map[string]float64{
		"codesync_proposed_concepts/already_exists":   3,
		"codesync_proposed_concepts/wrong_display":    1,
		"codesync_proposed_concepts/not_in_thesaurus": 2,
		"codesync_proposed_concepts/new_code":         5,
		"codesync_output_concepts":                    42,
		"codesync_thesaurus_codes":                    1000,
		"codesync_last_run_success":                   1,
	}, values)
}

func TestSetSuccess(t *testing.T) {
	r := metrics.NewRecorder()
	path := filepath.Join(t.TempDir(), "codesync.prom")

	r.SetSuccess(true)
	r.SetSuccess(false)
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "codesync_last_run_success 0")
}

func TestWriteTextfile(t *testing.T) {
	r := metrics.NewRecorder()
	r.Observe(tally.Tally{NewCode: 2}, 2, 10)

	path := filepath.Join(t.TempDir(), "codesync.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `codesync_proposed_concepts{outcome="new_code"} 2`)
	assert.Contains(t, out, "# TYPE codesync_last_run_success gauge")
}

func TestWriteTextfileMissingDir(t *testing.T) {
	r := metrics.NewRecorder()
	err := r.WriteTextfile(filepath.Join(t.TempDir(), "missing", "codesync.prom"))
	require.Error(t, err)

	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)
}
