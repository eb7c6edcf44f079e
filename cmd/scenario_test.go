package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tandemScenario = `
seed: 9
sources:
  - name: calls
    count: 500
    inter_arrival: {dist: exp, mean: 100}
    client_type: call
processes:
  - name: triage
    c: 2
    service: {dist: exp, mean: 60}
  - name: backoffice
    c: 1
    service: {dist: lognormal, mean: 40, sd: 10}
disposes:
  - done
arrival_rates:
  - [1, 0]
routing_rates:
  - [0, 1, 0]
  - [0, 0, 1]
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadScenarioParsesYAML(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, tandemScenario))
	require.NoError(t, err)

	assert.Equal(t, uint64(9), sc.Seed)
	require.Len(t, sc.Sources, 1)
	assert.Equal(t, "calls", sc.Sources[0].Name)
	assert.Equal(t, "exp", sc.Sources[0].InterArrival.Dist)
	require.Len(t, sc.Processes, 2)
	assert.Equal(t, 2, sc.Processes[0].C)
	assert.Equal(t, []string{"done"}, sc.Disposes)
}

func TestScenarioBuildsAndRuns(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, tandemScenario))
	require.NoError(t, err)
	built, err := sc.Build(sc.Seed)
	require.NoError(t, err)

	require.NoError(t, built.Sim.Run())
	assert.Equal(t, int64(500), built.Disposes[0].Count())
	assert.Greater(t, built.Sim.EventCount, int64(0))
}

func TestScenarioWithPatienceWiresCancelToFirstDispose(t *testing.T) {
	body := `
sources:
  - name: s
    count: 200
    inter_arrival: {dist: exp, mean: 10}
processes:
  - name: p
    c: 1
    service: {dist: exp, mean: 9}
    patience: {dist: exp, mean: 5}
disposes:
  - d
arrival_rates:
  - [1]
routing_rates:
  - [0, 1]
`
	sc, err := LoadScenario(writeScenario(t, body))
	require.NoError(t, err)
	built, err := sc.Build(3)
	require.NoError(t, err)

	require.NoError(t, built.Sim.Run())
	// served and cancelled clients both drain into the dispose
	assert.Equal(t, int64(200), built.Disposes[0].Count())
	assert.Greater(t, built.Processes[0].Success.Count("cancel"), int64(0))
}

func TestLoadScenarioRejectsMissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadScenarioRejectsBadYAML(t *testing.T) {
	_, err := LoadScenario(writeScenario(t, "sources: ["))
	assert.Error(t, err)
}

func TestScenarioBuildRejectsUnknownDistribution(t *testing.T) {
	body := `
sources:
  - name: s
    count: 10
    inter_arrival: {dist: zipf, mean: 10}
processes:
  - name: p
    service: {dist: exp, mean: 1}
disposes:
  - d
arrival_rates:
  - [1]
routing_rates:
  - [0, 1]
`
	sc, err := LoadScenario(writeScenario(t, body))
	require.NoError(t, err)
	_, err = sc.Build(1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zipf")
}

func TestScenarioBuildRejectsEmptyNetwork(t *testing.T) {
	sc := &Scenario{}
	_, err := sc.Build(1)
	assert.Error(t, err)
}
