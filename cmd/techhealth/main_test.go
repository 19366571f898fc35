package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/techhealth/internal/assessment"
	"github.com/dshills/techhealth/internal/config"
	"github.com/dshills/techhealth/internal/document"
	"github.com/dshills/techhealth/internal/framework"
	"github.com/dshills/techhealth/internal/logger"
	"github.com/dshills/techhealth/internal/store"
)

var fixedNow = time.Date(2025, 10, 24, 15, 4, 5, 0, time.UTC)

func newTestApp(t *testing.T) (*app, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cfg := config.Defaults()
	cfg.Store.Dir = filepath.Join(t.TempDir(), "store")
	return &app{
		cfg: cfg,
		log: logger.New("debug", errOut),
		fw:  framework.Default(),
		out: out,
		now: func() time.Time { return fixedNow },
	}, out, errOut
}

// uniformResponse answers every sub-axis with level.
func uniformResponse(team string, level int) assessment.Response {
	resp := assessment.Response{
		TeamInfo:    assessment.TeamInfo{TeamName: team, Date: "2025-10-24"},
		Scores:      map[string]assessment.SubAxisScore{},
		PulseScores: map[string]assessment.PulseAnswer{},
	}
	for _, a := range framework.Default().Areas {
		for _, sa := range a.SubAxes {
			resp.Scores[sa.ID] = assessment.SubAxisScore{Level: level}
		}
	}
	return resp
}

func writeJSON(t *testing.T, dir, name string, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return writeTempFile(t, dir, name, string(data))
}

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func assertExitCode(t *testing.T, err error, wantCode int) {
	t.Helper()
	if wantCode == 0 {
		require.NoError(t, err)
		return
	}
	require.Error(t, err, "expected exit code %d", wantCode)
	var ee *exitErr
	require.True(t, errors.As(err, &ee), "expected *exitErr, got %T: %v", err, err)
	assert.Equal(t, wantCode, ee.code, "msg: %s", ee.msg)
}

// --- Pure function tests ---

func TestMaturityMeetsThreshold(t *testing.T) {
	tests := []struct {
		level, threshold assessment.MaturityLevel
		want             bool
	}{
		{assessment.MaturityUnstable, assessment.MaturityUnstable, true},
		{assessment.MaturityEmerging, assessment.MaturityUnstable, false},
		{assessment.MaturityEmerging, assessment.MaturityDefined, true},
		{assessment.MaturityOptimized, assessment.MaturityDefined, false},
		{assessment.MaturityOptimized, assessment.MaturityOptimized, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.level)+"/"+string(tt.threshold), func(t *testing.T) {
			assert.Equal(t, tt.want, maturityMeetsThreshold(tt.level, tt.threshold))
		})
	}
}

func TestOutputFormat(t *testing.T) {
	a, _, _ := newTestApp(t)
	got, err := outputFormat(a, "")
	require.NoError(t, err)
	assert.Equal(t, config.FormatJSON, got)

	got, err = outputFormat(a, "MD")
	require.NoError(t, err)
	assert.Equal(t, config.FormatMarkdown, got)

	_, err = outputFormat(a, "xml")
	assertExitCode(t, err, 1)
}

// --- score ---

func TestRunScoreJSON(t *testing.T) {
	a, out, _ := newTestApp(t)
	path := writeJSON(t, t.TempDir(), "resp.json", uniformResponse("Core", 4))

	require.NoError(t, runScore(a, path, &scoreFlags{}))

	var results assessment.Results
	require.NoError(t, json.Unmarshal(out.Bytes(), &results))
	assert.Equal(t, 4.0, results.Overall)
	assert.Equal(t, assessment.MaturityOptimized, results.MaturityLevel)
	assert.True(t, results.CompletedAt.Equal(fixedNow))
	assert.Contains(t, out.String(), `"recommendations": []`)
}

func TestRunScoreMarkdown(t *testing.T) {
	a, out, _ := newTestApp(t)
	path := writeJSON(t, t.TempDir(), "resp.json", uniformResponse("Core", 2))

	require.NoError(t, runScore(a, path, &scoreFlags{format: "md"}))
	assert.Contains(t, out.String(), "# Tech Health Report: Core")
	assert.Contains(t, out.String(), "### Medium Priority")
}

func TestRunScoreOutFile(t *testing.T) {
	a, out, _ := newTestApp(t)
	dir := t.TempDir()
	path := writeJSON(t, dir, "resp.json", uniformResponse("Core", 3))
	outPath := filepath.Join(dir, "results.json")

	require.NoError(t, runScore(a, path, &scoreFlags{out: outPath}))
	assert.Empty(t, out.String())
	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"maturityLevel": "defined"`)
}

func TestRunScoreFailOn(t *testing.T) {
	dir := t.TempDir()
	low := writeJSON(t, dir, "low.json", uniformResponse("Low", 1))
	high := writeJSON(t, dir, "high.json", uniformResponse("High", 4))

	tests := []struct {
		name   string
		path   string
		failOn string
		code   int
	}{
		{"unstable meets emerging", low, "emerging", 2},
		{"unstable meets unstable", low, "UNSTABLE", 2},
		{"optimized passes defined", high, "defined", 0},
		{"optimized meets optimized", high, "optimized", 2},
		{"unknown threshold", high, "great", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _, _ := newTestApp(t)
			assertExitCode(t, runScore(a, tt.path, &scoreFlags{failOn: tt.failOn}), tt.code)
		})
	}
}

func TestRunScoreLoadFailures(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		code    int
	}{
		{"malformed json", `{oops`, 5},
		{"missing team", `{"assessment": {"teamInfo": {"teamName": ""}}}`, 5},
		{"level out of range", `{"teamInfo": {"teamName": "x"}, "scores": {"monitoring": {"level": 7}}}`, 5},
		{"text on numeric pulse", `{"teamInfo": {"teamName": "x"}, "pulseScores": {"pulse-tools": "great"}}`, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _, _ := newTestApp(t)
			path := writeTempFile(t, dir, tt.name+".json", tt.content)
			assertExitCode(t, runScore(a, path, &scoreFlags{}), tt.code)
		})
	}

	a, _, _ := newTestApp(t)
	assertExitCode(t, runScore(a, filepath.Join(dir, "missing.json"), &scoreFlags{}), 3)
}

func TestRunScoreWarnsOnUnknownIDs(t *testing.T) {
	a, _, errOut := newTestApp(t)
	resp := uniformResponse("Core", 3)
	resp.Scores["retired-axis"] = assessment.SubAxisScore{Level: 1}
	path := writeJSON(t, t.TempDir(), "resp.json", resp)

	require.NoError(t, runScore(a, path, &scoreFlags{}))
	assert.Contains(t, errOut.String(), "ignoring unknown id scores.retired-axis")
}

func TestRunScoreRedact(t *testing.T) {
	resp := uniformResponse("Core", 3)
	resp.TeamInfo.Notes = "ask lead@example.com"
	path := writeJSON(t, t.TempDir(), "resp.json", resp)

	a, out, _ := newTestApp(t)
	require.NoError(t, runScore(a, path, &scoreFlags{format: "md", redact: true, hasRedact: true}))
	assert.NotContains(t, out.String(), "lead@example.com")
	assert.Contains(t, out.String(), "[REDACTED]")

	// config default applies when the flag is not given
	a, out, _ = newTestApp(t)
	a.cfg.Output.Redact = true
	require.NoError(t, runScore(a, path, &scoreFlags{format: "md"}))
	assert.NotContains(t, out.String(), "lead@example.com")
}

func TestRunScoreExportAndSave(t *testing.T) {
	a, _, _ := newTestApp(t)
	dir := t.TempDir()
	path := writeJSON(t, dir, "resp.json", uniformResponse("Team Rocket", 2))
	exportDir := filepath.Join(dir, "exports")
	require.NoError(t, os.Mkdir(exportDir, 0755))

	require.NoError(t, runScore(a, path, &scoreFlags{exportPath: exportDir, save: true}))

	f, err := document.Load(filepath.Join(exportDir, "tech-health-assessment-Team-Rocket-2025-10-24.json"))
	require.NoError(t, err)
	assert.False(t, f.Export.IsDraft())
	assert.Equal(t, 2.0, f.Export.Results.Overall)

	s, err := store.New(a.cfg.Store.Dir)
	require.NoError(t, err)
	history := s.History()
	require.Len(t, history, 1)
	assert.Equal(t, "Team Rocket", history[0].TeamName)
	assert.Equal(t, assessment.MaturityEmerging, history[0].MaturityLevel)
	draft, err := s.LoadDraft()
	require.NoError(t, err)
	assert.Nil(t, draft)
}

func TestRunScoreSaveIncompleteThenScoreDraft(t *testing.T) {
	a, out, _ := newTestApp(t)
	partial := assessment.Response{
		TeamInfo: assessment.TeamInfo{TeamName: "Half"},
		Scores:   map[string]assessment.SubAxisScore{"monitoring": {Level: 1}},
	}
	path := writeJSON(t, t.TempDir(), "partial.json", partial)

	require.NoError(t, runScore(a, path, &scoreFlags{save: true}))

	s, err := store.New(a.cfg.Store.Dir)
	require.NoError(t, err)
	assert.Empty(t, s.History())

	out.Reset()
	require.NoError(t, runScore(a, "", &scoreFlags{}))
	var results assessment.Results
	require.NoError(t, json.Unmarshal(out.Bytes(), &results))
	assert.Equal(t, 1.0, results.Overall)
}

func TestRunScoreNoDraft(t *testing.T) {
	a, _, _ := newTestApp(t)
	assertExitCode(t, runScore(a, "", &scoreFlags{}), 3)
}

// --- export ---

func TestRunExport(t *testing.T) {
	dir := t.TempDir()
	path := writeJSON(t, dir, "resp.json", uniformResponse("Core Team", 3))

	tests := []struct {
		name  string
		draft bool
		file  string
	}{
		{"completed", false, "tech-health-assessment-Core-Team-2025-10-24.json"},
		{"draft", true, "tech-health-assessment-draft-Core-Team-2025-10-24.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, out, _ := newTestApp(t)
			outDir := t.TempDir()
			require.NoError(t, runExport(a, path, &exportFlags{draft: tt.draft, out: outDir}))

			target := filepath.Join(outDir, tt.file)
			assert.Equal(t, target+"\n", out.String())
			f, err := document.Load(target)
			require.NoError(t, err)
			assert.Equal(t, tt.draft, f.Export.IsDraft())
			assert.Equal(t, "Core Team", f.Export.Assessment.TeamInfo.TeamName)
		})
	}
}

// --- validate ---

func TestRunValidate(t *testing.T) {
	dir := t.TempDir()
	bare := writeJSON(t, dir, "bare.json", uniformResponse("Core", 3))

	a, out, _ := newTestApp(t)
	require.NoError(t, runValidate(a, bare))
	assert.Contains(t, out.String(), "valid draft (25/25 sub-axes answered, 100%)")
	assert.Contains(t, out.String(), "sha256:")

	a, out, _ = newTestApp(t)
	require.NoError(t, runExport(a, bare, &exportFlags{out: dir}))
	exported := filepath.Join(dir, "tech-health-assessment-Core-2025-10-24.json")
	out.Reset()
	require.NoError(t, runValidate(a, exported))
	assert.Contains(t, out.String(), "valid completed")

	bad := writeTempFile(t, dir, "bad.json", `{"assessment": {}}`)
	assertExitCode(t, runValidate(a, bad), 5)
}

// --- framework / history ---

func TestRunFramework(t *testing.T) {
	a, out, _ := newTestApp(t)
	require.NoError(t, runFramework(a, "md"))
	assert.Contains(t, out.String(), "# Framework: tech-health")

	out.Reset()
	require.NoError(t, runFramework(a, "json"))
	var fw framework.Framework
	require.NoError(t, json.Unmarshal(out.Bytes(), &fw))
	assert.Len(t, fw.Areas, 5)

	assertExitCode(t, runFramework(a, "yaml"), 1)
}

func TestRunHistory(t *testing.T) {
	a, out, _ := newTestApp(t)
	require.NoError(t, runHistory(a, false))
	assert.Contains(t, out.String(), "No assessments recorded")

	path := writeJSON(t, t.TempDir(), "resp.json", uniformResponse("Core", 4))
	require.NoError(t, runScore(a, path, &scoreFlags{save: true}))

	out.Reset()
	require.NoError(t, runHistory(a, false))
	assert.Contains(t, out.String(), "Core")
	assert.Contains(t, out.String(), "optimized")

	out.Reset()
	require.NoError(t, runHistory(a, true))
	var entries []store.HistoryEntry
	require.NoError(t, json.Unmarshal(out.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, 4.0, entries[0].Overall)
}

// --- batch ---

func TestRunBatch(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeJSON(t, dir, "mid.json", uniformResponse("Mid", 2)),
		writeTempFile(t, dir, "bad.json", `{"assessment": {"teamInfo": {}}}`),
		writeJSON(t, dir, "top.json", uniformResponse("Top", 4)),
		writeJSON(t, dir, "low.json", uniformResponse("Low", 1)),
	}

	a, out, _ := newTestApp(t)
	err := runBatch(context.Background(), a, paths, &batchFlags{concurrency: 2})
	assertExitCode(t, err, 5)

	var rows []batchRow
	require.NoError(t, json.Unmarshal(out.Bytes(), &rows))
	require.Len(t, rows, 4)
	assert.Equal(t, "Top", rows[0].TeamName)
	assert.Equal(t, "Mid", rows[1].TeamName)
	assert.Equal(t, "Low", rows[2].TeamName)
	assert.Equal(t, paths[1], rows[3].File)
	assert.NotEmpty(t, rows[3].Err)
	assert.Equal(t, assessment.InterpretationBalanced, rows[0].Interpretation)
	assert.Equal(t, 100, rows[0].Completion)
}

func TestRunBatchTable(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeJSON(t, dir, "a.json", uniformResponse("Alpha", 3)),
		writeJSON(t, dir, "b.json", uniformResponse("Beta", 4)),
	}
	a, out, _ := newTestApp(t)
	require.NoError(t, runBatch(context.Background(), a, paths, &batchFlags{concurrency: 1, format: "md"}))
	assert.Contains(t, out.String(), "TEAM")
	assert.Less(t, bytes.Index(out.Bytes(), []byte("Beta")), bytes.Index(out.Bytes(), []byte("Alpha")))
}

func TestRunBatchBadConcurrency(t *testing.T) {
	a, _, _ := newTestApp(t)
	assertExitCode(t, runBatch(context.Background(), a, []string{"x.json"}, &batchFlags{}), 1)
}

// --- cobra wiring ---

func TestRootCommandScore(t *testing.T) {
	dir := t.TempDir()
	path := writeJSON(t, dir, "resp.json", uniformResponse("Core", 3))

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"score", path, "--store", filepath.Join(dir, "store"), "--format", "json"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), `"maturityLevel": "defined"`)
}

func TestRootCommandBadFramework(t *testing.T) {
	dir := t.TempDir()
	fwPath := writeTempFile(t, dir, "fw.yaml", "areas: []\n")
	path := writeJSON(t, dir, "resp.json", uniformResponse("Core", 3))

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"score", path, "--framework", fwPath, "--store", filepath.Join(dir, "store")})

	assertExitCode(t, root.Execute(), 3)
}
