package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/tns/internal/doctor"
)

func setDoctorFlags(t *testing.T, jsonOut, quietOut, verboseOut bool) {
	t.Helper()
	origJSON, origQuiet, origVerbose := doctorJSON, doctorQuiet, doctorVerbose
	doctorJSON, doctorQuiet, doctorVerbose = jsonOut, quietOut, verboseOut
	t.Cleanup(func() {
		doctorJSON, doctorQuiet, doctorVerbose = origJSON, origQuiet, origVerbose
	})
}

func sampleReport() *doctor.Report {
	return &doctor.Report{
		Results: []*doctor.CheckResult{
			{Name: "config", Category: "config", Status: doctor.SeverityPass, Message: "configuration is valid"},
			{Name: "android", Category: "toolchain", Status: doctor.SeverityError, Message: "ant missing", FixHint: "install ant"},
		},
		Summary: doctor.Summary{Passed: 1, Errors: 1},
	}
}

func TestValidateDoctorFlags(t *testing.T) {
	tests := []struct {
		name                    string
		jsonOut, quiet, verbose bool
		wantErr                 bool
	}{
		{name: "none"},
		{name: "json only", jsonOut: true},
		{name: "json and quiet", jsonOut: true, quiet: true, wantErr: true},
		{name: "all", jsonOut: true, quiet: true, verbose: true, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setDoctorFlags(t, tt.jsonOut, tt.quiet, tt.verbose)
			err := validateDoctorFlags(nil, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestOutputDoctorText(t *testing.T) {
	color.NoColor = true

	t.Run("default shows problems only", func(t *testing.T) {
		setDoctorFlags(t, false, false, false)
		var buf bytes.Buffer
		require.NoError(t, outputDoctorReport(&buf, sampleReport()))

		out := buf.String()
		assert.Contains(t, out, "✗ [toolchain] android: ant missing")
		assert.Contains(t, out, "  hint: install ant")
		assert.NotContains(t, out, "configuration is valid")
		assert.Contains(t, out, "Summary: 1 passed, 0 info, 0 warnings, 1 errors")
	})

	t.Run("verbose shows everything", func(t *testing.T) {
		setDoctorFlags(t, false, false, true)
		var buf bytes.Buffer
		require.NoError(t, outputDoctorReport(&buf, sampleReport()))
		assert.Contains(t, buf.String(), "✓ [config] config: configuration is valid")
	})

	t.Run("quiet prints nothing", func(t *testing.T) {
		setDoctorFlags(t, false, true, false)
		var buf bytes.Buffer
		require.NoError(t, outputDoctorReport(&buf, sampleReport()))
		assert.Empty(t, buf.String())
	})
}

func TestOutputDoctorJSON(t *testing.T) {
	setDoctorFlags(t, true, false, false)

	var buf bytes.Buffer
	require.NoError(t, outputDoctorReport(&buf, sampleReport()))

	var decoded struct {
		Results []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"results"`
		Summary doctor.Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Results, 2)
	assert.Equal(t, "error", decoded.Results[1].Status)
	assert.Equal(t, 1, decoded.Summary.Errors)
}

func TestNewDoctorRunner(t *testing.T) {
	withDefaults(t)
	newTestProject(t)
	c, _ := newTestCmd(t)

	runner, err := newDoctorRunner(c)
	require.NoError(t, err)

	var names []string
	for _, check := range runner.Checks() {
		names = append(names, check.Name())
	}
	assert.Contains(t, names, "config")
	assert.Contains(t, names, "project")
	assert.Contains(t, names, "npm")
	assert.Contains(t, names, "path-permissions")
}
