package cli

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RevCBH/docketeer/internal/config"
)

func TestExitCode_Nil(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, 0, exitCode(nil, &buf, ""))
	assert.Empty(t, buf.String())
}

func TestExitCode_ExitCodeErrorIsSilent(t *testing.T) {
	var buf bytes.Buffer
	err := fmt.Errorf("run: %w", &ExitCodeError{Code: 42})

	assert.Equal(t, 42, exitCode(err, &buf, ""))
	assert.Empty(t, buf.String())
}

func TestExitCode_PrintsOtherErrors(t *testing.T) {
	var buf bytes.Buffer

	assert.Equal(t, 1, exitCode(errors.New("docker pull exited with code 3"), &buf, ""))
	assert.Equal(t, "Error: docker pull exited with code 3\n", buf.String())
}

func TestPrintError_ValidationHint(t *testing.T) {
	var buf bytes.Buffer
	err := fmt.Errorf("validate config: %w", &config.ValidationError{Field: "image", Message: "must be set"})

	PrintError(&buf, err, "Run docketeer --help for usage.")

	assert.Contains(t, buf.String(), "Error: validate config: config.image: must be set")
	assert.Contains(t, buf.String(), "--help")
}

func TestPrintError_NoHintWhenEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := fmt.Errorf("validate config: %w", &config.ValidationError{Field: "image", Message: "must be set"})

	PrintError(&buf, err, "")

	assert.Equal(t, "Error: validate config: config.image: must be set\n", buf.String())
}

func TestApp_ExitCodeHintPerProgram(t *testing.T) {
	err := fmt.Errorf("validate config: %w", &config.ValidationError{Field: "image", Message: "must be set"})

	var driverOut bytes.Buffer
	assert.Equal(t, 1, New().ExitCode(err, &driverOut))
	assert.Contains(t, driverOut.String(), "Run docketeer --help for usage.")

	var launchOut bytes.Buffer
	assert.Equal(t, 1, NewLaunch().ExitCode(err, &launchOut))
	assert.NotContains(t, launchOut.String(), "--help")
}

func TestExitWith(t *testing.T) {
	assert.NoError(t, exitWith(0))

	var exitErr *ExitCodeError
	assert.True(t, errors.As(exitWith(7), &exitErr))
	assert.Equal(t, 7, exitErr.Code)
}
