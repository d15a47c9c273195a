/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/carverauto/ifwatch/pkg/logger"
	"github.com/carverauto/ifwatch/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMissingHost = errors.New("host is required")

type testDevice struct {
	Host    string          `json:"host"`
	Port    int             `json:"port"`
	Timeout models.Duration `json:"timeout"`
}

type testConfig struct {
	Device   testDevice    `json:"device"`
	Interval time.Duration `json:"interval"`
	Enabled  bool          `json:"enabled"`
	Allowed  []string      `json:"allowed,omitempty"`
	ignored  string
}

func (c *testConfig) Validate() error {
	if c.Device.Host == "" {
		return errMissingHost
	}

	return nil
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ifwatch.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoadAndValidateFromFile(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "")

	path := writeConfig(t, `{"device":{"host":"10.0.0.1","port":1161,"timeout":"3s"},"enabled":true}`)

	var cfg testConfig

	require.NoError(t, NewConfig(logger.NewTestLogger()).LoadAndValidate(context.Background(), path, &cfg))

	assert.Equal(t, "10.0.0.1", cfg.Device.Host)
	assert.Equal(t, 1161, cfg.Device.Port)
	assert.Equal(t, models.Duration(3*time.Second), cfg.Device.Timeout)
	assert.True(t, cfg.Enabled)
}

func TestLoadAndValidateRunsValidator(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "file")

	path := writeConfig(t, `{"device":{"port":161}}`)

	var cfg testConfig

	err := NewConfig(nil).LoadAndValidate(context.Background(), path, &cfg)
	require.ErrorIs(t, err, errMissingHost)
}

func TestLoadAndValidateMissingFile(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "")

	var cfg testConfig

	err := NewConfig(logger.NewTestLogger()).LoadAndValidate(context.Background(), filepath.Join(t.TempDir(), "absent.json"), &cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadAndValidateRejectsUnknownSource(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "consul")

	var cfg testConfig

	err := NewConfig(logger.NewTestLogger()).LoadAndValidate(context.Background(), "", &cfg)
	require.ErrorIs(t, err, errInvalidConfigSource)
}

func TestLoadAndValidateRejectsNonPointer(t *testing.T) {
	err := NewConfig(logger.NewTestLogger()).LoadAndValidate(context.Background(), "", testConfig{})
	require.ErrorIs(t, err, errInvalidConfigPtr)
}

func TestLoadAndValidateFromEnv(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "env")
	t.Setenv("IFWATCH_DEVICE_HOST", "192.0.2.10")
	t.Setenv("IFWATCH_DEVICE_PORT", "1161")
	t.Setenv("IFWATCH_DEVICE_TIMEOUT", "2s")
	t.Setenv("IFWATCH_INTERVAL", "45s")
	t.Setenv("IFWATCH_ENABLED", "true")
	t.Setenv("IFWATCH_ALLOWED", "C1, C2,,")

	var cfg testConfig

	require.NoError(t, NewConfig(logger.NewTestLogger()).LoadAndValidate(context.Background(), "", &cfg))

	assert.Equal(t, "192.0.2.10", cfg.Device.Host)
	assert.Equal(t, 1161, cfg.Device.Port)
	assert.Equal(t, models.Duration(2*time.Second), cfg.Device.Timeout)
	assert.Equal(t, 45*time.Second, cfg.Interval)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, []string{"C1", "C2"}, cfg.Allowed)
	assert.Empty(t, cfg.ignored)
}

func TestEnvLoaderCustomPrefix(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "env")
	t.Setenv("CONFIG_ENV_PREFIX", "")
	t.Setenv("WATCH_DEVICE_HOST", "router.example")

	var cfg testConfig

	c := NewConfig(logger.NewTestLogger()).WithEnvPrefix("WATCH_")
	require.NoError(t, c.LoadAndValidate(context.Background(), "", &cfg))
	assert.Equal(t, "router.example", cfg.Device.Host)
}

func TestEnvLoaderConfigJSONOverride(t *testing.T) {
	t.Setenv("IFWATCH_CONFIG_JSON", `{"device":{"host":"from-json"},"interval":1000000000}`)
	t.Setenv("IFWATCH_DEVICE_HOST", "ignored")

	var cfg testConfig

	require.NoError(t, NewEnvConfigLoader(logger.NewTestLogger(), "IFWATCH_").Load(context.Background(), "", &cfg))
	assert.Equal(t, "from-json", cfg.Device.Host)
	assert.Equal(t, time.Second, cfg.Interval)
}

func TestEnvLoaderInvalidValue(t *testing.T) {
	t.Setenv("IFWATCH_DEVICE_PORT", "not-a-number")

	var cfg testConfig

	err := NewEnvConfigLoader(nil, "IFWATCH_").Load(context.Background(), "", &cfg)
	require.ErrorIs(t, err, ErrInvalidEnvValue)
}

func TestEnvLoaderRejectsNonStruct(t *testing.T) {
	var n int

	err := NewEnvConfigLoader(nil, "IFWATCH_").Load(context.Background(), "", &n)
	require.ErrorIs(t, err, ErrDstMustBePointerToStruct)

	err = NewEnvConfigLoader(nil, "IFWATCH_").Load(context.Background(), "", nil)
	require.ErrorIs(t, err, ErrDstMustBeNonNilPointer)
}
