// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("Host *\n"), 0o644))
	return path
}

func TestResolveConfigPath(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T) string // returns explicit arg
		want    func(t *testing.T, got string)
		wantErr bool
		errIs   error
	}{
		{
			name: "explicit_path_wins",
			setup: func(t *testing.T) string {
				t.Setenv("SSHCFG_FILE", "/nonexistent/ignored")
				return writeConfig(t, t.TempDir(), "myconfig")
			},
			want: func(t *testing.T, got string) {
				assert.Equal(t, "myconfig", filepath.Base(got))
			},
		},
		{
			name: "explicit_path_missing",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nope")
			},
			wantErr: true,
			errIs:   os.ErrNotExist,
		},
		{
			name: "explicit_path_is_directory",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
			wantErr: true,
			errIs:   os.ErrInvalid,
		},
		{
			name: "env_var_fallback",
			setup: func(t *testing.T) string {
				path := writeConfig(t, t.TempDir(), "envconfig")
				t.Setenv("SSHCFG_FILE", path)
				return ""
			},
			want: func(t *testing.T, got string) {
				assert.Equal(t, "envconfig", filepath.Base(got))
			},
		},
		{
			name: "env_var_missing_file",
			setup: func(t *testing.T) string {
				t.Setenv("SSHCFG_FILE", filepath.Join(t.TempDir(), "nope"))
				return ""
			},
			wantErr: true,
			errIs:   os.ErrNotExist,
		},
		{
			name: "user_config_fallback",
			setup: func(t *testing.T) string {
				t.Setenv("SSHCFG_FILE", "")
				home := t.TempDir()
				t.Setenv("HOME", home)
				require.NoError(t, os.MkdirAll(filepath.Join(home, ".ssh"), 0o700))
				writeConfig(t, filepath.Join(home, ".ssh"), "config")
				return ""
			},
			want: func(t *testing.T, got string) {
				assert.Equal(t, "config", filepath.Base(got))
				assert.Contains(t, got, ".ssh")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			explicit := tt.setup(t)

			got, err := ResolveConfigPath(explicit)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
				}
				return
			}
			require.NoError(t, err)
			tt.want(t, got)
		})
	}
}
