// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildArgv(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		settings map[string]interface{}
		want     []string
	}{
		{
			name:     "bare host",
			host:     "web",
			settings: map[string]interface{}{"hostname": "web"},
			want:     []string{"ssh", "web"},
		},
		{
			name: "hostname replaces host",
			host: "web",
			settings: map[string]interface{}{
				"hostname": "web.example.com",
			},
			want: []string{"ssh", "web.example.com"},
		},
		{
			name: "default port omitted",
			host: "web",
			settings: map[string]interface{}{
				"hostname": "web.example.com",
				"port":     "22",
			},
			want: []string{"ssh", "web.example.com"},
		},
		{
			name: "user and port",
			host: "web",
			settings: map[string]interface{}{
				"hostname": "web.example.com",
				"user":     "robey",
				"port":     "2222",
			},
			want: []string{"ssh", "-l", "robey", "-p", "2222", "web.example.com"},
		},
		{
			name: "identity files in order",
			host: "web",
			settings: map[string]interface{}{
				"hostname":     "web.example.com",
				"identityfile": []string{"/home/robey/.ssh/id_rsa", "/home/robey/.ssh/id_ed25519"},
			},
			want: []string{
				"ssh",
				"-i", "/home/robey/.ssh/id_rsa",
				"-i", "/home/robey/.ssh/id_ed25519",
				"web.example.com",
			},
		},
		{
			name: "address family inet",
			host: "web",
			settings: map[string]interface{}{
				"hostname":      "web.example.com",
				"addressfamily": "inet",
			},
			want: []string{"ssh", "-4", "web.example.com"},
		},
		{
			name: "address family inet6",
			host: "web",
			settings: map[string]interface{}{
				"hostname":      "web.example.com",
				"addressfamily": "inet6",
			},
			want: []string{"ssh", "-6", "web.example.com"},
		},
		{
			name: "proxy command as option",
			host: "web",
			settings: map[string]interface{}{
				"hostname":     "web.example.com",
				"proxycommand": "nc -x relay web.example.com 22",
			},
			want: []string{
				"ssh",
				"-o", "ProxyCommand=nc -x relay web.example.com 22",
				"web.example.com",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildArgv(tt.host, tt.settings)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutputValidator(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "text", value: "text"},
		{name: "json", value: "json"},
		{name: "raw", value: "raw"},
		{name: "yaml", value: "yaml"},
		{name: "invalid", value: "xml", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := OutputValidator(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}

	assert.Error(t, OutputValidator(42))
}
