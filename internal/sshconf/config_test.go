// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package sshconf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEnv returns a deterministic Environment so tilde expansion and %l
// never depend on the machine running the tests.
func testEnv() *Environment {
	return &Environment{
		HomeDir:  "/home/robey",
		Username: "robey",
		FQDN: func(family string) string {
			return "local.example.com"
		},
	}
}

func mustParse(t *testing.T, text string) *Config {
	t.Helper()
	cfg, err := ParseWithEnv(strings.NewReader(text), testEnv())
	require.NoError(t, err)
	return cfg
}

// Note some lines in this configuration have trailing spaces on purpose.
const baseConfig = "Host *\n" +
	"    User robey\n" +
	"    IdentityFile    =~/.ssh/id_rsa\n" +
	"\n" +
	"# comment\n" +
	"Host *.example.com\n" +
	"    \tUser bjork\n" +
	"Port=3333\n" +
	"Host *\n" +
	"\t  \t Crazy something dumb  \n" +
	"Host spoo.example.com\n" +
	"Crazy something else\n"

func TestParseBlockOrder(t *testing.T) {
	cfg := mustParse(t, baseConfig)

	require.Len(t, cfg.blocks, 5)

	// The implicit pre-Host block is logically first and empty here.
	assert.Empty(t, cfg.blocks[0].patterns)
	assert.Empty(t, cfg.blocks[0].settings)

	wantPatterns := [][]string{nil, {"*"}, {"*.example.com"}, {"*"}, {"spoo.example.com"}}
	for i, want := range wantPatterns[1:] {
		var got []string
		for _, p := range cfg.blocks[i+1].patterns {
			got = append(got, p.Glob)
		}
		assert.Equal(t, want, got, "block %d patterns", i+1)
	}

	assert.Equal(t, map[string]any{
		"user":         "robey",
		"identityfile": []string{"~/.ssh/id_rsa"},
	}, cfg.blocks[1].settings)
	assert.Equal(t, map[string]any{
		"user": "bjork",
		"port": "3333",
	}, cfg.blocks[2].settings)
	assert.Equal(t, map[string]any{"crazy": "something dumb"}, cfg.blocks[3].settings)
	assert.Equal(t, map[string]any{"crazy": "something else"}, cfg.blocks[4].settings)
}

func TestLookupCascade(t *testing.T) {
	cfg := mustParse(t, baseConfig)

	tests := []struct {
		host string
		want map[string]any
	}{
		{
			host: "irc.danger.com",
			want: map[string]any{
				"crazy":        "something dumb",
				"hostname":     "irc.danger.com",
				"user":         "robey",
				"identityfile": []string{"/home/robey/.ssh/id_rsa"},
			},
		},
		{
			host: "irc.example.com",
			want: map[string]any{
				"crazy":        "something dumb",
				"hostname":     "irc.example.com",
				"user":         "robey",
				"port":         "3333",
				"identityfile": []string{"/home/robey/.ssh/id_rsa"},
			},
		},
		{
			// The spoo block's own "crazy" loses to the earlier Host * match.
			host: "spoo.example.com",
			want: map[string]any{
				"crazy":        "something dumb",
				"hostname":     "spoo.example.com",
				"user":         "robey",
				"port":         "3333",
				"identityfile": []string{"/home/robey/.ssh/id_rsa"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.Lookup(tt.host))
		})
	}
}

func TestFirstMatchWins(t *testing.T) {
	cfg := mustParse(t, `
Host www13.*
    Port 22

Host *.example.com
    Port 2222

Host *
    Port 3333
`)

	got := cfg.Lookup("www13.example.com")
	assert.Equal(t, map[string]any{"hostname": "www13.example.com", "port": "22"}, got)
}

func TestNegationExcludes(t *testing.T) {
	cfg := mustParse(t, `
Host www13.* !*.example.com
    Port 22

Host *.example.com !www13.*
    Port 2222

Host www13.*
    Port 8080

Host *
    Port 3333
`)

	got := cfg.Lookup("www13.example.com")
	assert.Equal(t, map[string]any{"hostname": "www13.example.com", "port": "8080"}, got)
}

func TestProxyCommandEqualsSeparator(t *testing.T) {
	cfg := mustParse(t, `
Host space-delimited
    ProxyCommand foo bar=biz baz

Host equals-delimited
    ProxyCommand=foo bar=biz baz
`)

	for _, host := range []string{"space-delimited", "equals-delimited"} {
		assert.Equal(t, "foo bar=biz baz", cfg.Lookup(host)["proxycommand"], host)
	}
}

func TestProxyCommandEqualsDivisor(t *testing.T) {
	cfg := mustParse(t, `
Host proxy-with-equal-divisor-and-space
ProxyCommand = foo=bar

Host proxy-with-equal-divisor-and-no-space
ProxyCommand=foo=bar

Host proxy-without-equal-divisor
ProxyCommand foo=bar:%h-%p
`)

	tests := map[string]string{
		"proxy-with-equal-divisor-and-space":    "foo=bar",
		"proxy-with-equal-divisor-and-no-space": "foo=bar",
		"proxy-without-equal-divisor":           "foo=bar:proxy-without-equal-divisor-22",
	}
	for host, want := range tests {
		got := cfg.Lookup(host)
		assert.Equal(t, map[string]any{"hostname": host, "proxycommand": want}, got)
	}
}

func TestProxyCommandInterpolation(t *testing.T) {
	cfg := mustParse(t, `
Host specific
    Port 37
    ProxyCommand host %h port %p lol

Host portonly
    Port 155

Host *
    Port 25
    ProxyCommand host %h port %p
`)

	tests := []struct {
		host string
		want string
	}{
		{"foo.com", "host foo.com port 25"},
		{"specific", "host specific port 37 lol"},
		{"portonly", "host portonly port 155"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cfg.Lookup(tt.host)["proxycommand"], tt.host)
	}
}

func TestProxyCommandTildeExpansion(t *testing.T) {
	cfg := mustParse(t, `
Host test
    ProxyCommand    ssh -F ~/.ssh/test_config bastion nc %h %p
`)

	want := "ssh -F /home/robey/.ssh/test_config bastion nc test 22"
	assert.Equal(t, want, cfg.Lookup("test")["proxycommand"])
}

func TestProxyCommandNone(t *testing.T) {
	cfg := mustParse(t, `
Host proxycommand-standard-none
    ProxyCommand None

Host proxycommand-with-equals-none
    ProxyCommand=None
`)

	for _, host := range []string{"proxycommand-standard-none", "proxycommand-with-equals-none"} {
		assert.Equal(t, map[string]any{"hostname": host}, cfg.Lookup(host))
	}
}

func TestProxyCommandNoneMasking(t *testing.T) {
	cfg := mustParse(t, `
Host specific-host
    ProxyCommand none

Host other-host
    ProxyCommand other-proxy

Host *
    ProxyCommand default-proxy
`)

	// The none sentinel blanks the key entirely; the broader Host * value
	// must not cascade back in.
	assert.NotContains(t, cfg.Lookup("specific-host"), "proxycommand")
	assert.Equal(t, "other-proxy", cfg.Lookup("other-host")["proxycommand"])
	assert.Equal(t, "default-proxy", cfg.Lookup("some-random-host")["proxycommand"])
}

func TestIdentityFileAccumulation(t *testing.T) {
	cfg := mustParse(t, `

IdentityFile id_dsa0

Host *
IdentityFile id_dsa1

Host dsa2
IdentityFile id_dsa2

Host dsa2*
IdentityFile id_dsa22
`)

	tests := []struct {
		host string
		want []string
	}{
		{"foo", []string{"id_dsa0", "id_dsa1"}},
		{"dsa2", []string{"id_dsa0", "id_dsa1", "id_dsa2", "id_dsa22"}},
		{"dsa22", []string{"id_dsa0", "id_dsa1", "id_dsa22"}},
	}
	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			got := cfg.Lookup(tt.host)
			assert.Equal(t, map[string]any{"hostname": tt.host, "identityfile": tt.want}, got)
		})
	}
}

func TestIdentityFileNeverDeduplicated(t *testing.T) {
	cfg := mustParse(t, `
IdentityFile id_shared

Host *
IdentityFile id_shared
`)

	got := cfg.Lookup("anything")
	assert.Equal(t, []string{"id_shared", "id_shared"}, got["identityfile"])
}

func TestQuotedHostNames(t *testing.T) {
	cfg := mustParse(t, `Host "param pam" param "pam"
    Port 1111

Host "param2"
    Port 2222

Host param3 parara
    Port 3333

Host param4 "p a r" "p" "par" para
    Port 4444
`)

	tests := map[string]string{
		"param pam": "1111",
		"param":     "1111",
		"pam":       "1111",
		"param2":    "2222",
		"param3":    "3333",
		"parara":    "3333",
		"param4":    "4444",
		"p a r":     "4444",
		"p":         "4444",
		"par":       "4444",
		"para":      "4444",
	}
	for host, port := range tests {
		got := cfg.Lookup(host)
		assert.Equal(t, map[string]any{"hostname": host, "port": port}, got, host)
	}
}

func TestQuotedSettingValues(t *testing.T) {
	cfg := mustParse(t, `Host "param pam" param "pam"
    IdentityFile id_rsa

Host "param2"
    IdentityFile "test rsa key"

Host param3 parara
    IdentityFile id_rsa
    IdentityFile "test rsa key"
`)

	tests := map[string][]string{
		"param pam": {"id_rsa"},
		"param":     {"id_rsa"},
		"pam":       {"id_rsa"},
		"param2":    {"test rsa key"},
		"param3":    {"id_rsa", "test rsa key"},
		"parara":    {"id_rsa", "test rsa key"},
	}
	for host, want := range tests {
		got := cfg.Lookup(host)
		assert.Equal(t, map[string]any{"hostname": host, "identityfile": want}, got, host)
	}
}

func TestAddressFamilyAndLazyFQDN(t *testing.T) {
	env := testEnv()
	var families []string
	env.FQDN = func(family string) string {
		families = append(families, family)
		return "local.example.com"
	}

	cfg, err := ParseWithEnv(strings.NewReader(`
AddressFamily inet
IdentityFile something_%l_using_fqdn
`), env)
	require.NoError(t, err)

	got := cfg.Lookup("meh")
	assert.Equal(t, []string{"something_local.example.com_using_fqdn"}, got["identityfile"])
	assert.Equal(t, []string{"inet"}, families, "one computation, constrained to inet")
}

func TestLazyFQDNNotComputedWhenUnused(t *testing.T) {
	env := testEnv()
	env.FQDN = func(family string) string {
		t.Fatal("FQDN computed although no value references %l")
		return ""
	}

	cfg, err := ParseWithEnv(strings.NewReader(`
Host *
    ProxyCommand host %h port %p
    IdentityFile ~/.ssh/id_rsa
`), env)
	require.NoError(t, err)

	got := cfg.Lookup("foo.com")
	assert.Equal(t, "host foo.com port 22", got["proxycommand"])
}

func TestCRLFConfig(t *testing.T) {
	cfg := mustParse(t, "host abcqwerty\r\nHostName 127.0.0.1\r\n")
	assert.Equal(t, "127.0.0.1", cfg.Lookup("abcqwerty")["hostname"])

	lf := mustParse(t, "host abcqwerty\nHostName 127.0.0.1\n")
	assert.Equal(t, lf.Lookup("abcqwerty"), cfg.Lookup("abcqwerty"))
}

func TestHostnames(t *testing.T) {
	cfg := mustParse(t, baseConfig)
	assert.Equal(t, []string{"*", "*.example.com", "spoo.example.com"}, cfg.Hostnames())
}

func TestHostnamesStripMarkers(t *testing.T) {
	cfg := mustParse(t, `
IdentityFile id_implicit

Host www13.* !*.example.com
    Port 22

Host "p a r"
    Port 4444
`)

	// Quote and negation markers are stripped and the implicit block is not
	// reported.
	assert.Equal(t, []string{"*.example.com", "p a r", "www13.*"}, cfg.Hostnames())
}

func TestLookupIdempotent(t *testing.T) {
	cfg := mustParse(t, baseConfig)

	first := cfg.Lookup("spoo.example.com")
	second := cfg.Lookup("spoo.example.com")
	assert.Equal(t, first, second)

	// Mutating a returned mapping must not leak into the Config.
	first["user"] = "mallory"
	if files, ok := first["identityfile"].([]string); ok && len(files) > 0 {
		files[0] = "clobbered"
	}
	assert.Equal(t, second, cfg.Lookup("spoo.example.com"))
}

func TestLastWriteWinsWithinBlock(t *testing.T) {
	cfg := mustParse(t, `
Host dup
    Port 22
    Port 2222
`)

	assert.Equal(t, "2222", cfg.Lookup("dup")["port"])
}

func TestUnknownKeywordsPassThrough(t *testing.T) {
	cfg := mustParse(t, `
Host odd
    FrobnicateLevel 11
    BareKeyword
`)

	got := cfg.Lookup("odd")
	assert.Equal(t, "11", got["frobnicatelevel"])
	assert.Equal(t, "", got["barekeyword"])
}

func TestParseErrorNoPartialConfig(t *testing.T) {
	cfg, err := ParseWithEnv(strings.NewReader(`
Host good
    Port 22

Host param "pam
    Port 2222
`), testEnv())

	require.Error(t, err)
	assert.Nil(t, cfg)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 5, pe.Line)
}
