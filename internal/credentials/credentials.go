// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package credentials supplies the login used by scenarios that sign in to the site under test.
package credentials

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"go.tabsync.dev/internal/constable"
)

const (
	DefaultUsernameEnvVarName = "FONDSNET_USERNAME"
	DefaultPasswordEnvVarName = "FONDSNET_PASSWORD" //nolint:gosec // this is not a credential

	ErrMissingCredentials = constable.Error("missing credentials")
)

// Credentials are a username and password. They format without the password so they can be
// passed to loggers and error messages safely.
type Credentials struct {
	Username string
	Password string
}

func (c Credentials) String() string {
	return fmt.Sprintf("%s (password: %d characters)", c.Username, utf8.RuneCountInString(c.Password))
}

func (c Credentials) GoString() string {
	return fmt.Sprintf("credentials.Credentials{Username:%q, Password:<redacted>}", c.Username)
}

type Provider interface {
	Credentials(ctx context.Context) (Credentials, error)
}

// Static always returns itself.
type Static Credentials

func (s Static) Credentials(context.Context) (Credentials, error) {
	return Credentials(s), nil
}

// FromEnv reads the credentials from the named environment variables each time they are requested.
func FromEnv(usernameEnvVarName, passwordEnvVarName string) Provider {
	return &envProvider{
		usernameVar: usernameEnvVarName,
		passwordVar: passwordEnvVarName,
		lookupEnv:   os.LookupEnv,
	}
}

type envProvider struct {
	usernameVar string
	passwordVar string
	lookupEnv   func(string) (string, bool)
}

func (p *envProvider) Credentials(context.Context) (Credentials, error) {
	var missing []string
	get := func(name string) string {
		value, ok := p.lookupEnv(name)
		if !ok || value == "" {
			missing = append(missing, name)
		}
		return value
	}

	creds := Credentials{Username: get(p.usernameVar), Password: get(p.passwordVar)}
	if len(missing) > 0 {
		return Credentials{}, fmt.Errorf("%w: environment variable(s) %s not set", ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return creds, nil
}
