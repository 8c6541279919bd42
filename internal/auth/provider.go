// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package auth defines the authentication provider the session store talks to.
// The only implementation today is MockProvider, which accepts any
// credentials; a real backend plugs in by implementing Provider.
package auth

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/olegiv/lobos/internal/model"
)

// Credentials is what a successful login or registration yields.
type Credentials struct {
	Token string
	User  model.User
}

// RegisterParams are the profile fields collected by the registration form.
type RegisterParams struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// Provider authenticates users. Implementations may block on I/O and must
// honour ctx cancellation.
type Provider interface {
	Login(ctx context.Context, email, password string) (Credentials, error)
	Register(ctx context.Context, params RegisterParams) (Credentials, error)
	Logout(ctx context.Context) error
}

// Values of the fixed identity returned by MockProvider.Login.
const (
	MockUserID     = "1"
	MockUserName   = "Alex Rodriguez"
	MockUserAvatar = "https://lh3.googleusercontent.com/aida-public/AB6AXuCd-6XC9sYwFFz6KQDrcmO8tNj1_xeq6O3vr-rb9OcXtMcmyre2uNRNUiHIccUI6cEXR2pbW9zSlXYxnYec8m87aHAYR2mQep9OFfEugYNgLj9V6ShsprnEGLmWU27vyAXmERU3O5Enbtv1YL6JnVbsdIRip3-Be-n9vtnBaw-Hr2p4wYwgeX1j06p29cRzxOKBSnQmNi1JseKE1CkdaLAOBhvw6Yr55xJVz3sc0OPWFPaZPNnB47i99SSL-F2a65un4_DabKABetk"
)

// MockProvider fabricates identities without checking any credential.
//
// The admin role is granted to any email containing "admin". This is a
// placeholder for development only and must be replaced by real credential
// verification before the portal is connected to a backend.
type MockProvider struct {
	now func() time.Time
}

// NewMockProvider creates a MockProvider using the wall clock.
func NewMockProvider() *MockProvider {
	return &MockProvider{now: time.Now}
}

// NewMockProviderWithClock creates a MockProvider with a fixed time source.
func NewMockProviderWithClock(now func() time.Time) *MockProvider {
	return &MockProvider{now: now}
}

// Login returns the fixed mock identity for email. The password is ignored.
func (p *MockProvider) Login(ctx context.Context, email, _ string) (Credentials, error) {
	if err := ctx.Err(); err != nil {
		return Credentials{}, err
	}

	role := model.RoleUser
	if strings.Contains(email, "admin") {
		role = model.RoleAdmin
	}

	avatar := MockUserAvatar
	return Credentials{
		Token: p.token(),
		User: model.User{
			ID:     MockUserID,
			Email:  email,
			Name:   MockUserName,
			Role:   role,
			Avatar: &avatar,
		},
	}, nil
}

// Register returns a new standard-role identity built from params.
func (p *MockProvider) Register(ctx context.Context, params RegisterParams) (Credentials, error) {
	if err := ctx.Err(); err != nil {
		return Credentials{}, err
	}

	return Credentials{
		Token: p.token(),
		User: model.User{
			ID:    strconv.FormatInt(p.now().UnixMilli(), 10),
			Email: params.Email,
			Name:  params.Name,
			Phone: params.Phone,
			Role:  model.RoleUser,
		},
	}, nil
}

// Logout has nothing to revoke for mock tokens.
func (p *MockProvider) Logout(context.Context) error {
	return nil
}

func (p *MockProvider) token() string {
	return fmt.Sprintf("mock-jwt-token-%d", p.now().UnixMilli())
}
