// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/olegiv/lobos/internal/model"
)

var fixedNow = time.UnixMilli(1730000000000)

func TestMockProvider_LoginRole(t *testing.T) {
	p := NewMockProviderWithClock(func() time.Time { return fixedNow })

	tests := []struct {
		email string
		want  string
	}{
		{email: "admin@x.com", want: model.RoleAdmin},
		{email: "club.admin@cdglobos.com", want: model.RoleAdmin},
		{email: "user@x.com", want: model.RoleUser},
		{email: "", want: model.RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			creds, err := p.Login(context.Background(), tt.email, "any-password")
			if err != nil {
				t.Fatalf("Login: %v", err)
			}
			if creds.User.Role != tt.want {
				t.Errorf("role = %q, want %q", creds.User.Role, tt.want)
			}
			if creds.User.Email != tt.email {
				t.Errorf("email = %q, want %q", creds.User.Email, tt.email)
			}
		})
	}
}

func TestMockProvider_LoginIdentity(t *testing.T) {
	p := NewMockProviderWithClock(func() time.Time { return fixedNow })

	creds, err := p.Login(context.Background(), "user@x.com", "")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if creds.Token != "mock-jwt-token-1730000000000" {
		t.Errorf("Token = %q", creds.Token)
	}
	if creds.User.ID != MockUserID || creds.User.Name != MockUserName {
		t.Errorf("User = %+v", creds.User)
	}
	if creds.User.AvatarURL() != MockUserAvatar {
		t.Error("avatar not set")
	}
}

func TestMockProvider_Register(t *testing.T) {
	p := NewMockProviderWithClock(func() time.Time { return fixedNow })

	creds, err := p.Register(context.Background(), RegisterParams{
		Name:     "Admin Impostor",
		Email:    "admin@cdglobos.com",
		Phone:    "1122334455",
		Password: "secret-password",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if creds.User.Role != model.RoleUser {
		t.Errorf("Register role = %q, want %q", creds.User.Role, model.RoleUser)
	}
	if creds.User.ID != "1730000000000" {
		t.Errorf("ID = %q", creds.User.ID)
	}
	if creds.User.Avatar != nil {
		t.Error("registered user has an avatar")
	}
	if creds.User.Phone != "1122334455" {
		t.Errorf("Phone = %q", creds.User.Phone)
	}
}

func TestMockProvider_Cancelled(t *testing.T) {
	p := NewMockProvider()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Login(ctx, "a@b.com", "x"); !errors.Is(err, context.Canceled) {
		t.Errorf("Login = %v, want context.Canceled", err)
	}
	if _, err := p.Register(ctx, RegisterParams{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Register = %v, want context.Canceled", err)
	}
	if err := p.Logout(context.Background()); err != nil {
		t.Errorf("Logout = %v", err)
	}
}
