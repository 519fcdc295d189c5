package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", Claims{
		AccountID: "acc-1",
		Username:  "jdoe",
		Role:      RoleEmployee,
		SessionID: "sess-1",
	}, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.AccountID != "acc-1" || claims.Username != "jdoe" || claims.Role != RoleEmployee {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", Claims{AccountID: "acc-1"}, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if _, err := ParseToken("other", token); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestIsHRManagerSuperuserBypass(t *testing.T) {
	if !IsHRManager(UserContext{Role: RoleHRManager}) {
		t.Fatal("hr manager role should satisfy IsHRManager")
	}
	if !IsHRManager(UserContext{Role: RoleEmployee, Superuser: true}) {
		t.Fatal("superuser should satisfy IsHRManager regardless of role")
	}
	if IsHRManager(UserContext{Role: RoleFinance}) {
		t.Fatal("finance role should not satisfy IsHRManager")
	}
}

func TestAnyOf(t *testing.T) {
	hrOrFinance := AnyOf(IsHRManager, IsFinance)
	if !hrOrFinance(UserContext{Role: RoleFinance}) {
		t.Fatal("finance should pass hr-or-finance gate")
	}
	if hrOrFinance(UserContext{Role: RoleEmployee}) {
		t.Fatal("employee should not pass hr-or-finance gate")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if err := CheckPassword(hash, "s3cret"); err != nil {
		t.Fatalf("check password: %v", err)
	}
	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatal("expected mismatch error")
	}
}
