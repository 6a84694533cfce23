package util

import (
	"testing"
	"time"
	"tmua_guide_backend/internal/model"
)

const testSecret = "test-secret-for-unit-tests-only"

func testUser(role model.UserRole) *model.User {
	u := &model.User{
		Name:  "Tester",
		Email: "tester@example.com",
		Role:  role,
	}
	u.ID = "11111111-2222-3333-4444-555555555555"
	return u
}

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT(testUser(model.Teacher), testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(token, testSecret)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != "11111111-2222-3333-4444-555555555555" {
		t.Errorf("UserID = %q", claims.UserID)
	}
	if claims.Role != model.Teacher {
		t.Errorf("Role = %q, want teacher", claims.Role)
	}
	if claims.Email != "tester@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(testUser(model.Student), testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	if _, err := ParseJWT(token, "another-secret"); err == nil {
		t.Error("错误密钥签发的令牌不应通过校验")
	}
}

func TestParseJWTExpired(t *testing.T) {
	token, err := GenerateJWT(testUser(model.Student), testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	if _, err := ParseJWT(token, testSecret); err == nil {
		t.Error("过期令牌不应通过校验")
	}
}

func TestParseJWTInvalidRoleFallsBack(t *testing.T) {
	token, err := GenerateJWT(testUser(model.UserRole("superuser")), testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(token, testSecret)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.Role != model.Student {
		t.Errorf("非法角色应回退为 student, got %q", claims.Role)
	}
}
