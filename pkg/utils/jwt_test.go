package utils

import (
	"testing"

	"github.com/google/uuid"
)

func TestTokenRoundtrip(t *testing.T) {
	userID := uuid.New()

	token, err := CreateToken(userID, RoleParent)
	if err != nil {
		t.Fatalf("CreateToken returned error: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}
	if claims.UserID != userID.String() {
		t.Errorf("expected user %s, got %s", userID, claims.UserID)
	}
	if claims.Role != RoleParent {
		t.Errorf("expected role %q, got %q", RoleParent, claims.Role)
	}
	if claims.ChildID != "" {
		t.Errorf("parent token should carry no child scope, got %q", claims.ChildID)
	}
}

func TestCaregiverTokenScoped(t *testing.T) {
	userID := uuid.New()
	childID := uuid.New()

	token, err := CreateCaregiverToken(userID, childID)
	if err != nil {
		t.Fatalf("CreateCaregiverToken returned error: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}
	if claims.Role != RoleCaregiver {
		t.Errorf("expected role %q, got %q", RoleCaregiver, claims.Role)
	}
	if claims.ChildID != childID.String() {
		t.Errorf("expected child scope %s, got %q", childID, claims.ChildID)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Error("expected an error for a malformed token")
	}
}
