package utils

import "testing"

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash must not equal the plaintext")
	}
	if err := ComparePasswords(hash, "correct horse battery staple"); err != nil {
		t.Errorf("correct password did not verify: %v", err)
	}
	if err := ComparePasswords(hash, "wrong"); err == nil {
		t.Error("wrong password verified")
	}
}

func TestValidPasscode(t *testing.T) {
	tests := []struct {
		passcode string
		want     bool
	}{
		{"0000", true},
		{"1234", true},
		{"9999", true},
		{"", false},
		{"123", false},
		{"12345", false},
		{"12a4", false},
		{"12 4", false},
		{"١٢٣٤", false}, // non-ASCII digits
	}

	for _, tt := range tests {
		if got := ValidPasscode(tt.passcode); got != tt.want {
			t.Errorf("ValidPasscode(%q) = %v, want %v", tt.passcode, got, tt.want)
		}
	}
}

func TestPasscodeHashing(t *testing.T) {
	hash, err := HashPasscode("1234")
	if err != nil {
		t.Fatalf("HashPasscode returned error: %v", err)
	}
	if hash == "1234" {
		t.Fatal("passcode hash must not equal the plaintext")
	}
	if err := ComparePasscode(hash, "1234"); err != nil {
		t.Errorf("correct passcode did not verify: %v", err)
	}
	if err := ComparePasscode(hash, "4321"); err == nil {
		t.Error("wrong passcode verified")
	}
}

func TestGenerateSecureToken(t *testing.T) {
	a, err := GenerateSecureToken(32)
	if err != nil {
		t.Fatalf("GenerateSecureToken returned error: %v", err)
	}
	b, err := GenerateSecureToken(32)
	if err != nil {
		t.Fatalf("GenerateSecureToken returned error: %v", err)
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
	if a == b {
		t.Error("two tokens should not collide")
	}
}
