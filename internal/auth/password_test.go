package auth

import (
	"strings"
	"testing"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	password := "correct-horse-battery-staple"

	hash, err := HashPassword(password, Params{})
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	// Verify the hash is in PHC format
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("hash should start with $argon2id$, got %q", hash)
	}

	ok, err := VerifyPassword(password, hash)
	if err != nil {
		t.Fatalf("VerifyPassword() error = %v", err)
	}
	if !ok {
		t.Error("VerifyPassword() should return true for correct password")
	}
}

func TestHashPassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword("correct-password", Params{})
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	ok, err := VerifyPassword("wrong-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword() error = %v", err)
	}
	if ok {
		t.Error("VerifyPassword() should return false for wrong password")
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	password := "same-password"

	hash1, err := HashPassword(password, Params{})
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	hash2, err := HashPassword(password, Params{})
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if hash1 == hash2 {
		t.Error("two hashes of the same password should have different salts")
	}
}

func TestHashPassword_CustomCost(t *testing.T) {
	// Cheap parameters keep the test fast; verification reads the cost
	// from the digest, not from the hasher's configuration.
	cheap := Params{Time: 1, MemoryKiB: 8 * 1024, Threads: 1}

	hash, err := HashPassword("pw", cheap)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if !strings.Contains(hash, "m=8192,t=1,p=1") {
		t.Errorf("digest should encode the configured cost, got %q", hash)
	}

	ok, err := VerifyPassword("pw", hash)
	if err != nil {
		t.Fatalf("VerifyPassword() error = %v", err)
	}
	if !ok {
		t.Error("VerifyPassword() should verify digests with non-default cost")
	}
}

func TestVerifyPassword_MalformedDigest(t *testing.T) {
	cases := []string{
		"",
		"not-a-digest",
		"$bcrypt$v=19$m=65536,t=3,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=1$!!!$aGFzaA",
	}
	for _, digest := range cases {
		if _, err := VerifyPassword("pw", digest); err == nil {
			t.Errorf("VerifyPassword(%q) should fail", digest)
		}
	}
}

func TestParams_WithDefaults(t *testing.T) {
	p := Params{}.withDefaults()
	if p != DefaultParams() {
		t.Errorf("zero Params should resolve to defaults, got %+v", p)
	}

	custom := Params{Time: 5, MemoryKiB: 1024, Threads: 2}
	if custom.withDefaults() != custom {
		t.Error("explicit Params should pass through unchanged")
	}
}

func TestIsValidUsername(t *testing.T) {
	valid := []string{"jdoe", "j.doe", "j_doe-99", "A"}
	for _, u := range valid {
		if !IsValidUsername(u) {
			t.Errorf("IsValidUsername(%q) = false, want true", u)
		}
	}

	invalid := []string{"", "has space", "semi;colon", strings.Repeat("x", 65)}
	for _, u := range invalid {
		if IsValidUsername(u) {
			t.Errorf("IsValidUsername(%q) = true, want false", u)
		}
	}
}
