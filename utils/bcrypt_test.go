package utils

import "testing"

func TestHashAndComparePassword(t *testing.T) {
	hashed, err := HashPassword("v3ry-secret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	// Hashes are persisted on a string column.
	stored := string(hashed)
	if err := ComparePassword(stored, "v3ry-secret"); err != nil {
		t.Fatalf("stored hash did not verify: %v", err)
	}
	if err := ComparePassword(stored, "wrong-password"); err == nil {
		t.Fatal("wrong password verified")
	}
}
