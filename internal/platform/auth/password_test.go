package auth

import "testing"

func TestHasher_HashAndCompare(t *testing.T) {
	// Low cost keeps the test fast
	h := NewHasher(4)

	hash, err := h.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash must not equal plaintext")
	}

	if !h.Compare(hash, "correct horse battery staple") {
		t.Error("expected matching password to compare true")
	}
	if h.Compare(hash, "wrong password") {
		t.Error("expected non-matching password to compare false")
	}
}

func TestHasher_CompareInvalidHash(t *testing.T) {
	h := NewHasher(4)
	if h.Compare("not-a-bcrypt-hash", "anything") {
		t.Error("expected compare against invalid hash to be false")
	}
}
