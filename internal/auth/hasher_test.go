package auth

import "testing"

func TestBcryptHasherRoundTrip(t *testing.T) {
	hasher := BcryptHasher{}

	digest, err := hasher.Hash("pw123")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	matched, err := hasher.Compare("pw123", digest)
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	if !matched {
		t.Fatal("correct password did not match")
	}

	matched, err = hasher.Compare("wrong", digest)
	if err != nil {
		t.Fatalf("Compare returned error for mismatch: %v", err)
	}
	if matched {
		t.Fatal("wrong password matched")
	}
}

func TestBcryptHasherSaltsPerCall(t *testing.T) {
	hasher := BcryptHasher{}

	first, err := hasher.Hash("pw123")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	second, err := hasher.Hash("pw123")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if first == second {
		t.Fatal("digests should differ between calls")
	}
}

func TestBcryptHasherMalformedDigest(t *testing.T) {
	hasher := BcryptHasher{}

	if _, err := hasher.Compare("pw123", "not-a-bcrypt-digest"); err == nil {
		t.Fatal("malformed digest should be a comparison error, not a mismatch")
	}
}
