package security

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/credential-service/internal/core/domain"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("p1")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "p1" {
		t.Fatalf("expected password to be hashed")
	}

	ok, err := h.Verify("p1", hash)
	if err != nil || !ok {
		t.Fatalf("expected match, got ok=%v err=%v", ok, err)
	}

	ok, err = h.Verify("wrong", hash)
	if err != nil {
		t.Fatalf("mismatch must not error, got %v", err)
	}
	if ok {
		t.Fatalf("expected mismatch")
	}
}

func TestBcryptHasher_SaltsEachCall(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	a, _ := h.Hash("same")
	b, _ := h.Hash("same")
	if a == b {
		t.Fatalf("expected distinct hashes for the same password")
	}
}

func TestBcryptHasher_Cost(t *testing.T) {
	cases := map[int]int{
		0:   DefaultCost,
		1:   bcrypt.MinCost,
		12:  12,
		100: bcrypt.MaxCost,
	}
	for in, want := range cases {
		if got := NewBcryptHasher(in).Cost(); got != want {
			t.Fatalf("cost %d: expected %d, got %d", in, want, got)
		}
	}

	hash, err := NewBcryptHasher(5).Hash("pw")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if cost, _ := bcrypt.Cost([]byte(hash)); cost != 5 {
		t.Fatalf("expected cost 5 in hash, got %d", cost)
	}
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	ok, err := h.Verify("p1", "not-a-bcrypt-hash")
	if ok {
		t.Fatalf("expected no match")
	}
	if !errors.Is(err, domain.ErrHashing) {
		t.Fatalf("expected ErrHashing, got %v", err)
	}
}

func TestBcryptHasher_PasswordTooLong(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	if _, err := h.Hash(strings.Repeat("x", 73)); !errors.Is(err, domain.ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
}
