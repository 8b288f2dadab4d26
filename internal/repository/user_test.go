package repository

import (
	"errors"
	"testing"
)

func TestNewUserRepository(t *testing.T) {
	repo := NewUserRepository(nil)
	if repo == nil {
		t.Fatal("expected non-nil UserRepository")
	}
	if repo.db != nil {
		t.Fatal("expected nil db when constructed with nil")
	}
}

func TestSentinelErrors(t *testing.T) {
	if ErrUserNotFound.Error() != "user not found" {
		t.Fatalf("unexpected error message: %s", ErrUserNotFound.Error())
	}
	if ErrDuplicateEmail.Error() != "email already exists" {
		t.Fatalf("unexpected error message: %s", ErrDuplicateEmail.Error())
	}
}

func TestIsDuplicateEntryError(t *testing.T) {
	if isDuplicateEntryError(nil) {
		t.Fatal("nil error should not be a duplicate entry error")
	}
	if isDuplicateEntryError(ErrUserNotFound) {
		t.Fatal("ErrUserNotFound should not be a duplicate entry error")
	}
	dup := errors.New(`Error 1062 (23000): Duplicate entry 'a@b.com' for key 'users.email'`)
	if !isDuplicateEntryError(dup) {
		t.Fatal("MySQL duplicate entry error should be detected")
	}
}
