package models

import "testing"

func TestSessionStatusCanTransition(t *testing.T) {
	if !SessionStatusActive.CanTransition(SessionStatusStopped) {
		t.Error("ACTIVE -> STOPPED must be allowed")
	}
	if SessionStatusStopped.CanTransition(SessionStatusActive) {
		t.Error("a stopped session must not reopen")
	}
	if SessionStatusStopped.CanTransition(SessionStatusStopped) {
		t.Error("STOPPED -> STOPPED must be rejected")
	}
	if SessionStatusActive.CanTransition(SessionStatusActive) {
		t.Error("ACTIVE -> ACTIVE must be rejected")
	}
}
