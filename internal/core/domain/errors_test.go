package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsUnauthorized(t *testing.T) {
	if !IsUnauthorized(fmt.Errorf("fetch: %w", ErrNotAuthorized)) {
		t.Fatal("wrapped ErrNotAuthorized")
	}
	if !IsUnauthorized(fmt.Errorf("fetch: %w", &RemoteError{Status: 401, Message: "Token inválido."})) {
		t.Fatal("wrapped backend 401")
	}
	if IsUnauthorized(&RemoteError{Status: 403}) {
		t.Fatal("403 is not an authentication failure")
	}
	if IsUnauthorized(ErrBackendUnavailable) {
		t.Fatal("network failure is not an authentication failure")
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(&RemoteError{Status: 400, Message: "Credenciales inválidas."}, MsgLoginFailed); got != "Credenciales inválidas." {
		t.Fatalf("backend detail lost: %q", got)
	}
	if got := UserMessage(&RemoteError{Status: 500}, MsgLoginFailed); got != MsgLoginFailed {
		t.Fatalf("expected fallback, got %q", got)
	}
	if got := UserMessage(ErrBackendUnavailable, MsgLoginFailed); got != MsgLoginFailed {
		t.Fatalf("expected fallback, got %q", got)
	}
	if got := UserMessage(ErrNotAuthorized, MsgLoginFailed); got != "No autorizado." {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestFlowError_UnwrapsCause(t *testing.T) {
	err := error(&FlowError{Message: MsgRegisterFailed, Err: ErrBackendUnavailable})
	if err.Error() != MsgRegisterFailed {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Fatal("cause not reachable through errors.Is")
	}
}
