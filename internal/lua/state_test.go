package lua

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func setupState(t *testing.T) *State {
	t.Helper()

	s := NewState()
	t.Cleanup(s.Close)
	return s
}

func TestDoString(t *testing.T) {
	s := setupState(t)

	if err := s.DoString(`answer = 40 + 2`); err != nil {
		t.Fatalf("DoString error = %v", err)
	}

	answer := s.GetGlobal("answer")
	if answer.(lua.LNumber) != 42 {
		t.Errorf("answer = %v, want 42", answer)
	}
}

func TestDoStringSyntaxError(t *testing.T) {
	s := setupState(t)

	if err := s.DoString(`this is not lua`); err == nil {
		t.Error("DoString accepted invalid input, want error")
	}
}

func TestDoFile(t *testing.T) {
	s := setupState(t)

	path := filepath.Join(t.TempDir(), "script.lua")
	if err := os.WriteFile(path, []byte(`loaded = true`), 0o644); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}

	if err := s.DoFile(path); err != nil {
		t.Fatalf("DoFile error = %v", err)
	}

	if s.GetGlobal("loaded") != lua.LTrue {
		t.Error("loaded = false, want true")
	}
}

func TestCallGlobal(t *testing.T) {
	s := setupState(t)

	if err := s.DoString(`function double(n) return n * 2 end`); err != nil {
		t.Fatalf("DoString error = %v", err)
	}

	results, err := s.CallGlobal("double", lua.LNumber(21))
	if err != nil {
		t.Fatalf("CallGlobal error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("CallGlobal returned %d values, want 1", len(results))
	}
	if results[0].(lua.LNumber) != 42 {
		t.Errorf("double(21) = %v, want 42", results[0])
	}
}

func TestCallGlobalNotFound(t *testing.T) {
	s := setupState(t)

	if _, err := s.CallGlobal("missing"); err == nil {
		t.Error("CallGlobal on undefined function succeeded, want error")
	}
}

func TestCallGlobalNotAFunction(t *testing.T) {
	s := setupState(t)

	if err := s.DoString(`thing = 7`); err != nil {
		t.Fatalf("DoString error = %v", err)
	}

	if _, err := s.CallGlobal("thing"); err == nil {
		t.Error("CallGlobal on a number succeeded, want error")
	}
}

func TestCallGlobalNoReturnValues(t *testing.T) {
	s := setupState(t)

	if err := s.DoString(`function noop() end`); err != nil {
		t.Fatalf("DoString error = %v", err)
	}

	results, err := s.CallGlobal("noop")
	if err != nil {
		t.Fatalf("CallGlobal error = %v", err)
	}
	if results == nil {
		t.Error("CallGlobal returned nil, want empty slice")
	}
	if len(results) != 0 {
		t.Errorf("CallGlobal returned %d values, want 0", len(results))
	}
}

func TestUnsafeLibrariesNotLoaded(t *testing.T) {
	s := setupState(t)

	if err := s.DoString(`io_type = type(io) os_type = type(os)`); err != nil {
		t.Fatalf("DoString error = %v", err)
	}

	if got := s.GetGlobal("io_type").String(); got != "nil" {
		t.Errorf("type(io) = %q, want nil", got)
	}
	if got := s.GetGlobal("os_type").String(); got != "nil" {
		t.Errorf("type(os) = %q, want nil", got)
	}
}

func TestClosedState(t *testing.T) {
	s := NewState()
	s.Close()

	if !s.IsClosed() {
		t.Error("IsClosed() = false after Close")
	}
	if err := s.DoString(`x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString on closed state = %v, want ErrStateClosed", err)
	}
	if _, err := s.CallGlobal("f"); !errors.Is(err, ErrStateClosed) {
		t.Errorf("CallGlobal on closed state = %v, want ErrStateClosed", err)
	}
	if got := s.GetGlobal("x"); got != lua.LNil {
		t.Errorf("GetGlobal on closed state = %v, want nil", got)
	}

	// Close must be idempotent
	s.Close()
}
