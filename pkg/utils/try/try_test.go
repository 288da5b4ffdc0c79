package try_test

import (
	"errors"
	"testing"

	"github.com/plmio/go-3dx/pkg/utils/try"
)

type fakeFataler struct {
	called bool
}

func (f *fakeFataler) Fatal(...any) {
	f.called = true
}

func TestTo_ok(t *testing.T) {
	e := try.To(42, nil)

	v, err := e.Get()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if v != 42 {
		t.Errorf("Get: got %d, want 42", v)
	}

	f := &fakeFataler{}
	if got := e.OrFatal(f); got != 42 || f.called {
		t.Errorf("OrFatal: got %d (fatal called: %v)", got, f.called)
	}

	if got := e.OrDefault(0); got != 42 {
		t.Errorf("OrDefault: got %d, want 42", got)
	}
}

func TestTo_ng(t *testing.T) {
	expectedErr := errors.New("fake error")
	e := try.To(0, expectedErr)

	if _, err := e.Get(); !errors.Is(err, expectedErr) {
		t.Errorf("Get: got error %v, want %v", err, expectedErr)
	}

	f := &fakeFataler{}
	e.OrFatal(f)
	if !f.called {
		t.Error("OrFatal should call Fatal")
	}

	if got := e.OrDefault(7); got != 7 {
		t.Errorf("OrDefault: got %d, want 7", got)
	}
}
