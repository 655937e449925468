package services

import (
	"errors"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	cause := errors.New("permission denied")
	err := Wrap(ErrValidation, "extraction", "validate", "destination not writable", cause)

	if !errors.Is(err, ErrValidation) {
		t.Error("marker lost")
	}
	if !errors.Is(err, cause) {
		t.Error("cause lost")
	}
	want := "validation error: extraction: validate: destination not writable: permission denied"
	if err.Error() != want {
		t.Errorf("message = %q\nwant %q", err.Error(), want)
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := Wrap(ErrNotFound, "catalog", "scan", "workshop root missing", nil)
	if !errors.Is(err, ErrNotFound) {
		t.Error("marker lost")
	}
	if err.Error() != "not found: catalog: scan: workshop root missing" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestWrapNilMarkerDefaultsToTransient(t *testing.T) {
	err := Wrap(nil, "", "", "", errors.New("x"))
	if !errors.Is(err, ErrTransient) {
		t.Errorf("expected transient default, got %v", err)
	}
}

func TestWrapEmptyDetail(t *testing.T) {
	err := Wrap(ErrTransient, "", "", "", nil)
	if err.Error() != "transient failure: service failure" {
		t.Errorf("message = %q", err.Error())
	}
}
