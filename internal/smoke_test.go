package main

import (
	"os"
	"testing"

	"github.com/blimu-dev/typegen"
)

func TestValidateSpec_NoSpec(t *testing.T) {
	// Smoke: ensure the facade builds and ValidateSpec errors on missing file
	if _, err := os.Stat("/no/such/file.yaml"); err == nil {
		t.Fatal("expected no file")
	}
	if err := typegen.ValidateSpec("/no/such/file.yaml"); err == nil {
		t.Fatal("expected error")
	}
	if _, err := typegen.ComputeNames("/no/such/file.yaml", ""); err == nil {
		t.Fatal("expected error")
	}
}
