package serverutils

import (
	"errors"
	"testing"
)

type sampleRequest struct {
	Query    string   `validate:"required"`
	Messages []string `validate:"omitempty,min=1"`
}

func TestValidateRequest(t *testing.T) {
	if err := ValidateRequest(sampleRequest{Query: "hello"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err := ValidateRequest(sampleRequest{})
	if err == nil {
		t.Fatal("expected validation error")
	}

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	if len(vErr.Fields) != 1 {
		t.Errorf("Fields = %v, want one entry", vErr.Fields)
	}
}
