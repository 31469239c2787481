package services

import (
	"errors"
	"testing"

	"github.com/savi/placement-portal/internal/pkg/apperrors"
)

func TestParseObjectID(t *testing.T) {
	oid, err := parseObjectID("507f1f77bcf86cd799439011")
	if err != nil {
		t.Fatalf("parseObjectID returned error for a valid id: %v", err)
	}
	if oid.Hex() != "507f1f77bcf86cd799439011" {
		t.Errorf("parsed id = %s, want 507f1f77bcf86cd799439011", oid.Hex())
	}

	if _, err := parseObjectID("  507f1f77bcf86cd799439011  "); err != nil {
		t.Errorf("parseObjectID should trim surrounding whitespace, got %v", err)
	}

	for _, id := range []string{"", "not-a-hex-id", "507f1f77bcf86cd79943901", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		_, err := parseObjectID(id)
		if !errors.Is(err, apperrors.ErrBadRequest) {
			t.Errorf("parseObjectID(%q) error = %v, want ErrBadRequest", id, err)
		}
	}
}
