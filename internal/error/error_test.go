package error

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind string
	}{
		{name: "nil", err: nil, kind: ""},
		{name: "out of bounds", err: ErrXorYOutOfGridBound(10, 0), kind: KindValidation},
		{name: "duplicate cell", err: ErrDuplicateShipCell(1, 1), kind: KindValidation},
		{name: "fractional coordinate", err: ErrInvalidCoordinate("1.5"), kind: KindValidation},
		{name: "not turn", err: ErrNotTurnForAttacker("abc"), kind: KindState},
		{name: "foreign player", err: ErrPlayerNotInSession("abc"), kind: KindState},
		{name: "already in game", err: ErrSessionAlreadyInGame("abc"), kind: KindState},
		{name: "game missing", err: ErrGameNotExists("abc"), kind: KindNotFound},
		{name: "wrapped twice", err: fmt.Errorf("handler: %w", ErrGameFull("abc")), kind: KindState},
		{name: "foreign", err: errors.New("boom"), kind: KindUnknown},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := KindOf(test.err); got != test.kind {
				t.Fatalf("expected kind: %s\tgot: %s", test.kind, got)
			}
		})
	}
}

func TestOutOfBoundsIsValidation(t *testing.T) {
	err := ErrXorYOutOfGridBound(-1, 5)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatal("expected out of bounds error")
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("out of bounds must also be a validation error")
	}
}
