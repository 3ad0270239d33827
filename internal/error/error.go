package error

import (
	"errors"
	"fmt"
)

const (
	ConstErrShootFailed    = "shoot operation failed"
	ConstErrLayoutFailed   = "ship layout submission failed"
	ConstErrJoinFailed     = "joining the game failed"
	ConstErrCreateFailed   = "creating the game failed"
	ConstErrInvalidPayload = "incoming payload could not be decoded"
	ConstErrInvalidSignal  = "invalid code in the incoming payload"
	ConstErrSignalAbsent   = "incoming req payload must contain 'code' field"
)

// Kinds of failures surfaced to callers. Every constructor below
// wraps exactly one of them so callers can branch with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrState      = errors.New("state error")
	ErrNotFound   = errors.New("not found")

	ErrOutOfBounds = fmt.Errorf("%w: out of bounds", ErrValidation)
)

const (
	KindValidation = "VALIDATION"
	KindState      = "STATE"
	KindNotFound   = "NOT_FOUND"
	KindUnknown    = "UNKNOWN"
)

// KindOf returns the machine-readable kind of err.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrState):
		return KindState
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	default:
		return KindUnknown
	}
}

func ErrGameNotExists(gameUuid string) error {
	return fmt.Errorf("%w: game with this uuid does not exist, uuid: %s", ErrNotFound, gameUuid)
}

func ErrPlayerNotExist(playerUuid string) error {
	return fmt.Errorf("%w: player with this uuid does not exist, uuid: %s", ErrNotFound, playerUuid)
}

func ErrSessionNotFound(sessionId string) error {
	return fmt.Errorf("%w: session not found, id: %s", ErrNotFound, sessionId)
}

func ErrXorYOutOfGridBound(x, y int) error {
	return fmt.Errorf("%w: incoming x or y is out of game grid bound\tx: %d\ty: %d", ErrOutOfBounds, x, y)
}

func ErrDuplicateShipCell(x, y int) error {
	return fmt.Errorf("%w: ship cell submitted more than once\tx: %d\ty: %d", ErrValidation, x, y)
}

func ErrInvalidFleet(expected, got map[int]int) error {
	return fmt.Errorf("%w: invalid fleet composition, expected: %v\tgot: %v", ErrValidation, expected, got)
}

func ErrShipNotStraight(shipId int) error {
	return fmt.Errorf("%w: ship must lie on a single row or column\tship: %d", ErrValidation, shipId)
}

func ErrGameFull(gameUuid string) error {
	return fmt.Errorf("%w: game already has two players, uuid: %s", ErrState, gameUuid)
}

func ErrBoardNotPlacing() error {
	return fmt.Errorf("%w: board layout is already submitted", ErrState)
}

func ErrBoardNotSubmitted() error {
	return fmt.Errorf("%w: board layout has not been submitted yet", ErrState)
}

func ErrGameNotStarted(gameUuid string) error {
	return fmt.Errorf("%w: both layouts must be submitted before shooting, uuid: %s", ErrState, gameUuid)
}

func ErrGameFinished(gameUuid string) error {
	return fmt.Errorf("%w: game is already finished, uuid: %s", ErrState, gameUuid)
}

func ErrGameAlreadyStarted(gameUuid string) error {
	return fmt.Errorf("%w: game has already started, uuid: %s", ErrState, gameUuid)
}

func ErrNotTurnForAttacker(playerUuid string) error {
	return fmt.Errorf("%w: not this player's turn to shoot, uuid: %s", ErrState, playerUuid)
}

func ErrEmptyLayout() error {
	return fmt.Errorf("%w: layout must contain at least one ship cell", ErrValidation)
}

func ErrInvalidCoordinate(raw string) error {
	return fmt.Errorf("%w: coordinate must be an integer, got: %q", ErrValidation, raw)
}

func ErrPlayerNotInSession(playerUuid string) error {
	return fmt.Errorf("%w: player does not belong to this session, uuid: %s", ErrState, playerUuid)
}

func ErrSessionAlreadyInGame(gameUuid string) error {
	return fmt.Errorf("%w: session is already in a game, uuid: %s", ErrState, gameUuid)
}
