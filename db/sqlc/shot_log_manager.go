package sqlc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sqlc-dev/pqtype"

	mb "github.com/saeidalz13/battleship-rules/models/battleship"
)

// ShotLogManager appends resolved shots and final results so a match
// can be replayed or audited later.
type ShotLogManager struct {
	queries Querier
}

func NewShotLogManager(queries Querier) *ShotLogManager {
	return &ShotLogManager{queries: queries}
}

func (s *ShotLogManager) RecordShot(ctx context.Context, gameUuid, shooterUuid string, shot mb.Cell, outcome mb.ShotOutcome) error {
	var adjacent pqtype.NullRawMessage
	if len(outcome.Adjacent) != 0 {
		raw, err := json.Marshal(outcome.Adjacent)
		if err != nil {
			return fmt.Errorf("marshal revealed cells: %w", err)
		}
		adjacent = pqtype.NullRawMessage{RawMessage: raw, Valid: true}
	}

	return s.queries.InsertShotEvent(ctx, InsertShotEventParams{
		GameUuid:    gameUuid,
		ShooterUuid: shooterUuid,
		X:           int16(shot.X),
		Y:           int16(shot.Y),
		Result:      string(outcome.Result),
		Sunk:        outcome.Sunk,
		Adjacent:    adjacent,
	})
}

func (s *ShotLogManager) RecordResult(ctx context.Context, gameUuid, winnerUuid, loserUuid string) error {
	return s.queries.InsertGameResult(ctx, InsertGameResultParams{
		GameUuid:   gameUuid,
		WinnerUuid: winnerUuid,
		LoserUuid:  loserUuid,
	})
}

// Replay returns the recorded shots of a game in firing order.
func (s *ShotLogManager) Replay(ctx context.Context, gameUuid string) ([]mb.Cell, error) {
	events, err := s.queries.ListShotEvents(ctx, gameUuid)
	if err != nil {
		return nil, err
	}

	shots := make([]mb.Cell, 0, len(events))
	for _, event := range events {
		shots = append(shots, mb.NewCell(int(event.X), int(event.Y)))
	}
	return shots, nil
}
