package sqlc

import (
	"context"
	"errors"
	"net"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sqlc-dev/pqtype"

	mb "github.com/saeidalz13/battleship-rules/models/battleship"
)

func newTestDbManager(t *testing.T) (*DbManager, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	return NewDbManager(New(db)), mock
}

func testServerInet() pqtype.Inet {
	return pqtype.Inet{
		IPNet: net.IPNet{IP: net.ParseIP("10.0.0.7"), Mask: net.CIDRMask(32, 32)},
		Valid: true,
	}
}

func TestAnalyticsManager(t *testing.T) {
	dm, mock := newTestDbManager(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	inet := testServerInet()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO game_server_analytics (server_ip, games_created)")).
		WithArgs(inet).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO game_server_analytics (server_ip, games_finished)")).
		WithArgs(inet).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT games_created FROM game_server_analytics WHERE server_ip = \$1`).
		WithArgs(inet).
		WillReturnRows(sqlmock.NewRows([]string{"games_created"}).AddRow(1))

	if err := dm.Analytics.IncrementGamesCreatedCount(ctx, inet); err != nil {
		t.Fatal(err)
	}
	if err := dm.Analytics.IncrementGamesFinishedCount(ctx, inet); err != nil {
		t.Fatal(err)
	}

	gamesCreated, err := dm.Analytics.GetGamesCreatedCount(ctx, inet)
	if err != nil {
		t.Fatalf("failed to fetch created games: %v", err)
	}
	if gamesCreated != 1 {
		t.Fatalf("expected number of created games: %d\tgot: %d", 1, gamesCreated)
	}

	if err = mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations were not met: %v", err)
	}
}

func TestShotLogRecordShot(t *testing.T) {
	tests := []struct {
		name     string
		shot     mb.Cell
		outcome  mb.ShotOutcome
		adjacent pqtype.NullRawMessage
	}{
		{
			name:     "miss without ring",
			shot:     mb.NewCell(7, 7),
			outcome:  mb.ShotOutcome{Result: mb.ShotResultMiss, Adjacent: []mb.Cell{}},
			adjacent: pqtype.NullRawMessage{},
		},
		{
			name: "sink with ring",
			shot: mb.NewCell(0, 0),
			outcome: mb.ShotOutcome{
				Result:   mb.ShotResultHit,
				Sunk:     true,
				Adjacent: []mb.Cell{{X: 0, Y: 1}, {X: 1, Y: 0}},
			},
			adjacent: pqtype.NullRawMessage{RawMessage: []byte(`[{"x":0,"y":1},{"x":1,"y":0}]`), Valid: true},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dm, mock := newTestDbManager(t)

			mock.ExpectExec(regexp.QuoteMeta("INSERT INTO shot_events")).
				WithArgs("abc123", "player1234", test.shot.X, test.shot.Y, string(test.outcome.Result), test.outcome.Sunk, test.adjacent).
				WillReturnResult(sqlmock.NewResult(1, 1))

			if err := dm.ShotLog.RecordShot(context.Background(), "abc123", "player1234", test.shot, test.outcome); err != nil {
				t.Fatal(err)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("expectations were not met: %v", err)
			}
		})
	}
}

func TestShotLogRecordResultError(t *testing.T) {
	dm, mock := newTestDbManager(t)
	dbErr := errors.New("connection reset")

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO game_results")).
		WithArgs("abc123", "winner0001", "loser00001").
		WillReturnError(dbErr)

	err := dm.ShotLog.RecordResult(context.Background(), "abc123", "winner0001", "loser00001")
	if !errors.Is(err, dbErr) {
		t.Fatalf("expected db error, got: %v", err)
	}
}

func TestShotLogReplay(t *testing.T) {
	dm, mock := newTestDbManager(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "game_uuid", "shooter_uuid", "x", "y", "result", "sunk", "adjacent", "created_at"}).
		AddRow(1, "abc123", "player1234", 2, 2, "hit", false, nil, now).
		AddRow(2, "abc123", "player1234", 3, 2, "hit", true, []byte(`[{"x":1,"y":2}]`), now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM shot_events")).
		WithArgs("abc123").
		WillReturnRows(rows)

	shots, err := dm.ShotLog.Replay(context.Background(), "abc123")
	if err != nil {
		t.Fatal(err)
	}

	expected := []mb.Cell{mb.NewCell(2, 2), mb.NewCell(3, 2)}
	if len(shots) != len(expected) {
		t.Fatalf("expected shots: %v\tgot: %v", expected, shots)
	}
	for i := range expected {
		if shots[i] != expected[i] {
			t.Fatalf("expected shots: %v\tgot: %v", expected, shots)
		}
	}
}
