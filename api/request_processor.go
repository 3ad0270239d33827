package api

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sqlc-dev/pqtype"

	"github.com/saeidalz13/battleship-rules/db/sqlc"
	cerr "github.com/saeidalz13/battleship-rules/internal/error"
	mb "github.com/saeidalz13/battleship-rules/models/battleship"
	mc "github.com/saeidalz13/battleship-rules/models/connection"
)

var upgrader = websocket.Upgrader{
	// good average time since this is not a high-latency operation such as video streaming
	HandshakeTimeout: time.Second * 5,

	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type RequestProcessor struct {
	sessionManager mc.SessionManager
	gameManager    mb.GameManager

	// nil when the server runs without a database
	dbManager *sqlc.DbManager
	ipnet     net.IPNet
}

func NewRequestProcessor(
	sessionManager mc.SessionManager,
	gameManager mb.GameManager,
	dbManager *sqlc.DbManager,
) RequestProcessor {
	return RequestProcessor{
		sessionManager: sessionManager,
		gameManager:    gameManager,
		dbManager:      dbManager,
		ipnet:          getServerIpNet(),
	}
}

// The first non-loopback IPv4 address identifies this server in the
// analytics table. Falls back to loopback on hosts without one.
func getServerIpNet() net.IPNet {
	fallback := net.IPNet{IP: net.IPv4(127, 0, 0, 1), Mask: net.CIDRMask(8, 32)}

	ifaces, err := net.Interfaces()
	if err != nil {
		log.Println("failed to list network interfaces:", err)
		return fallback
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			if ipnet.IP.To4() != nil && !ipnet.IP.IsLoopback() {
				return *ipnet
			}
		}
	}

	return fallback
}

// Expose this method to use it in testing
func (rp RequestProcessor) GetIpNet() net.IPNet {
	return rp.ipnet
}

func (rp RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		http.Error(w, "could not open websocket connection", http.StatusBadRequest)
		return
	}

	log.Println("a new connection established\tRemote Addr: ", conn.RemoteAddr().String())
	rp.processSessionRequests(rp.sessionManager.GenerateNewSession(conn))
}

func (rp RequestProcessor) processSessionRequests(session *mc.Session) {
	var (
		sessionGame   *mb.Game
		sessionPlayer *mb.Player
		sessionId     = session.Id()
	)

	defer func() {
		if sessionGame != nil {
			rp.notifyOtherPlayerDisconnected(sessionGame, sessionPlayer)
			rp.gameManager.TerminateGame(sessionGame.Uuid())
		}
		if session.Conn() != nil {
			session.Conn().Close()
		}
		rp.sessionManager.TerminateSession(sessionId)
	}()

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: sessionId})
	if err := rp.sessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON); err != nil {
		return
	}

sessionLoop:
	for {
		// A WebSocket frame can be one of 6 types: text=1, binary=2, ping=9, pong=10, close=8 and continuation=0
		// https://www.rfc-editor.org/rfc/rfc6455.html#section-11.8
		_, payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			break sessionLoop
		}

		code, err := mc.FetchCodeFromMsg(payload)
		if err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError(err.Error(), cerr.ConstErrSignalAbsent, cerr.KindValidation)
			if err := rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		switch code {

		case mc.CodeCreateGame:
			sessionGame, sessionPlayer = rp.releaseFinishedGame(sessionGame, sessionPlayer)
			game, hostPlayer, respMsg := NewRequest(payload).HandleCreateGame(rp.gameManager, sessionId, sessionGame)
			if respMsg.Error == nil {
				sessionGame = game
				sessionPlayer = hostPlayer
				log.Printf("game created\tgame: %s\thost: %s\n", game.Uuid(), hostPlayer.GetUuid())
				rp.recordGameCreated()
			}

			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		// Both players are told to select their grid once the
		// second player is in.
		case mc.CodeJoinGame:
			sessionGame, sessionPlayer = rp.releaseFinishedGame(sessionGame, sessionPlayer)
			game, joinPlayer, respMsg := NewRequest(payload).HandleJoinPlayer(rp.gameManager, sessionId, sessionGame)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			if respMsg.Error != nil {
				continue sessionLoop
			}

			sessionGame = game
			sessionPlayer = joinPlayer
			log.Printf("player joined\tgame: %s\tplayer: %s\n", game.Uuid(), joinPlayer.GetUuid())

			selectGridMsg := mc.NewMessage[mc.NoPayload](mc.CodeSelectGrid)
			if err := rp.sessionManager.WriteToSessionConn(session, selectGridMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			rp.communicateToOther(game, joinPlayer, selectGridMsg)

		case mc.CodeSetShips:
			game, started, respMsg := NewRequest(payload).HandleSetShips(rp.gameManager, sessionPlayer)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			if respMsg.Error != nil || !started {
				continue sessionLoop
			}

			log.Printf("game started\tgame: %s\n", game.Uuid())
			startGameMsg := mc.NewMessage[mc.NoPayload](mc.CodeStartGame)
			for _, isHost := range []bool{true, false} {
				player := game.FetchPlayer(isHost)
				if err := rp.sessionManager.Communicate(player.SessionId(), startGameMsg, mc.MessageTypeJSON); err != nil {
					log.Printf("failed to send start game to player %s: %v\n", player.GetUuid(), err)
				}
			}

		// After every shot both players receive the outcome. When the
		// shot decides the match, each side also gets its own end
		// game status.
		case mc.CodeShoot:
			record, respMsg := NewRequest(payload).HandleShoot(rp.gameManager, sessionPlayer)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			if respMsg.Error != nil {
				continue sessionLoop
			}

			rp.communicateToOther(record.Game, record.Shooter, respMsg)
			if !record.Outcome.Repeated {
				rp.recordShot(record)
			}

			if record.Outcome.Sunk && !record.Outcome.Repeated {
				log.Printf("ship sunk\tgame: %s\tshooter: %s\n", record.Game.Uuid(), record.Shooter.GetUuid())
			}
			if record.Outcome.Winner == "" {
				continue sessionLoop
			}

			log.Printf("game over\tgame: %s\twinner: %s\n", record.Game.Uuid(), record.Outcome.Winner)

			for _, player := range []*mb.Player{record.Shooter, record.Defender} {
				endGameMsg := mc.NewMessage[mc.RespEndGame](mc.CodeEndGame)
				endGameMsg.AddPayload(mc.RespEndGame{PlayerMatchStatus: player.MatchStatus(), Winner: record.Outcome.Winner})
				if err := rp.sessionManager.Communicate(player.SessionId(), endGameMsg, mc.MessageTypeJSON); err != nil {
					log.Printf("failed to send end game to player %s: %v\n", player.GetUuid(), err)
				}
			}
			rp.recordGameFinished(record)

		default:
			respInvalidSignal := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			respInvalidSignal.AddError("", cerr.ConstErrInvalidSignal, cerr.KindValidation)
			if err := rp.sessionManager.WriteToSessionConn(session, respInvalidSignal, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
		}
	}
}

func (rp RequestProcessor) communicateToOther(game *mb.Game, player *mb.Player, msg interface{}) {
	otherPlayer := game.GetOtherPlayer(player)
	if otherPlayer == nil {
		return
	}
	if err := rp.sessionManager.Communicate(otherPlayer.SessionId(), msg, mc.MessageTypeJSON); err != nil {
		log.Printf("failed to communicate with player %s: %v\n", otherPlayer.GetUuid(), err)
	}
}

// A finished game no longer binds the session, so it may create or
// join a new one.
func (rp RequestProcessor) releaseFinishedGame(game *mb.Game, player *mb.Player) (*mb.Game, *mb.Player) {
	if game == nil || game.Phase() != mb.GamePhaseFinished {
		return game, player
	}
	rp.gameManager.TerminateGame(game.Uuid())
	return nil, nil
}

func (rp RequestProcessor) notifyOtherPlayerDisconnected(game *mb.Game, player *mb.Player) {
	if player == nil || game.Phase() == mb.GamePhaseFinished {
		return
	}
	rp.communicateToOther(game, player, mc.NewMessage[mc.NoPayload](mc.CodeOtherPlayerDisconnected))
}

// Persistence is best effort; a failing database never ends a match.
func (rp RequestProcessor) recordGameCreated() {
	if rp.dbManager == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()
	if err := rp.dbManager.Analytics.IncrementGamesCreatedCount(ctx, rp.serverInet()); err != nil {
		log.Println(err)
	}
}

func (rp RequestProcessor) recordShot(record ShotRecord) {
	if rp.dbManager == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()
	if err := rp.dbManager.ShotLog.RecordShot(ctx, record.Game.Uuid(), record.Shooter.GetUuid(), record.Shot, record.Outcome); err != nil {
		log.Println(err)
	}
}

func (rp RequestProcessor) recordGameFinished(record ShotRecord) {
	if rp.dbManager == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()
	if err := rp.dbManager.ShotLog.RecordResult(ctx, record.Game.Uuid(), record.Shooter.GetUuid(), record.Defender.GetUuid()); err != nil {
		log.Println(err)
	}
	if err := rp.dbManager.Analytics.IncrementGamesFinishedCount(ctx, rp.serverInet()); err != nil {
		log.Println(err)
	}
}

func (rp RequestProcessor) serverInet() pqtype.Inet {
	return pqtype.Inet{IPNet: rp.ipnet, Valid: true}
}
