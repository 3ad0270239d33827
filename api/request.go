package api

import (
	"encoding/json"
	"log"
	"math"

	cerr "github.com/saeidalz13/battleship-rules/internal/error"
	mb "github.com/saeidalz13/battleship-rules/models/battleship"
	mc "github.com/saeidalz13/battleship-rules/models/connection"
)

type RequestHandler interface {
	HandleCreateGame(gm mb.GameManager, sessionId string, sessionGame *mb.Game) (*mb.Game, *mb.Player, mc.Message[mc.RespCreateGame])
	HandleJoinPlayer(gm mb.GameManager, sessionId string, sessionGame *mb.Game) (*mb.Game, *mb.Player, mc.Message[mc.RespJoinGame])
	HandleSetShips(gm mb.GameManager, sessionPlayer *mb.Player) (*mb.Game, bool, mc.Message[mc.RespSetShips])
	HandleShoot(gm mb.GameManager, sessionPlayer *mb.Player) (ShotRecord, mc.Message[mc.RespShoot])
}

// Every incoming valid request will have this structure.
type Request struct {
	payload []byte
}

var _ RequestHandler = Request{}

func NewRequest(payload ...[]byte) Request {
	if len(payload) > 1 {
		log.Println("cannot accept more than one payload")
		return Request{}
	}

	req := Request{}
	if len(payload) != 0 {
		req.payload = payload[0]
	}
	return req
}

// ShotRecord is what a resolved shot leaves behind for the caller to
// broadcast and persist.
type ShotRecord struct {
	Game     *mb.Game
	Shooter  *mb.Player
	Defender *mb.Player
	Shot     mb.Cell
	Outcome  mb.ShotOutcome
}

// A session plays one game at a time; sessionGame is the game it is
// already in, if any.
func (r Request) HandleCreateGame(gm mb.GameManager, sessionId string, sessionGame *mb.Game) (*mb.Game, *mb.Player, mc.Message[mc.RespCreateGame]) {
	resp := mc.NewMessage[mc.RespCreateGame](mc.CodeCreateGame)
	if sessionGame != nil {
		err := cerr.ErrSessionAlreadyInGame(sessionGame.Uuid())
		resp.AddError(err.Error(), cerr.ConstErrCreateFailed, cerr.KindOf(err))
		return nil, nil, resp
	}

	game, hostPlayer := gm.CreateGame(sessionId)
	resp.AddPayload(mc.RespCreateGame{GameUuid: game.Uuid(), HostUuid: hostPlayer.GetUuid()})
	return game, hostPlayer, resp
}

// Join user sends the game uuid and if this game exists,
// a new join player is created for it.
func (r Request) HandleJoinPlayer(gm mb.GameManager, sessionId string, sessionGame *mb.Game) (*mb.Game, *mb.Player, mc.Message[mc.RespJoinGame]) {
	resp := mc.NewMessage[mc.RespJoinGame](mc.CodeJoinGame)
	if sessionGame != nil {
		err := cerr.ErrSessionAlreadyInGame(sessionGame.Uuid())
		resp.AddError(err.Error(), cerr.ConstErrJoinFailed, cerr.KindOf(err))
		return nil, nil, resp
	}

	var joinGameReq mc.Message[mc.ReqJoinGame]
	if err := json.Unmarshal(r.payload, &joinGameReq); err != nil {
		resp.AddError(err.Error(), cerr.ConstErrInvalidPayload, cerr.KindValidation)
		return nil, nil, resp
	}

	game, joinPlayer, err := gm.JoinGame(joinGameReq.Payload.GameUuid, sessionId)
	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrJoinFailed, cerr.KindOf(err))
		return nil, nil, resp
	}

	resp.AddPayload(mc.RespJoinGame{GameUuid: game.Uuid(), PlayerUuid: joinPlayer.GetUuid()})
	return game, joinPlayer, resp
}

// User sends the cells occupied by ships. The returned bool is true
// for the layout that completes both boards and starts the game.
func (r Request) HandleSetShips(gm mb.GameManager, sessionPlayer *mb.Player) (*mb.Game, bool, mc.Message[mc.RespSetShips]) {
	resp := mc.NewMessage[mc.RespSetShips](mc.CodeSetShips)

	var setShipsReq mc.Message[mc.ReqSetShips]
	if err := json.Unmarshal(r.payload, &setShipsReq); err != nil {
		resp.AddError(err.Error(), cerr.ConstErrInvalidPayload, cerr.KindValidation)
		return nil, false, resp
	}

	if err := checkSessionPlayer(sessionPlayer, setShipsReq.Payload.PlayerUuid); err != nil {
		resp.AddError(err.Error(), cerr.ConstErrLayoutFailed, cerr.KindOf(err))
		return nil, false, resp
	}

	game, _, err := gm.FindGameAndPlayer(setShipsReq.Payload.GameUuid, setShipsReq.Payload.PlayerUuid)
	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrLayoutFailed, cerr.KindOf(err))
		return nil, false, resp
	}

	ships, started, err := game.SubmitLayout(setShipsReq.Payload.PlayerUuid, setShipsReq.Payload.Cells)
	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrLayoutFailed, cerr.KindOf(err))
		return nil, false, resp
	}

	resp.AddPayload(mc.RespSetShips{Ships: ships})
	return game, started, resp
}

func (r Request) HandleShoot(gm mb.GameManager, sessionPlayer *mb.Player) (ShotRecord, mc.Message[mc.RespShoot]) {
	resp := mc.NewMessage[mc.RespShoot](mc.CodeShoot)

	var shootReq mc.Message[mc.ReqShoot]
	if err := json.Unmarshal(r.payload, &shootReq); err != nil {
		resp.AddError(err.Error(), cerr.ConstErrInvalidPayload, cerr.KindValidation)
		return ShotRecord{}, resp
	}

	if err := checkSessionPlayer(sessionPlayer, shootReq.Payload.PlayerUuid); err != nil {
		resp.AddError(err.Error(), cerr.ConstErrShootFailed, cerr.KindOf(err))
		return ShotRecord{}, resp
	}

	x, err := parseCoordinate(shootReq.Payload.X)
	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrShootFailed, cerr.KindOf(err))
		return ShotRecord{}, resp
	}
	y, err := parseCoordinate(shootReq.Payload.Y)
	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrShootFailed, cerr.KindOf(err))
		return ShotRecord{}, resp
	}

	game, shooter, err := gm.FindGameAndPlayer(shootReq.Payload.GameUuid, shootReq.Payload.PlayerUuid)
	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrShootFailed, cerr.KindOf(err))
		return ShotRecord{}, resp
	}

	outcome, err := game.Shoot(shooter.GetUuid(), x, y)
	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrShootFailed, cerr.KindOf(err))
		return ShotRecord{}, resp
	}

	shot := mb.NewCell(x, y)
	resp.AddPayload(mc.NewRespShoot(shooter.GetUuid(), shot, outcome, game.NextTurn()))

	return ShotRecord{
		Game:     game,
		Shooter:  shooter,
		Defender: game.GetOtherPlayer(shooter),
		Shot:     shot,
		Outcome:  outcome,
	}, resp
}

// The player named in a payload must be the one bound to the sending
// session, otherwise one side could act on behalf of the other.
func checkSessionPlayer(sessionPlayer *mb.Player, playerUuid string) error {
	if sessionPlayer == nil || sessionPlayer.GetUuid() != playerUuid {
		return cerr.ErrPlayerNotInSession(playerUuid)
	}
	return nil
}

// Coordinates must be whole numbers; range is checked by the board.
func parseCoordinate(n json.Number) (int, error) {
	v, err := n.Int64()
	if err != nil || v < math.MinInt32 || v > math.MaxInt32 {
		return 0, cerr.ErrInvalidCoordinate(n.String())
	}
	return int(v), nil
}
