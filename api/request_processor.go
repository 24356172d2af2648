package api

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sqlc-dev/pqtype"

	"github.com/gridshot/battleship-ai/db/sqlc"
	"github.com/gridshot/battleship-ai/internal/bot"
	mb "github.com/gridshot/battleship-ai/models/battleship"
	mc "github.com/gridshot/battleship-ai/models/connection"
)

const (
	URLQuerySessionIDKeyword string = "sessionID"

	botName = "Computer"
)

var upgrader = websocket.Upgrader{

	// good average time since this is not a high-latency operation such as video streaming
	HandshakeTimeout: time.Second * 5,

	// probably more than enough but this is a good average size
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type RequestProcessor struct {
	sessionManager mc.SessionManager
	gameManager    mb.GameManager
	q              sqlc.Querier
	ipnet          net.IPNet
}

func NewRequestProcessor(
	sessionManager mc.SessionManager,
	gameManager mb.GameManager,
	q sqlc.Querier,
) RequestProcessor {
	rp := RequestProcessor{
		sessionManager: sessionManager,
		gameManager:    gameManager,
		q:              q,
	}

	rp = rp.mustGetServerIpNet()
	return rp
}

func (rp RequestProcessor) mustGetServerIpNet() RequestProcessor {
	ifaces, err := net.Interfaces()
	if err != nil {
		panic(err)
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 {
			continue
		}

		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			panic(err)
		}

		for _, addr := range addrs {
			var ipnet *net.IPNet
			var ip net.IP

			switch v := addr.(type) {
			case *net.IPNet:
				ipnet = v
				ip = v.IP

			case *net.IPAddr:
				ip = v.IP
			}

			if ip != nil && ip.To4() != nil && !ip.IsLoopback() {
				rp.ipnet = *ipnet
				return rp
			}
		}
	}

	panic("ipnet could not be found!")
}

// Expose this method to use it in testing
func (rp RequestProcessor) GetIpNet() net.IPNet {
	return rp.ipnet
}

func (rp RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// use Upgrade method to make a websocket connection
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		http.Error(w, "could not open websocket connection", http.StatusBadRequest)
		return
	}

	sessionIdQuery := r.URL.Query().Get(URLQuerySessionIDKeyword)
	switch sessionIdQuery {
	case "":
		log.Println("a new connection established\tRemote Addr: ", conn.RemoteAddr().String())
		rp.processSessionRequests(rp.sessionManager.GenerateNewSession(conn))

	default:
		session, err := rp.sessionManager.FindSession(sessionIdQuery)
		if err != nil {
			// This either means an expired session or invalid session ID
			_ = conn.WriteJSON(mc.NewMessage[mc.NoPayload](mc.CodeReceivedInvalidSessionID))
			conn.Close()
			return
		}
		rp.sessionManager.ReconnectSession(session, conn)
	}
}

func (rp *RequestProcessor) processSessionRequests(session *mc.Session) {
	var (
		sessionGame        *mb.Game
		sessionPlayer      *mb.BattleshipPlayer
		otherSessionPlayer *mb.BattleshipPlayer
		sessionBot         *bot.Bot

		receiverSessionId string
		sessionId         = session.Id()
	)

	defer func() {
		if sessionGame != nil {
			rp.gameManager.TerminateGame(sessionGame.Uuid())
		}
		if session != nil && session.Conn() != nil {
			session.Conn().Close()
		}
		rp.sessionManager.TerminateSession(session)
	}()

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: sessionId})
	if err := rp.sessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON); err != nil {
		return
	}

	serverPqtypeInet := pqtype.Inet{IPNet: rp.ipnet, Valid: true}

sessionLoop:
	for {
		_, payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			// This error happens after retries. If it's not nil,
			// something was wrong with the session connection
			// and couldn't be resolved
			break sessionLoop
		}

		var signal mc.Signal

		if err := json.Unmarshal(payload, &signal); err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError("incoming req payload must contain 'code' field", "")
			if err = rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		switch signal.Code {

		// In this branch we initialize the game and hence create a host player
		case mc.CodeCreateGame:
			game, hostPlayer, respMsg := NewRequest(payload).HandleCreateGame(rp.gameManager, sessionId)

			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			if respMsg.Error != nil {
				continue sessionLoop
			}

			sessionGame = game
			sessionPlayer = hostPlayer
			rp.sessionManager.SetSessionGame(session, game)
			rp.sessionManager.SetSessionPlayer(session, hostPlayer)

			rp.incrementGamesCreated(serverPqtypeInet, game.Mode() == mb.GameModeSolo)

			// A solo game has its computer side attached right away;
			// the host can go straight to grid selection.
			if game.Mode() == mb.GameModeSolo {
				var botErr error
				sessionBot, botErr = rp.attachBot(game)
				if botErr != nil {
					log.Println(botErr)
					break sessionLoop
				}
				otherSessionPlayer = game.FetchPlayer(false)

				selectGridMsg := mc.NewMessage[mc.NoPayload](mc.CodeSelectGrid)
				if err := rp.sessionManager.WriteToSessionConn(session, selectGridMsg, mc.MessageTypeJSON); err != nil {
					break sessionLoop
				}
			}

		// This branch handles joining a new player to an existing game
		case mc.CodeJoinGame:
			game, joinPlayer, respMsg := NewRequest(payload).HandleJoinPlayer(rp.gameManager, sessionId)

			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			if respMsg.Error != nil {
				break sessionLoop
			}

			sessionGame = game
			sessionPlayer = joinPlayer
			rp.sessionManager.SetSessionGame(session, game)
			rp.sessionManager.SetSessionPlayer(session, joinPlayer)

			otherSessionPlayer = game.FetchPlayer(true)
			receiverSessionId = otherSessionPlayer.SessionId()

			readyRespMsg := mc.NewMessage[mc.NoPayload](mc.CodeSelectGrid)
			if err := rp.sessionManager.WriteToSessionConn(session, readyRespMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

			if err := rp.sessionManager.Communicate(receiverSessionId, readyRespMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		// The player has selected their grid and is ready to start
		case mc.CodeReady:
			respMsg := NewRequest(payload).HandleReadyPlayer(sessionGame, sessionPlayer)

			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			if respMsg.Error != nil {
				continue sessionLoop
			}

			if otherSessionPlayer == nil {
				otherSessionPlayer = sessionGame.GetOtherPlayer(sessionPlayer)
				if otherSessionPlayer != nil {
					receiverSessionId = otherSessionPlayer.SessionId()
				}
			}

			if sessionGame.IsReadyToStart() {
				respStartGame := mc.NewMessage[mc.NoPayload](mc.CodeStartGame)
				if err := rp.sessionManager.WriteToSessionConn(session, respStartGame, mc.MessageTypeJSON); err != nil {
					break sessionLoop
				}

				if sessionGame.Mode() == mb.GameModeSolo {
					// after a rematch the computer side may move first
					if otherSessionPlayer.IsTurn() {
						if !rp.runBotTurn(session, sessionBot, sessionGame, sessionPlayer, serverPqtypeInet) {
							break sessionLoop
						}
					}
					continue sessionLoop
				}

				if err := rp.sessionManager.Communicate(receiverSessionId, respStartGame, mc.MessageTypeJSON); err != nil {
					break sessionLoop
				}
			}

		// The attack logic. After every attack the attacker's match
		// status is checked; a finished game is reported to both sides
		case mc.CodeAttack:
			outcome, respMsg := NewRequest(payload).HandleAttack(sessionGame, sessionPlayer)

			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

			// This means attack operation did not complete
			if respMsg.Error != nil {
				continue sessionLoop
			}

			if sessionGame.Mode() == mb.GameModeSolo {
				if outcome.FleetExhausted {
					rp.incrementGamesCompleted(serverPqtypeInet)
					if !rp.writeEndGame(session, sessionPlayer) {
						break sessionLoop
					}
					continue sessionLoop
				}

				if !rp.runBotTurn(session, sessionBot, sessionGame, sessionPlayer, serverPqtypeInet) {
					break sessionLoop
				}
				continue sessionLoop
			}

			// defender turn is set to true
			respMsg.Payload.IsTurn = true
			if err := rp.sessionManager.Communicate(receiverSessionId, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

			if outcome.FleetExhausted {
				rp.incrementGamesCompleted(serverPqtypeInet)

				if !rp.writeEndGame(session, sessionPlayer) {
					break sessionLoop
				}

				respDefender := mc.NewMessage[mc.RespEndGame](mc.CodeEndGame)
				respDefender.AddPayload(mc.RespEndGame{PlayerMatchStatus: otherSessionPlayer.MatchStatus()})
				if err := rp.sessionManager.Communicate(receiverSessionId, respDefender, mc.MessageTypeJSON); err != nil {
					break sessionLoop
				}
			}

		case mc.CodeRematchCall:
			if sessionGame == nil {
				continue sessionLoop
			}

			if sessionGame.Mode() == mb.GameModeSolo {
				var botErr error
				sessionBot, botErr = rp.resetSoloGame(sessionGame)
				if botErr != nil {
					log.Println(botErr)
					break sessionLoop
				}

				respRematch := mc.NewMessage[mc.RespRematch](mc.CodeRematch)
				respRematch.AddPayload(mc.RespRematch{IsTurn: sessionPlayer.IsTurn()})
				if err := rp.sessionManager.WriteToSessionConn(session, respRematch, mc.MessageTypeJSON); err != nil {
					break sessionLoop
				}

				selectGridMsg := mc.NewMessage[mc.NoPayload](mc.CodeSelectGrid)
				if err := rp.sessionManager.WriteToSessionConn(session, selectGridMsg, mc.MessageTypeJSON); err != nil {
					break sessionLoop
				}
				continue sessionLoop
			}

			if sessionGame.IsRematchAlreadyCalled() {
				continue sessionLoop
			}
			sessionGame.CallRematch()

			msg := mc.NewMessage[mc.NoPayload](mc.CodeRematchCall)
			if err := rp.sessionManager.Communicate(receiverSessionId, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		case mc.CodeRematchCallAccepted:
			if sessionGame == nil || sessionGame.Mode() != mb.GameModeDuel || otherSessionPlayer == nil {
				continue sessionLoop
			}

			if err := sessionGame.Reset(); err != nil {
				break sessionLoop
			}

			msgOtherPlayer := mc.NewMessage[mc.RespRematch](mc.CodeRematch)
			msgOtherPlayer.AddPayload(mc.RespRematch{IsTurn: otherSessionPlayer.IsTurn()})
			if err := rp.sessionManager.Communicate(receiverSessionId, msgOtherPlayer, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

			msgPlayer := mc.NewMessage[mc.RespRematch](mc.CodeRematch)
			msgPlayer.AddPayload(mc.RespRematch{IsTurn: sessionPlayer.IsTurn()})
			if err := rp.sessionManager.WriteToSessionConn(session, msgPlayer, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		// Notify the other player that no rematch is wanted now
		case mc.CodeRematchCallRejected:
			if sessionGame != nil && sessionGame.Mode() == mb.GameModeDuel {
				msg := mc.NewMessage[mc.NoPayload](mc.CodeRematchCallRejected)
				_ = rp.sessionManager.Communicate(receiverSessionId, msg, mc.MessageTypeJSON)
			}
			break sessionLoop

		default:
			respInvalidSignal := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			respInvalidSignal.AddError("", "invalid code in the incoming payload")
			if err := rp.sessionManager.WriteToSessionConn(session, respInvalidSignal, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
		}
	}
}

// attachBot creates the computer side of a solo game with a randomly
// deployed, ready fleet.
func (rp *RequestProcessor) attachBot(game *mb.Game) (*bot.Bot, error) {
	botPlayer := game.CreateBotPlayer()
	if err := bot.DeployFleet(botPlayer, game.GridSize()); err != nil {
		return nil, err
	}
	return bot.NewBot(botName, botPlayer), nil
}

// resetSoloGame prepares a solo rematch: fresh grids for both sides
// and a new bot with empty hunt state and a redeployed fleet.
func (rp *RequestProcessor) resetSoloGame(game *mb.Game) (*bot.Bot, error) {
	if err := game.Reset(); err != nil {
		return nil, err
	}

	botPlayer := game.FetchPlayer(false)
	if err := bot.DeployFleet(botPlayer, game.GridSize()); err != nil {
		return nil, err
	}
	return bot.NewBot(botName, botPlayer), nil
}

// runBotTurn plays the computer's shot against the human player and
// pushes the result to the human session. Returns false when the
// session loop should stop.
func (rp *RequestProcessor) runBotTurn(
	session *mc.Session,
	sessionBot *bot.Bot,
	game *mb.Game,
	humanPlayer *mb.BattleshipPlayer,
	serverIpNet pqtype.Inet,
) bool {
	if sessionBot == nil {
		return false
	}
	botPlayer := sessionBot.Player()

	view := mb.MoveView{
		AttackGrid:            botPlayer.AttackGrid(),
		RemainingEnemyLengths: humanPlayer.Fleet().RemainingLengths(),
	}

	move := sessionBot.ChooseMove(view)
	outcome, err := game.Attack(botPlayer, move)
	if err != nil {
		// the engine never proposes attacked or out-of-bound cells
		log.Println("bot attack rejected:", err)
		return false
	}
	sessionBot.NotifyResult(outcome)

	respMsg := mc.NewMessage[mc.RespAttack](mc.CodeAttack)
	respMsg.AddPayload(mc.NewRespAttack(outcome, true))
	if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
		return false
	}

	if outcome.FleetExhausted {
		rp.incrementGamesCompleted(serverIpNet)
		return rp.writeEndGame(session, humanPlayer)
	}
	return true
}

func (rp *RequestProcessor) writeEndGame(session *mc.Session, player *mb.BattleshipPlayer) bool {
	respEndGame := mc.NewMessage[mc.RespEndGame](mc.CodeEndGame)
	respEndGame.AddPayload(mc.RespEndGame{PlayerMatchStatus: player.MatchStatus()})
	return rp.sessionManager.WriteToSessionConn(session, respEndGame, mc.MessageTypeJSON) == nil
}

func (rp *RequestProcessor) incrementGamesCreated(serverIpNet pqtype.Inet, solo bool) {
	if rp.q == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()

	if err := rp.q.AnalyticsIncrementGamesCreatedCount(ctx, serverIpNet); err != nil {
		// for now not killing the game for it
		log.Println(err)
	}
	if solo {
		if err := rp.q.AnalyticsIncrementSoloGamesCreatedCount(ctx, serverIpNet); err != nil {
			log.Println(err)
		}
	}
}

func (rp *RequestProcessor) incrementGamesCompleted(serverIpNet pqtype.Inet) {
	if rp.q == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()

	if err := rp.q.AnalyticsIncrementGamesCompletedCount(ctx, serverIpNet); err != nil {
		log.Println(err)
	}
}
