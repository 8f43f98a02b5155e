package nakama

import (
	"context"
	"database/sql"
	"errors"

	"numbergame/internal/app"
	"numbergame/internal/bot"
	"numbergame/internal/config"
	"numbergame/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Tick          int64                       `json:"tick"`           // Current tick of the match for turn-based logic
	HumanUserID   string                      `json:"human_user_id"`  // The one human seated in this match
	Presences     map[string]runtime.Presence `json:"-"`              // Map UserId -> Presence for targeted messaging
	App           *app.Service                `json:"-"`              // Number game app service
	Match         *app.Match                  `json:"-"`              // Current match (nil until the human starts one)
	ComputerDelay int                         `json:"computer_delay"` // Ticks the computer waits before picking
	BotWaitUntil  int64                       `json:"bot_wait_until"` // Tick when the computer should act
	BotWaiting    bool                        `json:"bot_waiting"`    // Whether BotWaitUntil is armed
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	if err := bot.LoadIdentities(botIdentitiesPath); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}
	if err := config.LoadGameConfig(gameConfigPath); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}

	cfg := config.GetGameConfig()
	if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
		var ignored []string
		cfg, ignored = cfg.WithEnv(env)
		for _, reason := range ignored {
			logger.Warn("MatchInit: Ignoring env override: %s", reason)
		}
	}

	state := newMatchState(app.NewService(nil, cfg))

	label, err := matchLabel(state)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}
	return state, tickRate, label
}

func newMatchState(svc *app.Service) *MatchState {
	return &MatchState{
		Presences:     make(map[string]runtime.Presence),
		App:           svc,
		ComputerDelay: svc.Config().ComputerDelaySeconds * tickRate,
	}
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	if bot.IsBot(presence.GetUserId()) {
		return state, false, "reserved_user_id"
	}
	// A reconnecting human may take their seat back.
	if matchState.HumanUserID != "" && matchState.HumanUserID != presence.GetUserId() {
		return state, false, "match_full"
	}
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		if matchState.HumanUserID != "" && matchState.HumanUserID != p.GetUserId() {
			logger.Warn("MatchJoin: User %s joined but the seat is taken by %s.", p.GetUserId(), matchState.HumanUserID)
			continue
		}
		matchState.HumanUserID = p.GetUserId()
		matchState.Presences[p.GetUserId()] = p
		logger.Debug("MatchJoin: User %s seated.", p.GetUserId())
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())
		if p.GetUserId() == matchState.HumanUserID {
			logger.Info("MatchLeave: Terminating match, human %s left.", p.GetUserId())
			return nil
		}
	}
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		if msg.GetUserId() != matchState.HumanUserID {
			logger.Warn("MatchLoop: Ignoring message from unseated user %s", msg.GetUserId())
			continue
		}
		switch msg.GetOpCode() {
		case OpStartMatch:
			mh.handleStartMatch(matchState, dispatcher, logger, msg)
		case OpPickNumber:
			mh.handlePickNumber(matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	mh.processComputer(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) handleStartMatch(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	req, err := decodeStartRequest(msg.GetData())
	if err != nil {
		logger.Warn("StartMatch: Invalid request from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, errCodeBadRequest, err.Error())
		return
	}

	var events []app.Event
	if state.Match == nil {
		state.Match, events, err = state.App.StartMatch(req)
	} else {
		events, err = state.App.RestartMatch(state.Match, req)
	}
	if err != nil {
		logger.Warn("StartMatch: User %s failed to start match: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, errCodeBadRequest, err.Error())
		return
	}
	state.BotWaiting = false

	mh.updateLabel(state, dispatcher, logger)
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}

	logger.Info("StartMatch: Match %s started for %s as player %d against %s.", state.Match.ID, senderID, state.Match.Game.HumanPlayer, state.Match.Game.Strategy)
}

func (mh *matchHandler) handlePickNumber(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	if state.Match == nil {
		logger.Warn("handlePickNumber: Match not started.")
		mh.sendError(state, dispatcher, logger, senderID, errCodeRejectedMove, "match not started")
		return
	}

	req, err := decodePickRequest(msg.GetData())
	if err != nil {
		logger.Warn("handlePickNumber: Invalid request from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, errCodeBadRequest, err.Error())
		return
	}

	var events []app.Event
	if req.HasIndex {
		_, events, err = state.App.ApplyHumanPick(state.Match, req.Index)
	} else {
		_, events, err = state.App.ApplyHumanMove(state.Match, req.End)
	}
	if err != nil {
		code := errCodeBadRequest
		if errors.Is(err, domain.ErrInvalidMove) {
			code = errCodeRejectedMove
		}
		logger.Warn("handlePickNumber: User %s failed to pick: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, code, err.Error())
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	if state.Match.IsOver() {
		mh.updateLabel(state, dispatcher, logger)
	}
}

// processComputer plays the computer's turn once its delay has elapsed.
func (mh *matchHandler) processComputer(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Match == nil || !state.Match.Game.IsComputerTurn() {
		state.BotWaiting = false
		return
	}

	if !state.BotWaiting {
		state.BotWaiting = true
		state.BotWaitUntil = state.Tick + int64(state.ComputerDelay)
		logger.Debug("processComputer: Computer will act at tick %d (current %d)", state.BotWaitUntil, state.Tick)
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaiting = false

	_, events, err := state.App.ComputeComputerMove(state.Match)
	if err != nil {
		logger.Error("processComputer: Computer failed to move: %v", err)
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	if state.Match.IsOver() {
		mh.updateLabel(state, dispatcher, logger)
	}
}

// broadcastEvent handles the conversion and dispatching of app events to Nakama.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, fields, err := eventToWire(ev)
	if err != nil {
		logger.Warn("broadcastEvent: %v", err)
		return
	}
	logger.Debug("Event: %s (op=%d)", ev.Kind, opCode)

	bytes, err := marshalStruct(fields)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	if err := dispatcher.BroadcastMessage(opCode, bytes, nil, nil, true); err != nil {
		logger.Error("Failed to broadcast event %v: %v", ev.Kind, err)
	}
}

// sendError sends an OpMatchError payload to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	bytes, err := marshalStruct(map[string]interface{}{
		"code":    code,
		"message": message,
	})
	if err != nil {
		logger.Error("Failed to marshal match error: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	if err := dispatcher.BroadcastMessage(OpMatchError, bytes, []runtime.Presence{presence}, nil, true); err != nil {
		logger.Error("Failed to send match error to %s: %v", userID, err)
	}
}

// matchLabel renders the label other clients filter on: {"open":1,"game":"numbergame","phase":"waiting"}.
func matchLabel(state *MatchState) (string, error) {
	open := 0
	if state.HumanUserID == "" {
		open = 1
	}
	phase := "waiting"
	if state.Match != nil {
		phase = string(state.Match.Game.Phase)
	}

	bytes, err := marshalStruct(map[string]interface{}{
		"open":  open,
		"game":  MatchLabelGame,
		"phase": phase,
	})
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := matchLabel(state)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminated with %d grace seconds", graceSeconds)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
