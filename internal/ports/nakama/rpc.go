package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/heroiclabs/nakama-common/runtime"
)

// gRPC status codes used by runtime.NewError.
const (
	codeInternal = 13
)

// NewMatchResponse is the payload returned to clients after a match is created.
type NewMatchResponse struct {
	MatchID string `json:"match_id"`
}

// matchCreator is the part of runtime.NakamaModule the RPC needs.
type matchCreator interface {
	MatchCreate(ctx context.Context, module string, params map[string]interface{}) (string, error)
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	return initializer.RegisterRpc(RpcNewMatch, rpcNewMatch)
}

func rpcNewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	return createMatch(ctx, logger, nk)
}

// createMatch creates an authoritative match; the seat is assigned in MatchJoin.
func createMatch(ctx context.Context, logger runtime.Logger, nk matchCreator) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	matchID, err := nk.MatchCreate(ctx, MatchNameNumberGame, map[string]interface{}{})
	if err != nil {
		logger.Error("RpcNewMatch [User:%s]: Failed to create match: %v", userID, err)
		return "", runtime.NewError("failed to create match", codeInternal)
	}

	b, err := json.Marshal(NewMatchResponse{MatchID: matchID})
	if err != nil {
		logger.Error("RpcNewMatch [User:%s]: Failed to marshal response: %v", userID, err)
		return "", runtime.NewError("failed to encode response", codeInternal)
	}

	logger.Info("RpcNewMatch [User:%s]: Created new match %s", userID, matchID)
	return string(b), nil
}
