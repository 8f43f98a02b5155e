package main

import (
	"context"
	"database/sql"

	"numbergame/internal/ports/nakama"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule is the symbol Nakama looks up when loading the number game plugin.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	return nakama.InitModule(ctx, logger, db, nk, initializer)
}
