package main

import (
	"context"
	"database/sql"

	"tictactoe/internal/ports/nakama"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule proxies Nakama initialization to the nakama adapter package.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	return nakama.InitModule(ctx, logger, db, nk, initializer)
}

// main is required for the package to compile as an ordinary binary; Nakama
// loads the module via InitModule when built with -buildmode=plugin.
func main() {}
