package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/blogauth/internal/dbx"
	"github.com/dmitrijs2005/blogauth/internal/server/repositories/resettokens"
	"github.com/dmitrijs2005/blogauth/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/blogauth/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to an arbitrary DBTX, so the
// same repository code runs against *sql.DB for plain calls and against
// *sql.Tx inside transactional units.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	ResetTokens(db dbx.DBTX) resettokens.Repository
}
