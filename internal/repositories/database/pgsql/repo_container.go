package pgsql

import (
	portsrepo "github.com/Finger-Lab/olgacolor-back/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryContainer groups the concrete repositories built on one pool.
type RepositoryContainer struct {
	Rate   portsrepo.RateRepositoryFacade
	Market portsrepo.MarketRepositoryFacade
	User   portsrepo.UserRepositoryFacade
}

// NewRepositoryContainer wires every repository to the shared pgx pool.
func NewRepositoryContainer(pool *pgxpool.Pool) *RepositoryContainer {
	return &RepositoryContainer{
		Rate:   NewPgxRateRepository(pool),
		Market: NewPgxMarketRepository(pool),
		User:   NewPgxUserRepository(pool),
	}
}
