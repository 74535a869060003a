package pgsql

import (
	portsrepo "github.com/fintrackd/fintrack_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the pgx-backed repositories over one pool.
func NewRepositoryProvider(pool PgxPool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		Txm:          NewTxManager(pool),
		CurrencyRepo: NewPgxCurrencyRepository(),
		RateDatum:    NewPgxRateDatumRepository(),
	}
}
