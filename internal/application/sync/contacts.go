package sync

import (
	"context"

	"carelink/internal/domain/user"
	"carelink/internal/shared/logger"
)

// ContactStore caches resolved remote contact ids by user email.
type ContactStore interface {
	Get(ctx context.Context, email string) (int64, error)
	Set(ctx context.Context, email string, contactID int64) error
}

// ContactResolver maps a local user to their remote contact id,
// consulting the cache before the remote directory.
type ContactResolver struct {
	gateway ReadGateway
	store   ContactStore
	logger  logger.Interface
}

func NewContactResolver(gateway ReadGateway, store ContactStore, logger logger.Interface) *ContactResolver {
	return &ContactResolver{
		gateway: gateway,
		store:   store,
		logger:  logger,
	}
}

// Resolve returns the remote contact id for a user, or 0 when it
// cannot be determined. Callers treat 0 as "authorship unknown" and
// classify imported messages as support-authored.
func (r *ContactResolver) Resolve(ctx context.Context, u *user.User) int64 {
	if cached, err := r.store.Get(ctx, u.Email()); err != nil {
		r.logger.Warnw("contact cache read failed", "email", u.Email(), "error", err)
	} else if cached != 0 {
		return cached
	}

	contactID, err := r.gateway.ResolveContact(ctx, u.Name(), u.Email())
	if err != nil {
		r.logger.Warnw("failed to resolve remote contact", "email", u.Email(), "error", err)
		return 0
	}

	if err := r.store.Set(ctx, u.Email(), contactID); err != nil {
		r.logger.Warnw("contact cache write failed", "email", u.Email(), "error", err)
	}
	return contactID
}
