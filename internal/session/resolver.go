// Package session resolves an authenticated identity into its role and
// associated profile or company record, keeping the result in sync with
// auth-state transitions.
package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jordan/vibe-jobs/internal/db"
)

// Store is the narrow persistence surface the resolver needs. Every lookup
// distinguishes "no such row" (nil, nil) from a transport failure.
type Store interface {
	GetRoleAssignment(ctx context.Context, identityID uuid.UUID) (*db.RoleAssignment, error)
	GetProfileByIdentity(ctx context.Context, identityID uuid.UUID) (*db.CandidateProfile, error)
	GetCompanyByIdentity(ctx context.Context, identityID uuid.UUID) (*db.Company, error)
}

// CompanyCache is the advisory TTL cache consulted before a full employer
// resolution. Implementations swallow their own failures; a failing cache is
// indistinguishable from an empty one.
type CompanyCache interface {
	Get(ctx context.Context, identityID uuid.UUID) (*db.Company, bool)
	Set(ctx context.Context, identityID uuid.UUID, company *db.Company)
	Clear(ctx context.Context)
}

// Resolution is the terminal state of one resolve pass. A nil Role means the
// identity is signed out or has not completed signup. Err carries the last
// transient lookup failure, if any; the resolution is still loaded.
type Resolution struct {
	IdentityID uuid.UUID
	Role       *db.Role
	Profile    *db.CandidateProfile
	Company    *db.Company
	FromCache  bool
	Err        error
}

// Resolver resolves identities and tracks the active resolution. Background
// cache refreshes carry the identity they were issued for and are discarded
// if the active identity has changed by the time they complete.
type Resolver struct {
	store  Store
	cache  CompanyCache
	logger *zap.Logger

	mu      sync.Mutex
	active  uuid.UUID
	current Resolution

	subscribeOnce sync.Once
	done          chan struct{}
	wg            sync.WaitGroup
}

// NewResolver creates a resolver. cache may be nil, in which case every
// resolution is a full fetch.
func NewResolver(store Store, cache CompanyCache, logger *zap.Logger) *Resolver {
	return &Resolver{
		store:  store,
		cache:  cache,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Resolve resolves an identity into its role and profile or company record.
// A nil identity (uuid.Nil) resolves immediately to the signed-out state and
// clears the company cache. Resolution always terminates in a loaded state:
// transient lookup failures are recorded on the result, never returned as a
// hard failure.
func (r *Resolver) Resolve(ctx context.Context, identityID uuid.UUID) Resolution {
	if identityID == uuid.Nil {
		if r.cache != nil {
			r.cache.Clear(ctx)
		}
		return r.setCurrent(uuid.Nil, Resolution{})
	}

	// Fresh cached company: answer immediately as a best-effort employer
	// result and refresh in the background.
	if r.cache != nil {
		if company, ok := r.cache.Get(ctx, identityID); ok {
			role := db.RoleEmployer
			res := Resolution{
				IdentityID: identityID,
				Role:       &role,
				Company:    company,
				FromCache:  true,
			}
			r.setCurrent(identityID, res)
			r.spawnRefresh(identityID)
			return res
		}
	}

	res := r.resolveFull(ctx, identityID)
	r.setCurrent(identityID, res)
	return res
}

// resolveFull issues the role, profile, and company lookups concurrently and
// waits for all three. A single lookup's failure does not cancel the others.
func (r *Resolver) resolveFull(ctx context.Context, identityID uuid.UUID) Resolution {
	var (
		roleAssignment *db.RoleAssignment
		profile        *db.CandidateProfile
		company        *db.Company
		roleErr        error
		profileErr     error
		companyErr     error
	)

	var g errgroup.Group
	g.Go(func() error {
		roleAssignment, roleErr = r.store.GetRoleAssignment(ctx, identityID)
		return nil
	})
	g.Go(func() error {
		profile, profileErr = r.store.GetProfileByIdentity(ctx, identityID)
		return nil
	})
	g.Go(func() error {
		company, companyErr = r.store.GetCompanyByIdentity(ctx, identityID)
		return nil
	})
	_ = g.Wait()

	res := Resolution{IdentityID: identityID}

	// Transient failures are surfaced as a last-error value; the pass still
	// terminates loaded.
	for _, err := range []error{roleErr, profileErr, companyErr} {
		if err != nil {
			res.Err = err
		}
	}

	if roleErr != nil {
		return res
	}
	if roleAssignment == nil {
		// Not onboarded: a valid terminal state, not an error.
		return res
	}

	role := roleAssignment.Role
	res.Role = &role

	// The role selects exactly one of the two records; the other is discarded.
	switch role {
	case db.RoleEmployee:
		if profileErr == nil {
			res.Profile = profile
		}
	case db.RoleEmployer:
		if companyErr == nil {
			res.Company = company
			if company != nil && r.cache != nil {
				r.cache.Set(ctx, identityID, company)
			}
		}
	}

	return res
}

// spawnRefresh starts a fire-and-forget company refresh for the identity the
// cache hit was served for. The identity acts as a correlation token: if the
// active identity has changed by completion, the result is discarded.
func (r *Resolver) spawnRefresh(identityID uuid.UUID) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		company, err := r.store.GetCompanyByIdentity(context.Background(), identityID)
		if err != nil || company == nil {
			// Refresh failures are swallowed; the stale entry stays in
			// effect until TTL expiry forces a full fetch.
			if err != nil && r.logger != nil {
				r.logger.Debug("background company refresh failed",
					zap.String("identity_id", identityID.String()),
					zap.Error(err),
				)
			}
			return
		}

		r.mu.Lock()
		stale := r.active != identityID
		if !stale {
			r.current.Company = company
			r.current.FromCache = false
		}
		r.mu.Unlock()

		if stale {
			return
		}
		if r.cache != nil {
			r.cache.Set(context.Background(), identityID, company)
		}
	}()
}

func (r *Resolver) setCurrent(identityID uuid.UUID, res Resolution) Resolution {
	r.mu.Lock()
	r.active = identityID
	r.current = res
	r.mu.Unlock()
	return res
}

// Current returns the most recent resolution.
func (r *Resolver) Current() Resolution {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Close stops the event subscription and waits for in-flight background
// refreshes to finish.
func (r *Resolver) Close() {
	select {
	case <-r.done:
	default:
		close(r.done)
	}
	r.wg.Wait()
}
