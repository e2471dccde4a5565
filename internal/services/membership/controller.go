package membership

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tkdr/teamgate/internal/dependencies/clock"
	"github.com/tkdr/teamgate/internal/model"
	"github.com/tkdr/teamgate/internal/services/identity"
	"github.com/tkdr/teamgate/internal/services/platform"
	"github.com/tkdr/teamgate/internal/storage"
)

// minimumAge drives the birth-year hint shown on the verification form
const minimumAge = 7

// Outcome is the result category of a verification submission. Every
// user-visible result collapses into one of these.
type Outcome int

const (
	// OutcomeRetry means the registry rejected the tuple; the user may
	// correct the form and resubmit. No record is written.
	OutcomeRetry Outcome = iota
	// OutcomeSuccess means the account was verified and joined the team
	OutcomeSuccess
	// OutcomeBanned means the identity is banned (possibly under an alias)
	OutcomeBanned
	// OutcomeError means a remote service or store failure occurred
	OutcomeError
)

// Controller orchestrates the verification-and-membership workflow
type Controller struct {
	store    storage.PlayerStore
	team     platform.TeamClient
	verifier identity.Verifier
	clock    clock.Clock
	logger   *slog.Logger
}

// NewController creates a membership controller
func NewController(
	store storage.PlayerStore,
	team platform.TeamClient,
	verifier identity.Verifier,
	clk clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		store:    store,
		team:     team,
		verifier: verifier,
		clock:    clk,
		logger:   logger,
	}
}

// ResolveState computes the explicit visitor state from the session plus a
// record lookup
func (c *Controller) ResolveState(ctx context.Context, sess *model.Session) (model.VisitorState, error) {
	if !sess.Authenticated() {
		return model.StateAnonymous, nil
	}

	rec, err := c.store.FindByUserID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, model.ErrRecordNotFound) {
			return model.StateAuthenticated, nil
		}
		return model.StateAuthenticated, fmt.Errorf("looking up player record: %w", err)
	}

	if rec.Banned {
		return model.StateBanned, nil
	}
	return model.StateVerified, nil
}

// DefaultBirthYear is the minimum-age hint prefilled on the verification form
func (c *Controller) DefaultBirthYear() int {
	return c.clock.Now().Year() - minimumAge
}

// SubmitVerification runs the full verification workflow for an
// authenticated session and returns the outcome category. Errors are
// returned alongside OutcomeError for logging; the caller surfaces only the
// generic error page.
func (c *Controller) SubmitVerification(ctx context.Context, sess *model.Session, req identity.Request) (Outcome, error) {
	valid, err := c.verifier.Verify(ctx, req)
	if err != nil {
		return OutcomeError, fmt.Errorf("identity verification: %w", err)
	}
	if !valid {
		return OutcomeRetry, nil
	}

	signature := model.SignGovID(req.NationalID)

	banned, err := c.store.FindBannedBySignature(ctx, signature)
	if err != nil {
		return OutcomeError, fmt.Errorf("banned-signature lookup: %w", err)
	}

	if len(banned) > 0 {
		for _, rec := range banned {
			if rec.UserID == sess.UserID {
				// This account already carries the ban.
				return OutcomeBanned, nil
			}
		}
		// Same identity under a new account: propagate the ban to the alias.
		rec := c.newRecord(sess, req, signature, true)
		if err := c.store.Create(ctx, rec); err != nil {
			return OutcomeError, fmt.Errorf("recording banned alias: %w", err)
		}
		c.logger.Warn("banned identity resurfaced under new account",
			slog.String("userId", string(sess.UserID)))
		return OutcomeBanned, nil
	}

	ok, err := c.team.Join(ctx, sess.AuthToken)
	if err != nil {
		return OutcomeError, fmt.Errorf("joining team: %w", err)
	}
	if !ok {
		return OutcomeError, errors.New("platform refused team join")
	}

	if err := c.store.Create(ctx, c.newRecord(sess, req, signature, false)); err != nil {
		return OutcomeError, fmt.Errorf("recording verification: %w", err)
	}

	c.logger.Info("player verified and joined team",
		slog.String("userId", string(sess.UserID)))
	return OutcomeSuccess, nil
}

// RejoinTeam re-attempts the team join for an already-verified account,
// covering players who left the team after verifying
func (c *Controller) RejoinTeam(ctx context.Context, sess *model.Session) (bool, error) {
	return c.team.Join(ctx, sess.AuthToken)
}

// WaitingPlayers returns non-banned records whose account is absent from the
// live roster
func (c *Controller) WaitingPlayers(ctx context.Context, token string) ([]*model.PlayerRecord, error) {
	waiting, _, err := c.splitByRoster(ctx, token)
	return waiting, err
}

// VerifiedPlayers returns non-banned records whose account is present on the
// live roster
func (c *Controller) VerifiedPlayers(ctx context.Context, token string) ([]*model.PlayerRecord, error) {
	_, verified, err := c.splitByRoster(ctx, token)
	return verified, err
}

// BannedPlayers returns every banned record
func (c *Controller) BannedPlayers(ctx context.Context) ([]*model.PlayerRecord, error) {
	return c.store.ListByBanned(ctx, true)
}

// splitByRoster fetches the stored non-banned records and the live roster
// concurrently, then partitions records by roster presence
func (c *Controller) splitByRoster(ctx context.Context, token string) (waiting, verified []*model.PlayerRecord, err error) {
	var (
		records []*model.PlayerRecord
		roster  []model.UserID
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = c.store.ListByBanned(gctx, false)
		return err
	})
	g.Go(func() error {
		var err error
		roster, err = c.team.ListMembers(gctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("splitting players by roster: %w", err)
	}

	onTeam := make(map[model.UserID]bool, len(roster))
	for _, id := range roster {
		onTeam[id] = true
	}

	for _, rec := range records {
		if onTeam[rec.UserID] {
			verified = append(verified, rec)
		} else {
			waiting = append(waiting, rec)
		}
	}
	return waiting, verified, nil
}

// Ban kicks the member from the team and flips the stored banned flag. The
// two writes run concurrently and are not atomic: if one fails the other is
// not rolled back, and the divergence is only logged.
func (c *Controller) Ban(ctx context.Context, userID model.UserID, token string) {
	var (
		wg       sync.WaitGroup
		kickErr  error
		kickOK   bool
		storeErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		kickOK, kickErr = c.team.Kick(ctx, userID, token)
	}()
	go func() {
		defer wg.Done()
		storeErr = c.store.SetBanned(ctx, userID, true)
	}()
	wg.Wait()

	if kickErr != nil {
		c.logger.Error("ban: team kick failed",
			slog.String("userId", string(userID)),
			slog.String("error", kickErr.Error()))
	} else if !kickOK {
		c.logger.Error("ban: platform refused kick",
			slog.String("userId", string(userID)))
	}
	if storeErr != nil {
		c.logger.Error("ban: flag update failed",
			slog.String("userId", string(userID)),
			slog.String("error", storeErr.Error()))
	}

	kicked := kickErr == nil && kickOK
	flagged := storeErr == nil
	if kicked != flagged {
		c.logger.Warn("ban state diverged between platform and store",
			slog.String("userId", string(userID)),
			slog.Bool("kicked", kicked),
			slog.Bool("flagged", flagged))
	}
}

// Unban clears the banned flag. The account is not re-added to the team; the
// player re-joins through the normal verify flow.
func (c *Controller) Unban(ctx context.Context, userID model.UserID) error {
	return c.store.SetBanned(ctx, userID, false)
}

func (c *Controller) newRecord(sess *model.Session, req identity.Request, signature string, banned bool) *model.PlayerRecord {
	return &model.PlayerRecord{
		UserID:         sess.UserID,
		UserName:       sess.UserName,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		BirthYear:      req.BirthYear,
		GovID:          model.MaskGovID(req.NationalID),
		GovIDSignature: signature,
		Banned:         banned,
		CreatedAt:      c.clock.Now(),
	}
}
