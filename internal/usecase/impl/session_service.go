// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	"fairway/config"
	"fairway/internal/domain/entity"
	domainerrors "fairway/internal/domain/errors"
	"fairway/internal/domain/repository"
	"fairway/internal/domain/service"
	"fairway/internal/usecase"
)

// snapshotBuffer bounds how far a session observer may lag before updates
// are collapsed to the latest snapshot.
const snapshotBuffer = 8

// sessionService implements the SessionUsecase interface. It consumes the
// auth-state stream on a single goroutine, so state transitions are applied
// strictly in notification order. Profile loads run asynchronously and are
// stamped with the epoch current at launch; a load whose epoch is no longer
// current is discarded, which makes the last notification win no matter how
// slowly earlier fetches complete.
type sessionService struct {
	source   service.AuthStateSource
	provider service.AuthProvider
	phone    service.PhoneVerifier
	tokens   service.TokenService
	profiles repository.ProfileRepository
	courses  repository.CourseRepository
	rounds   repository.RoundRepository
	photos   service.PhotoStore
	notifier service.Notifier
	logger   *slog.Logger

	fetchTimeout time.Duration

	mu       sync.RWMutex
	status   entity.SessionStatus
	identity *entity.Identity
	profile  *entity.Profile
	epoch    uint64
	watchers map[chan entity.SessionSnapshot]struct{}

	wg sync.WaitGroup
}

// SessionServiceParams holds dependencies for sessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In
	fx.Lifecycle

	Config   *config.Config
	Source   service.AuthStateSource
	Provider service.AuthProvider
	Phone    service.PhoneVerifier
	Tokens   service.TokenService
	Profiles repository.ProfileRepository
	Courses  repository.CourseRepository
	Rounds   repository.RoundRepository
	Photos   service.PhotoStore
	Notifier service.Notifier
	Logger   *slog.Logger
}

// NewSessionService is the constructor for sessionService. It starts the
// auth-state consumer and registers its teardown.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	srv := newSessionService(
		params.Source, params.Provider, params.Phone, params.Tokens,
		params.Profiles, params.Courses, params.Rounds, params.Photos,
		params.Notifier, params.Logger, params.Config.Session.ProfileFetchTimeout,
	)

	params.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			params.Source.Close()
			srv.wg.Wait()

			return nil
		},
	})

	return srv
}

// newSessionService builds the store and starts its consumer goroutine.
func newSessionService(
	source service.AuthStateSource,
	provider service.AuthProvider,
	phone service.PhoneVerifier,
	tokens service.TokenService,
	profiles repository.ProfileRepository,
	courses repository.CourseRepository,
	rounds repository.RoundRepository,
	photos service.PhotoStore,
	notifier service.Notifier,
	logger *slog.Logger,
	fetchTimeout time.Duration,
) *sessionService {
	srv := &sessionService{
		source:       source,
		provider:     provider,
		phone:        phone,
		tokens:       tokens,
		profiles:     profiles,
		courses:      courses,
		rounds:       rounds,
		photos:       photos,
		notifier:     notifier,
		logger:       logger,
		fetchTimeout: fetchTimeout,
		status:       entity.SessionUnknown,
		watchers:     make(map[chan entity.SessionSnapshot]struct{}),
	}

	srv.wg.Add(1)
	go srv.run()

	return srv
}

// run consumes auth-state notifications until the source is closed.
func (srv *sessionService) run() {
	defer srv.wg.Done()

	for identity := range srv.source.Notifications() {
		srv.handleAuthChange(identity)
	}
}

// handleAuthChange applies one auth-state notification. A nil identity means
// the session ended. Every notification bumps the epoch, so any profile load
// still in flight for an earlier notification becomes stale.
func (srv *sessionService) handleAuthChange(identity *entity.Identity) {
	srv.mu.Lock()
	srv.epoch++

	if identity == nil {
		srv.identity = nil
		srv.profile = nil
		srv.status = entity.SessionAnonymous
		srv.mu.Unlock()
		srv.logger.Info("Session ended")
		srv.notifyWatchers()

		return
	}

	epoch := srv.epoch
	srv.identity = identity
	srv.profile = nil
	srv.status = entity.SessionProfileLoading
	srv.mu.Unlock()

	srv.logger.Info("Auth state changed", "uid", identity.UID, "status", entity.SessionProfileLoading.String())
	srv.notifyWatchers()

	srv.wg.Add(1)
	go srv.loadProfile(epoch, identity)
}

// loadProfile resolves the profile for a freshly authenticated identity,
// bootstrapping the default document on first sign-in. The result is applied
// only if the stamped epoch is still current.
func (srv *sessionService) loadProfile(epoch uint64, identity *entity.Identity) {
	defer srv.wg.Done()

	ctx, cancel := context.WithTimeout(context.Background(), srv.fetchTimeout)
	defer cancel()

	profile, err := srv.profiles.Find(ctx, identity.UID)
	if errors.Is(err, repository.ErrProfileNotFound) {
		profile, err = srv.profiles.CreateIfAbsent(ctx, entity.NewProfile(identity))
	}

	srv.mu.Lock()
	if srv.epoch != epoch {
		srv.mu.Unlock()
		srv.logger.Debug("Discarding stale profile load", "uid", identity.UID)

		return
	}

	if err != nil {
		srv.identity = nil
		srv.profile = nil
		srv.status = entity.SessionAnonymous
		srv.mu.Unlock()
		srv.logger.Error("Profile load failed", "uid", identity.UID, "error", err)
		srv.notifier.Publish(identity.UID, entity.NotificationError, "Could not load your profile. Please sign in again.")
		srv.notifyWatchers()

		return
	}

	srv.profile = profile
	srv.status = entity.SessionReady
	srv.mu.Unlock()

	srv.logger.Info("Session ready", "uid", identity.UID)
	srv.notifyWatchers()
}

// SignInWithGoogle verifies a Google-federated ID token and establishes the
// session.
func (srv *sessionService) SignInWithGoogle(ctx context.Context, idToken string) (*usecase.SignInResult, error) {
	srv.setAuthenticating()

	identity, err := srv.provider.VerifyIDToken(ctx, idToken)
	if err != nil {
		srv.abortAuthenticating()

		return nil, errors.Wrap(domainerrors.ErrAuthFailed, err.Error())
	}

	return srv.completeSignIn(identity)
}

// RequestPhoneCode starts phone sign-in and returns the verification handle.
func (srv *sessionService) RequestPhoneCode(ctx context.Context, input *usecase.RequestPhoneCodeInput) (string, error) {
	handle, err := srv.phone.RequestCode(ctx, input.PhoneNumber, input.RecaptchaToken)
	if err != nil {
		return "", errors.Wrap(domainerrors.ErrInvalidPhoneNumber, err.Error())
	}

	srv.setAuthenticating()

	return handle, nil
}

// ConfirmPhoneCode completes phone sign-in. A failed confirmation leaves the
// session Authenticating and the handle usable for a retry.
func (srv *sessionService) ConfirmPhoneCode(ctx context.Context, input *usecase.ConfirmPhoneCodeInput) (*usecase.SignInResult, error) {
	identity, err := srv.phone.ConfirmCode(ctx, input.Handle, input.Code)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrVerificationCodeInvalid, err.Error())
	}

	return srv.completeSignIn(identity)
}

// completeSignIn issues the session token and feeds the identity into the
// auth stream, which drives the state machine into ProfileLoading.
func (srv *sessionService) completeSignIn(identity *entity.Identity) (*usecase.SignInResult, error) {
	token, err := srv.tokens.GenerateToken(identity.UID)
	if err != nil {
		srv.abortAuthenticating()

		return nil, errors.Wrap(err, "failed to generate session token")
	}

	srv.source.Emit(identity)

	return &usecase.SignInResult{Token: token, Identity: identity}, nil
}

// SignOut revokes provider sessions and forces the session to Anonymous.
// The epoch bump discards any profile load still in flight.
func (srv *sessionService) SignOut(ctx context.Context) error {
	srv.mu.RLock()
	identity := srv.identity
	srv.mu.RUnlock()

	if identity != nil {
		if err := srv.provider.RevokeSessions(ctx, identity.UID); err != nil {
			// Local sign-out still proceeds; the provider session will
			// expire on its own.
			srv.logger.Warn("Failed to revoke provider sessions", "uid", identity.UID, "error", err)
		}
	}

	srv.forceAnonymous()

	return nil
}

// Snapshot returns the current session state.
func (srv *sessionService) Snapshot() entity.SessionSnapshot {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	return srv.snapshotLocked()
}

// Subscribe registers a session state observer.
func (srv *sessionService) Subscribe() (<-chan entity.SessionSnapshot, func()) {
	ch := make(chan entity.SessionSnapshot, snapshotBuffer)

	srv.mu.Lock()
	srv.watchers[ch] = struct{}{}
	srv.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			srv.mu.Lock()
			delete(srv.watchers, ch)
			srv.mu.Unlock()
		})
	}

	return ch, cancel
}

// UpdateProfile applies a partial edit: the merge write goes to the backend
// first, then the identical merge is applied to the in-memory copy. The
// local copy is never wholesale replaced, so fields the edit does not name
// keep whatever value they already had.
func (srv *sessionService) UpdateProfile(ctx context.Context, update *entity.ProfileUpdate) (*entity.Profile, error) {
	srv.mu.RLock()
	if srv.status != entity.SessionReady || srv.identity == nil {
		srv.mu.RUnlock()

		return nil, errors.Wrap(domainerrors.ErrNotAuthenticated, "profile update requires a ready session")
	}
	uid := srv.identity.UID
	srv.mu.RUnlock()

	if update.IsZero() {
		return srv.Snapshot().Profile, nil
	}

	if err := srv.profiles.Merge(ctx, uid, update); err != nil {
		srv.notifier.Publish(uid, entity.NotificationError, "Failed to save profile changes.")

		return nil, errors.Wrap(err, "failed to merge profile")
	}

	srv.mu.Lock()
	// Session may have flipped while the write was in flight. The write
	// itself stands; only the local merge is skipped.
	if srv.identity == nil || srv.identity.UID != uid || srv.profile == nil {
		srv.mu.Unlock()

		return nil, errors.Wrap(domainerrors.ErrNotAuthenticated, "session ended during profile update")
	}
	srv.profile.Apply(update)
	profile := srv.profile.Clone()
	srv.mu.Unlock()

	srv.notifyWatchers()
	srv.notifier.Publish(uid, entity.NotificationSuccess, "Profile updated.")

	return profile, nil
}

// DeleteAccount removes the user's data and identity in a fixed order:
// rounds, courses, photos, profile document, then the identity itself. The
// cascade halts at the first failure. If nothing was deleted yet the account
// is intact and the error says so; once anything is gone the failure is
// reported as partial. The identity is never deleted while data remains, so
// the user can always sign back in and retry.
func (srv *sessionService) DeleteAccount(ctx context.Context) error {
	srv.mu.RLock()
	if !srv.status.Authenticated() || srv.identity == nil {
		srv.mu.RUnlock()

		return errors.Wrap(domainerrors.ErrNotAuthenticated, "account deletion requires a signed-in session")
	}
	uid := srv.identity.UID
	srv.mu.RUnlock()

	deletedAnything := false

	roundsDeleted, err := srv.rounds.DeleteAll(ctx, uid)
	deletedAnything = deletedAnything || roundsDeleted > 0
	if err != nil {
		return srv.cascadeFailure(uid, "rounds", deletedAnything, err)
	}

	coursesDeleted, err := srv.courses.DeleteAll(ctx, uid)
	deletedAnything = deletedAnything || coursesDeleted > 0
	if err != nil {
		return srv.cascadeFailure(uid, "courses", deletedAnything, err)
	}

	if err := srv.photos.DeletePrefix(ctx, photoPrefix(uid)); err != nil {
		return srv.cascadeFailure(uid, "photos", deletedAnything, err)
	}

	if err := srv.profiles.Delete(ctx, uid); err != nil {
		return srv.cascadeFailure(uid, "profile", deletedAnything, err)
	}
	deletedAnything = true

	if err := srv.provider.DeleteIdentity(ctx, uid); err != nil {
		return srv.cascadeFailure(uid, "identity", deletedAnything, err)
	}

	srv.logger.Info("Account deleted", "uid", uid)
	srv.forceAnonymous()

	return nil
}

func (srv *sessionService) cascadeFailure(uid, stage string, deletedAnything bool, err error) error {
	srv.logger.Error("Account deletion halted", "uid", uid, "stage", stage, "error", err)
	srv.notifier.Publish(uid, entity.NotificationError, "Account deletion failed. Please try again.")

	if deletedAnything {
		return errors.Wrapf(domainerrors.ErrAccountDeletePartial, "halted at %s: %s", stage, err.Error())
	}

	return errors.Wrapf(domainerrors.ErrAccountDeleteFailed, "halted at %s: %s", stage, err.Error())
}

// setAuthenticating marks an in-flight sign-in, but never regresses an
// already authenticated session.
func (srv *sessionService) setAuthenticating() {
	srv.mu.Lock()
	if srv.status.Authenticated() {
		srv.mu.Unlock()

		return
	}
	srv.status = entity.SessionAuthenticating
	srv.mu.Unlock()

	srv.notifyWatchers()
}

// abortAuthenticating rolls a failed sign-in attempt back to Anonymous.
func (srv *sessionService) abortAuthenticating() {
	srv.mu.Lock()
	if srv.status != entity.SessionAuthenticating {
		srv.mu.Unlock()

		return
	}
	srv.status = entity.SessionAnonymous
	srv.mu.Unlock()

	srv.notifyWatchers()
}

// forceAnonymous clears the session synchronously, invalidates in-flight
// profile loads, and emits the end-of-session notification so stream
// consumers observe it in order.
func (srv *sessionService) forceAnonymous() {
	srv.mu.Lock()
	srv.epoch++
	srv.identity = nil
	srv.profile = nil
	srv.status = entity.SessionAnonymous
	srv.mu.Unlock()

	srv.notifyWatchers()
	srv.source.Emit(nil)
}

func (srv *sessionService) snapshotLocked() entity.SessionSnapshot {
	snapshot := entity.SessionSnapshot{
		Status:   srv.status,
		Identity: srv.identity,
	}
	if srv.profile != nil {
		snapshot.Profile = srv.profile.Clone()
	}

	return snapshot
}

// notifyWatchers publishes the current snapshot to every observer. A lagging
// observer has its oldest pending snapshot evicted in favor of the newest,
// so everyone converges on the latest state.
func (srv *sessionService) notifyWatchers() {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	snapshot := srv.snapshotLocked()
	for ch := range srv.watchers {
		for {
			select {
			case ch <- snapshot:
			default:
				select {
				case <-ch:
					continue
				default:
				}
			}

			break
		}
	}
}

func photoPrefix(uid string) string {
	return "users/" + uid + "/"
}
