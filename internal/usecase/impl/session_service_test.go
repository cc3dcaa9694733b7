package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fairway/internal/domain/entity"
	domainerrors "fairway/internal/domain/errors"
	"fairway/internal/domain/repository"
	"fairway/internal/domain/service"
	"fairway/internal/infra/auth"
	mockRepo "fairway/internal/mocks/repository"
	mockSvc "fairway/internal/mocks/service"
	"fairway/internal/usecase"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// gatedProfileRepo is an in-memory profile repository whose Find can be
// blocked per uid, to simulate slow profile fetches.
type gatedProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*entity.Profile
	gates    map[string]chan struct{}
	merges   []*entity.ProfileUpdate
}

func newGatedProfileRepo() *gatedProfileRepo {
	return &gatedProfileRepo{
		profiles: make(map[string]*entity.Profile),
		gates:    make(map[string]chan struct{}),
	}
}

func (r *gatedProfileRepo) gate(uid string) chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	gate := make(chan struct{})
	r.gates[uid] = gate

	return gate
}

func (r *gatedProfileRepo) put(profile *entity.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.UID] = profile
}

func (r *gatedProfileRepo) Find(ctx context.Context, uid string) (*entity.Profile, error) {
	r.mu.Lock()
	gate := r.gates[uid]
	r.mu.Unlock()
	if gate != nil {
		<-gate
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.profiles[uid]
	if !ok {
		return nil, repository.ErrProfileNotFound
	}

	return profile.Clone(), nil
}

func (r *gatedProfileRepo) CreateIfAbsent(ctx context.Context, profile *entity.Profile) (*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.profiles[profile.UID]; ok {
		return existing.Clone(), nil
	}
	r.profiles[profile.UID] = profile.Clone()

	return profile.Clone(), nil
}

func (r *gatedProfileRepo) Merge(ctx context.Context, uid string, update *entity.ProfileUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.merges = append(r.merges, update)
	if profile, ok := r.profiles[uid]; ok {
		profile.Apply(update)
	}

	return nil
}

func (r *gatedProfileRepo) RecordRound(ctx context.Context, uid, playedDate string) error { return nil }
func (r *gatedProfileRepo) RecordCourseAdded(ctx context.Context, uid string) error      { return nil }

func (r *gatedProfileRepo) Delete(ctx context.Context, uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, uid)

	return nil
}

// staticTokens issues a constant token.
type staticTokens struct{}

func (staticTokens) GenerateToken(uid string) (string, error) { return "session-token", nil }
func (staticTokens) ValidateToken(token string) (*service.Claims, error) {
	return &service.Claims{UID: "uid", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

type sessionFixtures struct {
	service  *sessionService
	source   service.AuthStateSource
	provider *mockSvc.MockAuthProvider
	phone    *mockSvc.MockPhoneVerifier
	profiles *gatedProfileRepo
	courses  *mockRepo.MockCourseRepository
	rounds   *mockRepo.MockRoundRepository
	photos   *mockSvc.MockPhotoStore
}

func createTestSessionService(t *testing.T) sessionFixtures {
	t.Helper()

	source := auth.NewStateSource()
	provider := mockSvc.NewMockAuthProvider()
	phone := mockSvc.NewMockPhoneVerifier()
	profiles := newGatedProfileRepo()
	courses := mockRepo.NewMockCourseRepository()
	rounds := mockRepo.NewMockRoundRepository()
	photos := mockSvc.NewMockPhotoStore()

	srv := newSessionService(
		source, provider, phone, staticTokens{}, profiles, courses, rounds,
		photos, mockSvc.NewMockNotifier(), discardLogger(), 2*time.Second,
	)
	t.Cleanup(func() {
		source.Close()
		srv.wg.Wait()
	})

	return sessionFixtures{
		service:  srv,
		source:   source,
		provider: provider,
		phone:    phone,
		profiles: profiles,
		courses:  courses,
		rounds:   rounds,
		photos:   photos,
	}
}

func waitStatus(t *testing.T, srv *sessionService, want entity.SessionStatus) {
	t.Helper()
	require.Eventually(t, func() bool {
		return srv.Snapshot().Status == want
	}, 2*time.Second, 5*time.Millisecond, "expected status %s", want)
}

func identityFor(uid, name string) *entity.Identity {
	return &entity.Identity{UID: uid, DisplayName: name, Email: uid + "@example.com"}
}

func signIn(t *testing.T, fx sessionFixtures, identity *entity.Identity) {
	t.Helper()
	fx.profiles.put(entity.NewProfile(identity))
	fx.source.Emit(identity)
	waitStatus(t, fx.service, entity.SessionReady)
}

func TestSessionService_LastNotificationWins(t *testing.T) {
	fx := createTestSessionService(t)

	alice := identityFor("alice", "Alice")
	bob := identityFor("bob", "Bob")
	fx.profiles.put(entity.NewProfile(alice))
	fx.profiles.put(entity.NewProfile(bob))

	// Alice's profile fetch hangs; Bob signs in right behind her.
	aliceGate := fx.profiles.gate("alice")
	fx.source.Emit(alice)
	fx.source.Emit(bob)
	waitStatus(t, fx.service, entity.SessionReady)
	require.Equal(t, "bob", fx.service.Snapshot().Profile.UID)

	// Alice's stale fetch completing must not displace Bob.
	close(aliceGate)
	time.Sleep(50 * time.Millisecond)
	snapshot := fx.service.Snapshot()
	assert.Equal(t, entity.SessionReady, snapshot.Status)
	assert.Equal(t, "bob", snapshot.Profile.UID)
	assert.Equal(t, "bob", snapshot.Identity.UID)
}

func TestSessionService_BootstrapSynthesizesDefaultProfile(t *testing.T) {
	fx := createTestSessionService(t)

	carol := identityFor("carol", "Carol")
	fx.source.Emit(carol)
	waitStatus(t, fx.service, entity.SessionReady)

	profile := fx.service.Snapshot().Profile
	require.NotNil(t, profile)
	assert.Equal(t, "carol", profile.UID)
	assert.Equal(t, "Carol", profile.DisplayName)
	assert.Zero(t, profile.TotalRounds)
	assert.Zero(t, profile.TotalCourses)
}

func TestSessionService_BootstrapPreservesExistingCounters(t *testing.T) {
	fx := createTestSessionService(t)

	// A concurrent first sign-in already created the profile and logged
	// rounds against it. The losing bootstrap must adopt it, not reset it.
	existing := entity.NewProfile(identityFor("dave", "Dave"))
	existing.TotalRounds = 7
	existing.TotalCourses = 3
	fx.profiles.CreateIfAbsent(context.Background(), existing)

	fx.source.Emit(identityFor("dave", "Dave"))
	waitStatus(t, fx.service, entity.SessionReady)

	profile := fx.service.Snapshot().Profile
	assert.Equal(t, int64(7), profile.TotalRounds)
	assert.Equal(t, int64(3), profile.TotalCourses)
}

func TestSessionService_SignOutDiscardsInflightProfileLoad(t *testing.T) {
	fx := createTestSessionService(t)

	erin := identityFor("erin", "Erin")
	fx.profiles.put(entity.NewProfile(erin))
	gate := fx.profiles.gate("erin")

	fx.source.Emit(erin)
	waitStatus(t, fx.service, entity.SessionProfileLoading)

	fx.provider.On("RevokeSessions", mock.Anything, "erin").Return(nil)
	require.NoError(t, fx.service.SignOut(context.Background()))

	// Forced transition is synchronous.
	assert.Equal(t, entity.SessionAnonymous, fx.service.Snapshot().Status)

	// The hung fetch completing must not resurrect the session.
	close(gate)
	time.Sleep(50 * time.Millisecond)
	snapshot := fx.service.Snapshot()
	assert.Equal(t, entity.SessionAnonymous, snapshot.Status)
	assert.Nil(t, snapshot.Identity)
	assert.Nil(t, snapshot.Profile)
}

func TestSessionService_SignOutFromEveryStatus(t *testing.T) {
	t.Run("unknown", func(t *testing.T) {
		fx := createTestSessionService(t)
		require.Equal(t, entity.SessionUnknown, fx.service.Snapshot().Status)
		require.NoError(t, fx.service.SignOut(context.Background()))
		assert.Equal(t, entity.SessionAnonymous, fx.service.Snapshot().Status)
	})

	t.Run("anonymous", func(t *testing.T) {
		fx := createTestSessionService(t)
		fx.source.Emit(nil)
		waitStatus(t, fx.service, entity.SessionAnonymous)
		require.NoError(t, fx.service.SignOut(context.Background()))
		assert.Equal(t, entity.SessionAnonymous, fx.service.Snapshot().Status)
	})

	t.Run("authenticating", func(t *testing.T) {
		fx := createTestSessionService(t)
		fx.phone.On("RequestCode", mock.Anything, "+15551234567", "").Return("handle-1", nil)
		_, err := fx.service.RequestPhoneCode(context.Background(), &usecase.RequestPhoneCodeInput{PhoneNumber: "+15551234567"})
		require.NoError(t, err)
		require.Equal(t, entity.SessionAuthenticating, fx.service.Snapshot().Status)
		require.NoError(t, fx.service.SignOut(context.Background()))
		assert.Equal(t, entity.SessionAnonymous, fx.service.Snapshot().Status)
	})

	t.Run("ready", func(t *testing.T) {
		fx := createTestSessionService(t)
		frank := identityFor("frank", "Frank")
		signIn(t, fx, frank)
		fx.provider.On("RevokeSessions", mock.Anything, "frank").Return(nil)
		require.NoError(t, fx.service.SignOut(context.Background()))
		snapshot := fx.service.Snapshot()
		assert.Equal(t, entity.SessionAnonymous, snapshot.Status)
		assert.Nil(t, snapshot.Profile)
	})
}

func TestSessionService_UpdateProfile_RequiresReadySession(t *testing.T) {
	fx := createTestSessionService(t)

	name := "Grace"
	_, err := fx.service.UpdateProfile(context.Background(), &entity.ProfileUpdate{DisplayName: &name})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotAuthenticated))
}

func TestSessionService_UpdateProfile_PartialMerge(t *testing.T) {
	fx := createTestSessionService(t)

	heidi := identityFor("heidi", "Heidi")
	signIn(t, fx, heidi)

	handicap := 12.4
	fx.service.UpdateProfile(context.Background(), &entity.ProfileUpdate{Handicap: &handicap})

	home := "St Andrews"
	profile, err := fx.service.UpdateProfile(context.Background(), &entity.ProfileUpdate{HomeCourseName: &home})
	require.NoError(t, err)

	// The second edit must not disturb fields it does not name.
	assert.Equal(t, "St Andrews", profile.HomeCourseName)
	require.NotNil(t, profile.Handicap)
	assert.Equal(t, 12.4, *profile.Handicap)
	assert.Equal(t, "Heidi", profile.DisplayName)
	assert.Equal(t, "heidi@example.com", profile.Email)

	// And the backend saw exactly the named fields.
	require.Len(t, fx.profiles.merges, 2)
	assert.Nil(t, fx.profiles.merges[1].Handicap)
	assert.NotNil(t, fx.profiles.merges[1].HomeCourseName)
}

func TestSessionService_DeleteAccount_HaltsBeforeAnythingDeleted(t *testing.T) {
	fx := createTestSessionService(t)
	signIn(t, fx, identityFor("ivan", "Ivan"))

	fx.rounds.On("DeleteAll", mock.Anything, "ivan").Return(0, errors.New("backend unavailable"))

	err := fx.service.DeleteAccount(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountDeleteFailed))

	// Nothing was touched: identity survives and the session stays live.
	fx.provider.AssertNotCalled(t, "DeleteIdentity", mock.Anything, mock.Anything)
	assert.Equal(t, entity.SessionReady, fx.service.Snapshot().Status)
}

func TestSessionService_DeleteAccount_PartialFailureKeepsIdentity(t *testing.T) {
	fx := createTestSessionService(t)
	signIn(t, fx, identityFor("judy", "Judy"))

	fx.rounds.On("DeleteAll", mock.Anything, "judy").Return(3, nil)
	fx.courses.On("DeleteAll", mock.Anything, "judy").Return(0, errors.New("backend unavailable"))

	err := fx.service.DeleteAccount(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountDeletePartial))

	// The cascade halted: photos, profile and identity were never touched.
	fx.photos.AssertNotCalled(t, "DeletePrefix", mock.Anything, mock.Anything)
	fx.provider.AssertNotCalled(t, "DeleteIdentity", mock.Anything, mock.Anything)
}

func TestSessionService_DeleteAccount_FullCascade(t *testing.T) {
	fx := createTestSessionService(t)
	signIn(t, fx, identityFor("kim", "Kim"))

	fx.rounds.On("DeleteAll", mock.Anything, "kim").Return(5, nil)
	fx.courses.On("DeleteAll", mock.Anything, "kim").Return(2, nil)
	fx.photos.On("DeletePrefix", mock.Anything, "users/kim/").Return(nil)
	fx.provider.On("DeleteIdentity", mock.Anything, "kim").Return(nil)

	require.NoError(t, fx.service.DeleteAccount(context.Background()))

	snapshot := fx.service.Snapshot()
	assert.Equal(t, entity.SessionAnonymous, snapshot.Status)
	assert.Nil(t, snapshot.Identity)
	fx.provider.AssertCalled(t, "DeleteIdentity", mock.Anything, "kim")
}

func TestSessionService_PhoneFlow_RetryAfterBadCode(t *testing.T) {
	fx := createTestSessionService(t)

	leo := identityFor("leo", "")
	fx.profiles.put(entity.NewProfile(leo))

	fx.phone.On("RequestCode", mock.Anything, "+15557654321", "captcha").Return("handle-9", nil)
	fx.phone.On("ConfirmCode", mock.Anything, "handle-9", "000000").Return(nil, errors.New("invalid code"))
	fx.phone.On("ConfirmCode", mock.Anything, "handle-9", "123456").Return(leo, nil)

	handle, err := fx.service.RequestPhoneCode(context.Background(), &usecase.RequestPhoneCodeInput{
		PhoneNumber:    "+15557654321",
		RecaptchaToken: "captcha",
	})
	require.NoError(t, err)
	require.Equal(t, "handle-9", handle)

	// Wrong code: auth error, no crash, handle still usable.
	_, err = fx.service.ConfirmPhoneCode(context.Background(), &usecase.ConfirmPhoneCodeInput{Handle: handle, Code: "000000"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrVerificationCodeInvalid))
	assert.Equal(t, entity.SessionAuthenticating, fx.service.Snapshot().Status)

	// Retry with the corrected code, no new request needed.
	result, err := fx.service.ConfirmPhoneCode(context.Background(), &usecase.ConfirmPhoneCodeInput{Handle: handle, Code: "123456"})
	require.NoError(t, err)
	assert.Equal(t, "session-token", result.Token)
	waitStatus(t, fx.service, entity.SessionReady)
}

func TestSessionService_SignInWithGoogle_FailureRollsBack(t *testing.T) {
	fx := createTestSessionService(t)

	fx.provider.On("VerifyIDToken", mock.Anything, "bad-token").Return(nil, errors.New("token expired"))

	_, err := fx.service.SignInWithGoogle(context.Background(), "bad-token")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAuthFailed))
	assert.Equal(t, entity.SessionAnonymous, fx.service.Snapshot().Status)
}
