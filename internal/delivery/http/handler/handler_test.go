package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	cognitoidp "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/gin-gonic/gin"
	"github.com/group-fitness/backend/internal/config"
	httpdelivery "github.com/group-fitness/backend/internal/delivery/http"
	"github.com/group-fitness/backend/internal/delivery/http/handler"
	"github.com/group-fitness/backend/internal/delivery/http/middleware"
	"github.com/group-fitness/backend/internal/domain"
	"github.com/group-fitness/backend/internal/infrastructure/cognito"
	"github.com/group-fitness/backend/internal/usecase/auth"
	"github.com/group-fitness/backend/internal/usecase/groupevent"
	"github.com/group-fitness/backend/internal/usecase/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeIdP resolves access tokens from a fixed table, standing in for the
// Cognito user pool.
type fakeIdP struct {
	tokens map[string]fakeIdentity
}

type fakeIdentity struct {
	sub   string
	email string
}

var _ cognito.API = (*fakeIdP)(nil)

func (f *fakeIdP) GetUser(ctx context.Context, params *cognitoidp.GetUserInput, optFns ...func(*cognitoidp.Options)) (*cognitoidp.GetUserOutput, error) {
	identity, ok := f.tokens[aws.ToString(params.AccessToken)]
	if !ok {
		return nil, &types.NotAuthorizedException{Message: aws.String("Invalid Access Token")}
	}
	return &cognitoidp.GetUserOutput{
		Username: aws.String(identity.sub),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("sub"), Value: aws.String(identity.sub)},
			{Name: aws.String("email"), Value: aws.String(identity.email)},
			{Name: aws.String("email_verified"), Value: aws.String("true")},
		},
	}, nil
}

func (f *fakeIdP) SignUp(ctx context.Context, params *cognitoidp.SignUpInput, optFns ...func(*cognitoidp.Options)) (*cognitoidp.SignUpOutput, error) {
	return &cognitoidp.SignUpOutput{UserSub: aws.String("new-sub")}, nil
}

func (f *fakeIdP) ConfirmSignUp(ctx context.Context, params *cognitoidp.ConfirmSignUpInput, optFns ...func(*cognitoidp.Options)) (*cognitoidp.ConfirmSignUpOutput, error) {
	return &cognitoidp.ConfirmSignUpOutput{}, nil
}

func (f *fakeIdP) InitiateAuth(ctx context.Context, params *cognitoidp.InitiateAuthInput, optFns ...func(*cognitoidp.Options)) (*cognitoidp.InitiateAuthOutput, error) {
	return &cognitoidp.InitiateAuthOutput{
		AuthenticationResult: &types.AuthenticationResultType{
			AccessToken:  aws.String("alice-token"),
			RefreshToken: aws.String("alice-refresh"),
			TokenType:    aws.String("Bearer"),
			ExpiresIn:    3600,
		},
	}, nil
}

func (f *fakeIdP) AdminInitiateAuth(ctx context.Context, params *cognitoidp.AdminInitiateAuthInput, optFns ...func(*cognitoidp.Options)) (*cognitoidp.AdminInitiateAuthOutput, error) {
	return &cognitoidp.AdminInitiateAuthOutput{}, nil
}

func (f *fakeIdP) ForgotPassword(ctx context.Context, params *cognitoidp.ForgotPasswordInput, optFns ...func(*cognitoidp.Options)) (*cognitoidp.ForgotPasswordOutput, error) {
	return &cognitoidp.ForgotPasswordOutput{}, nil
}

func (f *fakeIdP) ConfirmForgotPassword(ctx context.Context, params *cognitoidp.ConfirmForgotPasswordInput, optFns ...func(*cognitoidp.Options)) (*cognitoidp.ConfirmForgotPasswordOutput, error) {
	return &cognitoidp.ConfirmForgotPasswordOutput{}, nil
}

func (f *fakeIdP) GlobalSignOut(ctx context.Context, params *cognitoidp.GlobalSignOutInput, optFns ...func(*cognitoidp.Options)) (*cognitoidp.GlobalSignOutOutput, error) {
	return &cognitoidp.GlobalSignOutOutput{}, nil
}

// In-memory repositories backing the full router.

type memProfileRepo struct {
	nextID int
	byUser map[string]*domain.Profile
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{byUser: map[string]*domain.Profile{}}
}

func cloneProfile(p *domain.Profile) *domain.Profile {
	c := *p
	return &c
}

func (r *memProfileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	if _, ok := r.byUser[profile.UserID]; ok {
		return domain.ErrProfileAlreadyExists
	}
	r.nextID++
	profile.ID = r.nextID
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt
	r.byUser[profile.UserID] = cloneProfile(profile)
	return nil
}

func (r *memProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	p, ok := r.byUser[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return cloneProfile(p), nil
}

func (r *memProfileRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	for _, p := range r.byUser {
		if p.Email == email {
			return cloneProfile(p), nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (r *memProfileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	if _, ok := r.byUser[profile.UserID]; !ok {
		return domain.ErrProfileNotFound
	}
	profile.UpdatedAt = time.Now()
	r.byUser[profile.UserID] = cloneProfile(profile)
	return nil
}

type memPrefsRepo struct {
	nextID int
	byUser map[string]*domain.Preferences
}

func newMemPrefsRepo() *memPrefsRepo {
	return &memPrefsRepo{byUser: map[string]*domain.Preferences{}}
}

func clonePrefs(p *domain.Preferences) *domain.Preferences {
	c := *p
	return &c
}

func (r *memPrefsRepo) Create(ctx context.Context, prefs *domain.Preferences) error {
	r.nextID++
	prefs.ID = r.nextID
	prefs.CreatedAt = time.Now()
	prefs.UpdatedAt = prefs.CreatedAt
	if _, ok := r.byUser[prefs.UserID]; !ok {
		r.byUser[prefs.UserID] = clonePrefs(prefs)
	}
	return nil
}

func (r *memPrefsRepo) GetByUserID(ctx context.Context, userID string) (*domain.Preferences, error) {
	p, ok := r.byUser[userID]
	if !ok {
		return nil, domain.ErrPreferencesNotFound
	}
	return clonePrefs(p), nil
}

func (r *memPrefsRepo) Update(ctx context.Context, prefs *domain.Preferences) error {
	prefs.UpdatedAt = time.Now()
	r.byUser[prefs.UserID] = clonePrefs(prefs)
	return nil
}

type memEventRepo struct {
	nextID int
	byID   map[int]*domain.GroupEvent
}

func newMemEventRepo() *memEventRepo {
	return &memEventRepo{byID: map[int]*domain.GroupEvent{}}
}

func cloneEvent(e *domain.GroupEvent) *domain.GroupEvent {
	c := *e
	return &c
}

func (r *memEventRepo) Create(ctx context.Context, event *domain.GroupEvent) error {
	r.nextID++
	event.ID = r.nextID
	event.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(r.nextID) * time.Minute)
	event.UpdatedAt = event.CreatedAt
	r.byID[event.ID] = cloneEvent(event)
	return nil
}

func (r *memEventRepo) GetByID(ctx context.Context, id int) (*domain.GroupEvent, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return cloneEvent(e), nil
}

func (r *memEventRepo) ListAll(ctx context.Context) ([]*domain.GroupEvent, error) {
	events := make([]*domain.GroupEvent, 0, len(r.byID))
	for _, e := range r.byID {
		events = append(events, cloneEvent(e))
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
	return events, nil
}

func (r *memEventRepo) Update(ctx context.Context, event *domain.GroupEvent) error {
	if _, ok := r.byID[event.ID]; !ok {
		return domain.ErrEventNotFound
	}
	event.UpdatedAt = time.Now()
	r.byID[event.ID] = cloneEvent(event)
	return nil
}

func (r *memEventRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(r.byID, id)
	return nil
}

const (
	aliceToken = "alice-token"
	bobToken   = "bob-token"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	idp := &fakeIdP{tokens: map[string]fakeIdentity{
		aliceToken: {sub: "sub-alice", email: "alice@example.com"},
		bobToken:   {sub: "sub-bob", email: "bob@example.com"},
	}}

	authUseCase := auth.NewAuthUseCase(idp, "pool-id", "client-id")
	userUseCase := user.NewUserUseCase(newMemProfileRepo(), newMemPrefsRepo())
	eventUseCase := groupevent.NewGroupEventUseCase(newMemEventRepo())

	router := httpdelivery.NewRouter(
		handler.NewAuthHandler(authUseCase),
		handler.NewUserHandler(userUseCase),
		handler.NewGroupEventHandler(eventUseCase, nil),
		handler.NewSystemHandler(&config.Config{}, nil, nil),
		middleware.NewAuthMiddleware(authUseCase),
	)
	return router.Setup()
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestRequestWithoutTokenRejected(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/users/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "missing authorization token", decodeBody(t, w)["error"])
}

func TestRequestWithMalformedHeaderRejected(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid authorization header", decodeBody(t, w)["error"])
}

func TestRequestWithUnknownTokenRejected(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/users/profile", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid authentication credentials", decodeBody(t, w)["error"])
}

func TestAutoCreateProfileIsIdempotent(t *testing.T) {
	router := newTestRouter(t)

	first := doJSON(t, router, http.MethodPost, "/users/profile/auto-create", aliceToken, nil)
	require.Equal(t, http.StatusOK, first.Code)
	firstBody := decodeBody(t, first)
	assert.Equal(t, "Profile created successfully", firstBody["message"])
	firstProfile := firstBody["profile"].(map[string]any)
	assert.Equal(t, "sub-alice", firstProfile["user_id"])
	assert.Equal(t, "alice@example.com", firstProfile["email"])

	second := doJSON(t, router, http.MethodPost, "/users/profile/auto-create", aliceToken, nil)
	require.Equal(t, http.StatusOK, second.Code)
	secondProfile := decodeBody(t, second)["profile"].(map[string]any)
	assert.Equal(t, firstProfile["id"], secondProfile["id"])
}

func TestUpdateProfileKeepsUnsentFields(t *testing.T) {
	router := newTestRouter(t)
	doJSON(t, router, http.MethodPost, "/users/profile/auto-create", aliceToken, nil)

	w := doJSON(t, router, http.MethodPut, "/users/profile", aliceToken, gin.H{"bio": "hill repeats on tuesdays"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPut, "/users/profile", aliceToken, gin.H{"name": "Alice"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/users/profile", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "hill repeats on tuesdays", body["bio"])
	assert.Equal(t, "Alice", body["name"])
}

func TestProfileNotFoundBeforeAutoCreate(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/users/profile", bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "user profile not found", decodeBody(t, w)["error"])
}

func TestPreferencesRejectUnknownSport(t *testing.T) {
	router := newTestRouter(t)
	doJSON(t, router, http.MethodPost, "/users/profile/auto-create", aliceToken, nil)

	w := doJSON(t, router, http.MethodPut, "/users/preferences", aliceToken, gin.H{"sports": []string{"swimming"}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	msg := decodeBody(t, w)["error"].(string)
	assert.Contains(t, msg, "swimming")
	assert.Contains(t, msg, "running cycling")
}

func TestPreferencesUpsertOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	doJSON(t, router, http.MethodPost, "/users/profile/auto-create", aliceToken, nil)

	w := doJSON(t, router, http.MethodPut, "/users/preferences", aliceToken, gin.H{
		"sports":         []string{"running", "cycling"},
		"preferred_pace": "moderate",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPut, "/users/preferences", aliceToken, gin.H{"ride_type": "drop_ride"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/users/preferences", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Len(t, body["sports"], 2)
	assert.Equal(t, "moderate", body["preferred_pace"])
	assert.Equal(t, "drop_ride", body["ride_type"])
}

func TestPreferencesRequireProfile(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPut, "/users/preferences", bobToken, gin.H{"preferred_pace": "casual"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "user profile not found", decodeBody(t, w)["error"])
}

func TestOnboardingOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	doJSON(t, router, http.MethodPost, "/users/profile/auto-create", aliceToken, nil)

	w := doJSON(t, router, http.MethodPost, "/users/onboarding", aliceToken, gin.H{
		"profile":     gin.H{"name": "Alice", "bio": "weekend rider"},
		"preferences": gin.H{"sports": []string{"cycling"}, "ride_type": "casual"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Onboarding completed successfully", body["message"])
	profile := body["profile"].(map[string]any)
	assert.Equal(t, "Alice", profile["name"])
	prefs := body["preferences"].(map[string]any)
	assert.Equal(t, "casual", prefs["ride_type"])
}

func TestOnboardingWithoutProfileIsBadRequest(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/users/onboarding", bobToken, gin.H{
		"profile":     gin.H{"name": "Bob"},
		"preferences": gin.H{"sports": []string{"running"}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "user profile not found", decodeBody(t, w)["error"])
}

func validEventBody() gin.H {
	return gin.H{
		"name":       "Saturday long ride",
		"sport_type": "cycling",
		"start_at":   "2026-09-12T08:00:00Z",
		"access":     "public",
		"event_type": "casual",
		"distance":   50,
	}
}

func TestCreateEventRejectsNegativeDistance(t *testing.T) {
	router := newTestRouter(t)

	body := validEventBody()
	body["distance"] = -5
	w := doJSON(t, router, http.MethodPost, "/group_events/", aliceToken, body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "distance must be greater than or equal to 0", decodeBody(t, w)["error"])
}

func TestCreateEventRequiresDistance(t *testing.T) {
	router := newTestRouter(t)

	body := validEventBody()
	delete(body, "distance")
	w := doJSON(t, router, http.MethodPost, "/group_events/", aliceToken, body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "distance is required", decodeBody(t, w)["error"])
}

func TestCreateEventAllowsZeroDistance(t *testing.T) {
	router := newTestRouter(t)

	body := validEventBody()
	body["distance"] = 0
	w := doJSON(t, router, http.MethodPost, "/group_events/", aliceToken, body)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEventLifecycleAndOwnership(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/group_events/", aliceToken, validEventBody())
	require.Equal(t, http.StatusOK, w.Code)
	created := decodeBody(t, w)
	assert.Equal(t, "sub-alice", created["created_by"])
	assert.Equal(t, float64(50), created["distance"])
	id := int(created["id"].(float64))

	// Single reads are public.
	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/group_events/%d", id), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Saturday long ride", decodeBody(t, w)["name"])

	// A non-creator cannot tell the event exists for writes.
	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/group_events/%d", id), bobToken, gin.H{"name": "hijacked"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "group event not found", decodeBody(t, w)["error"])

	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/group_events/%d", id), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The creator can update and delete.
	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/group_events/%d", id), aliceToken, gin.H{"name": "Sunday long ride"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Sunday long ride", decodeBody(t, w)["name"])

	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/group_events/%d", id), aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Group event deleted successfully", decodeBody(t, w)["message"])

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/group_events/%d", id), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListEventsNewestFirst(t *testing.T) {
	router := newTestRouter(t)

	for _, name := range []string{"first", "second", "third"} {
		body := validEventBody()
		body["name"] = name
		w := doJSON(t, router, http.MethodPost, "/group_events/", aliceToken, body)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(t, router, http.MethodGet, "/group_events/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var events []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &events))
	require.Len(t, events, 3)
	assert.Equal(t, "third", events[0]["name"])
	assert.Equal(t, "second", events[1]["name"])
	assert.Equal(t, "first", events[2]["name"])
}

func TestEventIDMustBeNumeric(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/group_events/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid event id", decodeBody(t, w)["error"])
}

func TestUploadURLWithoutStorageConfigured(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/group_events/upload-url", aliceToken, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "object storage is not configured", decodeBody(t, w)["error"])
}

func TestSignUpRejectsInvalidEmail(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/auth/signup", "", gin.H{
		"email":    "not-an-email",
		"password": "longenough",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "email must be a valid email address", decodeBody(t, w)["error"])
}

func TestSignInReturnsBearerTokens(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/auth/signin", "", gin.H{
		"email":    "alice@example.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Bearer", body["token_type"])
	assert.Equal(t, "alice-token", body["access_token"])
}

func TestAuthMeReturnsIdentity(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/auth/me", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "sub-alice", body["user_id"])
	assert.Equal(t, "alice@example.com", body["email"])
}

func TestMalformedBodyIsBadRequest(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/signin", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid request body", decodeBody(t, w)["error"])
}
