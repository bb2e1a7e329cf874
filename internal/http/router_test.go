package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"fitness-tracker/backend/internal/access"
	"fitness-tracker/backend/internal/config"
	"fitness-tracker/backend/internal/domain/class"
	"fitness-tracker/backend/internal/domain/forum"
	"fitness-tracker/backend/internal/domain/payment"
	"fitness-tracker/backend/internal/domain/slot"
	"fitness-tracker/backend/internal/domain/stats"
	"fitness-tracker/backend/internal/domain/trainer"
	"fitness-tracker/backend/internal/domain/user"
	"fitness-tracker/backend/internal/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUsers struct {
	mu    sync.Mutex
	users map[string]user.User
}

func (f *fakeUsers) Create(_ context.Context, u user.User) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.Email]; ok {
		return nil, fmt.Errorf("%w: %s", user.ErrConflict, u.Email)
	}
	f.users[u.Email] = u
	return &u, nil
}

func (f *fakeUsers) Get(_ context.Context, email string) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[email]
	if !ok {
		return nil, user.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUsers) Update(_ context.Context, email string, fields map[string]any) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[email]
	if !ok {
		return nil, user.ErrNotFound
	}
	if v, ok := fields["role"].(string); ok {
		u.Role = v
	}
	f.users[email] = u
	return &u, nil
}

func (f *fakeUsers) List(context.Context) ([]user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]user.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

type fakeTrainers struct {
	pending []trainer.Application
}

func (f *fakeTrainers) Apply(_ context.Context, a trainer.Application) (*trainer.Application, error) {
	return &a, nil
}

func (f *fakeTrainers) ListByStatus(_ context.Context, status string) ([]trainer.Application, error) {
	if status == trainer.StatusPending {
		return f.pending, nil
	}
	return []trainer.Application{}, nil
}

func (f *fakeTrainers) Get(context.Context, string) (*trainer.Application, error) {
	return nil, trainer.ErrNotFound
}

func (f *fakeTrainers) GetByEmail(context.Context, string) (*trainer.Application, error) {
	return nil, trainer.ErrNotFound
}

func (f *fakeTrainers) Approve(context.Context, string, time.Time) (*trainer.Application, error) {
	return nil, trainer.ErrNotFound
}

func (f *fakeTrainers) Reject(context.Context, string, string, time.Time) (*trainer.RejectionFeedback, error) {
	return nil, trainer.ErrNotFound
}

func (f *fakeTrainers) DeleteByEmail(context.Context, string) (int, error) {
	return 0, trainer.ErrNotFound
}

func (f *fakeTrainers) Feedback(context.Context, string) (*trainer.RejectionFeedback, error) {
	return nil, trainer.ErrNoFeedback
}

type fakeForums struct {
	posts map[string]forum.Post
}

func (f *fakeForums) Create(_ context.Context, p forum.Post) (*forum.Post, error) {
	p.ID = fmt.Sprintf("post-%d", len(f.posts)+1)
	f.posts[p.ID] = p
	return &p, nil
}

func (f *fakeForums) Get(_ context.Context, id string) (*forum.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, forum.ErrNotFound
	}
	return &p, nil
}

func (f *fakeForums) List(context.Context, int, int) ([]forum.Post, error) {
	return []forum.Post{}, nil
}

func (f *fakeForums) Count(context.Context) (int, error) {
	return len(f.posts), nil
}

func (f *fakeForums) Vote(_ context.Context, id string, delta int) (*forum.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, forum.ErrNotFound
	}
	p.VoteCount += int64(delta)
	f.posts[id] = p
	return &p, nil
}

type fakePayments struct {
	records  map[string]payment.Record
	bookings int
}

func (f *fakePayments) Record(_ context.Context, rec payment.Record, _ trainer.Booking) (*payment.Record, error) {
	if _, ok := f.records[rec.TransactionID]; ok {
		return nil, fmt.Errorf("%w: %s", payment.ErrDuplicate, rec.TransactionID)
	}
	f.records[rec.TransactionID] = rec
	f.bookings++
	return &rec, nil
}

func (f *fakePayments) History(_ context.Context, email string) ([]payment.Record, error) {
	out := []payment.Record{}
	for _, r := range f.records {
		if r.StudentEmail == email {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakePayments) All(context.Context) ([]payment.Record, error) {
	out := []payment.Record{}
	for _, r := range f.records {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakePayments) MarkGatewayStatus(context.Context, string, string) error { return nil }

func (f *fakePayments) LogEvent(context.Context, payment.Event) error { return nil }

type fakeSlots struct {
	apps map[string]trainer.Application
}

func (f *fakeSlots) ApprovedByEmail(_ context.Context, email string) (*trainer.Application, error) {
	for _, a := range f.apps {
		if a.Email == email && a.IsApproved() {
			return &a, nil
		}
	}
	return nil, slot.ErrNotApproved
}

func (f *fakeSlots) Application(_ context.Context, id string) (*trainer.Application, error) {
	a, ok := f.apps[id]
	if !ok {
		return nil, trainer.ErrNotFound
	}
	return &a, nil
}

func (f *fakeSlots) AppendSlot(_ context.Context, _ string, s trainer.Slot) (*trainer.Slot, error) {
	return &s, nil
}

func (f *fakeSlots) DeleteSlot(context.Context, string, string) (*trainer.Slot, error) {
	return nil, trainer.ErrSlotNotFound
}

type harness struct {
	handler  http.Handler
	tokens   *token.Issuer
	forums   *fakeForums
	payments *fakePayments
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	log := zap.NewNop()

	users := &fakeUsers{users: map[string]user.User{
		"admin@fit.test":  {Email: "admin@fit.test", Role: user.RoleAdmin},
		"member@fit.test": {Email: "member@fit.test", Role: user.RoleMember},
		"coach@fit.test":  {Email: "coach@fit.test", Name: "Coach", Role: user.RoleTrainer},
	}}
	trainers := &fakeTrainers{pending: []trainer.Application{{ID: "t1", Email: "new@fit.test", Status: trainer.StatusPending}}}
	forums := &fakeForums{posts: map[string]forum.Post{"p1": {ID: "p1", Title: "Warmups"}}}
	payments := &fakePayments{records: map[string]payment.Record{}}
	slots := &fakeSlots{apps: map[string]trainer.Application{
		"t9": {ID: "t9", FullName: "Coach", Email: "coach@fit.test", Status: trainer.StatusApproved, AvailableDays: []string{"monday"}},
	}}

	userSvc := user.NewService(users)
	issuer := token.NewIssuer("test-secret", time.Hour)

	h := NewRouter(RouterDeps{
		Cfg:        config.Config{AllowedOrigins: []string{"http://localhost:5173"}},
		Log:        log,
		Tokens:     issuer,
		Exchanger:  token.NewExchanger(issuer, nil, false),
		Gate:       access.NewGate(userSvc),
		UserSvc:    userSvc,
		TrainerSvc: trainer.NewService(trainers),
		SlotSvc:    slot.NewService(slots),
		ForumSvc:   forum.NewService(forums, userSvc, log),
		PaymentSvc: payment.NewService(payments, nil, "usd", log),
		StatsSvc:   stats.NewService(nil, nil, nil, time.Minute, log),
	})
	return &harness{handler: h, tokens: issuer, forums: forums, payments: payments}
}

func (h *harness) do(t *testing.T, method, path, as, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if as != "" {
		raw, err := h.tokens.Issue(as)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+raw)
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealthz(t *testing.T) {
	h := newHarness(t)
	rec := h.do(t, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["ok"])
}

func TestAdminRoute_Access(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name string
		as   string
		want int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"member", "member@fit.test", http.StatusForbidden},
		{"trainer", "coach@fit.test", http.StatusForbidden},
		{"unknown user", "ghost@fit.test", http.StatusForbidden},
		{"admin", "admin@fit.test", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := h.do(t, http.MethodGet, "/pending-trainers", tt.as, "")
			assert.Equal(t, tt.want, rec.Code)
			if tt.want != http.StatusOK {
				body := decodeBody(t, rec)
				assert.Equal(t, false, body["success"])
				assert.NotEmpty(t, body["message"])
			}
		})
	}
}

func TestAddSlotTemplate(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodGet, "/add-new-slot/coach@fit.test", "coach@fit.test", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	data, _ := body["data"].(map[string]any)
	assert.Equal(t, "Coach", data["fullName"])
	assert.Equal(t, "coach@fit.test", data["email"])

	rec = h.do(t, http.MethodGet, "/add-new-slot/coach@fit.test", "member@fit.test", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = h.do(t, http.MethodGet, "/add-new-slot/member@fit.test", "member@fit.test", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestInvalidBearerIsRejected(t *testing.T) {
	h := newHarness(t)
	req := httptest.NewRequest(http.MethodGet, "/approved-trainers", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestForumVote(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodPatch, "/forum-vote/p1", "member@fit.test", `{"vote":2}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.do(t, http.MethodPatch, "/forum-vote/p1", "", `{"vote":1}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = h.do(t, http.MethodPatch, "/forum-vote/p1", "member@fit.test", `{"vote":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decodeBody(t, rec)["voteCount"])

	rec = h.do(t, http.MethodPatch, "/forum-vote/missing", "member@fit.test", `{"vote":-1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestForumCreate_RequiresTrainerOrAdmin(t *testing.T) {
	h := newHarness(t)
	body := `{"title":"Mobility","content":"Hip **openers**"}`

	rec := h.do(t, http.MethodPost, "/forums", "member@fit.test", body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = h.do(t, http.MethodPost, "/forums", "coach@fit.test", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	id, _ := decodeBody(t, rec)["insertedId"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "coach@fit.test", h.forums.posts[id].AuthorEmail)
}

func TestSavePaymentHistory_Duplicate(t *testing.T) {
	h := newHarness(t)
	body := `{"transactionId":"pi_1","slotId":"s1","trainerId":"t1","classId":"c1","studentEmail":"member@fit.test","price":25}`

	rec := h.do(t, http.MethodPost, "/save-payment-history", "member@fit.test", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "pi_1", decodeBody(t, rec)["insertedId"])

	rec = h.do(t, http.MethodPost, "/save-payment-history", "member@fit.test", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, 1, h.payments.bookings)
}

func TestSavePaymentHistory_OtherStudent(t *testing.T) {
	h := newHarness(t)
	body := `{"transactionId":"pi_2","slotId":"s1","trainerId":"t1","studentEmail":"admin@fit.test","price":25}`

	rec := h.do(t, http.MethodPost, "/save-payment-history", "member@fit.test", body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, h.payments.records)
}

func TestCreatePaymentIntent_NoGateway(t *testing.T) {
	h := newHarness(t)
	rec := h.do(t, http.MethodPost, "/create-payment-intent", "member@fit.test", `{"price":10}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAddNewUser(t *testing.T) {
	h := newHarness(t)
	body := `{"email":"Sam@Fit.test","name":"Sam"}`

	rec := h.do(t, http.MethodPost, "/addNewUser", "", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	u, _ := decodeBody(t, rec)["user"].(map[string]any)
	assert.Equal(t, "sam@fit.test", u["email"])
	assert.Equal(t, user.RoleMember, u["role"])

	rec = h.do(t, http.MethodPost, "/addNewUser", "", body)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = h.do(t, http.MethodPost, "/addNewUser", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserRole_SelfOnly(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodGet, "/user-role/coach@fit.test", "coach@fit.test", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user.RoleTrainer, decodeBody(t, rec)["role"])

	rec = h.do(t, http.MethodGet, "/user-role/coach@fit.test", "member@fit.test", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestJWT(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodPost, "/jwt", "", `{"email":"member@fit.test"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	raw, _ := decodeBody(t, rec)["token"].(string)
	claims, err := h.tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "member@fit.test", claims.Email)

	rec = h.do(t, http.MethodPost, "/jwt", "", `{"email":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.do(t, http.MethodPost, "/jwt", "", `{"email":"admin"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMapError(t *testing.T) {
	status, msg := mapError(errors.New("firestore: deadline exceeded"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, internalMessage, msg)

	status, _ = mapError(fmt.Errorf("%w: post abc", forum.ErrNotFound))
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = mapError(fmt.Errorf("%w: full", payment.ErrDuplicate))
	assert.Equal(t, http.StatusConflict, status)

	status, _ = mapError(fmt.Errorf("%w: 5 trainers", class.ErrClassFull))
	assert.Equal(t, http.StatusConflict, status)

	status, _ = mapError(fmt.Errorf("%w: kim", trainer.ErrAlreadyApproved))
	assert.Equal(t, http.StatusConflict, status)
}
