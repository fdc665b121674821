package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dcollard/maestro/internal/auth"
	"github.com/dcollard/maestro/internal/composer"
	"github.com/dcollard/maestro/internal/infrastructure/config"
	"github.com/dcollard/maestro/internal/infrastructure/logging"
	"github.com/dcollard/maestro/internal/person"
	"github.com/dcollard/maestro/internal/roster"
	"github.com/dcollard/maestro/internal/shopper"
	"github.com/dcollard/maestro/internal/subdoc"
)

// fastParams keeps Argon2id cheap in tests.
var fastParams = auth.Params{Time: 1, MemoryKiB: 8 * 1024, Threads: 1}

// errStore is the error the failing fakes return to simulate a store outage.
var errStore = errors.New("store unavailable")

// --- fake repositories -----------------------------------------------------

type fakeComposerRepo struct {
	mu        sync.Mutex
	composers map[string]composer.Composer
	fail      bool
}

func newFakeComposerRepo() *fakeComposerRepo {
	return &fakeComposerRepo{composers: make(map[string]composer.Composer)}
}

func (f *fakeComposerRepo) FindAll(_ context.Context) ([]composer.Composer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errStore
	}
	out := []composer.Composer{}
	for _, c := range f.composers {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeComposerRepo) FindByID(_ context.Context, id string) (*composer.Composer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errStore
	}
	c, ok := f.composers[id]
	if !ok {
		return nil, composer.ErrNotFound
	}
	return &c, nil
}

func (f *fakeComposerRepo) Create(_ context.Context, c *composer.Composer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errStore
	}
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	f.composers[c.ID.Hex()] = *c
	return nil
}

func (f *fakeComposerRepo) UpdateByID(_ context.Context, id string, c *composer.Composer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errStore
	}
	existing, ok := f.composers[id]
	if !ok {
		return composer.ErrNotFound
	}
	existing.FirstName = c.FirstName
	existing.LastName = c.LastName
	f.composers[id] = existing
	c.ID = existing.ID
	return nil
}

func (f *fakeComposerRepo) DeleteByID(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errStore
	}
	if _, ok := f.composers[id]; !ok {
		return composer.ErrNotFound
	}
	delete(f.composers, id)
	return nil
}

type fakePersonRepo struct {
	mu      sync.Mutex
	persons []person.Person
	fail    bool
}

func (f *fakePersonRepo) FindAll(_ context.Context) ([]person.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errStore
	}
	out := []person.Person{}
	out = append(out, f.persons...)
	return out, nil
}

func (f *fakePersonRepo) FindByID(_ context.Context, id string) (*person.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.persons {
		if p.ID.Hex() == id {
			return &p, nil
		}
	}
	return nil, person.ErrNotFound
}

func (f *fakePersonRepo) Create(_ context.Context, p *person.Person) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errStore
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.Roles == nil {
		p.Roles = []person.Role{}
	}
	if p.Dependents == nil {
		p.Dependents = []person.Dependent{}
	}
	f.persons = append(f.persons, *p)
	return nil
}

func (f *fakePersonRepo) UpdateByID(_ context.Context, id string, p *person.Person) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.persons {
		if f.persons[i].ID.Hex() == id {
			p.ID = f.persons[i].ID
			f.persons[i] = *p
			return nil
		}
	}
	return person.ErrNotFound
}

func (f *fakePersonRepo) DeleteByID(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.persons {
		if f.persons[i].ID.Hex() == id {
			f.persons = append(f.persons[:i], f.persons[i+1:]...)
			return nil
		}
	}
	return person.ErrNotFound
}

type fakeCustomerRepo struct {
	mu        sync.Mutex
	customers map[string]*shopper.Customer // keyed by userName
	fail      bool
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[string]*shopper.Customer)}
}

func (f *fakeCustomerRepo) FindAll(_ context.Context) ([]shopper.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []shopper.Customer{}
	for _, c := range f.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCustomerRepo) FindByID(_ context.Context, id string) (*shopper.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.customers {
		if c.ID.Hex() == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, shopper.ErrNotFound
}

func (f *fakeCustomerRepo) FindByUserName(_ context.Context, userName string) (*shopper.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.customers[userName]
	if !ok {
		return nil, shopper.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCustomerRepo) Create(_ context.Context, c *shopper.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errStore
	}
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if c.Invoices == nil {
		c.Invoices = []shopper.Invoice{}
	}
	cp := *c
	f.customers[c.UserName] = &cp
	return nil
}

func (f *fakeCustomerRepo) UpdateByID(_ context.Context, id string, c *shopper.Customer) error {
	return shopper.ErrNotFound
}

func (f *fakeCustomerRepo) DeleteByID(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for userName, c := range f.customers {
		if c.ID.Hex() == id {
			delete(f.customers, userName)
			return nil
		}
	}
	return shopper.ErrNotFound
}

func (f *fakeCustomerRepo) AddInvoice(_ context.Context, userName string, inv shopper.Invoice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errStore
	}
	c, ok := f.customers[userName]
	if !ok {
		return subdoc.ErrParentNotFound
	}
	c.Invoices = append(c.Invoices, inv)
	return nil
}

func (f *fakeCustomerRepo) Invoices(_ context.Context, userName string) ([]shopper.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errStore
	}
	c, ok := f.customers[userName]
	if !ok {
		return nil, subdoc.ErrParentNotFound
	}
	out := []shopper.Invoice{}
	out = append(out, c.Invoices...)
	return out, nil
}

type fakeTeamRepo struct {
	mu    sync.Mutex
	teams map[string]*roster.Team
	fail  bool
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: make(map[string]*roster.Team)}
}

func (f *fakeTeamRepo) FindAll(_ context.Context) ([]roster.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errStore
	}
	out := []roster.Team{}
	for _, t := range f.teams {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTeamRepo) FindByID(_ context.Context, id string) (*roster.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errStore
	}
	t, ok := f.teams[id]
	if !ok {
		return nil, roster.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTeamRepo) Create(_ context.Context, t *roster.Team) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errStore
	}
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	if t.Players == nil {
		t.Players = []roster.Player{}
	}
	cp := *t
	f.teams[t.ID.Hex()] = &cp
	return nil
}

func (f *fakeTeamRepo) UpdateByID(_ context.Context, id string, t *roster.Team) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.teams[id]
	if !ok {
		return roster.ErrNotFound
	}
	existing.Name = t.Name
	existing.Mascot = t.Mascot
	t.ID = existing.ID
	return nil
}

func (f *fakeTeamRepo) DeleteByID(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errStore
	}
	if _, ok := f.teams[id]; !ok {
		return roster.ErrNotFound
	}
	delete(f.teams, id)
	return nil
}

func (f *fakeTeamRepo) AddPlayer(_ context.Context, id string, p roster.Player) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errStore
	}
	t, ok := f.teams[id]
	if !ok {
		return subdoc.ErrParentNotFound
	}
	t.Players = append(t.Players, p)
	return nil
}

func (f *fakeTeamRepo) Players(_ context.Context, id string) ([]roster.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errStore
	}
	t, ok := f.teams[id]
	if !ok {
		return nil, subdoc.ErrParentNotFound
	}
	out := []roster.Player{}
	out = append(out, t.Players...)
	return out, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]auth.User // keyed by userName
	fail  bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]auth.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u *auth.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errStore
	}
	if _, ok := f.users[u.UserName]; ok {
		return auth.ErrUsernameTaken
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	f.users[u.UserName] = *u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (f *fakeUserRepo) GetByUserName(_ context.Context, userName string) (*auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errStore
	}
	u, ok := f.users[userName]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	return &u, nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []auth.User{}
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for userName, u := range f.users {
		if u.ID == id {
			delete(f.users, userName)
			return nil
		}
	}
	return auth.ErrUserNotFound
}

func (f *fakeUserRepo) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

// --- test server -----------------------------------------------------------

type testEnv struct {
	server    *Server
	composers *fakeComposerRepo
	persons   *fakePersonRepo
	customers *fakeCustomerRepo
	teams     *fakeTeamRepo
	users     *fakeUserRepo
}

func newTestServer(t *testing.T) *testEnv {
	t.Helper()

	composers := newFakeComposerRepo()
	persons := &fakePersonRepo{}
	customers := newFakeCustomerRepo()
	teams := newFakeTeamRepo()
	users := newFakeUserRepo()

	srv, err := New(Deps{
		Config: config.APIConfig{Host: "127.0.0.1", Port: 3000},
		Security: config.SecurityConfig{
			JWT: config.JWTConfig{
				Secret:         "0123456789abcdef0123456789abcdef",
				AccessTokenTTL: 15,
			},
		},
		Logger:        logging.Default(),
		Version:       "test",
		Composers:     composers,
		Persons:       persons,
		Customers:     customers,
		Teams:         teams,
		Authenticator: auth.NewAuthenticator(users, fastParams),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	return &testEnv{
		server:    srv,
		composers: composers,
		persons:   persons,
		customers: customers,
		teams:     teams,
		users:     users,
	}
}

// doJSON performs a request against the test server and decodes the
// response body into out (if non-nil).
func (e *testEnv) doJSON(t *testing.T, method, path string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	e.server.Handler().ServeHTTP(rec, req)

	if out != nil && rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("unmarshaling response body: %v\nbody: %s", err, rec.Body.String())
		}
	}
	return rec
}

func TestNewRequiresDependencies(t *testing.T) {
	_, err := New(Deps{})
	if err == nil {
		t.Fatal("New() with empty deps should fail")
	}
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestServer(t)

	var body map[string]string
	rec := env.doJSON(t, http.MethodGet, "/health", nil, &body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestServer(t)

	// Generate some traffic first so counters exist.
	env.doJSON(t, http.MethodGet, "/api/composers", nil, nil)

	rec := env.doJSON(t, http.MethodGet, "/metrics", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("maestro_http_requests_total")) {
		t.Error("metrics output missing maestro_http_requests_total")
	}
}

func TestRequestIDHeader(t *testing.T) {
	env := newTestServer(t)

	rec := env.doJSON(t, http.MethodGet, "/health", nil, nil)
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("X-Request-Id header not set")
	}
}

func TestMalformedBodyReturns400(t *testing.T) {
	env := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/composers", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
