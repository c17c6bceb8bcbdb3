package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teachreach/marketplace/internal/client/gateway"
	"github.com/teachreach/marketplace/internal/client/mirror"
	"github.com/teachreach/marketplace/internal/client/model"
	"github.com/teachreach/marketplace/internal/client/router"
	"github.com/teachreach/marketplace/internal/client/session"
	"github.com/teachreach/marketplace/internal/client/storage"
	"github.com/teachreach/marketplace/internal/infrastructure/queue"
)

var errRemote = &gateway.RemoteError{Status: 500, Message: "boom"}

// fakeRemote serves canned answers. Hooks left nil fall back to a default.
type fakeRemote struct {
	mu    sync.Mutex
	calls map[string]int

	login        func(email, password string) (model.Identity, error)
	register     func(req gateway.RegisterRequest) (model.Identity, error)
	myOrders     []model.Order
	myOrdersErr  error
	allOrders    []model.Order
	createOrder  func(req gateway.CheckoutRequest) (gateway.OrderReceipt, error)
	createReview func(rating int, comment string) (model.Review, error)
	deleteMe     func() error
	update       func(req gateway.ProfileRequest) (model.Identity, error)
	users        []model.Identity
	support      gateway.Recipient
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{calls: map[string]int{}, support: gateway.Recipient{ID: "a1", Name: "Support"}}
}

func (f *fakeRemote) hit(name string) {
	f.mu.Lock()
	f.calls[name]++
	f.mu.Unlock()
}

func (f *fakeRemote) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeRemote) Register(_ context.Context, req gateway.RegisterRequest) (model.Identity, error) {
	f.hit("Register")
	if f.register != nil {
		return f.register(req)
	}
	return model.Identity{ID: "u1", Name: req.Name, Email: req.Email, Role: model.RoleClient, Credential: "tok"}, nil
}

func (f *fakeRemote) Login(_ context.Context, email, password string) (model.Identity, error) {
	f.hit("Login")
	if f.login != nil {
		return f.login(email, password)
	}
	return model.Identity{ID: "u1", Name: "Ana", Email: email, Role: model.RoleClient, Credential: "tok"}, nil
}

func (f *fakeRemote) MyOrders(context.Context) ([]model.Order, error) {
	f.hit("MyOrders")
	if f.myOrdersErr != nil {
		return nil, f.myOrdersErr
	}
	return append([]model.Order(nil), f.myOrders...), nil
}

func (f *fakeRemote) AllOrders(context.Context) ([]model.Order, error) {
	f.hit("AllOrders")
	return append([]model.Order(nil), f.allOrders...), nil
}

func (f *fakeRemote) CreateOrder(_ context.Context, req gateway.CheckoutRequest) (gateway.OrderReceipt, error) {
	f.hit("CreateOrder")
	if f.createOrder != nil {
		return f.createOrder(req)
	}
	return gateway.OrderReceipt{ID: "o1"}, nil
}

func (f *fakeRemote) UpdateOrderStatus(_ context.Context, id string, status model.OrderStatus, deliverables string) (model.Order, error) {
	f.hit("UpdateOrderStatus")
	return model.Order{ID: id, Status: status, Deliverables: deliverables}, nil
}

func (f *fakeRemote) Reviews(context.Context) ([]model.Review, error) {
	f.hit("Reviews")
	return nil, nil
}

func (f *fakeRemote) CreateReview(_ context.Context, rating int, comment string) (model.Review, error) {
	f.hit("CreateReview")
	if f.createReview != nil {
		return f.createReview(rating, comment)
	}
	return model.Review{ID: "r1", AuthorName: "Ana", Rating: rating, Comment: comment}, nil
}

func (f *fakeRemote) DeleteReview(context.Context, string) error {
	f.hit("DeleteReview")
	return nil
}

func (f *fakeRemote) Users(context.Context) ([]model.Identity, error) {
	f.hit("Users")
	return f.users, nil
}

func (f *fakeRemote) DeleteUser(context.Context, string) error {
	f.hit("DeleteUser")
	return nil
}

func (f *fakeRemote) UpdateProfile(_ context.Context, req gateway.ProfileRequest) (model.Identity, error) {
	f.hit("UpdateProfile")
	if f.update != nil {
		return f.update(req)
	}
	return model.Identity{ID: "u1", Name: req.Name, Email: req.Email, Phone: req.Phone, Role: model.RoleClient}, nil
}

func (f *fakeRemote) DeleteMe(context.Context) error {
	f.hit("DeleteMe")
	if f.deleteMe != nil {
		return f.deleteMe()
	}
	return nil
}

func (f *fakeRemote) SupportRecipient(context.Context) (gateway.Recipient, error) {
	f.hit("SupportRecipient")
	return f.support, nil
}

type recordingNotifier struct {
	mu    sync.Mutex
	codes map[string][]string
}

func (n *recordingNotifier) SendCode(_ context.Context, email, code string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.codes == nil {
		n.codes = map[string][]string{}
	}
	n.codes[email] = append(n.codes[email], code)
	return nil
}

// sequentialCodes hands out the given codes in order.
func sequentialCodes(codes ...string) func() string {
	var mu sync.Mutex
	i := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		c := codes[i%len(codes)]
		i++
		return c
	}
}

// syncBuffer collects log output written from worker goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type harness struct {
	o        *Orchestrator
	remote   *fakeRemote
	session  *session.Store
	state    *mirror.State
	nav      *router.Navigator
	notifier *recordingNotifier
	kv       *storage.Memory
	writes   *queue.Serializer
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	return newLoggedHarness(t, zerolog.Nop(), opts...)
}

func newLoggedHarness(t *testing.T, log zerolog.Logger, opts ...Option) *harness {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	kv := storage.NewMemory()
	sess := session.Open(ctx, kv, log)
	st := mirror.Open(ctx, kv, log)
	nav := router.NewNavigator(sess, log)
	writes := queue.NewSerializer(4, log)
	writes.Start(ctx)

	h := &harness{
		remote:   newFakeRemote(),
		session:  sess,
		state:    st,
		nav:      nav,
		notifier: &recordingNotifier{},
		kv:       kv,
		writes:   writes,
	}
	opts = append([]Option{WithClock(func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) })}, opts...)
	h.o = New(Deps{
		Remote:    h.remote,
		Session:   sess,
		State:     st,
		Navigator: nav,
		Notifier:  h.notifier,
		Writes:    writes,
		Logger:    log,
	}, opts...)
	return h
}

func (h *harness) signIn(t *testing.T, id model.Identity) {
	t.Helper()
	h.remote.login = func(string, string) (model.Identity, error) { return id, nil }
	_, err := h.o.Login(context.Background(), id.Email, "secret1")
	require.NoError(t, err)
}

func clientIdentity() model.Identity {
	return model.Identity{ID: "u1", Name: "Ana", Email: "ana@x.com", Role: model.RoleClient, Credential: "tok-u1"}
}

func adminIdentity() model.Identity {
	return model.Identity{ID: "a1", Name: "Root", Email: "root@x.com", Role: model.RoleAdmin, Credential: "tok-a1"}
}

func TestRegister_SignsInAndLands(t *testing.T) {
	h := newHarness(t)

	id, err := h.o.Register(context.Background(), RegisterInput{Name: " Ana ", Email: "ANA@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", id.Email)
	assert.Equal(t, "u1", h.session.Current().ID)

	v, _ := h.nav.Current()
	assert.Equal(t, router.Dashboard, v)
	assert.Equal(t, 1, h.remote.count("MyOrders"))
	assert.Equal(t, 1, h.remote.count("SupportRecipient"))
}

func TestRegister_ValidatesBeforeCalling(t *testing.T) {
	h := newHarness(t)
	tests := []RegisterInput{
		{Name: "", Email: "a@x.com", Password: "secret1"},
		{Name: "Ana", Email: "not-an-email", Password: "secret1"},
		{Name: "Ana", Email: "a@x.com", Password: "123"},
	}
	for _, in := range tests {
		_, err := h.o.Register(context.Background(), in)
		assert.ErrorIs(t, err, model.ErrValidation)
	}
	assert.Zero(t, h.remote.count("Register"))
	assert.Nil(t, h.session.Current())
}

func TestLogin_AdminLandsOnAdminDashboard(t *testing.T) {
	h := newHarness(t)
	h.remote.allOrders = []model.Order{{ID: "o7", Status: model.OrderActive}}
	h.signIn(t, adminIdentity())

	v, _ := h.nav.Current()
	assert.Equal(t, router.AdminDashboard, v)
	assert.Len(t, h.state.Orders(), 1)
	assert.Zero(t, h.remote.count("SupportRecipient"))
}

func TestLogin_SwitchingUsersDropsPreviousOrders(t *testing.T) {
	h := newHarness(t)
	h.remote.myOrders = []model.Order{{ID: "oA", Status: model.OrderActive}}
	h.signIn(t, clientIdentity())
	require.Len(t, h.state.Orders(), 1)

	h.remote.myOrdersErr = errRemote
	h.signIn(t, model.Identity{ID: "u2", Name: "Bo", Email: "bo@x.com", Role: model.RoleClient, Credential: "tok-u2"})

	assert.Empty(t, h.state.Orders())
	assert.Zero(t, h.o.NotificationCount())
}

func TestLogin_SameUserKeepsOrdersWhenRefetchFails(t *testing.T) {
	h := newHarness(t)
	h.remote.myOrders = []model.Order{{ID: "oA", Status: model.OrderActive}}
	h.signIn(t, clientIdentity())

	h.remote.myOrdersErr = errRemote
	h.signIn(t, clientIdentity())
	assert.Len(t, h.state.Orders(), 1)
}

func TestLogin_AdminLoadsUsers(t *testing.T) {
	h := newHarness(t)
	h.remote.users = []model.Identity{clientIdentity(), adminIdentity()}
	h.signIn(t, adminIdentity())

	assert.Equal(t, 1, h.remote.count("Users"))
	assert.Len(t, h.state.Users(), 2)
	assert.ErrorIs(t, h.o.DeleteUser(context.Background(), "a1"), model.ErrForbidden)
	assert.Zero(t, h.remote.count("DeleteUser"))
}

func TestLogin_RemoteFailureLeavesLoggedOut(t *testing.T) {
	h := newHarness(t)
	h.remote.login = func(string, string) (model.Identity, error) {
		return model.Identity{}, &gateway.RemoteError{Status: 401, Message: "invalid email or password"}
	}

	_, err := h.o.Login(context.Background(), "ana@x.com", "nope")
	assert.ErrorIs(t, err, model.ErrAuth)
	assert.Nil(t, h.session.Current())
}

func TestLogout_ClearsOrdersAndLandsHome(t *testing.T) {
	h := newHarness(t)
	h.remote.myOrders = []model.Order{{ID: "o1", Status: model.OrderActive}}
	h.signIn(t, clientIdentity())
	require.Len(t, h.state.Orders(), 1)

	require.NoError(t, h.o.Logout(context.Background()))
	assert.Nil(t, h.session.Current())
	assert.Empty(t, h.state.Orders())
	v, _ := h.nav.Current()
	assert.Equal(t, router.Home, v)
}

func TestPlaceOrder_PrependsConfirmedOrder(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, clientIdentity())
	before := h.o.NotificationCount()

	o, err := h.o.PlaceOrder(context.Background(), "svc1")
	require.NoError(t, err)

	orders := h.state.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, "o1", orders[0].ID)
	assert.Equal(t, model.OrderActive, orders[0].Status)
	assert.Equal(t, 50.0, orders[0].Price)
	assert.Equal(t, o, orders[0])
	assert.Equal(t, before+1, h.o.NotificationCount())
}

func TestPlaceOrder_FailureLeavesMirrorUntouched(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, clientIdentity())
	h.remote.createOrder = func(gateway.CheckoutRequest) (gateway.OrderReceipt, error) {
		return gateway.OrderReceipt{}, errRemote
	}

	_, err := h.o.PlaceOrder(context.Background(), "svc1")
	require.Error(t, err)
	assert.Empty(t, h.state.Orders())
}

func TestPlaceOrder_Preconditions(t *testing.T) {
	h := newHarness(t)

	_, err := h.o.PlaceOrder(context.Background(), "svc1")
	assert.ErrorIs(t, err, model.ErrAuth)

	h.signIn(t, clientIdentity())
	_, err = h.o.PlaceOrder(context.Background(), "missing")
	assert.ErrorIs(t, err, model.ErrValidation)
	assert.Zero(t, h.remote.count("CreateOrder"))
}

func TestUpdateOrderStatus(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, clientIdentity())
	_, err := h.o.UpdateOrderStatus(context.Background(), "o1", model.OrderCompleted, "")
	assert.ErrorIs(t, err, model.ErrForbidden)

	h.remote.allOrders = []model.Order{{ID: "o1", Status: model.OrderActive}}
	h.signIn(t, adminIdentity())

	_, err = h.o.UpdateOrderStatus(context.Background(), "o1", "shipped", "")
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = h.o.UpdateOrderStatus(context.Background(), "o1", model.OrderCompleted, "link")
	require.NoError(t, err)
	assert.Equal(t, model.OrderCompleted, h.state.Orders()[0].Status)
}

func TestDeleteAccount_CascadesAndRedirectsToLogin(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.signIn(t, clientIdentity())

	require.NoError(t, h.state.ReplaceUsers(ctx, []model.Identity{clientIdentity(), adminIdentity()}))
	require.NoError(t, h.state.AppendMessage(ctx, model.Message{ID: "m5", SenderID: "u1", ReceiverID: "a1"}))
	require.NoError(t, h.state.AppendMessage(ctx, model.Message{ID: "m6", SenderID: "x9", ReceiverID: "a1"}))
	require.NoError(t, h.state.AppendMessage(ctx, model.Message{ID: "m7", SenderID: "a1", ReceiverID: "u1"}))
	require.NoError(t, h.state.ReplaceReviews(ctx, []model.Review{{ID: "r9", AuthorID: "u1"}, {ID: "r10", AuthorID: "x9"}}))
	h.nav.Go(router.Settings)

	require.NoError(t, h.o.DeleteAccount(ctx))

	for _, u := range h.state.Users() {
		assert.NotEqual(t, "u1", u.ID)
	}
	for _, m := range h.state.Messages() {
		assert.NotEqual(t, "m5", m.ID)
	}
	for _, r := range h.state.Reviews() {
		assert.NotEqual(t, "r9", r.ID)
	}
	var kept []string
	for _, m := range h.state.Messages() {
		kept = append(kept, m.ID)
	}
	assert.ElementsMatch(t, []string{"m6", "m7"}, kept)
	assert.Len(t, h.state.Reviews(), 1)
	assert.Nil(t, h.session.Current())
	assert.Nil(t, session.Open(ctx, h.kv, zerolog.Nop()).Current())
	v, _ := h.nav.Current()
	assert.Equal(t, router.Login, v)
}

func TestDeleteAccount_RemoteFailureChangesNothing(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, clientIdentity())
	h.remote.deleteMe = func() error { return errRemote }

	require.Error(t, h.o.DeleteAccount(context.Background()))
	require.NotNil(t, h.session.Current())
	assert.Equal(t, "u1", h.session.Current().ID)
}

func TestDeleteAccount_WritesQueuedBehindDeletionFail(t *testing.T) {
	logs := &syncBuffer{}
	h := newLoggedHarness(t, zerolog.New(logs).Level(zerolog.DebugLevel))
	h.signIn(t, clientIdentity())

	entered := make(chan struct{})
	release := make(chan struct{})
	h.remote.deleteMe = func() error {
		close(entered)
		<-release
		return nil
	}

	deleteErr := make(chan error, 1)
	go func() { deleteErr <- h.o.DeleteAccount(context.Background()) }()
	<-entered

	orderErr := make(chan error, 1)
	go func() {
		_, err := h.o.PlaceOrder(context.Background(), "svc1")
		orderErr <- err
	}()
	require.Eventually(t, func() bool { return h.writes.Depth("u1") == 1 }, time.Second, time.Millisecond,
		"order was not queued behind the deletion")

	close(release)
	require.NoError(t, <-deleteErr)
	assert.ErrorIs(t, <-orderErr, model.ErrAuth)
	assert.Zero(t, h.remote.count("CreateOrder"))
	assert.Empty(t, h.state.Orders())
	assert.Contains(t, logs.String(), "queued write rejected")
}

func TestAddReview_OptimisticThenConfirmed(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, clientIdentity())

	inFlight := make(chan []model.Review, 1)
	h.remote.createReview = func(rating int, comment string) (model.Review, error) {
		inFlight <- h.state.Reviews()
		return model.Review{ID: "r1", AuthorName: "Ana", Rating: rating, Comment: comment}, nil
	}

	rv, err := h.o.AddReview(context.Background(), 5, "  great  ")
	require.NoError(t, err)

	pending := <-inFlight
	require.Len(t, pending, 1)
	assert.True(t, pending[0].Pending)
	assert.Equal(t, "great", pending[0].Comment)

	reviews := h.state.Reviews()
	require.Len(t, reviews, 1)
	assert.Equal(t, "r1", reviews[0].ID)
	assert.False(t, reviews[0].Pending)
	assert.Equal(t, "u1", rv.AuthorID)
}

func TestAddReview_RollsBackOnFailure(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, clientIdentity())
	h.remote.createReview = func(int, string) (model.Review, error) { return model.Review{}, errRemote }

	_, err := h.o.AddReview(context.Background(), 3, "fine")
	require.Error(t, err)
	assert.Empty(t, h.state.Reviews())
}

func TestAddReview_Validation(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, clientIdentity())

	_, err := h.o.AddReview(context.Background(), 0, "x")
	assert.ErrorIs(t, err, model.ErrValidation)
	_, err = h.o.AddReview(context.Background(), 6, "x")
	assert.ErrorIs(t, err, model.ErrValidation)
	_, err = h.o.AddReview(context.Background(), 4, "   ")
	assert.ErrorIs(t, err, model.ErrValidation)
	assert.Zero(t, h.remote.count("CreateReview"))
}

func TestSendMessage_GoesToSupportRecipient(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, clientIdentity())

	m, err := h.o.SendMessage(context.Background(), "hello", "")
	require.NoError(t, err)
	assert.Equal(t, "a1", m.ReceiverID)
	assert.Equal(t, "u1", m.SenderID)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, 1, h.remote.count("SupportRecipient"))

	_, err = h.o.SendMessage(context.Background(), "  ", "")
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestAdminSendMessage_AndUnreadCount(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.signIn(t, adminIdentity())

	_, err := h.o.AdminSendMessage(ctx, "", "hi", "")
	assert.ErrorIs(t, err, model.ErrValidation)
	_, err = h.o.SendMessage(ctx, "hi", "")
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = h.o.AdminSendMessage(ctx, "u1", "your order shipped", "")
	require.NoError(t, err)

	h.signIn(t, clientIdentity())
	assert.Equal(t, 1, h.o.UnreadCount())

	n, err := h.o.MarkAsRead(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Zero(t, h.o.UnreadCount())
}

func TestAdminOperations_RequireAdmin(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.signIn(t, clientIdentity())

	assert.ErrorIs(t, h.o.RefreshUsers(ctx), model.ErrForbidden)
	assert.ErrorIs(t, h.o.DeleteUser(ctx, "u2"), model.ErrForbidden)
	assert.ErrorIs(t, h.o.DeleteReview(ctx, "r1"), model.ErrForbidden)
	assert.ErrorIs(t, h.o.SetSiteName(ctx, "X"), model.ErrForbidden)
	assert.ErrorIs(t, h.o.DeleteService(ctx, "svc1"), model.ErrForbidden)
	_, err := h.o.AddService(ctx, model.Service{Title: "X"})
	assert.ErrorIs(t, err, model.ErrForbidden)
	_, err = h.o.AdminSendMessage(ctx, "u2", "hi", "")
	assert.ErrorIs(t, err, model.ErrForbidden)
}

func TestAdminCatalogAndSite(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.signIn(t, adminIdentity())

	svc, err := h.o.AddService(ctx, model.Service{Title: "Copywriting", Price: 40, DeliveryDays: 2})
	require.NoError(t, err)
	assert.NotEmpty(t, svc.ID)

	svc.Price = 45
	require.NoError(t, h.o.UpdateService(ctx, svc))
	got, ok := h.state.Service(svc.ID)
	require.True(t, ok)
	assert.Equal(t, 45.0, got.Price)

	assert.ErrorIs(t, h.o.UpdateService(ctx, model.Service{ID: "nope", Title: "x"}), model.ErrNotFound)
	_, err = h.o.AddService(ctx, model.Service{Title: "", Price: 1})
	assert.ErrorIs(t, err, model.ErrValidation)

	require.NoError(t, h.o.DeleteService(ctx, svc.ID))
	assert.ErrorIs(t, h.o.DeleteService(ctx, svc.ID), model.ErrNotFound)

	assert.ErrorIs(t, h.o.SetSiteName(ctx, " "), model.ErrValidation)
	require.NoError(t, h.o.SetSiteName(ctx, "Tutors Inc"))
	assert.Equal(t, "Tutors Inc", h.state.SiteConfig().SiteName)
}

func TestDeleteUser_PurgesAndRefusesAdmins(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.remote.users = []model.Identity{clientIdentity(), adminIdentity()}
	h.signIn(t, adminIdentity())
	require.NoError(t, h.o.RefreshUsers(ctx))

	assert.ErrorIs(t, h.o.DeleteUser(ctx, "a1"), model.ErrForbidden)
	assert.Zero(t, h.remote.count("DeleteUser"))

	require.NoError(t, h.o.DeleteUser(ctx, "u1"))
	users := h.state.Users()
	require.Len(t, users, 1)
	assert.Equal(t, "a1", users[0].ID)
}

func TestNotificationCount_LoggedOut(t *testing.T) {
	h := newHarness(t)
	assert.Zero(t, h.o.NotificationCount())
	assert.Zero(t, h.o.UnreadCount())
}

func TestRemoteErrorIsSurfaced(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, clientIdentity())
	h.remote.createOrder = func(gateway.CheckoutRequest) (gateway.OrderReceipt, error) {
		return gateway.OrderReceipt{}, errRemote
	}

	_, err := h.o.PlaceOrder(context.Background(), "svc1")
	var re *gateway.RemoteError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "boom", re.Message)
}
