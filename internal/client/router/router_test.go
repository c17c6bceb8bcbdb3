package router

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teachreach/marketplace/internal/client/model"
	"github.com/teachreach/marketplace/internal/client/session"
	"github.com/teachreach/marketplace/internal/client/storage"
)

var (
	client = &model.Identity{ID: "u1", Name: "Ana", Email: "a@x.com", Role: model.RoleClient, Credential: "t"}
	admin  = &model.Identity{ID: "a1", Name: "Root", Email: "r@x.com", Role: model.RoleAdmin, Credential: "t"}
)

func TestCanEnter(t *testing.T) {
	tests := []struct {
		view View
		id   *model.Identity
		want bool
	}{
		{Home, nil, true},
		{Services, nil, true},
		{ServiceDetail, nil, true},
		{Reviews, nil, true},
		{Settings, nil, false},
		{Dashboard, nil, false},
		{Dashboard, client, true},
		{Settings, client, true},
		{AdminDashboard, nil, false},
		{AdminDashboard, client, false},
		{AdminDashboard, admin, true},
		{View("nowhere"), admin, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanEnter(tt.view, tt.id), "%s with %v", tt.view, tt.id)
	}
}

func TestResolve(t *testing.T) {
	assert.Equal(t, Login, Resolve(Dashboard, nil))
	assert.Equal(t, Login, Resolve(AdminDashboard, nil))
	assert.Equal(t, Dashboard, Resolve(AdminDashboard, client))
	assert.Equal(t, AdminDashboard, Resolve(AdminDashboard, admin))
	assert.Equal(t, Home, Resolve(View("nowhere"), client))
}

func TestLanding(t *testing.T) {
	assert.Equal(t, Home, Landing(nil))
	assert.Equal(t, Dashboard, Landing(client))
	assert.Equal(t, AdminDashboard, Landing(admin))
}

func TestParse(t *testing.T) {
	v, p := Parse("/services/svc1")
	assert.Equal(t, ServiceDetail, v)
	assert.Equal(t, "svc1", p)

	v, _ = Parse("/admin/")
	assert.Equal(t, AdminDashboard, v)

	v, _ = Parse("/does/not/exist")
	assert.Equal(t, Home, v)
}

func TestNavigator_ReevaluatesOnIdentityChange(t *testing.T) {
	ctx := context.Background()
	store := session.Open(ctx, storage.NewMemory(), zerolog.Nop())
	nav := NewNavigator(store, zerolog.Nop())

	assert.Equal(t, Login, nav.Go(Dashboard))

	require.NoError(t, store.SetCurrent(ctx, *admin))
	assert.Equal(t, AdminDashboard, nav.Go(AdminDashboard))

	require.NoError(t, store.SetCurrent(ctx, *client))
	v, _ := nav.Current()
	assert.Equal(t, Dashboard, v)

	require.NoError(t, store.Clear(ctx))
	v, _ = nav.Current()
	assert.Equal(t, Login, v)
}

func TestNavigator_OpenKeepsParam(t *testing.T) {
	store := session.Open(context.Background(), storage.NewMemory(), zerolog.Nop())
	nav := NewNavigator(store, zerolog.Nop())

	assert.Equal(t, ServiceDetail, nav.Open("/services/svc2"))
	v, p := nav.Current()
	assert.Equal(t, ServiceDetail, v)
	assert.Equal(t, "svc2", p)
}
