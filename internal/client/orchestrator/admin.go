package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/teachreach/marketplace/internal/client/model"
)

// RefreshUsers replaces the user directory mirror.
func (o *Orchestrator) RefreshUsers(ctx context.Context) error {
	if _, err := o.currentAdmin(); err != nil {
		return err
	}
	users, err := o.remote.Users(ctx)
	if err != nil {
		return err
	}
	return o.state.ReplaceUsers(ctx, users)
}

// DeleteUser removes a client account and everything it authored.
func (o *Orchestrator) DeleteUser(ctx context.Context, id string) error {
	if _, err := o.currentAdmin(); err != nil {
		return err
	}
	for _, u := range o.state.Users() {
		if u.ID == id && u.IsAdmin() {
			return fmt.Errorf("%w: admin accounts cannot be deleted", model.ErrForbidden)
		}
	}
	if err := o.remote.DeleteUser(ctx, id); err != nil {
		return err
	}

	o.mu.Lock()
	o.deleted[id] = true
	o.mu.Unlock()
	return o.state.PurgeUser(ctx, id)
}

// AddService adds svc to the catalog under a new id.
func (o *Orchestrator) AddService(ctx context.Context, svc model.Service) (model.Service, error) {
	if _, err := o.currentAdmin(); err != nil {
		return model.Service{}, err
	}
	svc.Title = strings.TrimSpace(svc.Title)
	if err := o.validate.Struct(svc); err != nil {
		return model.Service{}, o.invalid("%v", err)
	}
	svc.ID = uuid.NewString()
	if err := o.state.PutService(ctx, svc); err != nil {
		return model.Service{}, err
	}
	return svc, nil
}

func (o *Orchestrator) UpdateService(ctx context.Context, svc model.Service) error {
	if _, err := o.currentAdmin(); err != nil {
		return err
	}
	if _, ok := o.state.Service(svc.ID); !ok {
		return fmt.Errorf("%w: service %q", model.ErrNotFound, svc.ID)
	}
	svc.Title = strings.TrimSpace(svc.Title)
	if err := o.validate.Struct(svc); err != nil {
		return o.invalid("%v", err)
	}
	return o.state.PutService(ctx, svc)
}

func (o *Orchestrator) DeleteService(ctx context.Context, id string) error {
	if _, err := o.currentAdmin(); err != nil {
		return err
	}
	removed, err := o.state.RemoveService(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: service %q", model.ErrNotFound, id)
	}
	return nil
}

func (o *Orchestrator) SetSiteName(ctx context.Context, name string) error {
	if _, err := o.currentAdmin(); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return o.invalid("site name is required")
	}
	return o.state.SetSiteName(ctx, name)
}
