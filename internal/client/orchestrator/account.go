package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/teachreach/marketplace/internal/client/gateway"
	"github.com/teachreach/marketplace/internal/client/model"
	"github.com/teachreach/marketplace/internal/client/router"
)

type RegisterInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Phone    string
}

type ProfileInput struct {
	Name  string
	Email string `validate:"omitempty,email"`
	Phone string
}

// ProfileResult reports the outcome of a profile edit. When the email
// changed, the identity is signed out until the new address is verified.
type ProfileResult struct {
	Identity             model.Identity
	VerificationRequired bool
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account and signs it in.
func (o *Orchestrator) Register(ctx context.Context, in RegisterInput) (model.Identity, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := o.validate.Struct(in); err != nil {
		return model.Identity{}, o.invalid("%v", err)
	}

	id, err := o.remote.Register(ctx, gateway.RegisterRequest{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Phone:    in.Phone,
	})
	if err != nil {
		return model.Identity{}, err
	}
	if err := o.signIn(ctx, id); err != nil {
		return model.Identity{}, err
	}
	o.log.Info().Str("user_id", id.ID).Msg("registered")
	return id, nil
}

// Login authenticates. It is refused while a verification for the email is
// outstanding.
func (o *Orchestrator) Login(ctx context.Context, email, password string) (model.Identity, error) {
	email = normalizeEmail(email)
	if err := o.validate.Var(email, "required,email"); err != nil {
		return model.Identity{}, o.invalid("email: %v", err)
	}
	if password == "" {
		return model.Identity{}, o.invalid("password is required")
	}
	if _, pending := o.state.Verification(email); pending {
		return model.Identity{}, fmt.Errorf("%w: email not verified", model.ErrAuth)
	}

	id, err := o.remote.Login(ctx, email, password)
	if err != nil {
		return model.Identity{}, err
	}
	if err := o.signIn(ctx, id); err != nil {
		return model.Identity{}, err
	}
	o.log.Info().Str("user_id", id.ID).Msg("signed in")
	return id, nil
}

func (o *Orchestrator) signIn(ctx context.Context, id model.Identity) error {
	prev := o.session.Current()
	if err := o.session.SetCurrent(ctx, id); err != nil {
		return err
	}
	o.mu.Lock()
	delete(o.deleted, id.ID)
	o.mu.Unlock()
	o.identityChanged(ctx, prev, &id)
	o.nav.Go(router.Landing(&id))
	return nil
}

// Logout ends the session and lands on home.
func (o *Orchestrator) Logout(ctx context.Context) error {
	err := o.session.Clear(ctx)
	o.identityChanged(ctx, nil, nil)
	o.nav.Go(router.Home)
	return err
}

// Verify confirms code for email and signs the parked identity back in.
// When nothing is parked for it, the address is still marked verified and
// the caller must sign in again.
func (o *Orchestrator) Verify(ctx context.Context, email, code string) (model.Identity, error) {
	email = normalizeEmail(email)
	v, ok := o.state.Verification(email)
	if !ok {
		return model.Identity{}, fmt.Errorf("%w: no verification pending for %s", model.ErrNotFound, email)
	}
	if strings.TrimSpace(code) != v.Code {
		return model.Identity{}, fmt.Errorf("%w: wrong verification code", model.ErrAuth)
	}

	if err := o.state.DeleteVerification(ctx, email); err != nil {
		return model.Identity{}, err
	}
	id, parked, err := o.session.Unpark(ctx, v.Identity.ID)
	if err != nil {
		return model.Identity{}, err
	}
	if !parked {
		o.nav.Go(router.Login)
		return model.Identity{}, fmt.Errorf("%w: email verified, sign in again", model.ErrAuth)
	}
	id.Email = v.Identity.Email
	id.IsVerified = true
	id.PendingVerificationCode = ""
	if err := o.signIn(ctx, id); err != nil {
		return model.Identity{}, err
	}
	o.log.Info().Str("user_id", id.ID).Msg("email verified")
	return id, nil
}

// ResendCode issues a new code for email. The previous one stops working.
func (o *Orchestrator) ResendCode(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	v, ok := o.state.Verification(email)
	if !ok {
		return fmt.Errorf("%w: no verification pending for %s", model.ErrNotFound, email)
	}
	return o.issueCode(ctx, v)
}

func (o *Orchestrator) issueCode(ctx context.Context, v model.Verification) error {
	v.Code = o.newCode()
	v.Identity.IsVerified = false
	v.Identity.PendingVerificationCode = ""
	v.Identity.Credential = ""
	if err := o.state.PutVerification(ctx, v); err != nil {
		return err
	}
	if err := o.notifier.SendCode(ctx, v.Email, v.Code); err != nil {
		o.log.Warn().Err(err).Str("email", v.Email).Msg("failed to deliver verification code")
	}
	return nil
}

// UpdateProfile saves profile changes. Changing the email signs the
// identity out and holds it until the new address is verified.
func (o *Orchestrator) UpdateProfile(ctx context.Context, in ProfileInput) (ProfileResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := o.validate.Struct(in); err != nil {
		return ProfileResult{}, o.invalid("%v", err)
	}

	var res ProfileResult
	err := o.write(ctx, func(ctx context.Context, cur model.Identity) error {
		saved, err := o.remote.UpdateProfile(ctx, gateway.ProfileRequest{Name: in.Name, Email: in.Email, Phone: in.Phone})
		if err != nil {
			return err
		}

		next := cur
		if saved.Name != "" {
			next.Name = saved.Name
			next.Avatar = model.AvatarFor(saved.Name)
		}
		if saved.Email != "" {
			next.Email = saved.Email
		}
		next.Phone = saved.Phone
		res.Identity = next

		if normalizeEmail(next.Email) == normalizeEmail(cur.Email) {
			return o.session.SetCurrent(ctx, next)
		}

		res.VerificationRequired = true
		if err := o.issueCode(ctx, model.Verification{Email: normalizeEmail(next.Email), Identity: next}); err != nil {
			return err
		}
		parkErr := o.session.Park(ctx, next)
		if o.session.Current() != nil {
			return parkErr
		}
		o.identityChanged(ctx, nil, nil)
		o.nav.Go(router.Login)
		o.log.Info().Str("user_id", cur.ID).Msg("email changed, verification required")
		return parkErr
	})
	return res, err
}

// DeleteAccount removes the current account. Admin accounts cannot be
// deleted and nothing changes for them.
func (o *Orchestrator) DeleteAccount(ctx context.Context) error {
	cur, err := o.current()
	if err != nil {
		return err
	}
	if cur.IsAdmin() {
		return fmt.Errorf("%w: admin accounts cannot be deleted", model.ErrForbidden)
	}

	return o.write(ctx, func(ctx context.Context, cur model.Identity) error {
		if err := o.remote.DeleteMe(ctx); err != nil {
			return err
		}

		o.mu.Lock()
		o.deleted[cur.ID] = true
		o.mu.Unlock()

		errs := []error{o.state.PurgeUser(ctx, cur.ID), o.session.Clear(ctx)}
		o.identityChanged(ctx, nil, nil)
		o.nav.Go(router.Login)
		o.log.Info().Str("user_id", cur.ID).Msg("account deleted")
		return errors.Join(errs...)
	})
}
