package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/openshelf/book-catalog/internal/api/metrics"
	"github.com/openshelf/book-catalog/internal/api/middleware"
	"github.com/openshelf/book-catalog/internal/core/domain"
	"github.com/openshelf/book-catalog/internal/core/ports"
)

func (r *Resolver) resolveMe(p graphql.ResolveParams) (interface{}, error) {
	viewer := middleware.ViewerFrom(p.Context)
	if viewer == nil {
		return nil, domain.ErrUnauthenticated
	}
	return viewer, nil
}

func (r *Resolver) resolveUser(p graphql.ResolveParams) (interface{}, error) {
	viewer := middleware.ViewerFrom(p.Context)
	return r.users.Get(p.Context, viewer, stringArg(p.Args, "id"))
}

func (r *Resolver) resolveUsers(p graphql.ResolveParams) (interface{}, error) {
	viewer := middleware.ViewerFrom(p.Context)
	filter := ports.UserFilter{
		Role:     optString(p.Args, "role"),
		IsActive: optBool(p.Args, "isActive"),
	}
	return r.users.List(p.Context, viewer, filter, intArg(p.Args, "limit", 10), intArg(p.Args, "offset", 0))
}

func (r *Resolver) resolveSearchUsers(p graphql.ResolveParams) (interface{}, error) {
	viewer := middleware.ViewerFrom(p.Context)
	return r.users.Search(p.Context, viewer, stringArg(p.Args, "query"), intArg(p.Args, "limit", 10), intArg(p.Args, "offset", 0))
}

func (r *Resolver) resolveRegister(p graphql.ResolveParams) (interface{}, error) {
	input := inputArg(p.Args, "input")
	req := ports.RegisterInput{
		Username: stringArg(input, "username"),
		Email:    stringArg(input, "email"),
		Password: stringArg(input, "password"),
		Role:     stringArg(input, "role"),
	}
	if v := optString(input, "firstName"); v != nil {
		req.FirstName = *v
	}
	if v := optString(input, "lastName"); v != nil {
		req.LastName = *v
	}

	payload, err := r.auth.Register(p.Context, middleware.ViewerFrom(p.Context), req)
	if err != nil {
		return nil, err
	}
	metrics.UsersRegisteredTotal.Inc()
	return payload, nil
}

func (r *Resolver) resolveLogin(p graphql.ResolveParams) (interface{}, error) {
	input := inputArg(p.Args, "input")
	return r.auth.Login(p.Context, ports.LoginInput{
		Username: stringArg(input, "username"),
		Password: stringArg(input, "password"),
	})
}

// resolveLogout is a confirmation for clients discarding their token; the
// token itself stays valid until expiry (stateless model).
func (r *Resolver) resolveLogout(p graphql.ResolveParams) (interface{}, error) {
	if middleware.ViewerFrom(p.Context) == nil {
		return nil, domain.ErrUnauthenticated
	}
	return "Logged out successfully", nil
}

func (r *Resolver) resolveUpdateUser(p graphql.ResolveParams) (interface{}, error) {
	viewer := middleware.ViewerFrom(p.Context)
	input := inputArg(p.Args, "input")
	return r.users.Update(p.Context, viewer, stringArg(p.Args, "id"), ports.UpdateUserInput{
		Username:  optString(input, "username"),
		Email:     optString(input, "email"),
		FirstName: optString(input, "firstName"),
		LastName:  optString(input, "lastName"),
		Role:      optString(input, "role"),
		IsActive:  optBool(input, "isActive"),
	})
}

func (r *Resolver) resolveChangePassword(p graphql.ResolveParams) (interface{}, error) {
	viewer := middleware.ViewerFrom(p.Context)
	input := inputArg(p.Args, "input")
	return r.users.ChangePassword(p.Context, viewer, ports.ChangePasswordInput{
		CurrentPassword: stringArg(input, "currentPassword"),
		NewPassword:     stringArg(input, "newPassword"),
	})
}

func (r *Resolver) resolveDeleteUser(p graphql.ResolveParams) (interface{}, error) {
	viewer := middleware.ViewerFrom(p.Context)
	if err := r.users.Delete(p.Context, viewer, stringArg(p.Args, "id")); err != nil {
		return nil, err
	}
	return true, nil
}

func (r *Resolver) resolveToggleUserStatus(p graphql.ResolveParams) (interface{}, error) {
	viewer := middleware.ViewerFrom(p.Context)
	return r.users.ToggleStatus(p.Context, viewer, stringArg(p.Args, "id"))
}
