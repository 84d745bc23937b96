package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/openshelf/book-catalog/internal/core/domain"
)

// NewSchema builds the executable GraphQL schema around the resolver set.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	userRoleEnum := graphql.NewEnum(graphql.EnumConfig{
		Name: "UserRole",
		Values: graphql.EnumValueConfigMap{
			"user":  &graphql.EnumValueConfig{Value: domain.RoleUser},
			"admin": &graphql.EnumValueConfig{Value: domain.RoleAdmin},
		},
	})

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*domain.User).ID, nil
				},
			},
			"username": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*domain.User).Username, nil
				},
			},
			"email": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if u := p.Source.(*domain.User); u.Email != "" {
						return u.Email, nil
					}
					return nil, nil
				},
			},
			"firstName": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if u := p.Source.(*domain.User); u.FirstName != "" {
						return u.FirstName, nil
					}
					return nil, nil
				},
			},
			"lastName": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if u := p.Source.(*domain.User); u.LastName != "" {
						return u.LastName, nil
					}
					return nil, nil
				},
			},
			"role": &graphql.Field{
				Type: graphql.NewNonNull(userRoleEnum),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*domain.User).Role, nil
				},
			},
			"isActive": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*domain.User).IsActive, nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.DateTime),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*domain.User).CreatedAt, nil
				},
			},
			"updatedAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.DateTime),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*domain.User).UpdatedAt, nil
				},
			},
		},
	})

	authPayloadType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthPayload",
		Fields: graphql.Fields{
			"token": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*domain.AuthPayload).Token, nil
				},
			},
			"user": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*domain.AuthPayload).User, nil
				},
			},
		},
	})

	bookType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Book",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*domain.Book).ID, nil
				},
			},
			"title": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*domain.Book).Title, nil
				},
			},
			"author": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*domain.Book).Author, nil
				},
			},
			"genre": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*domain.Book).Genre, nil
				},
			},
			"publishedYear": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*domain.Book).PublishedYear, nil
				},
			},
			"createdBy": &graphql.Field{
				Type:    graphql.NewNonNull(userType),
				Resolve: r.resolve("Book.createdBy", r.resolveBookCreator),
			},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.DateTime),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*domain.Book).CreatedAt, nil
				},
			},
			"updatedAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.DateTime),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*domain.Book).UpdatedAt, nil
				},
			},
		},
	})

	registerInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "RegisterInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"username":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"password":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"firstName": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"lastName":  &graphql.InputObjectFieldConfig{Type: graphql.String},
			"role":      &graphql.InputObjectFieldConfig{Type: userRoleEnum},
		},
	})

	loginInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "LoginInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"username": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	updateUserInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateUserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"username":  &graphql.InputObjectFieldConfig{Type: graphql.String},
			"email":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"firstName": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"lastName":  &graphql.InputObjectFieldConfig{Type: graphql.String},
			"role":      &graphql.InputObjectFieldConfig{Type: userRoleEnum},
			"isActive":  &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
		},
	})

	changePasswordInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ChangePasswordInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"currentPassword": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"newPassword":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	bookInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "BookInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":         &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"author":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"genre":         &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"publishedYear": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	bookUpdateInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "BookUpdateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":         &graphql.InputObjectFieldConfig{Type: graphql.String},
			"author":        &graphql.InputObjectFieldConfig{Type: graphql.String},
			"genre":         &graphql.InputObjectFieldConfig{Type: graphql.String},
			"publishedYear": &graphql.InputObjectFieldConfig{Type: graphql.Int},
		},
	})

	bookFilterInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "BookFilterInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":         &graphql.InputObjectFieldConfig{Type: graphql.String},
			"author":        &graphql.InputObjectFieldConfig{Type: graphql.String},
			"genre":         &graphql.InputObjectFieldConfig{Type: graphql.String},
			"publishedYear": &graphql.InputObjectFieldConfig{Type: graphql.Int},
		},
	})

	paginationArgs := func(extra graphql.FieldConfigArgument) graphql.FieldConfigArgument {
		args := graphql.FieldConfigArgument{
			"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 10},
			"offset": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
		}
		for name, cfg := range extra {
			args[name] = cfg
		}
		return args
	}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"me": &graphql.Field{
				Type:    userType,
				Resolve: r.resolve("me", r.resolveMe),
			},
			"user": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolve("user", r.resolveUser),
			},
			"users": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(userType))),
				Args: paginationArgs(graphql.FieldConfigArgument{
					"role":     &graphql.ArgumentConfig{Type: userRoleEnum},
					"isActive": &graphql.ArgumentConfig{Type: graphql.Boolean},
				}),
				Resolve: r.resolve("users", r.resolveUsers),
			},
			"searchUsers": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(userType))),
				Args: paginationArgs(graphql.FieldConfigArgument{
					"query": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				}),
				Resolve: r.resolve("searchUsers", r.resolveSearchUsers),
			},
			"books": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(bookType))),
				Args: paginationArgs(graphql.FieldConfigArgument{
					"filter": &graphql.ArgumentConfig{Type: bookFilterInput},
				}),
				Resolve: r.resolve("books", r.resolveBooks),
			},
			"book": &graphql.Field{
				Type: bookType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolve("book", r.resolveBook),
			},
			"searchBooks": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(bookType))),
				Args: paginationArgs(graphql.FieldConfigArgument{
					"query": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				}),
				Resolve: r.resolve("searchBooks", r.resolveSearchBooks),
			},
			"booksByGenre": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(bookType))),
				Args: paginationArgs(graphql.FieldConfigArgument{
					"genre": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				}),
				Resolve: r.resolve("booksByGenre", r.resolveBooksByGenre),
			},
			"booksByAuthor": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(bookType))),
				Args: paginationArgs(graphql.FieldConfigArgument{
					"author": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				}),
				Resolve: r.resolve("booksByAuthor", r.resolveBooksByAuthor),
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"register": &graphql.Field{
				Type: graphql.NewNonNull(authPayloadType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(registerInput)},
				},
				Resolve: r.resolve("register", r.resolveRegister),
			},
			"login": &graphql.Field{
				Type: graphql.NewNonNull(authPayloadType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(loginInput)},
				},
				Resolve: r.resolve("login", r.resolveLogin),
			},
			"logout": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: r.resolve("logout", r.resolveLogout),
			},
			"updateUser": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateUserInput)},
				},
				Resolve: r.resolve("updateUser", r.resolveUpdateUser),
			},
			"changePassword": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(changePasswordInput)},
				},
				Resolve: r.resolve("changePassword", r.resolveChangePassword),
			},
			"deleteUser": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolve("deleteUser", r.resolveDeleteUser),
			},
			"toggleUserStatus": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolve("toggleUserStatus", r.resolveToggleUserStatus),
			},
			"createBook": &graphql.Field{
				Type: graphql.NewNonNull(bookType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(bookInput)},
				},
				Resolve: r.resolve("createBook", r.resolveCreateBook),
			},
			"updateBook": &graphql.Field{
				Type: graphql.NewNonNull(bookType),
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(bookUpdateInput)},
				},
				Resolve: r.resolve("updateBook", r.resolveUpdateBook),
			},
			"deleteBook": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolve("deleteBook", r.resolveDeleteBook),
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}
