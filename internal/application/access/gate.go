// Package access implementa la puerta de autorización: toda operación de datos recibe
// un AuthContext explícito (producido por el middleware de sesión) y pasa por Gate.
package access

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/recetario-api/internal/domain"
	"github.com/jhoicas/recetario-api/internal/domain/ident"
	"github.com/jhoicas/recetario-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// AuthContext identidad verificada del llamador.
type AuthContext struct {
	UserID   uuid.UUID
	Username string
}

// Authenticated indica si el contexto viene de un token válido.
func (a AuthContext) Authenticated() bool {
	return a.UserID != uuid.Nil
}

// Stage estado de la máquina de autorización de una petición.
type Stage int

const (
	Unauthenticated Stage = iota
	TokenValidated
	OwnershipChecked
	Authorized
	Denied
)

func (s Stage) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case TokenValidated:
		return "token_validated"
	case OwnershipChecked:
		return "ownership_checked"
	case Authorized:
		return "authorized"
	case Denied:
		return "denied"
	}
	return "unknown"
}

// Action tipo de operación solicitada.
type Action int

const (
	ActionRead Action = iota
	ActionCreate
	ActionUpdate
	ActionDelete
)

func (a Action) mutation() bool { return a != ActionRead }

// Resource colección afectada.
type Resource string

const (
	ResourceCategory Resource = "category"
	ResourceRecipe   Resource = "recipe"
)

// Request describe la operación a autorizar.
//   - DeclaredOwner: userId que trae el cuerpo; obligatorio en create, opcional en update.
//   - ID: documento destino en update/delete.
type Request struct {
	Action        Action
	Resource      Resource
	ID            uuid.UUID
	DeclaredOwner string
}

// Gate verifica sesión y propiedad antes de tocar el almacenamiento.
type Gate struct {
	owners map[Resource]repository.OwnerLookup
	log    zerolog.Logger
}

// NewGate construye la puerta con los resolvedores de propietario de cada colección.
func NewGate(categories, recipes repository.OwnerLookup, log zerolog.Logger) *Gate {
	return &Gate{
		owners: map[Resource]repository.OwnerLookup{
			ResourceCategory: categories,
			ResourceRecipe:   recipes,
		},
		log: log,
	}
}

// Authorize recorre Unauthenticated → TokenValidated → OwnershipChecked → Authorized | Denied.
// Devuelve ErrUnauthorized, ErrValidation (falta userId en create), ErrInvalidIdentifier,
// ErrForbidden, ErrNotFound (update/delete sobre un ID inexistente) o ErrInternal.
func (g *Gate) Authorize(ctx context.Context, auth AuthContext, req Request) error {
	stage, err := g.evaluate(ctx, auth, req)
	if err != nil {
		g.log.Debug().
			Str("stage", stage.String()).
			Str("resource", string(req.Resource)).
			Str("user_id", auth.UserID.String()).
			Err(err).
			Msg("autorización denegada")
	}
	return err
}

func (g *Gate) evaluate(ctx context.Context, auth AuthContext, req Request) (Stage, error) {
	if !auth.Authenticated() {
		return Unauthenticated, domain.ErrUnauthorized
	}
	if !req.Action.mutation() {
		return Authorized, nil
	}

	if req.Action == ActionCreate && req.DeclaredOwner == "" {
		return Denied, fmt.Errorf("%w: userId es requerido", domain.ErrValidation)
	}
	if req.DeclaredOwner != "" {
		declared, err := ident.Encode(req.DeclaredOwner)
		if err != nil {
			return Denied, err
		}
		if declared != auth.UserID {
			return Denied, domain.ErrForbidden
		}
	}
	if req.Action == ActionCreate {
		return Authorized, nil
	}

	lookup, ok := g.owners[req.Resource]
	if !ok {
		return Denied, fmt.Errorf("%w: recurso desconocido %q", domain.ErrInternal, req.Resource)
	}
	owner, found, err := lookup.OwnerOf(ctx, req.ID)
	if err != nil {
		return TokenValidated, domain.Internal(err)
	}
	return checkOwnership(owner, found, auth)
}

// checkOwnership resuelve el estado OwnershipChecked.
func checkOwnership(owner uuid.UUID, found bool, auth AuthContext) (Stage, error) {
	switch {
	case !found:
		return Denied, domain.ErrNotFound
	case owner != auth.UserID:
		return Denied, domain.ErrForbidden
	}
	return Authorized, nil
}
