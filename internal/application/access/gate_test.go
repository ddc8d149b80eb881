package access_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/recetario-api/internal/application/access"
	"github.com/jhoicas/recetario-api/internal/domain"
)

// fakeOwners resuelve propietarios desde un mapa en memoria.
type fakeOwners struct {
	owners map[uuid.UUID]uuid.UUID
	err    error
	calls  int
}

func (f *fakeOwners) OwnerOf(_ context.Context, id uuid.UUID) (uuid.UUID, bool, error) {
	f.calls++
	if f.err != nil {
		return uuid.Nil, false, f.err
	}
	owner, ok := f.owners[id]
	return owner, ok, nil
}

func newGate(categories, recipes *fakeOwners) *access.Gate {
	return access.NewGate(categories, recipes, zerolog.Nop())
}

func TestGate_SinSesion(t *testing.T) {
	g := newGate(&fakeOwners{}, &fakeOwners{})
	err := g.Authorize(context.Background(), access.AuthContext{}, access.Request{Action: access.ActionRead})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestGate_LecturaConSesion(t *testing.T) {
	owners := &fakeOwners{}
	g := newGate(owners, owners)
	auth := access.AuthContext{UserID: uuid.New()}

	assert.NoError(t, g.Authorize(context.Background(), auth, access.Request{Action: access.ActionRead, Resource: access.ResourceRecipe}))
	assert.Zero(t, owners.calls, "las lecturas no consultan propietario")
}

// ─── Create ─────────────────────────────────────────────────────────────────

func TestGate_CreateSinUserID(t *testing.T) {
	g := newGate(&fakeOwners{}, &fakeOwners{})
	auth := access.AuthContext{UserID: uuid.New()}
	err := g.Authorize(context.Background(), auth, access.Request{Action: access.ActionCreate, Resource: access.ResourceCategory})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGate_CreateUserIDMalFormado(t *testing.T) {
	g := newGate(&fakeOwners{}, &fakeOwners{})
	auth := access.AuthContext{UserID: uuid.New()}
	err := g.Authorize(context.Background(), auth, access.Request{
		Action: access.ActionCreate, Resource: access.ResourceCategory, DeclaredOwner: "123",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidIdentifier)
}

func TestGate_CreateParaOtroUsuario(t *testing.T) {
	g := newGate(&fakeOwners{}, &fakeOwners{})
	auth := access.AuthContext{UserID: uuid.New()}
	err := g.Authorize(context.Background(), auth, access.Request{
		Action: access.ActionCreate, Resource: access.ResourceRecipe, DeclaredOwner: uuid.NewString(),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGate_CreatePropio(t *testing.T) {
	g := newGate(&fakeOwners{}, &fakeOwners{})
	me := uuid.New()
	err := g.Authorize(context.Background(), access.AuthContext{UserID: me}, access.Request{
		Action: access.ActionCreate, Resource: access.ResourceRecipe, DeclaredOwner: me.String(),
	})
	assert.NoError(t, err)
}

// ─── Update / Delete ────────────────────────────────────────────────────────

func TestGate_MutacionSobreDocumentoAjeno(t *testing.T) {
	me, other, doc := uuid.New(), uuid.New(), uuid.New()
	recipes := &fakeOwners{owners: map[uuid.UUID]uuid.UUID{doc: other}}
	g := newGate(&fakeOwners{}, recipes)

	for _, action := range []access.Action{access.ActionUpdate, access.ActionDelete} {
		err := g.Authorize(context.Background(), access.AuthContext{UserID: me}, access.Request{
			Action: action, Resource: access.ResourceRecipe, ID: doc,
		})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	}
}

func TestGate_MutacionSobreDocumentoInexistente(t *testing.T) {
	g := newGate(&fakeOwners{}, &fakeOwners{})
	err := g.Authorize(context.Background(), access.AuthContext{UserID: uuid.New()}, access.Request{
		Action: access.ActionDelete, Resource: access.ResourceCategory, ID: uuid.New(),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGate_UpdateConUserIDDeOtro(t *testing.T) {
	me, doc := uuid.New(), uuid.New()
	categories := &fakeOwners{owners: map[uuid.UUID]uuid.UUID{doc: me}}
	g := newGate(categories, &fakeOwners{})

	err := g.Authorize(context.Background(), access.AuthContext{UserID: me}, access.Request{
		Action: access.ActionUpdate, Resource: access.ResourceCategory, ID: doc, DeclaredOwner: uuid.NewString(),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Zero(t, categories.calls, "se deniega antes de consultar el almacenamiento")
}

func TestGate_UpdatePropio(t *testing.T) {
	me, doc := uuid.New(), uuid.New()
	categories := &fakeOwners{owners: map[uuid.UUID]uuid.UUID{doc: me}}
	g := newGate(categories, &fakeOwners{})

	err := g.Authorize(context.Background(), access.AuthContext{UserID: me}, access.Request{
		Action: access.ActionUpdate, Resource: access.ResourceCategory, ID: doc,
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, categories.calls)
}

func TestGate_FalloDelAlmacenamiento(t *testing.T) {
	g := newGate(&fakeOwners{err: errors.New("conexión cerrada")}, &fakeOwners{})
	err := g.Authorize(context.Background(), access.AuthContext{UserID: uuid.New()}, access.Request{
		Action: access.ActionDelete, Resource: access.ResourceCategory, ID: uuid.New(),
	})
	assert.ErrorIs(t, err, domain.ErrInternal)
}

func TestStage_String(t *testing.T) {
	assert.Equal(t, "unauthenticated", access.Unauthenticated.String())
	assert.Equal(t, "ownership_checked", access.OwnershipChecked.String())
	assert.Equal(t, "denied", access.Denied.String())
	assert.Equal(t, "unknown", access.Stage(99).String())
}
