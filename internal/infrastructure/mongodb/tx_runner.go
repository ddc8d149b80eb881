package mongodb

import (
	"context"
	"fmt"

	"github.com/jhoicas/recetario-api/internal/application/catalog"
	"github.com/jhoicas/recetario-api/internal/domain/repository"
	"go.mongodb.org/mongo-driver/mongo"
)

var _ catalog.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción multi-documento (sesión).
type TxRunner struct {
	client     *mongo.Client
	categories *CategoryRepo
	recipes    *RecipeRepo
}

// NewTxRunner construye el runner sobre la base db.
func NewTxRunner(client *mongo.Client, db *mongo.Database) *TxRunner {
	return &TxRunner{
		client:     client,
		categories: NewCategoryRepository(db),
		recipes:    NewRecipeRepository(db),
	}
}

// Run abre una sesión, ejecuta fn con repos atados a ella y confirma o aborta.
// El driver puede reintentar fn ante errores transitorios de transacción.
func (r *TxRunner) Run(ctx context.Context, fn func(
	categories repository.CategoryRepository,
	recipes repository.RecipeRepository,
) error) error {
	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(mongo.SessionContext) (interface{}, error) {
		return nil, fn(r.categories.withSession(sess), r.recipes.withSession(sess))
	})
	return err
}
