package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/recetario-api/internal/domain/entity"
	dq "github.com/jhoicas/recetario-api/internal/domain/query"
	"github.com/jhoicas/recetario-api/internal/domain/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// referenceLockField contador que solo existe para forzar conflictos de escritura.
const referenceLockField = "refLock"

// CategoryRepo implementación del puerto CategoryRepository sobre MongoDB.
type CategoryRepo struct {
	coll  *mongo.Collection
	scope sessionScope
}

// NewCategoryRepository construye el adaptador sobre la base db.
func NewCategoryRepository(db *mongo.Database) *CategoryRepo {
	return &CategoryRepo{coll: db.Collection(CategoriesCollection)}
}

func (r *CategoryRepo) withSession(sess mongo.Session) *CategoryRepo {
	return &CategoryRepo{coll: r.coll, scope: sessionScope{sess: sess}}
}

// OwnerOf devuelve el propietario guardado, sin acotar por usuario.
func (r *CategoryRepo) OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, bool, error) {
	return ownerOf(r.scope.bind(ctx), r.coll, id)
}

// Create persiste una nueva categoría.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	if _, err := r.coll.InsertOne(r.scope.bind(ctx), toCategoryDocument(c)); err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría del propietario.
func (r *CategoryRepo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*entity.Category, error) {
	var doc CategoryDocument
	err := r.coll.FindOne(r.scope.bind(ctx), bson.D{
		{Key: "_id", Value: id.String()},
		{Key: "userId", Value: ownerID.String()},
	}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	c, err := doc.toEntity()
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// LockForReference escribe en el documento dentro de la sesión: un borrado concurrente
// choca con WriteConflict y el driver reintenta la transacción perdedora.
func (r *CategoryRepo) LockForReference(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	res, err := r.coll.UpdateOne(r.scope.bind(ctx),
		bson.D{{Key: "_id", Value: id.String()}, {Key: "userId", Value: ownerID.String()}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: referenceLockField, Value: 1}}}},
	)
	if err != nil {
		return false, fmt.Errorf("lock category: %w", err)
	}
	return res.MatchedCount > 0, nil
}

// Update cambia el nombre.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) (bool, error) {
	res, err := r.coll.UpdateOne(r.scope.bind(ctx),
		bson.D{{Key: "_id", Value: c.ID.String()}, {Key: "userId", Value: c.UserID.String()}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "name", Value: c.Name}}}},
	)
	if err != nil {
		return false, fmt.Errorf("update category: %w", err)
	}
	return res.MatchedCount > 0, nil
}

// Delete elimina la categoría del propietario.
func (r *CategoryRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	res, err := r.coll.DeleteOne(r.scope.bind(ctx), bson.D{
		{Key: "_id", Value: id.String()},
		{Key: "userId", Value: ownerID.String()},
	})
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// List ejecuta el pipeline de categorías con $lookup a recetas.
func (r *CategoryRepo) List(ctx context.Context, plan dq.Plan) ([]entity.CategoryWithRecipes, error) {
	pipeline, err := categoryPipeline(plan)
	if err != nil {
		return nil, err
	}
	ctx = r.scope.bind(ctx)
	cur, err := r.coll.Aggregate(ctx, pipeline, options.Aggregate().SetCollation(caseInsensitive()))
	if err != nil {
		return nil, fmt.Errorf("aggregate categories: %w", err)
	}
	var docs []categoryWithRecipesDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}

	list := make([]entity.CategoryWithRecipes, 0, len(docs))
	for _, d := range docs {
		c, err := d.CategoryDocument.toEntity()
		if err != nil {
			return nil, err
		}
		item := entity.CategoryWithRecipes{Category: c, Recipes: make([]entity.Recipe, 0, len(d.Recipes))}
		for _, rd := range d.Recipes {
			rec, err := rd.toEntity()
			if err != nil {
				return nil, err
			}
			item.Recipes = append(item.Recipes, rec)
		}
		list = append(list, item)
	}
	return list, nil
}

func ownerOf(ctx context.Context, coll *mongo.Collection, id uuid.UUID) (uuid.UUID, bool, error) {
	var doc struct {
		UserID string `bson:"userId"`
	}
	err := coll.FindOne(ctx,
		bson.D{{Key: "_id", Value: id.String()}},
		options.FindOne().SetProjection(bson.D{{Key: "userId", Value: 1}}),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, fmt.Errorf("%s owner: %w", coll.Name(), err)
	}
	owner, err := uuid.Parse(doc.UserID)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("%s owner %q: %w", coll.Name(), doc.UserID, err)
	}
	return owner, true, nil
}
