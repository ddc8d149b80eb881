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

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo implementación del puerto RecipeRepository sobre MongoDB.
type RecipeRepo struct {
	coll  *mongo.Collection
	scope sessionScope
}

// NewRecipeRepository construye el adaptador sobre la base db.
func NewRecipeRepository(db *mongo.Database) *RecipeRepo {
	return &RecipeRepo{coll: db.Collection(RecipesCollection)}
}

func (r *RecipeRepo) withSession(sess mongo.Session) *RecipeRepo {
	return &RecipeRepo{coll: r.coll, scope: sessionScope{sess: sess}}
}

// OwnerOf devuelve el propietario guardado, sin acotar por usuario.
func (r *RecipeRepo) OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, bool, error) {
	return ownerOf(r.scope.bind(ctx), r.coll, id)
}

// Create persiste una nueva receta.
func (r *RecipeRepo) Create(ctx context.Context, rec *entity.Recipe) error {
	if _, err := r.coll.InsertOne(r.scope.bind(ctx), toRecipeDocument(rec)); err != nil {
		return fmt.Errorf("insert recipe: %w", err)
	}
	return nil
}

// GetByID obtiene una receta del propietario.
func (r *RecipeRepo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*entity.Recipe, error) {
	var doc RecipeDocument
	err := r.coll.FindOne(r.scope.bind(ctx), bson.D{
		{Key: "_id", Value: id.String()},
		{Key: "userId", Value: ownerID.String()},
	}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	rec, err := doc.toEntity()
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update reemplaza los campos mutables.
func (r *RecipeRepo) Update(ctx context.Context, rec *entity.Recipe) (bool, error) {
	doc := toRecipeDocument(rec)
	res, err := r.coll.UpdateOne(r.scope.bind(ctx),
		bson.D{{Key: "_id", Value: doc.ID}, {Key: "userId", Value: doc.UserID}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "categoryId", Value: doc.CategoryID},
			{Key: "name", Value: doc.Name},
			{Key: "notes", Value: doc.Notes},
			{Key: "rating", Value: doc.Rating},
			{Key: "url", Value: doc.URL},
		}}},
	)
	if err != nil {
		return false, fmt.Errorf("update recipe: %w", err)
	}
	return res.MatchedCount > 0, nil
}

// Delete elimina la receta del propietario.
func (r *RecipeRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	res, err := r.coll.DeleteOne(r.scope.bind(ctx), bson.D{
		{Key: "_id", Value: id.String()},
		{Key: "userId", Value: ownerID.String()},
	})
	if err != nil {
		return false, fmt.Errorf("delete recipe: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// ClearCategory desasigna la categoría en las recetas del propietario.
func (r *RecipeRepo) ClearCategory(ctx context.Context, ownerID, categoryID uuid.UUID) (int64, error) {
	res, err := r.coll.UpdateMany(r.scope.bind(ctx),
		bson.D{{Key: "userId", Value: ownerID.String()}, {Key: "categoryId", Value: categoryID.String()}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "categoryId", Value: nil}}}},
	)
	if err != nil {
		return 0, fmt.Errorf("clear recipe category: %w", err)
	}
	return res.ModifiedCount, nil
}

// List ejecuta el pipeline de recetas con $lookup a su categoría.
func (r *RecipeRepo) List(ctx context.Context, plan dq.Plan) ([]entity.RecipeWithCategory, error) {
	pipeline, err := recipePipeline(plan)
	if err != nil {
		return nil, err
	}
	ctx = r.scope.bind(ctx)
	cur, err := r.coll.Aggregate(ctx, pipeline, options.Aggregate().SetCollation(caseInsensitive()))
	if err != nil {
		return nil, fmt.Errorf("aggregate recipes: %w", err)
	}
	var docs []recipeWithCategoryDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode recipes: %w", err)
	}

	list := make([]entity.RecipeWithCategory, 0, len(docs))
	for _, d := range docs {
		rec, err := d.RecipeDocument.toEntity()
		if err != nil {
			return nil, err
		}
		item := entity.RecipeWithCategory{Recipe: rec}
		if d.Category != nil {
			c, err := d.Category.toEntity()
			if err != nil {
				return nil, err
			}
			item.Category = &c
		}
		list = append(list, item)
	}
	return list, nil
}
