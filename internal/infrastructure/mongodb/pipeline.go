package mongodb

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"
	dq "github.com/jhoicas/recetario-api/internal/domain/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Rutas de documento por campo lógico.
var fieldPaths = map[dq.Field]string{
	dq.FieldOwner:        "userId",
	dq.FieldName:         "name",
	dq.FieldNotes:        "notes",
	dq.FieldRating:       "rating",
	dq.FieldCategory:     "categoryId",
	dq.FieldRecipeCount:  "recipeCount",
	dq.FieldCategoryName: "category.name",
}

// joined indica si el campo solo existe después del $lookup.
func joined(f dq.Field) bool {
	return f == dq.FieldRecipeCount || f == dq.FieldCategoryName
}

func path(f dq.Field) (string, error) {
	p, ok := fieldPaths[f]
	if !ok {
		return "", fmt.Errorf("mongodb: campo no soportado %q", f)
	}
	return p, nil
}

func value(v any) any {
	if id, ok := v.(uuid.UUID); ok {
		return id.String()
	}
	return v
}

// matchPredicate traduce un predicado a un filtro de $match.
func matchPredicate(p dq.Predicate) (bson.D, error) {
	if p.Op == dq.OpOr {
		alts := bson.A{}
		for _, sub := range p.Any {
			m, err := matchPredicate(sub)
			if err != nil {
				return nil, err
			}
			alts = append(alts, m)
		}
		return bson.D{{Key: "$or", Value: alts}}, nil
	}
	field, err := path(p.Field)
	if err != nil {
		return nil, err
	}
	switch p.Op {
	case dq.OpEq:
		return bson.D{{Key: field, Value: value(p.Value)}}, nil
	case dq.OpIsNull:
		return bson.D{{Key: field, Value: nil}}, nil
	case dq.OpContains:
		text, _ := p.Value.(string)
		return bson.D{{Key: field, Value: primitive.Regex{Pattern: regexp.QuoteMeta(text), Options: "i"}}}, nil
	case dq.OpIn:
		in := bson.A{}
		for _, id := range p.IDs {
			in = append(in, id.String())
		}
		if p.IncludeNull {
			in = append(in, nil)
		}
		return bson.D{{Key: field, Value: bson.D{{Key: "$in", Value: in}}}}, nil
	}
	return nil, fmt.Errorf("mongodb: operador no soportado %d", p.Op)
}

// matchStages separa los predicados que pueden filtrar antes del $lookup de los que dependen de él.
func matchStages(preds []dq.Predicate) (before, after bson.D, err error) {
	var pre, post bson.A
	for _, p := range preds {
		m, err := matchPredicate(p)
		if err != nil {
			return nil, nil, err
		}
		if referencesJoin(p) {
			post = append(post, m)
		} else {
			pre = append(pre, m)
		}
	}
	if len(pre) > 0 {
		before = bson.D{{Key: "$match", Value: bson.D{{Key: "$and", Value: pre}}}}
	}
	if len(post) > 0 {
		after = bson.D{{Key: "$match", Value: bson.D{{Key: "$and", Value: post}}}}
	}
	return before, after, nil
}

func referencesJoin(p dq.Predicate) bool {
	if p.Op == dq.OpOr {
		for _, sub := range p.Any {
			if referencesJoin(sub) {
				return true
			}
		}
		return false
	}
	return joined(p.Field)
}

// sortStage ordena por la clave del plan y desempata por _id. null queda primero en asc.
func sortStage(key dq.SortKey) (bson.D, error) {
	field, err := path(key.Field)
	if err != nil {
		return nil, err
	}
	dir := 1
	if key.Desc {
		dir = -1
	}
	return bson.D{{Key: "$sort", Value: bson.D{
		{Key: field, Value: dir},
		{Key: "_id", Value: 1},
	}}}, nil
}

// sameOwnerLookup $lookup con let/pipeline que une por id y exige el mismo userId en ambos lados.
func sameOwnerLookup(from, localField, foreignField, as string, extra ...bson.D) bson.D {
	pipeline := bson.A{
		bson.D{{Key: "$match", Value: bson.D{{Key: "$expr", Value: bson.D{{Key: "$and", Value: bson.A{
			bson.D{{Key: "$eq", Value: bson.A{"$" + foreignField, "$$joinId"}}},
			bson.D{{Key: "$eq", Value: bson.A{"$userId", "$$joinOwner"}}},
		}}}}}}},
	}
	for _, st := range extra {
		pipeline = append(pipeline, st)
	}
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: from},
		{Key: "let", Value: bson.D{
			{Key: "joinId", Value: "$" + localField},
			{Key: "joinOwner", Value: "$userId"},
		}},
		{Key: "pipeline", Value: pipeline},
		{Key: "as", Value: as},
	}}}
}

// categoryPipeline categorías + recetas del mismo usuario + recipeCount.
func categoryPipeline(plan dq.Plan) (mongo.Pipeline, error) {
	if plan.Entity != dq.EntityCategory {
		return nil, fmt.Errorf("mongodb: plan de %q en repositorio de categorías", plan.Entity)
	}
	if _, err := plan.Owner(); err != nil {
		return nil, err
	}
	before, after, err := matchStages(plan.Where)
	if err != nil {
		return nil, err
	}
	sort, err := sortStage(plan.Sort)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{}
	if before != nil {
		pipeline = append(pipeline, before)
	}
	pipeline = append(pipeline,
		sameOwnerLookup(RecipesCollection, "_id", "categoryId", "recipes",
			bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}}},
		),
		bson.D{{Key: "$addFields", Value: bson.D{{Key: "recipeCount", Value: bson.D{{Key: "$size", Value: "$recipes"}}}}}},
	)
	if after != nil {
		pipeline = append(pipeline, after)
	}
	return append(pipeline, sort), nil
}

// recipePipeline recetas + su categoría (desenrollada, preservando las que no tienen).
func recipePipeline(plan dq.Plan) (mongo.Pipeline, error) {
	if plan.Entity != dq.EntityRecipe {
		return nil, fmt.Errorf("mongodb: plan de %q en repositorio de recetas", plan.Entity)
	}
	if _, err := plan.Owner(); err != nil {
		return nil, err
	}
	before, after, err := matchStages(plan.Where)
	if err != nil {
		return nil, err
	}
	sort, err := sortStage(plan.Sort)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{}
	if before != nil {
		pipeline = append(pipeline, before)
	}
	pipeline = append(pipeline,
		sameOwnerLookup(CategoriesCollection, "categoryId", "_id", "category"),
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$category"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	)
	if after != nil {
		pipeline = append(pipeline, after)
	}
	return append(pipeline, sort), nil
}
