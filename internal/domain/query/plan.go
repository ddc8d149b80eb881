// Package query define el filtro/orden normalizado y el plan de consulta neutral al motor
// (predicados + join + orden). Cada adaptador de almacenamiento traduce el Plan a su lenguaje.
package query

import (
	"errors"

	"github.com/google/uuid"
)

// Entity colección sobre la que actúa el plan.
type Entity string

const (
	EntityCategory Entity = "category"
	EntityRecipe   Entity = "recipe"
)

// Field campo lógico; los adaptadores lo mapean a columna o ruta de documento.
type Field string

const (
	FieldOwner    Field = "userId"
	FieldName     Field = "name"
	FieldNotes    Field = "notes"
	FieldRating   Field = "rating"
	FieldCategory Field = "categoryId"

	// Campos que solo existen después del join.
	FieldRecipeCount  Field = "recipeCount"
	FieldCategoryName Field = "category.name"
)

// Op operador de un predicado.
type Op int

const (
	OpEq       Op = iota + 1 // igualdad exacta (uuid.UUID o int)
	OpIsNull                 // campo sin valor
	OpContains               // subcadena, sin distinguir mayúsculas
	OpIn                     // pertenencia a IDs (∪ null si IncludeNull)
	OpOr                     // disyunción de Any
)

// Predicate cláusula del plan. Solo se usan los campos que corresponden a Op.
type Predicate struct {
	Op          Op
	Field       Field
	Value       any
	IDs         []uuid.UUID
	IncludeNull bool
	Any         []Predicate
}

// Eq igualdad exacta.
func Eq(f Field, v any) Predicate { return Predicate{Op: OpEq, Field: f, Value: v} }

// IsNull campo sin valor.
func IsNull(f Field) Predicate { return Predicate{Op: OpIsNull, Field: f} }

// Contains subcadena sin distinguir mayúsculas.
func Contains(f Field, text string) Predicate {
	return Predicate{Op: OpContains, Field: f, Value: text}
}

// In pertenencia a un conjunto de IDs; includeNull añade "sin valor" como miembro.
func In(f Field, ids []uuid.UUID, includeNull bool) Predicate {
	return Predicate{Op: OpIn, Field: f, IDs: ids, IncludeNull: includeNull}
}

// Or disyunción.
func Or(preds ...Predicate) Predicate { return Predicate{Op: OpOr, Any: preds} }

// Join join requerido antes de la etapa de orden.
type Join int

const (
	JoinNone            Join = iota
	JoinCategoryRecipes      // categoría → recetas del mismo usuario que la referencian
	JoinRecipeCategory       // receta → su categoría (o null)
)

// SortKey clave única de orden. No hay desempate definido por contrato.
type SortKey struct {
	Field Field
	Desc  bool
}

// Plan conjunción de predicados + join + orden.
type Plan struct {
	Entity Entity
	Where  []Predicate
	Join   Join
	Sort   SortKey
}

// ErrMissingOwner el plan no filtra por propietario; ningún adaptador debe ejecutarlo.
var ErrMissingOwner = errors.New("query: el plan no está acotado por propietario")

// Owner devuelve el propietario del predicado de nivel superior ownerId = X.
func (p Plan) Owner() (uuid.UUID, error) {
	for _, pr := range p.Where {
		if pr.Op != OpEq || pr.Field != FieldOwner {
			continue
		}
		if id, ok := pr.Value.(uuid.UUID); ok && id != uuid.Nil {
			return id, nil
		}
	}
	return uuid.Nil, ErrMissingOwner
}
