package memory

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	dq "github.com/jhoicas/recetario-api/internal/domain/query"
	"golang.org/x/text/cases"
)

// row fila evaluable; field devuelve nil para "sin valor".
type row interface {
	field(f dq.Field) (any, error)
}

// fold normaliza para comparaciones sin distinguir mayúsculas. cases.Caser no es seguro
// para uso concurrente, por eso se crea en cada llamada.
func fold(s string) string {
	return cases.Fold().String(s)
}

func matchAll(r row, preds []dq.Predicate) (bool, error) {
	for _, p := range preds {
		ok, err := match(r, p)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func match(r row, p dq.Predicate) (bool, error) {
	if p.Op == dq.OpOr {
		for _, sub := range p.Any {
			ok, err := match(r, sub)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	}

	v, err := r.field(p.Field)
	if err != nil {
		return false, err
	}
	switch p.Op {
	case dq.OpEq:
		return v != nil && v == p.Value, nil
	case dq.OpIsNull:
		return v == nil, nil
	case dq.OpContains:
		s, _ := v.(string)
		text, _ := p.Value.(string)
		return strings.Contains(fold(s), fold(text)), nil
	case dq.OpIn:
		if v == nil {
			return p.IncludeNull, nil
		}
		id, ok := v.(uuid.UUID)
		return ok && slices.Contains(p.IDs, id), nil
	}
	return false, fmt.Errorf("memory: operador no soportado %d", p.Op)
}

// compareValues ordena nil primero, textos sin distinguir mayúsculas y enteros numéricamente.
func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	switch av := a.(type) {
	case string:
		bv, _ := b.(string)
		return cmp.Compare(fold(av), fold(bv))
	case int:
		bv, _ := b.(int)
		return cmp.Compare(av, bv)
	}
	return 0
}

// sortRows orden estable por la clave; en desc se invierte, así nil queda al final.
func sortRows[T row](rows []T, key dq.SortKey) error {
	for _, r := range rows {
		if _, err := r.field(key.Field); err != nil {
			return err
		}
	}
	slices.SortStableFunc(rows, func(a, b T) int {
		av, _ := a.field(key.Field)
		bv, _ := b.field(key.Field)
		c := compareValues(av, bv)
		if key.Desc {
			return -c
		}
		return c
	})
	return nil
}
