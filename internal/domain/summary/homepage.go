package summary

import (
	"net/url"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/recetario-api/internal/domain/entity"
)

// HomepageLimit tamaño máximo de cada lista del inicio.
const HomepageLimit = 5

// Homepage resumen del inicio: tres listas acotadas y un índice id → receta.
type Homepage struct {
	RecentlyAdded       []uuid.UUID
	HighestRated        []uuid.UUID
	RecommendedWebsites []string
	Lookup              map[uuid.UUID]entity.Recipe
}

// BuildHomepage calcula el resumen a partir de todas las recetas (ya acotadas al usuario).
// Los empates conservan el orden de entrada (sort estable); el contrato no lo garantiza.
// Las recetas con URL no parseable se omiten del conteo de sitios sin fallar el cálculo.
func BuildHomepage(recipes []entity.Recipe) Homepage {
	out := Homepage{
		RecentlyAdded:       []uuid.UUID{},
		HighestRated:        []uuid.UUID{},
		RecommendedWebsites: []string{},
		Lookup:              make(map[uuid.UUID]entity.Recipe, len(recipes)),
	}
	for _, r := range recipes {
		out.Lookup[r.ID] = r
	}

	byDate := append([]entity.Recipe(nil), recipes...)
	sort.SliceStable(byDate, func(i, j int) bool {
		return byDate[i].CreatedAt.After(byDate[j].CreatedAt)
	})
	out.RecentlyAdded = topIDs(byDate)

	byRating := append([]entity.Recipe(nil), recipes...)
	sort.SliceStable(byRating, func(i, j int) bool {
		return byRating[i].Rating > byRating[j].Rating
	})
	out.HighestRated = topIDs(byRating)

	out.RecommendedWebsites = topHostnames(recipes)
	return out
}

func topIDs(recipes []entity.Recipe) []uuid.UUID {
	n := min(len(recipes), HomepageLimit)
	ids := make([]uuid.UUID, 0, n)
	for _, r := range recipes[:n] {
		ids = append(ids, r.ID)
	}
	return ids
}

type hostCount struct {
	host  string
	count int
}

func topHostnames(recipes []entity.Recipe) []string {
	index := make(map[string]int)
	var counts []hostCount
	for _, r := range recipes {
		host, ok := hostname(r.URL)
		if !ok {
			continue
		}
		i, seen := index[host]
		if !seen {
			i = len(counts)
			index[host] = i
			counts = append(counts, hostCount{host: host})
		}
		counts[i].count++
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].count > counts[j].count
	})
	n := min(len(counts), HomepageLimit)
	hosts := make([]string, 0, n)
	for _, hc := range counts[:n] {
		hosts = append(hosts, hc.host)
	}
	return hosts
}

func hostname(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return "", false
	}
	h := strings.ToLower(u.Hostname())
	return h, h != ""
}
