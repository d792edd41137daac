package reconciliation

import (
	"github.com/agnivade/levenshtein"
)

// AttachHints добавляет подсказку к несопоставленным строкам:
// ближайшее нормализованное имя из bitrix в пределах maxDistance.
// Уровень строки не меняется. Возвращает количество добавленных подсказок
func AttachHints(rows []UnifiedRow, candidates []Candidate, maxDistance int) int {
	if maxDistance < 0 || len(candidates) == 0 {
		return 0
	}

	// Уникальные имена в порядке таблицы, чтобы при равном расстоянии результат был детерминирован
	seen := make(map[string]bool)
	var names []string
	for i := range candidates {
		name := NormalizeName(candidates[i].Name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}

	attached := 0
	for i := range rows {
		if rows[i].Tier != TierUnmatched {
			continue
		}
		target := NormalizeName(rows[i].Record.Name)
		if target == "" {
			continue
		}
		if hint, ok := nearestName(target, names, maxDistance); ok {
			rows[i].Hint = &hint
			attached++
		}
	}
	return attached
}

func nearestName(target string, names []string, maxDistance int) (Hint, bool) {
	best := Hint{Distance: -1}
	for _, name := range names {
		// Разница длин: нижняя граница расстояния
		if diff := len(name) - len(target); diff > maxDistance || -diff > maxDistance {
			continue
		}
		distance := levenshtein.ComputeDistance(target, name)
		if distance > maxDistance {
			continue
		}
		if best.Distance < 0 || distance < best.Distance {
			best = Hint{Name: name, Distance: distance}
			if distance == 0 {
				break
			}
		}
	}
	return best, best.Distance >= 0
}
